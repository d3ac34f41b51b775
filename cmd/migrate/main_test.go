package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqlSection(t *testing.T) {
	content := `
-- +migrate Up
CREATE TABLE attributes (id text);
ALTER TABLE attributes ADD COLUMN name text;

-- +migrate Down
DROP TABLE attributes;
`
	t.Run("Up", func(t *testing.T) {
		up := sqlSection(content, "Up")
		assert.Contains(t, up, "CREATE TABLE attributes")
		assert.Contains(t, up, "ALTER TABLE attributes")
		assert.NotContains(t, up, "DROP TABLE attributes")
		assert.NotContains(t, up, "-- +migrate Up")
	})

	t.Run("Down", func(t *testing.T) {
		down := sqlSection(content, "Down")
		assert.Contains(t, down, "DROP TABLE attributes")
		assert.NotContains(t, down, "CREATE TABLE attributes")
	})
}

func TestApplyAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tmpDir := t.TempDir()
	fileName := "0001_attributes.sql"
	filePath := filepath.Join(tmpDir, fileName)

	content := "-- +migrate Up\nCREATE TABLE attributes (id text);"
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))

	mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
		WithArgs(fileName).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("CREATE TABLE attributes").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs(fileName).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, applyAll(db, []string{filePath}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyAll_SkipsApplied(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "0001_attributes.sql")
	require.NoError(t, os.WriteFile(filePath, []byte("-- +migrate Up\nSELECT 1;"), 0644))

	mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	require.NoError(t, applyAll(db, []string{filePath}))
	require.NoError(t, mock.ExpectationsWereMet())
}
