package attribute

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Attribute, error)
	GetByID(ctx context.Context, id string) (*Attribute, error)
	Create(ctx context.Context, input NewAttributeInput) (Attribute, error)
	AppendValues(ctx context.Context, id string, values []string) (*Attribute, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context) ([]Attribute, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, display_name, type, values, is_required, display_order, created_at
		FROM attributes
		ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attrs []Attribute
	for rows.Next() {
		var a Attribute
		if err := rows.Scan(
			&a.ID, &a.Name, &a.DisplayName, &a.Type,
			pq.Array(&a.Values), &a.IsRequired, &a.DisplayOrder, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}

	return attrs, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Attribute, error) {
	var a Attribute
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, display_name, type, values, is_required, display_order, created_at
		FROM attributes
		WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.DisplayName, &a.Type,
			pq.Array(&a.Values), &a.IsRequired, &a.DisplayOrder, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrAttributeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Create(ctx context.Context, input NewAttributeInput) (Attribute, error) {
	a := Attribute{
		ID:           uuid.NewString(),
		Name:         input.Name,
		DisplayName:  input.DisplayName,
		Type:         input.Type,
		Values:       input.Values,
		IsRequired:   input.IsRequired,
		DisplayOrder: input.DisplayOrder,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO attributes (id, name, display_name, type, values, is_required, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		a.ID, a.Name, a.DisplayName, a.Type,
		pq.Array(a.Values), a.IsRequired, a.DisplayOrder,
	).Scan(&a.CreatedAt)
	return a, err
}

// AppendValues merges new values onto the attribute, keeping insertion
// order and skipping values already present. Order matters downstream
// (it drives combination enumeration), so the merge happens here rather
// than with a DISTINCT in SQL.
func (r *repository) AppendValues(ctx context.Context, id string, values []string) (*Attribute, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(a.Values))
	for _, v := range a.Values {
		seen[v] = true
	}
	for _, v := range values {
		if !seen[v] {
			a.Values = append(a.Values, v)
			seen[v] = true
		}
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE attributes SET values = $2 WHERE id = $1`,
		id, pq.Array(a.Values))
	if err != nil {
		return nil, err
	}
	return a, nil
}
