package variant

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository interface {
	Create(ctx context.Context, v *Variant) (*Variant, error)
	BulkCreate(ctx context.Context, variants []*Variant) ([]*Variant, error)
	ListByProduct(ctx context.Context, productID string) ([]*Variant, error)
	UpdatePriceStock(ctx context.Context, id string, price float64, stock int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const insertVariantSQL = `
	INSERT INTO variants (id, product_id, sku, price, compare_price, stock, attributes, images, is_active, is_default)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (r *repository) Create(ctx context.Context, v *Variant) (*Variant, error) {
	attrs, err := json.Marshal(v.Attributes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode attributes: %w", err)
	}

	out := *v
	out.ID = uuid.NewString()

	_, err = r.db.ExecContext(ctx, insertVariantSQL,
		out.ID, out.ProductID, out.SKU, out.Price, out.ComparePrice,
		out.Stock, attrs, pq.Array(out.Images), out.IsActive, out.IsDefault,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == PgUniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrSKUConflict, out.SKU)
		}
		return nil, err
	}
	return &out, nil
}

// BulkCreate inserts the whole batch in one transaction: the batch was
// validated as a unit, so it lands as a unit.
func (r *repository) BulkCreate(ctx context.Context, variants []*Variant) ([]*Variant, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	created := make([]*Variant, 0, len(variants))
	for _, v := range variants {
		attrs, err := json.Marshal(v.Attributes)
		if err != nil {
			return nil, fmt.Errorf("failed to encode attributes: %w", err)
		}

		out := *v
		out.ID = uuid.NewString()

		if _, err := tx.ExecContext(ctx, insertVariantSQL,
			out.ID, out.ProductID, out.SKU, out.Price, out.ComparePrice,
			out.Stock, attrs, pq.Array(out.Images), out.IsActive, out.IsDefault,
		); err != nil {
			if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == PgUniqueViolation {
				return nil, fmt.Errorf("%w: %s", ErrSKUConflict, out.SKU)
			}
			return nil, err
		}
		created = append(created, &out)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *repository) ListByProduct(ctx context.Context, productID string) ([]*Variant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, sku, price, compare_price, stock, attributes, images, is_active, is_default
		FROM variants
		WHERE product_id = $1
		ORDER BY created_at, id`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []*Variant
	for rows.Next() {
		var (
			v     Variant
			attrs []byte
		)
		if err := rows.Scan(
			&v.ID, &v.ProductID, &v.SKU, &v.Price, &v.ComparePrice,
			&v.Stock, &attrs, pq.Array(&v.Images), &v.IsActive, &v.IsDefault,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(attrs, &v.Attributes); err != nil {
			return nil, fmt.Errorf("failed to decode attributes for %s: %w", v.ID, err)
		}
		variants = append(variants, &v)
	}

	return variants, rows.Err()
}

// UpdatePriceStock covers the post-creation edits a variant allows.
// The attribute combination is immutable once created; changing it is
// a delete-and-recreate.
func (r *repository) UpdatePriceStock(ctx context.Context, id string, price float64, stock int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE variants SET price = $2, stock = $3 WHERE id = $1`,
		id, price, stock)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrVariantNotFound
	}
	return nil
}
