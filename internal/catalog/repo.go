package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jimgas/gas-orders/internal/errs"
)

type Repo struct{ DB *pgxpool.Pool }

const productColumns = `id, name, brand, weight_kg, type, price, stock_quantity, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.WeightKg, &p.Type, &p.Price,
		&p.StockQuantity, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListActive returns every product offered to customers, ordered by name.
// Deactivated products never appear here, only in admin paths.
func (r *Repo) ListActive(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productColumns+`
	                              FROM products WHERE is_active = true ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) GetByID(ctx context.Context, id string) (Product, error) {
	if uuid.Validate(id) != nil {
		return Product{}, errs.NotFoundf("product %s", id)
	}
	p, err := scanProduct(r.DB.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, errs.NotFoundf("product %s", id)
	}
	return p, err
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (Product, error) {
	if verr := in.Validate(); verr != nil {
		return Product{}, verr
	}
	id := uuid.NewString()
	p, err := scanProduct(r.DB.QueryRow(ctx, `
		INSERT INTO products(id, name, brand, weight_kg, type, price, stock_quantity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		RETURNING `+productColumns,
		id, in.Name, in.Brand, in.WeightKg, in.Type, in.Price, in.StockQuantity))
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

// Update applies the non-nil fields of in to a single product row.
func (r *Repo) Update(ctx context.Context, id string, in UpdateInput) (Product, error) {
	if verr := in.Validate(); verr != nil {
		return Product{}, verr
	}
	if uuid.Validate(id) != nil {
		return Product{}, errs.NotFoundf("product %s", id)
	}

	set := ""
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s=$%d", col, len(args))
	}
	if in.Name != nil {
		add("name", *in.Name)
	}
	if in.Brand != nil {
		add("brand", *in.Brand)
	}
	if in.WeightKg != nil {
		add("weight_kg", *in.WeightKg)
	}
	if in.Type != nil {
		add("type", *in.Type)
	}
	if in.Price != nil {
		add("price", *in.Price)
	}
	if in.StockQuantity != nil {
		add("stock_quantity", *in.StockQuantity)
	}
	if in.IsActive != nil {
		add("is_active", *in.IsActive)
	}

	p, err := scanProduct(r.DB.QueryRow(ctx,
		`UPDATE products SET `+set+`, updated_at=now() WHERE id=$1 RETURNING `+productColumns, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, errs.NotFoundf("product %s", id)
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

// Deactivate hides a product from the catalog. The row survives so that
// historical order items keep a valid product reference.
func (r *Repo) Deactivate(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return errs.NotFoundf("product %s", id)
	}
	ct, err := r.DB.Exec(ctx,
		`UPDATE products SET is_active=false, updated_at=now() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("product %s", id)
	}
	return nil
}
