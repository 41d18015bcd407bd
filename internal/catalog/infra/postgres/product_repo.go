package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	pg "github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type ProductRepo struct {
	db pg.DBTX
}

func NewProductRepo(db pg.DBTX) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `id, name, description, price, images, category, inventory, featured, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p      domain.Product
		id     uuid.UUID
		price  string
		images []byte
	)
	if err := row.Scan(&id, &p.Name, &p.Description, &price, &images, &p.Category, &p.Inventory, &p.Featured, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.Product{}, err
	}
	p.ID = id.String()

	d, err := decimal.NewFromString(price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("scan price: %w", err)
	}
	p.Price = d

	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return domain.Product{}, fmt.Errorf("scan images: %w", err)
		}
	}
	return p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return domain.Product{}, err
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (id, name, description, price, images, category, inventory, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+productColumns,
		uuid.New(), p.Name, p.Description, p.Price.StringFixed(2), images, p.Category, p.Inventory, p.Featured,
	)
	return scanProduct(row)
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return domain.Product{}, app.ErrNotFound
	}
	images, err := json.Marshal(p.Images)
	if err != nil {
		return domain.Product{}, err
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, images = $5,
		    category = $6, inventory = $7, featured = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		id, p.Name, p.Description, p.Price.StringFixed(2), images, p.Category, p.Inventory, p.Featured,
	)
	out, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	return out, err
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return app.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, uid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.Product{}, app.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, uid)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	return p, err
}

// GetMany skips ids that are malformed or unknown.
func (r *ProductRepo) GetMany(ctx context.Context, ids []string) ([]domain.Product, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ANY($1::uuid[])`, pq.Array(valid))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) List(ctx context.Context, filter domain.Filter, limit int, cursor string) ([]domain.Product, string, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if c := strings.TrimSpace(cursor); c != "" {
		uid, err := uuid.Parse(c)
		if err != nil {
			return nil, "", app.ErrInvalidInput
		}
		c := arg(uid)
		where = append(where, "(created_at, id) < (SELECT created_at, id FROM products WHERE id = "+c+")")
	}
	if filter.Category != "" {
		where = append(where, "category = "+arg(filter.Category))
	}
	if filter.Featured {
		where = append(where, "featured = TRUE")
	}
	if filter.Search != "" {
		p := arg(containsPattern(filter.Search))
		where = append(where, `(name ILIKE `+p+` ESCAPE '\' OR description ILIKE `+p+` ESCAPE '\')`)
	}
	if filter.MinPrice != nil {
		where = append(where, "price >= "+arg(filter.MinPrice.String()))
	}
	if filter.MaxPrice != nil {
		where = append(where, "price <= "+arg(filter.MaxPrice.String()))
	}

	q := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, id DESC LIMIT " + arg(limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	out := make([]domain.Product, 0, limit)
	var nextCursor string
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, "", err
		}
		out = append(out, p)
		nextCursor = p.ID
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	if len(out) < limit {
		nextCursor = ""
	}

	return out, nextCursor, nil
}

// DecrementInventory takes qty units of stock, reporting false when the
// product is missing or has fewer than qty units left.
func (r *ProductRepo) DecrementInventory(ctx context.Context, id string, qty int) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET inventory = inventory - $2, updated_at = now()
		WHERE id = $1 AND inventory >= $2`, uid, qty)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Count returns the number of products in the catalog.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM products`).Scan(&n)
	return n, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches s literally anywhere in the value.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
