package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
	pg "github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/google/uuid"
)

type CartRepo struct {
	db pg.DBTX
}

func NewCartRepo(db pg.DBTX) *CartRepo {
	return &CartRepo{db: db}
}

func (r *CartRepo) get(ctx context.Context, userID uuid.UUID) (domain.Cart, error) {
	var (
		c     domain.Cart
		id    uuid.UUID
		owner uuid.UUID
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`, userID,
	).Scan(&id, &owner, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Cart{}, err
	}
	c.ID = id.String()
	c.UserID = owner.String()

	lines, err := r.lines(ctx, id)
	if err != nil {
		return domain.Cart{}, err
	}
	c.Lines = lines
	return c, nil
}

func (r *CartRepo) lines(ctx context.Context, cartID uuid.UUID) ([]domain.Line, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, quantity, created_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at, id`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []domain.Line{}
	for rows.Next() {
		var (
			l       domain.Line
			id, pid uuid.UUID
		)
		if err := rows.Scan(&id, &pid, &l.Quantity, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.ID = id.String()
		l.ProductID = pid.String()
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *CartRepo) GetOrCreate(ctx context.Context, userID string) (domain.Cart, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart, err := r.get(ctx, uid)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, err
	}

	_, createErr := r.db.ExecContext(ctx,
		`INSERT INTO carts (id, user_id) VALUES ($1, $2)`, uuid.New(), uid)
	if createErr == nil || pg.IsUniqueViolation(createErr) {
		// A concurrent caller may have won the insert; both read the same row.
		return r.get(ctx, uid)
	}
	return domain.Cart{}, createErr
}

func (r *CartRepo) AddItem(ctx context.Context, cartID, productID string, quantity int) error {
	cid, err := uuid.Parse(cartID)
	if err != nil {
		return err
	}
	pid, err := uuid.Parse(productID)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cart_items (id, cart_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		uuid.New(), cid, pid, quantity)
	if err != nil {
		return err
	}
	return r.touch(ctx, cid)
}

func (r *CartRepo) SetItemQuantity(ctx context.Context, cartID, itemID string, quantity int) (bool, error) {
	cid, err := uuid.Parse(cartID)
	if err != nil {
		return false, err
	}
	iid, err := uuid.Parse(itemID)
	if err != nil {
		return false, nil
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $3 WHERE id = $2 AND cart_id = $1`, cid, iid, quantity)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	return true, r.touch(ctx, cid)
}

func (r *CartRepo) RemoveItem(ctx context.Context, cartID, itemID string) error {
	cid, err := uuid.Parse(cartID)
	if err != nil {
		return err
	}
	iid, err := uuid.Parse(itemID)
	if err != nil {
		// not a line id, nothing to remove
		return nil
	}

	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = $2 AND cart_id = $1`, cid, iid); err != nil {
		return err
	}
	return r.touch(ctx, cid)
}

func (r *CartRepo) ClearCart(ctx context.Context, cartID string) error {
	cid, err := uuid.Parse(cartID)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cid); err != nil {
		return err
	}
	return r.touch(ctx, cid)
}

// LockForUser takes a row lock on the user's cart for the rest of the
// enclosing transaction. It returns sql.ErrNoRows when the user has no cart.
func (r *CartRepo) LockForUser(ctx context.Context, userID string) (string, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return "", err
	}
	var id uuid.UUID
	if err := r.db.QueryRowContext(ctx,
		`SELECT id FROM carts WHERE user_id = $1 FOR UPDATE`, uid).Scan(&id); err != nil {
		return "", err
	}
	return id.String(), nil
}

func (r *CartRepo) touch(ctx context.Context, cartID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID)
	return err
}
