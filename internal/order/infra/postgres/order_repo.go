package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/domain"
	pg "github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type OrderRepo struct {
	db pg.DBTX
}

func NewOrderRepo(db pg.DBTX) *OrderRepo {
	return &OrderRepo{db: db}
}

const orderColumns = `id, user_id, total, status, shipping_info, payment_info, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		o             domain.Order
		id, userID    uuid.UUID
		total, status string
	)
	if err := row.Scan(&id, &userID, &total, &status, &o.ShippingInfo, &o.PaymentInfo, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return domain.Order{}, err
	}
	d, err := decimal.NewFromString(total)
	if err != nil {
		return domain.Order{}, fmt.Errorf("scan total: %w", err)
	}
	o.ID = id.String()
	o.UserID = userID.String()
	o.Total = d
	o.Status = domain.Status(status)
	return o, nil
}

// Create inserts the order and its items. Callers that need it atomic with
// other writes construct the repo on a *sql.Tx.
func (r *OrderRepo) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	uid, err := uuid.Parse(order.UserID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("invalid user id: %w", err)
	}

	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		INSERT INTO orders (id, user_id, total, status, shipping_info, payment_info)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+orderColumns,
		uuid.New(), uid, order.Total.StringFixed(2), string(order.Status),
		[]byte(order.ShippingInfo), []byte(order.PaymentInfo),
	))
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	items := make([]domain.OrderItem, 0, len(order.Items))
	for i, item := range order.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("item %d: invalid product UUID: %w", i, err)
		}
		itemID := uuid.New()
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, name, quantity, price, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			itemID, o.ID, pid, item.Name, item.Quantity, item.Price.StringFixed(2), i,
		); err != nil {
			return domain.Order{}, fmt.Errorf("failed to insert item %d: %w", i, err)
		}
		item.ID = itemID.String()
		item.OrderID = o.ID
		items = append(items, item)
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return domain.Order{}, app.ErrNotFound
	}
	o, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, oid))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}

	orders := []domain.Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return domain.Order{}, err
	}
	return orders[0], nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, app.ErrInvalidInput
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, uid)
	if err != nil {
		return nil, err
	}
	orders, err := collect(rows)
	if err != nil {
		return nil, err
	}
	return orders, r.attachItems(ctx, orders)
}

func (r *OrderRepo) List(ctx context.Context, status *domain.Status, limit, offset int) ([]domain.Order, int, error) {
	var filter any
	if status != nil {
		filter = string(*status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM orders WHERE ($1::text IS NULL OR status = $1)`, filter,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	orders, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, from, to domain.Status) (bool, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return false, app.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		oid, string(from), string(to))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *OrderRepo) Stats(ctx context.Context) (domain.Stats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, count(*), COALESCE(sum(total), 0) FROM orders GROUP BY status`)
	if err != nil {
		return domain.Stats{}, err
	}
	defer rows.Close()

	st := domain.Stats{Revenue: decimal.Zero, ByStatus: map[domain.Status]int{}}
	for rows.Next() {
		var (
			status string
			n      int
			sum    string
		)
		if err := rows.Scan(&status, &n, &sum); err != nil {
			return domain.Stats{}, err
		}
		st.ByStatus[domain.Status(status)] = n
		st.TotalOrders += n
		if domain.Status(status) == domain.StatusCancelled {
			continue
		}
		d, err := decimal.NewFromString(sum)
		if err != nil {
			return domain.Stats{}, fmt.Errorf("scan revenue: %w", err)
		}
		st.Revenue = st.Revenue.Add(d)
	}
	return st, rows.Err()
}

func collect(rows *sql.Rows) ([]domain.Order, error) {
	defer rows.Close()
	out := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepo) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, 0, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.ID)
		index[o.ID] = i
		orders[i].Items = []domain.OrderItem{}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, name, quantity, price
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, position, id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it           domain.OrderItem
			id, oid, pid uuid.UUID
			price        string
		)
		if err := rows.Scan(&id, &oid, &pid, &it.Name, &it.Quantity, &price); err != nil {
			return err
		}
		d, err := decimal.NewFromString(price)
		if err != nil {
			return fmt.Errorf("scan item price: %w", err)
		}
		it.ID, it.OrderID, it.ProductID, it.Price = id.String(), oid.String(), pid.String(), d
		i := index[it.OrderID]
		orders[i].Items = append(orders[i].Items, it)
	}
	return rows.Err()
}
