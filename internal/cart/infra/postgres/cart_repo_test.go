package postgres

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"

	pg "github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// openTestDB connects to STOREFRONT_TEST_DSN and applies migrations.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("STOREFRONT_TEST_DSN")
	if dsn == "" {
		t.Skip("STOREFRONT_TEST_DSN not set")
	}
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, pg.Migrate(context.Background(), db, logger.Discard()))
	return db
}

func seedUserAndProduct(t *testing.T, db *sql.DB) (string, string) {
	t.Helper()
	ctx := context.Background()
	userID, productID := uuid.NewString(), uuid.NewString()

	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash) VALUES ($1, 'Test', $2, 'x')`,
		userID, userID+"@example.test")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, price, images, category, inventory)
		VALUES ($1, 'Ring', 'Silver ring', 10.00, '["/r.jpg"]', 'Rings', 100)`, productID)
	require.NoError(t, err)
	return userID, productID
}

func TestCart_ConcurrentGetOrCreate_SingleCart(t *testing.T) {
	db := openTestDB(t)
	repo := NewCartRepo(db)
	userID, _ := seedUserAndProduct(t, db)

	const N = 50
	ids := make(map[string]struct{})
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < N; i++ {
		g.Go(func() error {
			cart, err := repo.GetOrCreate(ctx, userID)
			if err != nil {
				return err
			}
			mu.Lock()
			ids[cart.ID] = struct{}{}
			mu.Unlock()
			return nil
		})
	}

	require.NoError(t, g.Wait())
	require.Len(t, ids, 1)
}

func TestCart_ConcurrentAddItemIncrement(t *testing.T) {
	db := openTestDB(t)
	repo := NewCartRepo(db)
	userID, productID := seedUserAndProduct(t, db)

	cart, err := repo.GetOrCreate(context.Background(), userID)
	require.NoError(t, err)

	const N = 100
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < N; i++ {
		g.Go(func() error {
			return repo.AddItem(ctx, cart.ID, productID, 1)
		})
	}
	require.NoError(t, g.Wait())

	got, err := repo.GetOrCreate(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	require.Equal(t, N, got.Lines[0].Quantity)
}

func TestCart_SetAndRemoveScopedToCart(t *testing.T) {
	db := openTestDB(t)
	repo := NewCartRepo(db)
	userID, productID := seedUserAndProduct(t, db)
	ctx := context.Background()

	cart, err := repo.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, repo.AddItem(ctx, cart.ID, productID, 2))

	cart, err = repo.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	itemID := cart.Lines[0].ID

	ok, err := repo.SetItemQuantity(ctx, cart.ID, uuid.NewString(), 3)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = repo.SetItemQuantity(ctx, cart.ID, itemID, 3)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, repo.RemoveItem(ctx, cart.ID, itemID))
	require.NoError(t, repo.RemoveItem(ctx, cart.ID, itemID))

	cart, err = repo.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, cart.Lines)
}
