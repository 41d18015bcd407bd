package localstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "local.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestCartSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t)

	c, err := s.LoadCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
	assert.Empty(t, c.UserID)

	_, err = c.AddItem("p1", 2)
	require.NoError(t, err)
	_, err = c.AddItem("p2", 1)
	require.NoError(t, err)
	require.NoError(t, s.SaveCart(ctx, c))
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LoadCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, "p1", got.Lines[0].ProductID)
	assert.Equal(t, 2, got.Lines[0].Quantity)
	assert.Equal(t, c.Lines[1].ID, got.Lines[1].ID)
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	c := domain.NewCart("")
	_, err := c.AddItem("p1", 1)
	require.NoError(t, err)
	require.NoError(t, s.SaveCart(ctx, c))

	c.Clear()
	require.NoError(t, s.SaveCart(ctx, c))

	got, err := s.LoadCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Lines)
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	v, err := s.Session(ctx)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.SaveSession(ctx, "MTY5...signed"))
	v, err = s.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, "MTY5...signed", v)

	require.NoError(t, s.ClearSession(ctx))
	v, err = s.Session(ctx)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestLoadCartDropsUnreadableCart(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	require.NoError(t, s.put(ctx, keyCart, []byte("{")))

	c, err := s.LoadCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)

	_, ok, err := s.get(ctx, keyCart)
	require.NoError(t, err)
	assert.False(t, ok, "corrupt cart should be removed")

	_, err = c.AddItem("p1", 1)
	require.NoError(t, err)
	require.NoError(t, s.SaveCart(ctx, c))

	got, err := s.LoadCart(ctx)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "p1", got.Lines[0].ProductID)
}

func TestResetCart(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	c := domain.NewCart("")
	_, err := c.AddItem("p1", 3)
	require.NoError(t, err)
	require.NoError(t, s.SaveCart(ctx, c))

	require.NoError(t, s.ResetCart(ctx))
	got, err := s.LoadCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Lines)
}
