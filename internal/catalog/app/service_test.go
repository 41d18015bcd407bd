package app

import (
	"context"
	"errors"
	"testing"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	created   domain.Product
	listLimit int
	many      []domain.Product
}

func (f *fakeRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.ID = "p-1"
	f.created = p
	return p, nil
}
func (f *fakeRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	return p, nil
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	return domain.Product{}, ErrNotFound
}
func (f *fakeRepo) GetMany(ctx context.Context, ids []string) ([]domain.Product, error) {
	return f.many, nil
}
func (f *fakeRepo) List(ctx context.Context, filter domain.Filter, limit int, cursor string) ([]domain.Product, string, error) {
	f.listLimit = limit
	return nil, "", nil
}

func validInput() ProductInput {
	return ProductInput{
		Name:        "Pearl Drop Earrings",
		Description: "Freshwater pearls",
		Price:       decimal.RequireFromString("49.99"),
		Images:      []string{"/images/earrings-1.jpg"},
		Category:    "Earrings",
		Inventory:   25,
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})
	ctx := context.Background()

	t.Run("empty name -> invalid", func(t *testing.T) {
		in := validInput()
		in.Name = "   "
		_, err := svc.CreateProduct(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative price -> invalid", func(t *testing.T) {
		in := validInput()
		in.Price = decimal.NewFromInt(-1)
		_, err := svc.CreateProduct(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative inventory -> invalid", func(t *testing.T) {
		in := validInput()
		in.Inventory = -3
		_, err := svc.CreateProduct(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("blank images only -> invalid", func(t *testing.T) {
		in := validInput()
		in.Images = []string{" ", ""}
		_, err := svc.CreateProduct(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("zero price is allowed", func(t *testing.T) {
		in := validInput()
		in.Price = decimal.Zero
		_, err := svc.CreateProduct(ctx, in)
		assert.NoError(t, err)
	})
}

func TestCreateProductTrims(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	in := validInput()
	in.Name = "  Gold Chain  "
	in.Images = []string{" /a.jpg ", "", "/b.jpg"}

	p, err := svc.CreateProduct(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Gold Chain", p.Name)
	assert.Equal(t, []string{"/a.jpg", "/b.jpg"}, repo.created.Images)
}

func TestListProductsClampsLimit(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, _, err := svc.ListProducts(context.Background(), domain.Filter{}, 0, "")
	require.NoError(t, err)
	assert.Equal(t, 20, repo.listLimit)

	_, _, err = svc.ListProducts(context.Background(), domain.Filter{}, 1000, "")
	require.NoError(t, err)
	assert.Equal(t, 100, repo.listLimit)
}

func TestListProductsRejectsInvertedPriceRange(t *testing.T) {
	svc := NewService(&fakeRepo{})
	lo, hi := decimal.NewFromInt(50), decimal.NewFromInt(10)

	_, _, err := svc.ListProducts(context.Background(), domain.Filter{MinPrice: &lo, MaxPrice: &hi}, 10, "")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestGetProductsKeysByID(t *testing.T) {
	repo := &fakeRepo{many: []domain.Product{{ID: "a"}, {ID: "b"}}}
	svc := NewService(repo)

	got, err := svc.GetProducts(context.Background(), []string{"a", "b", "missing"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Contains(t, got, "a")

	empty, err := svc.GetProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
