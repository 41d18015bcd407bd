package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

// ProductInput is the admin-editable part of a product.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Images      []string
	Category    string
	Inventory   int
	Featured    bool
}

func (in ProductInput) normalize() (ProductInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)

	images := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	in.Images = images

	if in.Name == "" || in.Description == "" || in.Category == "" || len(in.Images) == 0 {
		return ProductInput{}, ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Inventory < 0 {
		return ProductInput{}, ErrInvalidInput
	}
	return in, nil
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (domain.Product, error) {
	in, err := in.normalize()
	if err != nil {
		return domain.Product{}, err
	}

	product, err := s.repo.Create(ctx, domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Images:      in.Images,
		Category:    in.Category,
		Inventory:   in.Inventory,
		Featured:    in.Featured,
	})
	if err != nil {
		return domain.Product{}, err
	}

	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	in, err := in.normalize()
	if err != nil {
		return domain.Product{}, err
	}

	return s.repo.Update(ctx, domain.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Images:      in.Images,
		Category:    in.Category,
		Inventory:   in.Inventory,
		Featured:    in.Featured,
	})
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

// GetProducts returns the products that exist among ids, keyed by id.
func (s *Service) GetProducts(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	products, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (s *Service) ListProducts(ctx context.Context, filter domain.Filter, limit int, cursor string) ([]domain.Product, string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, "", ErrInvalidInput
	}
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = strings.TrimSpace(filter.Category)
	return s.repo.List(ctx, filter, limit, cursor)
}
