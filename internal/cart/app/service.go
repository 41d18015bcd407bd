package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo     CartRepo
	products ProductReader
	log      *slog.Logger
}

func NewService(repo CartRepo, products ProductReader, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:     repo,
		products: products,
		log:      log,
	}
}

// View returns the user's cart priced at current catalog prices.
func (s *Service) View(ctx context.Context, userID string) (domain.View, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.View{}, ErrInvalidInput
	}
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.View{}, fmt.Errorf("get cart: %w", err)
	}
	return s.price(ctx, cart)
}

// Lines returns the raw lines of the user's cart.
func (s *Service) Lines(ctx context.Context, userID string) ([]domain.Line, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart.Lines, nil
}

func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (domain.View, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(productID) == "" {
		return domain.View{}, ErrInvalidInput
	}
	if quantity == 0 {
		quantity = 1
	}
	if err := domain.ValidateQuantity(quantity); err != nil {
		return domain.View{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	found, err := s.products.GetProducts(ctx, []string{productID})
	if err != nil {
		return domain.View{}, fmt.Errorf("lookup product: %w", err)
	}
	if _, ok := found[productID]; !ok {
		return domain.View{}, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}

	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.View{}, fmt.Errorf("get cart: %w", err)
	}
	if err := s.repo.AddItem(ctx, cart.ID, productID, quantity); err != nil {
		return domain.View{}, fmt.Errorf("add item: %w", err)
	}
	return s.View(ctx, userID)
}

// UpdateQuantity replaces a line's quantity; quantity <= 0 removes it.
func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (domain.View, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(itemID) == "" {
		return domain.View{}, ErrInvalidInput
	}
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, itemID)
	}

	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.View{}, fmt.Errorf("get cart: %w", err)
	}
	ok, err := s.repo.SetItemQuantity(ctx, cart.ID, itemID, quantity)
	if err != nil {
		return domain.View{}, fmt.Errorf("set quantity: %w", err)
	}
	if !ok {
		return domain.View{}, fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
	}
	return s.View(ctx, userID)
}

// RemoveItem succeeds whether or not the line exists.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) (domain.View, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(itemID) == "" {
		return domain.View{}, ErrInvalidInput
	}
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.View{}, fmt.Errorf("get cart: %w", err)
	}
	if err := s.repo.RemoveItem(ctx, cart.ID, itemID); err != nil {
		return domain.View{}, fmt.Errorf("remove item: %w", err)
	}
	return s.View(ctx, userID)
}

func (s *Service) price(ctx context.Context, cart domain.Cart) (domain.View, error) {
	products, err := s.products.GetProducts(ctx, cart.ProductIDs())
	if err != nil {
		return domain.View{}, fmt.Errorf("load products: %w", err)
	}
	v := domain.NewView(cart.Lines, products)
	if len(v.Missing) > 0 {
		s.log.WarnContext(ctx, "cart references missing products",
			slog.String("cart_id", cart.ID), slog.Any("product_ids", v.Missing))
	}
	return v, nil
}
