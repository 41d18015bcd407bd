package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/pkg/authctx"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type Service struct {
	repo     OrderRepo
	products ProductCounter
}

func NewService(repo OrderRepo, products ProductCounter) *Service {
	return &Service{repo: repo, products: products}
}

// Get returns the order to its owner or to an admin.
func (s *Service) Get(ctx context.Context, p authctx.Principal, id string) (domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Order{}, ErrInvalidInput
	}
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if o.UserID != p.UserID && !p.IsAdmin() {
		return domain.Order{}, ErrForbidden
	}
	return o, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context, status string, limit, offset int) ([]domain.Order, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		return nil, 0, ErrInvalidInput
	}

	var filter *domain.Status
	if strings.TrimSpace(status) != "" {
		st, err := domain.ParseStatus(status)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter = &st
	}
	return s.repo.List(ctx, filter, limit, offset)
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (domain.Order, error) {
	to, err := domain.ParseStatus(status)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if !o.Status.CanTransitionTo(to) {
		return domain.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}

	ok, err := s.repo.UpdateStatus(ctx, id, o.Status, to)
	if err != nil {
		return domain.Order{}, err
	}
	if !ok {
		// changed underneath us
		return domain.Order{}, fmt.Errorf("%w: order %s is no longer %s", ErrInvalidTransition, id, o.Status)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	if st.ByStatus == nil {
		st.ByStatus = map[domain.Status]int{}
	}
	for _, known := range domain.AllStatuses {
		if _, ok := st.ByStatus[known]; !ok {
			st.ByStatus[known] = 0
		}
	}
	if s.products != nil {
		n, err := s.products.Count(ctx)
		if err != nil {
			return domain.Stats{}, fmt.Errorf("count products: %w", err)
		}
		st.ProductCount = n
	}
	return st, nil
}
