package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/account/domain"
)

type UserRepo interface {
	// Create fails with ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, u domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Get(ctx context.Context, id string) (domain.User, error)
}
