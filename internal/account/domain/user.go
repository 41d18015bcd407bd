package domain

import (
	"time"

	"github.com/dwikikusuma/storefront/pkg/authctx"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         authctx.Role
	CreatedAt    time.Time
}

func (u User) Principal() authctx.Principal {
	return authctx.Principal{UserID: u.ID, Role: u.Role}
}
