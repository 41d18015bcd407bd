package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dwikikusuma/storefront/internal/account/app"
	"github.com/dwikikusuma/storefront/internal/account/domain"
	"github.com/dwikikusuma/storefront/pkg/authctx"
	pg "github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/google/uuid"
)

type UserRepo struct {
	db pg.DBTX
}

func NewUserRepo(db pg.DBTX) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, name, email, password_hash, role, created_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u    domain.User
		id   uuid.UUID
		role string
	)
	err := row.Scan(&id, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, app.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	u.ID = id.String()
	u.Role = authctx.Role(role)
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	out, err := scanUser(r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		uuid.New(), u.Name, u.Email, u.PasswordHash, string(u.Role)))
	if pg.IsUniqueViolation(err) {
		return domain.User{}, app.ErrEmailTaken
	}
	return out, err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepo) Get(ctx context.Context, id string) (domain.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.User{}, app.ErrNotFound
	}
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, uid))
}
