package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"comics-service/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository abstracts account persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, username, email, passwordHash, displayName string) (models.User, error)
	GetUserByID(ctx context.Context, userID int) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	IdentityTaken(ctx context.Context, username, email string) (bool, error)
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, username, email, password_hash, display_name, avatar_url, bio, created_at`

// CreateUser inserts a new account and returns the stored row.
func (r *UserRepo) CreateUser(ctx context.Context, username, email, passwordHash, displayName string) (models.User, error) {
	var user models.User
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO users (username, email, password_hash, display_name) VALUES ($1, $2, $3, $4) RETURNING `+userColumns,
		username, email, passwordHash, displayName).StructScan(&user)
	return user, err
}

// GetUserByID fetches an account by id.
func (r *UserRepo) GetUserByID(ctx context.Context, userID int) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// GetUserByUsername fetches an account by username.
func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE username=$1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// IdentityTaken reports whether the username or email is already registered.
func (r *UserRepo) IdentityTaken(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE username=$1 OR email=$2)`, username, email)
	return exists, err
}
