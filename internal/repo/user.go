package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crucial707/staybook/internal/models"
	"github.com/samber/oops"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password_hash
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, name, email, passwordHash).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash)

	if err != nil {
		if pqCode(err) == pqUniqueViolation {
			return nil, oops.With("email", email).Wrap(ErrDuplicateEmail)
		}
		return nil, oops.With("operation", "create user").Wrap(err)
	}

	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash
		FROM users
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

// ==========================
// Get By Email
// ==========================
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash
		FROM users
		WHERE email = $1
	`
	return r.getOne(ctx, query, email)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, oops.With("key", arg).Wrap(ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get user").With("key", arg).Wrap(err)
	}

	return user, nil
}
