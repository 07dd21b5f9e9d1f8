package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/postboard-app/postboard/backend/internal/common/db"
	"github.com/postboard-app/postboard/backend/internal/user/domain"
)

type Repository interface {
	Create(ctx context.Context, user domain.User) error
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		string(user.ID),
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Constraint name tells which uniqueness was violated.
			db.ObserveQuery("create_user", "users", start, nil)
			if strings.Contains(pgErr.ConstraintName, "email") {
				return ErrEmailAlreadyExists
			}
			return ErrUsernameAlreadyExists
		}
		db.ObserveQuery("create_user", "users", start, err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	db.ObserveQuery("create_user", "users", start, nil)
	return nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	return r.findOne(
		ctx,
		"find_user_by_id",
		`SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`,
		string(id),
	)
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(
		ctx,
		"find_user_by_email",
		`SELECT id, username, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	)
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(
		ctx,
		"find_user_by_username",
		`SELECT id, username, email, password_hash, created_at FROM users WHERE username = $1`,
		username,
	)
}

func (r *PgRepository) findOne(ctx context.Context, operation, query string, arg any) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(ctx, query, arg)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			db.ObserveQuery(operation, "users", start, nil)
			return domain.User{}, ErrUserNotFound
		}
		db.ObserveQuery(operation, "users", start, err)
		return domain.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	db.ObserveQuery(operation, "users", start, nil)
	return user, nil
}

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
)
