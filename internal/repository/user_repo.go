package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"webapp/internal/domain"
)

// uniqueViolation es el SQLSTATE de Postgres para restricciones UNIQUE.
const uniqueViolation = "23505"

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Update(ctx context.Context, id string, upd domain.UserUpdate) (domain.User, error)
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

// Create inserta el usuario. La unicidad del email la garantiza la
// restriccion users_email_key; no hay chequeo previo de existencia.
func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, email, first_name, last_name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `
		SELECT id, email, first_name, last_name, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return domain.User{}, wrapLookupErr("query user by id", err)
	}
	return u, nil
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
		SELECT id, email, first_name, last_name, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		return domain.User{}, wrapLookupErr("query user by email", err)
	}
	return u, nil
}

// Update aplica solo los campos no nil y devuelve la fila resultante.
func (r *PgUserRepository) Update(ctx context.Context, id string, upd domain.UserUpdate) (domain.User, error) {
	const query = `
		UPDATE users
		SET first_name    = COALESCE($2, first_name),
		    last_name     = COALESCE($3, last_name),
		    password_hash = COALESCE($4, password_hash),
		    updated_at    = $5
		WHERE id = $1
		RETURNING id, email, first_name, last_name, password_hash, created_at, updated_at
	`
	u, err := scanUser(r.pool.QueryRow(ctx, query,
		id,
		upd.FirstName,
		upd.LastName,
		upd.PasswordHash,
		time.Now().UTC(),
	))
	if err != nil {
		return domain.User{}, wrapLookupErr("update user", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func wrapLookupErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
