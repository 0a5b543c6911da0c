package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no user matched the lookup.
var ErrNotFound = errors.New("user not found")

// Repository persists users.
type Repository interface {
	// CreateIfAbsent inserts the user unless the username is already taken.
	// An existing row is left untouched.
	CreateIfAbsent(ctx context.Context, user User) error
	FindByUsername(ctx context.Context, username string) (User, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateIfAbsent inserts a user with insert-or-ignore semantics.
func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, user User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (username, password_hash, role)
        VALUES ($1, $2, $3) ON CONFLICT (username) DO NOTHING`,
		user.Username, string(user.PasswordHash), user.Role)
	return err
}

// FindByUsername fetches a user by username.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, password_hash, role FROM users WHERE username = $1`, username)

	var (
		user User
		hash string
	)
	if err := row.Scan(&user.ID, &user.Username, &hash, &user.Role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.PasswordHash = []byte(hash)
	return user, nil
}
