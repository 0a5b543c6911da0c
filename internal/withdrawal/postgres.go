package withdrawal

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const withdrawalColumns = `id, user_id, telegram_username, amount, currency, payment_method,
        wallet_address, status, created_at, processed_at, transaction_hash, notes`

// PostgresRepository stores withdrawals in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores a new withdrawal and returns the generated id.
func (r *PostgresRepository) Insert(ctx context.Context, w Withdrawal) (int64, error) {
	const query = `
        INSERT INTO withdrawals (user_id, telegram_username, amount, currency, payment_method,
            wallet_address, status, created_at, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		w.UserID, w.TelegramUsername, w.Amount, w.Currency, w.PaymentMethod,
		w.WalletAddress, w.Status, w.CreatedAt.UTC(), w.Notes,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Get fetches a withdrawal by id.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (Withdrawal, error) {
	row := r.db.QueryRow(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id)

	w, err := scanWithdrawal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Withdrawal{}, ErrNotFound
		}
		return Withdrawal{}, err
	}
	return w, nil
}

// List returns a page of withdrawals, newest first.
func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]Withdrawal, error) {
	const query = `
        SELECT ` + withdrawalColumns + `
        FROM withdrawals
        WHERE ($1::text = '' OR status = $1)
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, f.Status, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	withdrawals := make([]Withdrawal, 0, f.Limit)
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, rows.Err()
}

// Count returns the number of withdrawals matching the status filter.
func (r *PostgresRepository) Count(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM withdrawals WHERE ($1::text = '' OR status = $1)`, status,
	).Scan(&count)
	return count, err
}

// UpdateStatus overwrites status, transaction hash and notes, and stamps
// processed_at. Returns the number of matched rows.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, u StatusUpdate) (int64, error) {
	cmd, err := r.db.Exec(ctx, `
        UPDATE withdrawals
        SET status = $2, transaction_hash = $3, notes = $4, processed_at = $5
        WHERE id = $1`,
		id, u.Status, u.TransactionHash, u.Notes, u.ProcessedAt.UTC())
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

// SumAmount totals the amount column over withdrawals with the given status.
func (r *PostgresRepository) SumAmount(ctx context.Context, status string) (float64, error) {
	var sum float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM withdrawals WHERE status = $1`, status,
	).Scan(&sum)
	return sum, err
}

// CountToday counts withdrawals created on the current calendar date.
func (r *PostgresRepository) CountToday(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM withdrawals WHERE created_at::date = CURRENT_DATE`,
	).Scan(&count)
	return count, err
}

func scanWithdrawal(row pgx.Row) (Withdrawal, error) {
	var w Withdrawal
	err := row.Scan(
		&w.ID, &w.UserID, &w.TelegramUsername, &w.Amount, &w.Currency, &w.PaymentMethod,
		&w.WalletAddress, &w.Status, &w.CreatedAt, &w.ProcessedAt, &w.TransactionHash, &w.Notes,
	)
	if err != nil {
		return Withdrawal{}, err
	}
	w.CreatedAt = w.CreatedAt.UTC()
	if w.ProcessedAt != nil {
		utc := w.ProcessedAt.UTC()
		w.ProcessedAt = &utc
	}
	return w, nil
}
