package withdrawal

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates no withdrawal matched the given id.
var ErrNotFound = errors.New("withdrawal not found")

// Filter narrows listing queries. An empty Status matches every record.
type Filter struct {
	Status string
	Limit  int
	Offset int
}

// StatusUpdate is the mutation applied by the admin status endpoint. Every
// update restamps ProcessedAt, whatever the previous status was.
type StatusUpdate struct {
	Status          string
	TransactionHash string
	Notes           string
	ProcessedAt     time.Time
}

// Repository persists withdrawals.
type Repository interface {
	Insert(ctx context.Context, w Withdrawal) (int64, error)
	Get(ctx context.Context, id int64) (Withdrawal, error)
	List(ctx context.Context, f Filter) ([]Withdrawal, error)
	// Count returns the number of withdrawals matching the status, or all
	// withdrawals when status is empty.
	Count(ctx context.Context, status string) (int64, error)
	// UpdateStatus applies the update and reports how many rows matched.
	UpdateStatus(ctx context.Context, id int64, u StatusUpdate) (int64, error)
	SumAmount(ctx context.Context, status string) (float64, error)
	// CountToday counts records created on the current calendar date.
	CountToday(ctx context.Context) (int64, error)
}
