package withdrawal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidInput marks validation failures the API reports as 400.
var ErrInvalidInput = errors.New("invalid input")

const (
	defaultPage  = 1
	defaultLimit = 20
)

// Service exposes withdrawal operations on top of a Repository.
type Service struct {
	repo Repository
}

// NewService builds a withdrawal service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures the payload the bot sends when requesting a payout.
type CreateInput struct {
	UserID           int64
	TelegramUsername string
	Amount           float64
	Currency         string
	PaymentMethod    string
	WalletAddress    string
	Notes            string
}

// Create validates the request, applies defaults and stores the withdrawal,
// returning the generated id. New records always start as pending.
func (s *Service) Create(ctx context.Context, in CreateInput) (int64, error) {
	if in.UserID == 0 || in.TelegramUsername == "" || in.Amount == 0 || in.PaymentMethod == "" {
		return 0, fmt.Errorf("%w: user_id, telegram_username, amount and payment_method are required", ErrInvalidInput)
	}

	currency := in.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	return s.repo.Insert(ctx, Withdrawal{
		UserID:           in.UserID,
		TelegramUsername: in.TelegramUsername,
		Amount:           in.Amount,
		Currency:         currency,
		PaymentMethod:    in.PaymentMethod,
		WalletAddress:    in.WalletAddress,
		Status:           StatusPending,
		CreatedAt:        time.Now().UTC(),
		Notes:            in.Notes,
	})
}

// Get fetches a single withdrawal.
func (s *Service) Get(ctx context.Context, id int64) (Withdrawal, error) {
	return s.repo.Get(ctx, id)
}

// ListInput carries the listing query parameters. Out-of-range page and limit
// values silently fall back to the defaults.
type ListInput struct {
	Status string
	Page   int
	Limit  int
}

// List returns one page of withdrawals, newest first, together with the
// pagination envelope.
func (s *Service) List(ctx context.Context, in ListInput) (Page, error) {
	page := in.Page
	if page < 1 {
		page = defaultPage
	}
	limit := in.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	total, err := s.repo.Count(ctx, in.Status)
	if err != nil {
		return Page{}, err
	}

	withdrawals, err := s.repo.List(ctx, Filter{
		Status: in.Status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return Page{}, err
	}
	if withdrawals == nil {
		withdrawals = []Withdrawal{}
	}

	return Page{
		Withdrawals: withdrawals,
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   (total + int64(limit) - 1) / int64(limit),
			TotalItems:   total,
			ItemsPerPage: limit,
		},
	}, nil
}

// UpdateInput is the admin status mutation.
type UpdateInput struct {
	Status          string
	TransactionHash string
	Notes           string
}

// UpdateStatus overwrites the record's status fields and stamps processed_at
// with the current time. There is no transition guard: any status may follow
// any other, including moving a completed withdrawal back to pending.
func (s *Service) UpdateStatus(ctx context.Context, id int64, in UpdateInput) error {
	if in.Status == "" {
		return fmt.Errorf("%w: status is required", ErrInvalidInput)
	}

	affected, err := s.repo.UpdateStatus(ctx, id, StatusUpdate{
		Status:          in.Status,
		TransactionHash: in.TransactionHash,
		Notes:           in.Notes,
		ProcessedAt:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats runs the six dashboard aggregates concurrently and joins on all of
// them. The first failing query cancels the rest; no partial result is ever
// returned.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var stats Stats

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.Total, err = s.repo.Count(ctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		stats.Pending, err = s.repo.Count(ctx, StatusPending)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Completed, err = s.repo.Count(ctx, StatusCompleted)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Failed, err = s.repo.Count(ctx, StatusFailed)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalAmount, err = s.repo.SumAmount(ctx, StatusCompleted)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Today, err = s.repo.CountToday(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
