package withdrawal

import (
	"context"
	"errors"
	"testing"
)

func seedService(t *testing.T) (*Service, context.Context) {
	t.Helper()
	return NewService(NewMemoryRepository()), context.Background()
}

func validInput() CreateInput {
	return CreateInput{
		UserID:           1,
		TelegramUsername: "alice",
		Amount:           50,
		PaymentMethod:    "btc",
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc, ctx := seedService(t)

	id, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected generated id")
	}

	w, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if w.Status != StatusPending {
		t.Fatalf("expected pending status, got %s", w.Status)
	}
	if w.Currency != DefaultCurrency {
		t.Fatalf("expected USD default, got %s", w.Currency)
	}
	if w.ProcessedAt != nil {
		t.Fatalf("expected nil processed_at on a new record")
	}
	if w.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set at insert")
	}
}

func TestCreateRejectsMissingFields(t *testing.T) {
	svc, ctx := seedService(t)

	cases := map[string]CreateInput{
		"user_id":           {TelegramUsername: "alice", Amount: 50, PaymentMethod: "btc"},
		"telegram_username": {UserID: 1, Amount: 50, PaymentMethod: "btc"},
		"amount":            {UserID: 1, TelegramUsername: "alice", PaymentMethod: "btc"},
		"payment_method":    {UserID: 1, TelegramUsername: "alice", Amount: 50},
	}

	for missing, in := range cases {
		if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("missing %s: expected ErrInvalidInput, got %v", missing, err)
		}
	}

	// Nothing may be persisted by the rejected attempts.
	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 0 {
		t.Fatalf("expected no persisted rows, got %d", stats.Total)
	}
}

func TestUpdateStatusStampsProcessedAt(t *testing.T) {
	svc, ctx := seedService(t)

	id, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	update := UpdateInput{Status: StatusCompleted, TransactionHash: "0xabc"}
	if err := svc.UpdateStatus(ctx, id, update); err != nil {
		t.Fatalf("update: %v", err)
	}

	w, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if w.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", w.Status)
	}
	if w.TransactionHash != "0xabc" {
		t.Fatalf("expected transaction hash to be stored, got %q", w.TransactionHash)
	}
	if w.ProcessedAt == nil {
		t.Fatalf("expected processed_at to be stamped")
	}

	// Repeating the update converges on the same state with a later stamp.
	first := *w.ProcessedAt
	if err := svc.UpdateStatus(ctx, id, update); err != nil {
		t.Fatalf("second update: %v", err)
	}
	w, err = svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get after second update: %v", err)
	}
	if w.Status != StatusCompleted || w.TransactionHash != "0xabc" {
		t.Fatalf("second update diverged: %+v", w)
	}
	if w.ProcessedAt.Before(first) {
		t.Fatalf("second processed_at %s before first %s", w.ProcessedAt, first)
	}
}

func TestUpdateStatusAllowsAnyTransition(t *testing.T) {
	svc, ctx := seedService(t)

	id, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.UpdateStatus(ctx, id, UpdateInput{Status: StatusCompleted}); err != nil {
		t.Fatalf("to completed: %v", err)
	}
	if err := svc.UpdateStatus(ctx, id, UpdateInput{Status: StatusPending}); err != nil {
		t.Fatalf("back to pending: %v", err)
	}

	w, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if w.Status != StatusPending {
		t.Fatalf("expected pending after reversal, got %s", w.Status)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	svc, ctx := seedService(t)

	id, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.UpdateStatus(ctx, id, UpdateInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty status, got %v", err)
	}
	if err := svc.UpdateStatus(ctx, 9999, UpdateInput{Status: StatusFailed}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestListPaginationLaw(t *testing.T) {
	svc, ctx := seedService(t)

	for i := 0; i < 7; i++ {
		if _, err := svc.Create(ctx, validInput()); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	page, err := svc.List(ctx, ListInput{Page: 1, Limit: 3})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Withdrawals) > 3 {
		t.Fatalf("page exceeds limit: %d", len(page.Withdrawals))
	}
	if page.Pagination.TotalItems != 7 {
		t.Fatalf("expected 7 total items, got %d", page.Pagination.TotalItems)
	}
	if page.Pagination.TotalPages != 3 { // ceil(7/3)
		t.Fatalf("expected 3 total pages, got %d", page.Pagination.TotalPages)
	}
	if page.Pagination.CurrentPage != 1 || page.Pagination.ItemsPerPage != 3 {
		t.Fatalf("unexpected envelope: %+v", page.Pagination)
	}

	last, err := svc.List(ctx, ListInput{Page: 3, Limit: 3})
	if err != nil {
		t.Fatalf("last page: %v", err)
	}
	if len(last.Withdrawals) != 1 {
		t.Fatalf("expected 1 item on the last page, got %d", len(last.Withdrawals))
	}

	beyond, err := svc.List(ctx, ListInput{Page: 10, Limit: 3})
	if err != nil {
		t.Fatalf("beyond last page: %v", err)
	}
	if len(beyond.Withdrawals) != 0 {
		t.Fatalf("expected empty page beyond the end, got %d", len(beyond.Withdrawals))
	}
	if beyond.Withdrawals == nil {
		t.Fatalf("expected empty slice, not nil, for JSON encoding")
	}
}

func TestListCoercesBadParams(t *testing.T) {
	svc, ctx := seedService(t)

	if _, err := svc.Create(ctx, validInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	page, err := svc.List(ctx, ListInput{Page: 0, Limit: -5})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Pagination.CurrentPage != 1 || page.Pagination.ItemsPerPage != 20 {
		t.Fatalf("expected defaults 1/20, got %+v", page.Pagination)
	}
}

func TestListStatusFilterAndOrder(t *testing.T) {
	svc, ctx := seedService(t)

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := svc.Create(ctx, validInput())
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		ids = append(ids, id)
	}
	if err := svc.UpdateStatus(ctx, ids[1], UpdateInput{Status: StatusCompleted}); err != nil {
		t.Fatalf("update: %v", err)
	}

	completed, err := svc.List(ctx, ListInput{Status: StatusCompleted})
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(completed.Withdrawals) != 1 || completed.Withdrawals[0].ID != ids[1] {
		t.Fatalf("status filter failed: %+v", completed.Withdrawals)
	}

	all, err := svc.List(ctx, ListInput{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	for i := 1; i < len(all.Withdrawals); i++ {
		prev, cur := all.Withdrawals[i-1], all.Withdrawals[i]
		if cur.CreatedAt.After(prev.CreatedAt) {
			t.Fatalf("expected newest-first ordering")
		}
	}
}

func TestStatsScenario(t *testing.T) {
	svc, ctx := seedService(t)

	id, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, validInput()); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if err := svc.UpdateStatus(ctx, id, UpdateInput{Status: StatusCompleted, TransactionHash: "0xabc"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 2 || stats.Pending != 1 || stats.Completed != 1 || stats.Failed != 0 {
		t.Fatalf("unexpected counters: %+v", stats)
	}
	if stats.TotalAmount != 50 {
		t.Fatalf("expected completed sum 50, got %v", stats.TotalAmount)
	}
	if stats.Today != 2 {
		t.Fatalf("expected 2 created today, got %d", stats.Today)
	}
}

type failingRepo struct {
	Repository
}

func (f failingRepo) SumAmount(context.Context, string) (float64, error) {
	return 0, errors.New("query failed")
}

func TestStatsAllOrNothing(t *testing.T) {
	svc := NewService(failingRepo{Repository: NewMemoryRepository()})

	if _, err := svc.Stats(context.Background()); err == nil {
		t.Fatalf("expected stats to fail when one aggregate fails")
	}
}
