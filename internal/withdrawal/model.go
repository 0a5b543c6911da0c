package withdrawal

import "time"

// Withdrawal statuses. Transitions are deliberately unguarded: an admin may
// move a record between any two statuses, matching how the dashboard is used.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// DefaultCurrency is applied when the bot omits the currency field.
const DefaultCurrency = "USD"

// Withdrawal is one payout request originated by the Telegram bot. UserID is
// the bot-side identifier and is not a foreign key into the users table.
type Withdrawal struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	TelegramUsername string     `json:"telegram_username"`
	Amount           float64    `json:"amount"`
	Currency         string     `json:"currency"`
	PaymentMethod    string     `json:"payment_method"`
	WalletAddress    string     `json:"wallet_address,omitempty"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	ProcessedAt      *time.Time `json:"processed_at"`
	TransactionHash  string     `json:"transaction_hash,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}

// Pagination is the envelope returned alongside every withdrawal page.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// Page is a single listing response.
type Page struct {
	Withdrawals []Withdrawal `json:"withdrawals"`
	Pagination  Pagination   `json:"pagination"`
}

// Stats aggregates the dashboard counters.
type Stats struct {
	Total       int64   `json:"total"`
	Pending     int64   `json:"pending"`
	Completed   int64   `json:"completed"`
	Failed      int64   `json:"failed"`
	TotalAmount float64 `json:"totalAmount"`
	Today       int64   `json:"today"`
}
