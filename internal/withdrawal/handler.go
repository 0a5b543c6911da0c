package withdrawal

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes withdrawal HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a withdrawal HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	UserID           int64   `json:"user_id"`
	TelegramUsername string  `json:"telegram_username"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	PaymentMethod    string  `json:"payment_method"`
	WalletAddress    string  `json:"wallet_address"`
	Notes            string  `json:"notes"`
}

// Create records a payout request from the bot. The endpoint is
// unauthenticated: the bot is a trusted caller on the network boundary.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	id, err := h.service.Create(c.UserContext(), CreateInput{
		UserID:           req.UserID,
		TelegramUsername: req.TelegramUsername,
		Amount:           req.Amount,
		Currency:         req.Currency,
		PaymentMethod:    req.PaymentMethod,
		WalletAddress:    req.WalletAddress,
		Notes:            req.Notes,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"id":      id,
		"message": "withdrawal request created",
	})
}

// List returns one page of withdrawals for the dashboard table.
func (h *Handler) List(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), ListInput{
		Status: c.Query("status"),
		Page:   c.QueryInt("page", defaultPage),
		Limit:  c.QueryInt("limit", defaultLimit),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(page)
}

// Get returns a single withdrawal by id.
func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "withdrawal not found")
	}

	w, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "withdrawal not found")
		}
		return err
	}
	return c.Status(http.StatusOK).JSON(w)
}

type updateRequest struct {
	Status          string `json:"status"`
	TransactionHash string `json:"transaction_hash"`
	Notes           string `json:"notes"`
}

// UpdateStatus applies an admin status change and stamps processed_at.
func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "withdrawal not found")
	}

	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	err = h.service.UpdateStatus(c.UserContext(), id, UpdateInput{
		Status:          req.Status,
		TransactionHash: req.TransactionHash,
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "withdrawal not found")
		}
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "withdrawal updated"})
}

// Stats returns the dashboard aggregates.
func (h *Handler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(stats)
}
