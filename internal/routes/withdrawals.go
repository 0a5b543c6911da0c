package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/payout-desk/payout_desk/internal/auth"
	"github.com/payout-desk/payout_desk/internal/middleware"
	"github.com/payout-desk/payout_desk/internal/withdrawal"
)

// RegisterWithdrawalRoutes wires the withdrawal and statistics endpoints.
// Creation is unauthenticated (trusted bot caller); listing, status updates
// and statistics are admin-only; fetching a single record needs any valid
// token.
func RegisterWithdrawalRoutes(r fiber.Router, h *withdrawal.Handler, tokens *auth.Service) {
	tokenRequired := middleware.TokenRequired(tokens)
	adminOnly := middleware.AdminOnly()

	r.Post("/withdrawals", h.Create)
	r.Get("/withdrawals", tokenRequired, adminOnly, h.List)
	r.Get("/withdrawals/:id", tokenRequired, h.Get)
	r.Patch("/withdrawals/:id", tokenRequired, adminOnly, h.UpdateStatus)
	r.Get("/stats", tokenRequired, adminOnly, h.Stats)
}
