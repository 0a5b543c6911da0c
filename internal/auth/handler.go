package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/payout-desk/payout_desk/internal/identity"
)

// Handler exposes the login endpoint.
type Handler struct {
	ids    *identity.Service
	tokens *Service
}

// NewHandler builds the auth HTTP handler.
func NewHandler(ids *identity.Service, tokens *Service) *Handler {
	return &Handler{ids: ids, tokens: tokens}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string        `json:"token"`
	User  identity.User `json:"user"`
}

// Login validates credentials and returns a signed token plus the public
// user fields. Unknown usernames and wrong passwords produce the same 401.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.ids.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(loginResponse{Token: token, User: user})
}
