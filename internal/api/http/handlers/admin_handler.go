package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/course-service/internal/api/dto"
	"github.com/spec-kit/course-service/internal/service"
	apperrors "github.com/spec-kit/course-service/pkg/util"
)

// AdminHandler exposes administrator login and last-token lookup.
type AdminHandler struct {
	auth *service.AuthService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService) *AdminHandler {
	return &AdminHandler{auth: authService}
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	token, _, err := h.auth.LoginAdmin(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{Token: token})
}

// Token handles GET /admin/login?username= and returns the last issued token
// for the named admin without re-authenticating.
func (h *AdminHandler) Token(c *fiber.Ctx) error {
	token, err := h.auth.LookupAdminToken(c.Context(), c.Query("username"))
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{Token: token})
}
