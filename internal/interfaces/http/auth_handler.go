package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hospital-api/internal/application/auth"
	"github.com/jhoicas/Hospital-api/internal/application/dto"
)

// AuthHandler maneja las peticiones de autenticación.
type AuthHandler struct {
	uc *auth.Usecase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.Usecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Login(c.Context(), req)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}
