package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, "Error: "+err.Error())
	}

	if _, err := h.authService.SignUp(c.UserContext(), &req); err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			return badRequest(c, "Error: Username is already taken!")
		case errors.Is(err, services.ErrEmailTaken):
			return badRequest(c, "Error: Email is already in use!")
		case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrConflict):
			return badRequest(c, "Error: "+err.Error())
		}
		return respondError(c, err, nil)
	}

	return c.JSON(dto.MessageResponse{Message: "User registered successfully!"})
}

func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.authService.SignIn(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err, map[error]int{
			services.ErrValidation: fiber.StatusBadRequest,
			services.ErrAuth:       fiber.StatusUnauthorized,
		})
	}

	return c.JSON(resp)
}
