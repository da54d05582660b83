package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contentkosh/institute-api/internal/api/response"
	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User  domain.Identity `json:"user"`
	Token string          `json:"token"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Router       /api/users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusCreated, user, "User registered successfully")
}

// Login authenticates a user and returns a bearer token alongside the
// derived identity.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      429   {object}  response.Envelope
// @Router       /api/users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusOK, loginResponse{User: identity, Token: token}, "Login successful")
}
