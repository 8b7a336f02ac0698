package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/pickmymaid/content-api/internal/api/metrics"
	"github.com/pickmymaid/content-api/internal/api/response"
	"github.com/pickmymaid/content-api/internal/core/domain"
	"github.com/pickmymaid/content-api/internal/core/ports"
)

// AuthHandler serves the customer authentication routes.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	FirstName       string `json:"first_name" validate:"required,min=3"`
	LastName        string `json:"last_name"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	Password        string `json:"password" validate:"required,min=6,max=16"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=6,max=16"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a customer account and starts a session.
//
// @Summary      Register a customer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Customer registration details"
// @Success      201   {object}  response.Envelope{data=authResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), domain.KindCustomer, ports.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	recordAuth(domain.KindCustomer, "register", err)
	if err != nil {
		return err
	}

	return response.Send(c, response.Created, response.MsgAccountCreated, authResponse{Token: res.Token, User: res.User})
}

// Login authenticates a customer and returns a session token.
//
// @Summary      Customer login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response.Envelope{data=authResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	return login(c, h.authService, domain.KindCustomer)
}

// ForgetPassword mails a single-use reset link.
//
// @Summary      Request a password reset link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgetPasswordRequest  true  "Account email"
// @Success      200   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Router       /auth/forget-password [post]
func (h *AuthHandler) ForgetPassword(c echo.Context) error {
	var req forgetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.authService.ForgetPassword(c.Request().Context(), req.Email)
	recordAuth(domain.KindCustomer, "forget", err)
	if err != nil {
		return err
	}
	return response.Send(c, response.OK, response.MsgResetLinkSent, nil)
}

// ResetPassword consumes a reset token and sets a new password.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  path      string                true  "Token from the reset link"
// @Param        body   body      resetPasswordRequest  true  "New password"
// @Success      200    {object}  response.Envelope
// @Failure      400    {object}  response.Envelope
// @Failure      401    {object}  response.Envelope
// @Router       /auth/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.authService.ResetPassword(c.Request().Context(), c.Param("token"), req.Password, req.ConfirmPassword)
	recordAuth(domain.KindCustomer, "reset", err)
	if err != nil {
		return err
	}
	return response.Send(c, response.OK, response.MsgPasswordUpdated, nil)
}

func login(c echo.Context, svc ports.AuthService, kind domain.UserKind) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := svc.Login(c.Request().Context(), kind, req.Email, req.Password)
	recordAuth(kind, "login", err)
	if err != nil {
		return err
	}

	return response.Send(c, response.OK, response.MsgLoggedIn, authResponse{Token: res.Token, User: res.User})
}

func recordAuth(kind domain.UserKind, action string, err error) {
	metrics.AuthAttemptsTotal.WithLabelValues(string(kind), action, authResult(err)).Inc()
}

func authResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "bad_password"
	case errors.Is(err, domain.ErrUserExists), errors.Is(err, domain.ErrResetAlreadySent):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidToken):
		return "bad_token"
	default:
		var ve *domain.ValidationError
		if errors.As(err, &ve) || errors.Is(err, domain.ErrPasswordMismatch) {
			return "invalid"
		}
		return "error"
	}
}
