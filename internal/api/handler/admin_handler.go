package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/pickmymaid/content-api/internal/api/response"
	"github.com/pickmymaid/content-api/internal/core/domain"
	"github.com/pickmymaid/content-api/internal/core/ports"
)

// AdminHandler serves the admin account routes.
type AdminHandler struct {
	authService ports.AuthService
}

func NewAdminHandler(authService ports.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

type adminRegisterRequest struct {
	Name            string `json:"name" validate:"required,min=3"`
	Email           string `json:"email" validate:"required,email"`
	IsSuperAdmin    bool   `json:"is_super_admin"`
	Password        string `json:"password" validate:"required,min=6,max=16"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// Register creates an admin account. Only super admins may call it.
//
// @Summary      Register an admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adminRegisterRequest  true  "Admin details"
// @Success      201   {object}  response.Envelope{data=authResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Router       /admin/register [post]
func (h *AdminHandler) Register(c echo.Context) error {
	var req adminRegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), domain.KindAdmin, ports.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		IsSuperAdmin:    req.IsSuperAdmin,
	})
	recordAuth(domain.KindAdmin, "register", err)
	if err != nil {
		return err
	}

	return response.Send(c, response.Created, response.MsgAccountCreated, authResponse{Token: res.Token, User: res.User})
}

// Login authenticates an admin. The token carries the SA or A role.
//
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response.Envelope{data=authResponse}
// @Failure      401   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /admin/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	return login(c, h.authService, domain.KindAdmin)
}

// Logout records the logout and notifies. The token stays valid until it expires.
//
// @Summary      Admin logout
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Router       /admin/logout [post]
func (h *AdminHandler) Logout(c echo.Context) error {
	id, err := subject(c)
	if err != nil {
		return err
	}
	if err := h.authService.AdminLogout(c.Request().Context(), id); err != nil {
		return err
	}
	return response.Send(c, response.OK, response.MsgLoggedOut, nil)
}

// ToggleRole flips an admin between super admin and admin.
//
// @Summary      Toggle super admin role
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Admin user ID"
// @Success      200  {object}  response.Envelope{data=domain.User}
// @Failure      401  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /admin/{id}/role [patch]
func (h *AdminHandler) ToggleRole(c echo.Context) error {
	user, err := h.authService.ToggleAdminRole(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return response.Send(c, response.OK, response.MsgUpdated, user)
}

// Deactivate soft deletes an admin. Admins cannot deactivate themselves.
//
// @Summary      Deactivate an admin
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Admin user ID"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /admin/{id} [delete]
func (h *AdminHandler) Deactivate(c echo.Context) error {
	self, err := subject(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if id == self {
		return domain.NewValidationError("id", "cannot deactivate your own account")
	}
	if err := h.authService.DeactivateAdmin(c.Request().Context(), id); err != nil {
		return err
	}
	return response.Send(c, response.OK, response.MsgDeleted, nil)
}
