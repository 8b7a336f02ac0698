package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/pickmymaid/content-api/internal/api/response"
	"github.com/pickmymaid/content-api/internal/core/domain"
	"github.com/pickmymaid/content-api/internal/core/ports"
)

type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"mobile"`
	Message string `json:"message" validate:"required"`
}

type contactListResponse struct {
	Contacts []domain.ContactMessage `json:"contacts"`
}

// Submit handles POST /api/v1/contact.
//
// @Summary      Submit the contact form
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Contact form"
// @Success      201   {object}  response.Envelope{data=domain.ContactMessage}
// @Failure      400   {object}  response.Envelope
// @Router       /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.service.Submit(c.Request().Context(), ports.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return response.Send(c, response.Created, response.MsgSubmitted, msg)
}

// List handles GET /api/v1/contact, newest first.
//
// @Summary      List contact messages
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=contactListResponse}
// @Failure      401  {object}  response.Envelope
// @Router       /contact [get]
func (h *ContactHandler) List(c echo.Context) error {
	msgs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return response.Send(c, response.OK, response.MsgRetrieved, contactListResponse{Contacts: msgs})
}
