package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/pickmymaid/content-api/internal/api/response"
	"github.com/pickmymaid/content-api/internal/core/domain"
	"github.com/pickmymaid/content-api/internal/core/ports"
)

type GalleryHandler struct {
	service ports.GalleryService
}

func NewGalleryHandler(service ports.GalleryService) *GalleryHandler {
	return &GalleryHandler{service: service}
}

type galleryForm struct {
	Type string `form:"type" validate:"required"`
	Alt  string `form:"alt"`
}

type galleryQuery struct {
	Page     int    `query:"page"`
	Category string `query:"category"`
}

type galleryListResponse struct {
	Images      []domain.GalleryImage `json:"images"`
	TotalCounts int64                 `json:"total_counts"`
}

// Upload handles POST /api/v1/gallery.
//
// @Summary      Upload a gallery image
// @Tags         gallery
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file    true   "Image (jpg, jpeg, png)"
// @Param        type   formData  string  true   "Category tag"
// @Param        alt    formData  string  false  "Alt text"
// @Success      201    {object}  response.Envelope{data=domain.GalleryImage}
// @Failure      400    {object}  response.Envelope
// @Failure      401    {object}  response.Envelope
// @Router       /gallery [post]
func (h *GalleryHandler) Upload(c echo.Context) error {
	var form galleryForm
	if err := bindAndValidate(c, &form); err != nil {
		return err
	}
	image, err := formUpload(c, "image")
	if err != nil {
		return err
	}

	img, err := h.service.Upload(c.Request().Context(), image, form.Type, form.Alt)
	if err != nil {
		return err
	}
	return response.Send(c, response.Created, "", img)
}

// List handles GET /api/v1/gallery?page=&category=.
//
// @Summary      List gallery images
// @Tags         gallery
// @Produce      json
// @Param        page      query     int     false  "1-based page number"  default(1)
// @Param        category  query     string  false  "Filter by type"
// @Success      200       {object}  response.Envelope{data=galleryListResponse}
// @Router       /gallery [get]
func (h *GalleryHandler) List(c echo.Context) error {
	var q galleryQuery
	if err := c.Bind(&q); err != nil {
		return domain.NewValidationError("page", "must be a number")
	}
	if q.Page < 1 {
		q.Page = 1
	}

	res, err := h.service.List(c.Request().Context(), q.Category, q.Page)
	if err != nil {
		return err
	}
	return response.Send(c, response.OK, response.MsgRetrieved, galleryListResponse{
		Images:      res.Images,
		TotalCounts: res.TotalCount,
	})
}

// Delete handles DELETE /api/v1/gallery/:id.
//
// @Summary      Delete a gallery image
// @Tags         gallery
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Image ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /gallery/{id} [delete]
func (h *GalleryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return response.Send(c, response.OK, response.MsgDeleted, nil)
}
