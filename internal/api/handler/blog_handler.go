package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pickmymaid/content-api/internal/api/metrics"
	"github.com/pickmymaid/content-api/internal/api/response"
	"github.com/pickmymaid/content-api/internal/core/domain"
	"github.com/pickmymaid/content-api/internal/core/ports"
)

// BlogHandler serves the blog routes.
type BlogHandler struct {
	service ports.BlogService
}

func NewBlogHandler(service ports.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// --- Request / Response types ---

type postForm struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description" validate:"required"`
	Content     string `form:"content" validate:"required"`
}

type commentRequest struct {
	Slug    string `json:"blog_id" validate:"required"`
	Comment string `json:"comment" validate:"required"`
}

type deleteCommentRequest struct {
	Slug      string `json:"slug" validate:"required"`
	CommentID string `json:"comment_id" validate:"required"`
}

type likeRequest struct {
	Slug string `json:"slug" validate:"required"`
}

type slugResponse struct {
	Slug string `json:"slug"`
}

type likeResponse struct {
	Liked bool `json:"liked"`
}

type postPageResponse struct {
	Blogs       []domain.PostSummary `json:"blogs"`
	TotalCounts int64                `json:"total_counts"`
}

type postListResponse struct {
	Blogs []domain.PostSummary `json:"blogs"`
}

type postResponse struct {
	Blog *domain.PostView `json:"blog"`
}

type deletedCommentResponse struct {
	Deleted deleteCommentRequest `json:"deleted"`
}

// Create handles POST /api/v1/blog.
//
// @Summary      Create a blog post
// @Tags         blog
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true  "Title"
// @Param        description  formData  string  true  "Short description"
// @Param        content      formData  string  true  "HTML content"
// @Param        thumbnail    formData  file    true  "Thumbnail image (jpg, jpeg, png)"
// @Success      201          {object}  response.Envelope{data=slugResponse}
// @Failure      400          {object}  response.Envelope
// @Failure      401          {object}  response.Envelope
// @Router       /blog [post]
func (h *BlogHandler) Create(c echo.Context) error {
	var form postForm
	if err := bindAndValidate(c, &form); err != nil {
		return err
	}
	thumb, err := formUpload(c, "thumbnail")
	if err != nil {
		return err
	}

	slug, err := h.service.Create(c.Request().Context(), ports.CreatePostInput{
		Title:       form.Title,
		Description: form.Description,
		Content:     form.Content,
		Thumbnail:   thumb,
	})
	if err != nil {
		return err
	}
	return response.Send(c, response.Created, "", slugResponse{Slug: slug})
}

// Edit handles PUT /api/v1/blog/edit/:slug. The thumbnail is optional.
//
// @Summary      Edit a blog post
// @Tags         blog
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        slug         path      string  true   "Post slug"
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  true   "Short description"
// @Param        content      formData  string  true   "HTML content"
// @Param        thumbnail    formData  file    false  "Replacement thumbnail"
// @Success      200          {object}  response.Envelope
// @Failure      400          {object}  response.Envelope
// @Failure      404          {object}  response.Envelope
// @Router       /blog/edit/{slug} [put]
func (h *BlogHandler) Edit(c echo.Context) error {
	var form postForm
	if err := bindAndValidate(c, &form); err != nil {
		return err
	}
	thumb, err := formUpload(c, "thumbnail")
	if err != nil {
		return err
	}

	err = h.service.Edit(c.Request().Context(), ports.EditPostInput{
		Slug:        c.Param("slug"),
		Title:       form.Title,
		Description: form.Description,
		Content:     form.Content,
		Thumbnail:   thumb,
	})
	if err != nil {
		return err
	}
	return response.Send(c, response.OK, response.MsgUpdated, nil)
}

// Delete handles DELETE /api/v1/blog/:slug.
//
// @Summary      Delete a blog post
// @Tags         blog
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /blog/{slug} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("slug")); err != nil {
		return err
	}
	return response.Send(c, response.OK, response.MsgDeleted, nil)
}

// AddComment handles PUT /api/v1/blog/comment.
//
// @Summary      Comment on a post
// @Tags         blog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      commentRequest  true  "blog_id is the post slug"
// @Success      201   {object}  response.Envelope{data=domain.Comment}
// @Failure      401   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /blog/comment [put]
func (h *BlogHandler) AddComment(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.service.AddComment(c.Request().Context(), req.Slug, userID, req.Comment)
	if err != nil {
		return err
	}
	metrics.BlogInteractionsTotal.WithLabelValues("comment").Inc()
	return response.Send(c, response.Created, "", comment)
}

// DeleteComment handles PUT /api/v1/blog/delete-comment.
//
// @Summary      Delete a comment
// @Tags         blog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteCommentRequest  true  "Post slug and comment ID"
// @Success      200   {object}  response.Envelope{data=deletedCommentResponse}
// @Failure      404   {object}  response.Envelope
// @Router       /blog/delete-comment [put]
func (h *BlogHandler) DeleteComment(c echo.Context) error {
	var req deleteCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.DeleteComment(c.Request().Context(), req.Slug, req.CommentID); err != nil {
		return err
	}
	return response.Send(c, response.OK, response.MsgDeleted, deletedCommentResponse{Deleted: req})
}

// ToggleLike handles PUT /api/v1/blog/like.
//
// @Summary      Like or unlike a post
// @Tags         blog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      likeRequest  true  "Post slug"
// @Success      200   {object}  response.Envelope{data=likeResponse}
// @Failure      401   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /blog/like [put]
func (h *BlogHandler) ToggleLike(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		return err
	}
	var req likeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	liked, err := h.service.ToggleLike(c.Request().Context(), req.Slug, userID)
	if err != nil {
		return err
	}
	action := "unlike"
	if liked {
		action = "like"
	}
	metrics.BlogInteractionsTotal.WithLabelValues(action).Inc()
	return response.Send(c, response.OK, response.MsgLiked, likeResponse{Liked: liked})
}

// List handles GET /api/v1/blog/page/:page.
//
// @Summary      List posts
// @Tags         blog
// @Produce      json
// @Param        page  path      int  true  "1-based page number"
// @Success      200   {object}  response.Envelope{data=postPageResponse}
// @Failure      400   {object}  response.Envelope
// @Router       /blog/page/{page} [get]
func (h *BlogHandler) List(c echo.Context) error {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		return domain.NewValidationError("page", "must be a number")
	}

	res, err := h.service.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return response.Send(c, response.OK, response.MsgRetrieved, postPageResponse{
		Blogs:       res.Items,
		TotalCounts: res.TotalCount,
	})
}

// ListAll handles GET /api/v1/blog/blogs-admin.
//
// @Summary      List every post (admin)
// @Tags         blog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=postListResponse}
// @Router       /blog/blogs-admin [get]
func (h *BlogHandler) ListAll(c echo.Context) error {
	posts, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return response.Send(c, response.OK, response.MsgRetrieved, postListResponse{Blogs: posts})
}

// Get handles GET /api/v1/blog/id/:slug. A valid token marks whether the
// caller liked the post; anonymous readers get isUserLiked=false.
//
// @Summary      Get a post
// @Tags         blog
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  response.Envelope{data=postResponse}
// @Failure      404   {object}  response.Envelope
// @Router       /blog/id/{slug} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	post, err := h.service.Get(c.Request().Context(), c.Param("slug"), viewer(c))
	if err != nil {
		return err
	}
	return response.Send(c, response.OK, response.MsgRetrieved, postResponse{Blog: post})
}
