package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogify-backend/internal/domains/blog"
	"blogify-backend/internal/domains/comment"
	"blogify-backend/internal/shared/middleware"
	"blogify-backend/internal/shared/response"
)

type BlogHandler struct {
	service  blog.Service
	comments comment.Service
}

func NewBlogHandler(service blog.Service, comments comment.Service) *BlogHandler {
	return &BlogHandler{service: service, comments: comments}
}

// blogDetailResponse is the GET /blogs/:id payload: the post plus its
// two-level comment thread.
type blogDetailResponse struct {
	Blog     blog.BlogDTO         `json:"blog"`
	Comments []comment.CommentDTO `json:"comments"`
}

// Create handles POST /api/v1/blogs
func (h *BlogHandler) Create(c *gin.Context) {
	var req blog.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	dto, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		response.InternalServerError(c, "failed to create blog")
		return
	}

	response.Success(c, http.StatusCreated, "Blog created", dto)
}

// List handles GET /api/v1/blogs
func (h *BlogHandler) List(c *gin.Context) {
	var query blog.ListBlogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	resp, err := h.service.List(c.Request.Context(), middleware.GetUserID(c), query)
	if err != nil {
		response.InternalServerError(c, "failed to list blogs")
		return
	}

	response.Success(c, http.StatusOK, "", resp)
}

// Get handles GET /api/v1/blogs/:id
func (h *BlogHandler) Get(c *gin.Context) {
	id, ok := blogID(c)
	if !ok {
		return
	}

	dto, err := h.service.Get(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, blog.ErrBlogNotFound):
			response.NotFound(c, "blog not found")
		case errors.Is(err, blog.ErrDraftForbidden):
			response.Forbidden(c, "this blog is not published")
		default:
			response.InternalServerError(c, "failed to load blog")
		}
		return
	}

	thread, err := h.comments.ListForBlog(c.Request.Context(), id)
	if err != nil {
		response.InternalServerError(c, "failed to load comments")
		return
	}

	response.Success(c, http.StatusOK, "", blogDetailResponse{
		Blog:     *dto,
		Comments: thread,
	})
}

// Update handles PUT /api/v1/blogs/:id
func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := blogID(c)
	if !ok {
		return
	}

	var req blog.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	dto, err := h.service.Update(c.Request.Context(), id, middleware.GetUserID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, blog.ErrBlogNotFound):
			response.NotFound(c, "blog not found")
		case errors.Is(err, blog.ErrPublishedToDraft), errors.Is(err, blog.ErrInvalidStatus):
			response.BadRequest(c, err.Error())
		default:
			response.InternalServerError(c, "failed to update blog")
		}
		return
	}

	response.Success(c, http.StatusOK, "Blog updated", dto)
}

// Delete handles DELETE /api/v1/blogs/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := blogID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		if errors.Is(err, blog.ErrBlogNotFound) {
			response.NotFound(c, "blog not found")
			return
		}
		response.InternalServerError(c, "failed to delete blog")
		return
	}

	response.Success(c, http.StatusOK, "Blog deleted", nil)
}

func blogID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid blog ID")
		return uuid.Nil, false
	}
	return id, true
}
