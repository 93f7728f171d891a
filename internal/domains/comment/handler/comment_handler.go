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

type CommentHandler struct {
	service comment.Service
}

func NewCommentHandler(service comment.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

// Create handles POST /api/v1/blogs/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid blog ID")
		return
	}

	var req comment.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	dto, err := h.service.Create(c.Request.Context(), blogID, middleware.GetUserID(c), middleware.GetUsername(c), req)
	if err != nil {
		if errors.Is(err, blog.ErrBlogNotFound) {
			response.NotFound(c, "blog not found")
			return
		}
		response.InternalServerError(c, "failed to create comment")
		return
	}

	response.Success(c, http.StatusCreated, "Comment created", dto)
}

// Reply handles POST /api/v1/comments/:id/replies
func (h *CommentHandler) Reply(c *gin.Context) {
	parentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment ID")
		return
	}

	var req comment.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	dto, err := h.service.Reply(c.Request.Context(), parentID, middleware.GetUserID(c), middleware.GetUsername(c), req)
	if err != nil {
		switch {
		case errors.Is(err, comment.ErrCommentNotFound):
			response.NotFound(c, "comment not found")
		case errors.Is(err, comment.ErrParentIsReply):
			response.BadRequest(c, err.Error())
		default:
			response.InternalServerError(c, "failed to create reply")
		}
		return
	}

	response.Success(c, http.StatusCreated, "Reply created", dto)
}
