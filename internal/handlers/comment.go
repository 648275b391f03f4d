package handlers

import (
	"boardhub/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) List(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	comments, err := h.comments.List(c.Request.Context(), id)
	respond(c, comments, err)
}

func (h *CommentHandler) Create(c *gin.Context) {
	var in services.CreateCommentInput
	if !bind(c, &in) {
		return
	}
	res, err := h.comments.Create(c.Request.Context(), credential(c), in)
	respond(c, res, err)
}

func (h *CommentHandler) Update(c *gin.Context) {
	var in services.UpdateCommentInput
	if !bind(c, &in) {
		return
	}
	res, err := h.comments.Update(c.Request.Context(), credential(c), in)
	respond(c, res, err)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	var in services.DeleteCommentInput
	if !bind(c, &in) {
		return
	}
	res, err := h.comments.Delete(c.Request.Context(), credential(c), in)
	respond(c, res, err)
}
