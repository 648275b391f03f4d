package handlers

import (
	"boardhub/internal/services"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boards     *services.BoardService
	recommends *services.RecommendService
}

func NewBoardHandler(boards *services.BoardService, recommends *services.RecommendService) *BoardHandler {
	return &BoardHandler{boards: boards, recommends: recommends}
}

func (h *BoardHandler) List(c *gin.Context) {
	posts, err := h.boards.GetAll(c.Request.Context())
	respond(c, posts, err)
}

func (h *BoardHandler) ListByCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	posts, err := h.boards.GetByCategory(c.Request.Context(), id)
	respond(c, posts, err)
}

func (h *BoardHandler) Categories(c *gin.Context) {
	categories, err := h.boards.Categories(c.Request.Context())
	respond(c, categories, err)
}

func (h *BoardHandler) Detail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	post, err := h.boards.GetOne(c.Request.Context(), id)
	respond(c, post, err)
}

func (h *BoardHandler) ShowEdit(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	res, err := h.boards.GetForUpdate(c.Request.Context(), credential(c), id)
	respond(c, res, err)
}

func (h *BoardHandler) Create(c *gin.Context) {
	var in services.CreatePostInput
	if !bind(c, &in) {
		return
	}
	res, err := h.boards.Create(c.Request.Context(), credential(c), in)
	respond(c, res, err)
}

func (h *BoardHandler) Update(c *gin.Context) {
	var in services.UpdatePostInput
	if !bind(c, &in) {
		return
	}
	res, err := h.boards.Update(c.Request.Context(), credential(c), in)
	respond(c, res, err)
}

func (h *BoardHandler) Delete(c *gin.Context) {
	var in services.DeletePostInput
	if !bind(c, &in) {
		return
	}
	res, err := h.boards.Delete(c.Request.Context(), credential(c), in)
	respond(c, res, err)
}

// Recommend toggles the caller's recommendation of the post.
func (h *BoardHandler) Recommend(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	res, err := h.recommends.Toggle(c.Request.Context(), id, credential(c))
	respond(c, res, err)
}
