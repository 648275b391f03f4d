package handlers

import (
	"boardhub/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	moderation *services.ModerationService
}

func NewReportHandler(moderation *services.ModerationService) *ReportHandler {
	return &ReportHandler{moderation: moderation}
}

func (h *ReportHandler) Submit(c *gin.Context) {
	var in services.SubmitReportInput
	if !bind(c, &in) {
		return
	}
	res, err := h.moderation.Submit(c.Request.Context(), credential(c), in)
	respond(c, res, err)
}

func (h *ReportHandler) ListOpen(c *gin.Context) {
	reports, err := h.moderation.ListOpen(c.Request.Context(), credential(c))
	respond(c, reports, err)
}

func (h *ReportHandler) Ban(c *gin.Context) {
	var in services.BanInput
	if !bind(c, &in) {
		return
	}
	res, err := h.moderation.Ban(c.Request.Context(), credential(c), in)
	respond(c, res, err)
}
