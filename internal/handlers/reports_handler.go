package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"speakerbureau/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

func (h *ReportHandler) GetSummary(c *gin.Context) {
	summary, err := h.Service.GetSummary()
	if err != nil {
		serverError(c, "failed to build summary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
