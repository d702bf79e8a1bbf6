package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"speakerbureau/internal/models"
	"speakerbureau/internal/services"
)

// InquiryHandler takes the public marketing-site contact form and turns it
// into a deal at the top of the pipeline.
type InquiryHandler struct {
	Deals *services.DealService
}

func NewInquiryHandler(deals *services.DealService) *InquiryHandler {
	return &InquiryHandler{Deals: deals}
}

type inquiryRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required"`
	Phone         string `json:"phone"`
	Company       string `json:"company"`
	EventTitle    string `json:"event_title"`
	EventType     string `json:"event_type"`
	EventLocation string `json:"event_location"`
	Message       string `json:"message"`
}

func (h *InquiryHandler) Create(c *gin.Context) {
	var req inquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deal := &models.Deal{
		ClientName:    req.Name,
		ClientEmail:   req.Email,
		ClientPhone:   req.Phone,
		Company:       req.Company,
		EventTitle:    req.EventTitle,
		EventType:     req.EventType,
		EventLocation: req.EventLocation,
		Status:        models.DealStatusLead,
		Notes:         req.Message,
	}

	if _, err := h.Deals.Create(deal); err != nil {
		serverError(c, "failed to submit inquiry", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "thank you, we'll be in touch shortly"})
}
