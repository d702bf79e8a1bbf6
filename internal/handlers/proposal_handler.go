package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"speakerbureau/internal/models"
	"speakerbureau/internal/services"
)

type ProposalHandler struct {
	Service *services.ProposalService
}

func NewProposalHandler(service *services.ProposalService) *ProposalHandler {
	return &ProposalHandler{Service: service}
}

func (h *ProposalHandler) Create(c *gin.Context) {
	var proposal models.Proposal
	if err := c.ShouldBindJSON(&proposal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Service.Create(&proposal); err != nil {
		serverError(c, "failed to create proposal", err)
		return
	}
	c.JSON(http.StatusCreated, proposal)
}

func (h *ProposalHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	proposal, err := h.Service.GetByID(id)
	if err != nil {
		serverError(c, "failed to load proposal", err)
		return
	}
	if proposal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "proposal not found"})
		return
	}
	c.JSON(http.StatusOK, proposal)
}

func (h *ProposalHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	current, err := h.Service.GetByID(id)
	if err != nil {
		serverError(c, "failed to load proposal", err)
		return
	}
	if current == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "proposal not found"})
		return
	}

	var patch models.ProposalPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Service.ApplyUpdate(current, &patch)
	if err != nil {
		serverError(c, "failed to update proposal", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProposalHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.Service.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "proposal not found"})
			return
		}
		serverError(c, "failed to delete proposal", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "proposal deleted"})
}

func (h *ProposalHandler) List(c *gin.Context) {
	limit, offset := paginationParams(c)
	proposals, err := h.Service.ListPaginated(limit, offset)
	if err != nil {
		serverError(c, "failed to retrieve proposals", err)
		return
	}
	c.JSON(http.StatusOK, proposals)
}

// Send emails the client their view link and moves the proposal to "sent".
func (h *ProposalHandler) Send(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	proposal, err := h.Service.Send(id)
	if errors.Is(err, services.ErrInvalidTransition) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		serverError(c, "failed to send proposal", err)
		return
	}
	if proposal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "proposal not found"})
		return
	}
	c.JSON(http.StatusOK, proposal)
}

type updateProposalStatusRequest struct {
	To string `json:"to" binding:"required"`
}

func (h *ProposalHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateProposalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := h.Service.UpdateStatus(id, req.To)
	if errors.Is(err, services.ErrInvalidTransition) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		serverError(c, "failed to update proposal status", err)
		return
	}
	if proposal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "proposal not found"})
		return
	}
	c.JSON(http.StatusOK, proposal)
}
