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

type SpeakerHandler struct {
	Service *services.SpeakerService
}

func NewSpeakerHandler(service *services.SpeakerService) *SpeakerHandler {
	return &SpeakerHandler{Service: service}
}

func (h *SpeakerHandler) Create(c *gin.Context) {
	var speaker models.Speaker
	if err := c.ShouldBindJSON(&speaker); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.Service.Create(&speaker)
	if err != nil {
		serverError(c, "failed to create speaker", err)
		return
	}
	speaker.ID = int(id)
	c.JSON(http.StatusCreated, speaker)
}

func (h *SpeakerHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	speaker, err := h.Service.GetByID(id)
	if err != nil {
		serverError(c, "failed to load speaker", err)
		return
	}
	if speaker == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "speaker not found"})
		return
	}
	c.JSON(http.StatusOK, speaker)
}

func (h *SpeakerHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	current, err := h.Service.GetByID(id)
	if err != nil {
		serverError(c, "failed to load speaker", err)
		return
	}
	if current == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "speaker not found"})
		return
	}

	var body models.Speaker
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	body.ID = id

	if err := h.Service.Update(&body); err != nil {
		serverError(c, "failed to update speaker", err)
		return
	}
	updated, _ := h.Service.GetByID(id)
	c.JSON(http.StatusOK, updated)
}

func (h *SpeakerHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.Service.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "speaker not found"})
			return
		}
		serverError(c, "failed to delete speaker", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "speaker deleted"})
}

func (h *SpeakerHandler) List(c *gin.Context) {
	limit, offset := paginationParams(c)
	speakers, err := h.Service.ListPaginated(limit, offset)
	if err != nil {
		serverError(c, "failed to retrieve speakers", err)
		return
	}
	c.JSON(http.StatusOK, speakers)
}

// Roster is the public marketing listing.
func (h *SpeakerHandler) Roster(c *gin.Context) {
	entries, err := h.Service.Roster()
	if err != nil {
		serverError(c, "failed to retrieve roster", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
