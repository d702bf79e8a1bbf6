package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"speakerbureau/internal/models"
	"speakerbureau/internal/pdf"
	"speakerbureau/internal/services"
)

type FirmOfferHandler struct {
	Service *services.FirmOfferService
	PDF     *pdf.OfferGenerator
}

func NewFirmOfferHandler(service *services.FirmOfferService, pdfGen *pdf.OfferGenerator) *FirmOfferHandler {
	return &FirmOfferHandler{Service: service, PDF: pdfGen}
}

func (h *FirmOfferHandler) Create(c *gin.Context) {
	var offer models.FirmOffer
	if err := c.ShouldBindJSON(&offer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if offer.ProposalID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proposal_id is required"})
		return
	}

	if _, err := h.Service.Create(&offer); err != nil {
		switch {
		case errors.Is(err, services.ErrProposalNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrOfferExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			serverError(c, "failed to create firm offer", err)
		}
		return
	}
	c.JSON(http.StatusCreated, offer)
}

func (h *FirmOfferHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	offer, err := h.Service.GetByID(id)
	if err != nil {
		serverError(c, "failed to load firm offer", err)
		return
	}
	if offer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "firm offer not found"})
		return
	}
	c.JSON(http.StatusOK, offer)
}

// @Summary      Update a firm offer
// @Description  Back-office patch. Confirmation fields freeze once the speaker has responded.
// @Tags         FirmOffers
// @Accept       json
// @Produce      json
// @Param        id     path      int                    true  "Firm offer ID"
// @Param        patch  body      models.FirmOfferPatch  true  "Fields to update"
// @Success      200    {object}  models.FirmOffer
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Failure      409    {object}  map[string]string
// @Router       /api/firm-offers/{id} [patch]
func (h *FirmOfferHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var patch models.FirmOfferPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.Service.AdminUpdate(id, &patch)
	if errors.Is(err, services.ErrAlreadyResponded) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, services.ErrConfirmationViaStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		serverError(c, "failed to update firm offer", err)
		return
	}
	if offer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "firm offer not found"})
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *FirmOfferHandler) List(c *gin.Context) {
	limit, offset := paginationParams(c)
	offers, err := h.Service.ListPaginated(limit, offset)
	if err != nil {
		serverError(c, "failed to retrieve firm offers", err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

// Send emails the assigned speaker their review link.
func (h *FirmOfferHandler) Send(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	offer, err := h.Service.Send(id)
	if err != nil {
		serverError(c, "failed to send firm offer", err)
		return
	}
	if offer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "firm offer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "firm offer sent"})
}

// DownloadPDF streams the offer packet as a PDF.
func (h *FirmOfferHandler) DownloadPDF(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	offer, err := h.Service.GetByID(id)
	if err != nil {
		serverError(c, "failed to load firm offer", err)
		return
	}
	if offer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "firm offer not found"})
		return
	}

	buf, err := h.PDF.OfferPacket(offer)
	if err != nil {
		serverError(c, "failed to generate pdf", err)
		return
	}

	filename := fmt.Sprintf("firm_offer_%d.pdf", offer.ID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
