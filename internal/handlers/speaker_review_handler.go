package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"speakerbureau/internal/services"
)

// SpeakerReviewHandler serves the public token-gated pages: the speaker's
// firm-offer review and the client's proposal view. The opaque token in the
// URL is the whole authorization; there is no user identity on these routes.
type SpeakerReviewHandler struct {
	Offers    *services.FirmOfferService
	Proposals *services.ProposalService
}

func NewSpeakerReviewHandler(offers *services.FirmOfferService, proposals *services.ProposalService) *SpeakerReviewHandler {
	return &SpeakerReviewHandler{Offers: offers, Proposals: proposals}
}

// @Summary      Speaker offer review
// @Description  Resolves the speaker capability token. The first load stamps speaker_viewed_at.
// @Tags         SpeakerReview
// @Produce      json
// @Param        token  path      string  true  "Speaker access token"
// @Success      200    {object}  models.FirmOfferView
// @Failure      404    {object}  map[string]string
// @Router       /speaker-review/{token} [get]
func (h *SpeakerReviewHandler) ViewOffer(c *gin.Context) {
	token := c.Param("token")

	view, err := h.Offers.SpeakerView(token)
	if err != nil {
		serverError(c, "failed to load offer", err)
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
		return
	}
	c.JSON(http.StatusOK, view)
}

type speakerRespondRequest struct {
	Confirmed *bool  `json:"confirmed" binding:"required"`
	Notes     string `json:"notes"`
}

// RespondOffer records the speaker's confirm/decline. The transition is
// terminal: repeated calls get a 409.
func (h *SpeakerReviewHandler) RespondOffer(c *gin.Context) {
	token := c.Param("token")

	var req speakerRespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.Offers.SpeakerRespond(token, *req.Confirmed, req.Notes)
	if errors.Is(err, services.ErrAlreadyResponded) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		serverError(c, "failed to record response", err)
		return
	}
	if offer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "response recorded",
		"status":  offer.Status,
	})
}

// ViewProposal is the client-facing proposal page behind the proposal's own
// access token.
func (h *SpeakerReviewHandler) ViewProposal(c *gin.Context) {
	token := c.Param("token")

	proposal, err := h.Proposals.ViewByToken(token)
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
