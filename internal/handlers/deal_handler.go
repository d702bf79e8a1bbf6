package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"speakerbureau/internal/authz"
	"speakerbureau/internal/models"
	"speakerbureau/internal/services"
)

type DealHandler struct {
	Service *services.DealService
}

func NewDealHandler(service *services.DealService) *DealHandler {
	return &DealHandler{Service: service}
}

func (h *DealHandler) Create(c *gin.Context) {
	var deal models.Deal
	if err := c.ShouldBindJSON(&deal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, roleID := getUserAndRole(c)
	if authz.IsReadOnly(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "read-only role"})
		return
	}
	deal.OwnerID = userID

	id, err := h.Service.Create(&deal)
	if err != nil {
		serverError(c, "failed to create deal", err)
		return
	}
	deal.ID = int(id)
	c.JSON(http.StatusCreated, deal)
}

// @Summary      Update a deal
// @Description  Applies a partial update. Moving the status into "won" synthesizes a project.
// @Tags         Deals
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "Deal ID"
// @Param        deal  body      models.DealPatch  true  "Fields to update"
// @Success      200   {object}  models.Deal
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/deals/{id} [patch]
func (h *DealHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	_, roleID := getUserAndRole(c)
	if authz.IsReadOnly(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "read-only role"})
		return
	}

	current, err := h.Service.GetByID(id)
	if err != nil {
		serverError(c, "failed to load deal", err)
		return
	}
	if current == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "deal not found"})
		return
	}

	var patch models.DealPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Service.ApplyUpdate(current, &patch)
	if err != nil {
		serverError(c, "failed to update deal", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *DealHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	deal, err := h.Service.GetByID(id)
	if err != nil {
		serverError(c, "failed to load deal", err)
		return
	}
	if deal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "deal not found"})
		return
	}
	c.JSON(http.StatusOK, deal)
}

func (h *DealHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	_, roleID := getUserAndRole(c)
	if authz.IsReadOnly(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "read-only role"})
		return
	}

	deal, err := h.Service.GetByID(id)
	if err != nil {
		serverError(c, "failed to load deal", err)
		return
	}
	if deal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "deal not found"})
		return
	}

	if err := h.Service.Delete(id); err != nil {
		serverError(c, "failed to delete deal", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deal deleted"})
}

func (h *DealHandler) List(c *gin.Context) {
	limit, offset := paginationParams(c)
	status := c.Query("status")
	priority := c.Query("priority")

	userID, roleID := getUserAndRole(c)
	var deals []*models.Deal
	var err error

	if authz.IsElevated(roleID) || roleID == authz.RoleAudit {
		deals, err = h.Service.List(status, priority, limit, offset)
	} else {
		deals, err = h.Service.ListByOwner(userID, limit, offset)
	}
	if err != nil {
		serverError(c, "failed to retrieve deals", err)
		return
	}
	c.JSON(http.StatusOK, deals)
}

// Events returns the audit trail: status changes and project synthesis
// outcomes.
func (h *DealHandler) Events(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	deal, err := h.Service.GetByID(id)
	if err != nil {
		serverError(c, "failed to load deal", err)
		return
	}
	if deal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "deal not found"})
		return
	}

	events, err := h.Service.EventsByDeal(id)
	if err != nil {
		serverError(c, "failed to retrieve deal events", err)
		return
	}
	c.JSON(http.StatusOK, events)
}
