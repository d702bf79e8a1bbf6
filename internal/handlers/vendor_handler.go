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

type VendorHandler struct {
	Service *services.VendorService
}

func NewVendorHandler(service *services.VendorService) *VendorHandler {
	return &VendorHandler{Service: service}
}

func (h *VendorHandler) Create(c *gin.Context) {
	var vendor models.Vendor
	if err := c.ShouldBindJSON(&vendor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.Service.Create(&vendor)
	if err != nil {
		serverError(c, "failed to create vendor", err)
		return
	}
	vendor.ID = int(id)
	c.JSON(http.StatusCreated, vendor)
}

func (h *VendorHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	vendor, err := h.Service.GetByID(id)
	if err != nil {
		serverError(c, "failed to load vendor", err)
		return
	}
	if vendor == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "vendor not found"})
		return
	}
	c.JSON(http.StatusOK, vendor)
}

func (h *VendorHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	current, err := h.Service.GetByID(id)
	if err != nil {
		serverError(c, "failed to load vendor", err)
		return
	}
	if current == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "vendor not found"})
		return
	}

	var body models.Vendor
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	body.ID = id

	if err := h.Service.Update(&body); err != nil {
		serverError(c, "failed to update vendor", err)
		return
	}
	updated, _ := h.Service.GetByID(id)
	c.JSON(http.StatusOK, updated)
}

func (h *VendorHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.Service.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vendor not found"})
			return
		}
		serverError(c, "failed to delete vendor", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vendor deleted"})
}

func (h *VendorHandler) List(c *gin.Context) {
	limit, offset := paginationParams(c)
	vendors, err := h.Service.ListPaginated(limit, offset)
	if err != nil {
		serverError(c, "failed to retrieve vendors", err)
		return
	}
	c.JSON(http.StatusOK, vendors)
}
