package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"speakerbureau/internal/models"
	"speakerbureau/internal/services"
)

// ProjectHandler has no Create: projects enter the system by synthesis from
// won deals only.
type ProjectHandler struct {
	Service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: service}
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	project, err := h.Service.GetByID(id)
	if err != nil {
		serverError(c, "failed to load project", err)
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	current, err := h.Service.GetByID(id)
	if err != nil {
		serverError(c, "failed to load project", err)
		return
	}
	if current == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	var patch models.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Service.ApplyUpdate(current, &patch)
	if err != nil {
		serverError(c, "failed to update project", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProjectHandler) List(c *gin.Context) {
	limit, offset := paginationParams(c)
	projects, err := h.Service.ListPaginated(limit, offset)
	if err != nil {
		serverError(c, "failed to retrieve projects", err)
		return
	}
	c.JSON(http.StatusOK, projects)
}
