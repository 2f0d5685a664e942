package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grocademy/course-service/internal/services"
	"github.com/grocademy/course-service/internal/utils"
	"github.com/grocademy/course-service/internal/validator"
)

type ModuleHandler struct {
	BaseHandler
}

func NewModuleHandler(sm services.ServiceManager, logger utils.Logger) *ModuleHandler {
	return &ModuleHandler{BaseHandler{services: sm, logger: logger}}
}

// ListByCourse handles GET /courses/:id/modules.
func (h *ModuleHandler) ListByCourse(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	modules, err := h.services.Modules().ListModules(c.Request.Context(), courseID, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modules": modules})
}

// Create handles POST /courses/:id/modules.
func (h *ModuleHandler) Create(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validator.ModuleCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	module, err := h.services.Modules().CreateModule(c.Request.Context(), courseID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, module)
}

// Reorder handles PATCH /courses/:id/modules/reorder.
func (h *ModuleHandler) Reorder(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validator.ReorderModulesRequest
	if !bindJSON(c, &req) {
		return
	}

	modules, err := h.services.Modules().ReorderModules(c.Request.Context(), courseID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modules": modules})
}

// Get handles GET /modules/:id.
func (h *ModuleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	module, err := h.services.Modules().GetModule(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, module)
}

// Update handles PUT /modules/:id.
func (h *ModuleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validator.ModuleUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	module, err := h.services.Modules().UpdateModule(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, module)
}

// Delete handles DELETE /modules/:id.
func (h *ModuleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Modules().DeleteModule(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Complete handles POST /modules/:id/complete.
func (h *ModuleHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.services.Progress().CompleteModule(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
