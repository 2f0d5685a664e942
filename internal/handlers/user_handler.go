package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/grocademy/course-service/internal/services"
	"github.com/grocademy/course-service/internal/utils"
	"github.com/grocademy/course-service/internal/validator"
)

type UserHandler struct {
	BaseHandler
}

func NewUserHandler(sm services.ServiceManager, logger utils.Logger) *UserHandler {
	return &UserHandler{BaseHandler{services: sm, logger: logger}}
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	result, err := h.services.Users().ListUsers(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.services.Users().GetUser(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update handles PUT /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validator.UserUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.services.Users().UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Users().DeleteUser(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TopUp handles POST /users/:id/balance.
func (h *UserHandler) TopUp(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validator.TopUpRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.services.Users().TopUp(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
