package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grocademy/course-service/internal/services"
	"github.com/grocademy/course-service/internal/utils"
	"github.com/grocademy/course-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
}

func NewAuthHandler(sm services.ServiceManager, logger utils.Logger) *AuthHandler {
	return &AuthHandler{BaseHandler{services: sm, logger: logger}}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req validator.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.services.Auth().Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req validator.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.services.Auth().Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Self handles GET /auth/self.
func (h *AuthHandler) Self(c *gin.Context) {
	user, err := h.services.Auth().Self(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
