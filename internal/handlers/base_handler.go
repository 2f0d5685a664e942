package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/grocademy/course-service/internal/services"
	"github.com/grocademy/course-service/internal/utils"
	"github.com/grocademy/course-service/internal/validator"
)

// BaseHandler carries the dependencies shared by every handler.
type BaseHandler struct {
	services services.ServiceManager
	logger   utils.Logger
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// handleServiceError translates service errors onto HTTP status codes.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	logger := utils.FromContext(c, h.logger)

	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: validationErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrModuleNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCertificateNotFound):
		respondError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrAlreadyPurchased),
		errors.Is(err, services.ErrDuplicateTitle),
		errors.Is(err, services.ErrDuplicateAccount),
		errors.Is(err, services.ErrConflict):
		respondError(c, http.StatusConflict, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, services.ErrForbidden):
		respondError(c, http.StatusForbidden, err.Error())

	case errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, services.ErrInvalidSortField),
		errors.Is(err, services.ErrReorderMismatch),
		errors.Is(err, services.ErrAdminImmutable),
		errors.Is(err, services.ErrBadRequest):
		respondError(c, http.StatusBadRequest, err.Error())

	default:
		logger.Error("unhandled service error", "error", err, "path", c.Request.URL.Path)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
