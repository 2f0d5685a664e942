package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/grocademy/course-service/internal/services"
	"github.com/grocademy/course-service/internal/utils"
	"github.com/grocademy/course-service/internal/validator"
)

type CourseHandler struct {
	BaseHandler
}

func NewCourseHandler(sm services.ServiceManager, logger utils.Logger) *CourseHandler {
	return &CourseHandler{BaseHandler{services: sm, logger: logger}}
}

// List handles GET /courses.
func (h *CourseHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	result, err := h.services.Courses().ListCourses(c.Request.Context(), services.ListCoursesInput{
		Query:     c.Query("q"),
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /courses/:id.
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	course, err := h.services.Courses().GetCourse(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// Create handles POST /courses.
func (h *CourseHandler) Create(c *gin.Context) {
	var req validator.CourseCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.services.Courses().CreateCourse(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// Update handles PUT /courses/:id.
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validator.CourseUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.services.Courses().UpdateCourse(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// Delete handles DELETE /courses/:id.
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Courses().DeleteCourse(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Buy handles POST /courses/:id/buy.
func (h *CourseHandler) Buy(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.services.Purchases().Buy(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Progress handles GET /courses/:id/progress.
func (h *CourseHandler) Progress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	progress, err := h.services.Progress().CourseProgress(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// Certificate handles GET /courses/:id/certificate.
func (h *CourseHandler) Certificate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	png, err := h.services.Certificates().Generate(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=certificate_course_%d.png", id))
	c.Data(http.StatusOK, "image/png", png)
}

// ExportPurchases handles GET /courses/:id/purchases/export.
func (h *CourseHandler) ExportPurchases(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	report, filename, err := h.services.Reports().ExportPurchases(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", report)
}

// ToggleBookmark handles POST /courses/:id/bookmark.
func (h *CourseHandler) ToggleBookmark(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.services.Bookmarks().Toggle(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListBookmarks handles GET /bookmarks.
func (h *CourseHandler) ListBookmarks(c *gin.Context) {
	bookmarks, err := h.services.Bookmarks().ListBookmarks(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": bookmarks})
}
