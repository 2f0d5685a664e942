package services

import (
	"context"
	"math"
	"strings"

	"github.com/grocademy/course-service/internal/events"
	"github.com/grocademy/course-service/internal/models"
	"github.com/grocademy/course-service/internal/utils"
)

const (
	defaultPageSize = 15
	maxPageSize     = 100
)

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func buildPagination(page, limit int, total int64) Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	if totalPages < 1 {
		totalPages = 1
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		Limit:       limit,
	}
}

// mediaURL turns a stored asset path into an absolute URL.
func mediaURL(baseURL string, path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	url := baseURL + "/" + strings.TrimLeft(*path, "/")
	return &url
}

func newUserView(u *models.User) UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		Balance:   u.Balance,
	}
}

func newCourseView(c *models.Course, baseURL string) CourseView {
	return CourseView{
		ID:           c.ID,
		Title:        c.Title,
		Instructor:   c.Instructor,
		Description:  c.Description,
		Topics:       []string(c.Topics),
		Price:        c.Price,
		ThumbnailURL: mediaURL(baseURL, c.ThumbnailPath),
		TotalModules: len(c.Modules),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func newModuleView(m *models.Module, baseURL string, completed bool) ModuleView {
	return ModuleView{
		ID:          m.ID,
		CourseID:    m.CourseID,
		Title:       m.Title,
		Description: m.Description,
		Order:       m.Order,
		VideoURL:    mediaURL(baseURL, m.VideoPath),
		PDFURL:      mediaURL(baseURL, m.PDFPath),
		IsCompleted: completed,
	}
}

// normalizeTopics lowercases, trims and dedups topic tags, preserving the
// first occurrence order.
func normalizeTopics(topics []string) []string {
	seen := make(map[string]bool, len(topics))
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// progressPercentage rounds completed/total to the nearest whole percent.
func progressPercentage(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// publishEvent sends a domain event, logging failures without surfacing
// them to the business operation.
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger utils.Logger, eventType string, data interface{}) {
	if publisher == nil {
		return
	}
	event := &events.Event{Type: eventType, Data: data}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Error("failed to publish event", "type", eventType, "error", err)
	}
}
