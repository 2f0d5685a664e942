package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/grocademy/course-service/internal/repositories"
)

const (
	defaultPageSize = 15
	maxPageSize     = 100
)

// normalizePagination clamps page and limit to sane bounds.
func normalizePagination(page, limit int) (int, int) {
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

// applyPagination adds OFFSET/LIMIT for a 1-based page.
func applyPagination(query *gorm.DB, page, limit int) *gorm.DB {
	page, limit = normalizePagination(page, limit)
	return query.Offset((page - 1) * limit).Limit(limit)
}

// courseSortColumns is the allow-list of sortable catalog fields. Sorting
// interpolates a column name into ORDER BY, so anything outside this map
// is rejected rather than passed through.
var courseSortColumns = map[string]string{
	"title":      "title",
	"instructor": "instructor",
	"price":      "price",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// courseOrderClause validates the requested sort against the allow-list
// and builds the ORDER BY expression. An empty SortBy falls back to newest
// first.
func courseOrderClause(filters repositories.CourseFilters) (string, error) {
	if filters.SortBy == "" {
		return "created_at DESC", nil
	}

	column, ok := courseSortColumns[strings.ToLower(filters.SortBy)]
	if !ok {
		return "", fmt.Errorf("%w: %s", repositories.ErrInvalidSort, filters.SortBy)
	}

	direction := "ASC"
	switch strings.ToLower(filters.SortOrder) {
	case "", "asc":
	case "desc":
		direction = "DESC"
	default:
		return "", fmt.Errorf("%w: %s", repositories.ErrInvalidSort, filters.SortOrder)
	}

	return fmt.Sprintf("%s %s", column, direction), nil
}

// searchPattern builds a case-insensitive LIKE pattern.
func searchPattern(query string) string {
	return "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
}
