package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/grocademy/course-service/internal/cache"
	"github.com/grocademy/course-service/internal/models"
	"github.com/grocademy/course-service/internal/repositories"
)

// cachedCourseList bundles a catalog page with its total for caching.
type cachedCourseList struct {
	Courses []models.Course `json:"courses"`
	Total   int64           `json:"total"`
}

func (r *postgresRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return translateError(err)
	}
	cache.InvalidateCatalog(ctx, r.cache)
	return nil
}

func (r *postgresRepository) GetCourseByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	cacheKey := fmt.Sprintf("id:%d", id)

	err := r.cache.Course.CacheOrExecute(ctx, cacheKey, &course, r.cache.Course.DefaultTTL(), func() (interface{}, error) {
		var fetched models.Course
		if err := r.db.WithContext(ctx).
			Preload("Modules", func(db *gorm.DB) *gorm.DB {
				return db.Order("order_index ASC")
			}).
			First(&fetched, id).Error; err != nil {
			return nil, translateError(err)
		}
		return &fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// ListCourses serves the catalog with a read-through cache. The key encodes
// the full query shape, so distinct pages, searches and sorts never collide.
func (r *postgresRepository) ListCourses(ctx context.Context, filters repositories.CourseFilters) ([]models.Course, int64, error) {
	orderClause, err := courseOrderClause(filters)
	if err != nil {
		return nil, 0, err
	}

	// The key holds the query in the same normalized form the matching
	// uses, so case or whitespace variants share one cache entry.
	page, limit := normalizePagination(filters.Page, filters.Limit)
	cacheKey := fmt.Sprintf("list:q=%s:page=%d:limit=%d:sort=%s:%s",
		strings.ToLower(strings.TrimSpace(filters.Query)), page, limit, filters.SortBy, filters.SortOrder)

	var cached cachedCourseList
	err = r.cache.Catalog.CacheOrExecute(ctx, cacheKey, &cached, r.cache.Catalog.DefaultTTL(), func() (interface{}, error) {
		courses, total, err := r.queryCourses(ctx, filters, orderClause)
		if err != nil {
			return nil, err
		}
		return &cachedCourseList{Courses: courses, Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	return cached.Courses, cached.Total, nil
}

func (r *postgresRepository) queryCourses(ctx context.Context, filters repositories.CourseFilters, orderClause string) ([]models.Course, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{})

	if filters.Query != "" {
		pattern := searchPattern(filters.Query)
		// Topics are stored as a JSON array of lowercase tags, so an exact
		// tag match is a quoted-token match on the serialized column.
		topicToken := "%\"" + strings.ToLower(strings.TrimSpace(filters.Query)) + "\"%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(instructor) LIKE ? OR LOWER(CAST(topics AS TEXT)) LIKE ?",
			pattern, pattern, topicToken)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	var courses []models.Course
	if err := applyPagination(query, filters.Page, filters.Limit).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Order(orderClause).
		Find(&courses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}

	return courses, total, nil
}

func (r *postgresRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Omit("Modules").Save(course).Error; err != nil {
		return translateError(err)
	}
	cache.InvalidateCourseCache(ctx, r.cache, course.ID)
	return nil
}

// DeleteCourse removes the course. Modules, purchases, completions and
// bookmarks go with it via the FK cascades.
func (r *postgresRepository) DeleteCourse(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Course{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	cache.InvalidateCourseCache(ctx, r.cache, id)
	return nil
}

// TitleExists reports whether another course already uses the title,
// compared case-insensitively. excludeID skips the course being updated.
func (r *postgresRepository) TitleExists(ctx context.Context, title string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{}).
		Where("title_key = ?", strings.ToLower(strings.TrimSpace(title)))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check course title: %w", err)
	}
	return count > 0, nil
}

func (r *postgresRepository) CourseExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Course{}).
		Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check course: %w", err)
	}
	return count > 0, nil
}
