package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/grocademy/course-service/internal/cache"
	"github.com/grocademy/course-service/internal/models"
	"github.com/grocademy/course-service/internal/repositories"
)

func (r *postgresRepository) CreateModule(ctx context.Context, module *models.Module) error {
	if err := r.db.WithContext(ctx).Create(module).Error; err != nil {
		return translateError(err)
	}
	cache.InvalidateCourseCache(ctx, r.cache, module.CourseID)
	return nil
}

func (r *postgresRepository) GetModuleByID(ctx context.Context, id uint) (*models.Module, error) {
	var module models.Module
	if err := r.db.WithContext(ctx).First(&module, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &module, nil
}

// ListModulesByCourse serves the ordered module list through the course
// cache; any module mutation drops the key via InvalidateCourseCache.
func (r *postgresRepository) ListModulesByCourse(ctx context.Context, courseID uint) ([]models.Module, error) {
	var modules []models.Module
	cacheKey := fmt.Sprintf("modules:%d", courseID)

	err := r.cache.Course.CacheOrExecute(ctx, cacheKey, &modules, r.cache.Course.DefaultTTL(), func() (interface{}, error) {
		var fetched []models.Module
		if err := r.db.WithContext(ctx).
			Where("course_id = ?", courseID).
			Order("order_index ASC").
			Find(&fetched).Error; err != nil {
			return nil, fmt.Errorf("failed to list modules: %w", err)
		}
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *postgresRepository) CountModulesByCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Module{}).
		Where("course_id = ?", courseID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count modules: %w", err)
	}
	return count, nil
}

// MaxOrderForCourse returns the highest order in use, 0 for an empty course.
func (r *postgresRepository) MaxOrderForCourse(ctx context.Context, courseID uint) (int, error) {
	var max int
	if err := r.db.WithContext(ctx).Model(&models.Module{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(order_index), 0)").
		Scan(&max).Error; err != nil {
		return 0, fmt.Errorf("failed to get max module order: %w", err)
	}
	return max, nil
}

func (r *postgresRepository) UpdateModule(ctx context.Context, module *models.Module) error {
	if err := r.db.WithContext(ctx).Save(module).Error; err != nil {
		return translateError(err)
	}
	cache.InvalidateCourseCache(ctx, r.cache, module.CourseID)
	return nil
}

func (r *postgresRepository) DeleteModule(ctx context.Context, id uint) error {
	module, err := r.GetModuleByID(ctx, id)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&models.Module{}, id).Error; err != nil {
		return translateError(err)
	}
	cache.InvalidateCourseCache(ctx, r.cache, module.CourseID)
	return nil
}

func (r *postgresRepository) DeleteModulesByCourse(ctx context.Context, courseID uint) error {
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&models.Module{}).Error; err != nil {
		return fmt.Errorf("failed to delete modules: %w", err)
	}
	return nil
}

// ReorderModules assigns new positions in one transaction. Positions are
// first parked above an offset so the (course_id, order_index) unique index
// never sees an intermediate collision, then shifted down together.
func (r *postgresRepository) ReorderModules(ctx context.Context, courseID uint, orders []repositories.ModuleOrder) error {
	const offset = 1 << 20

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			result := tx.Model(&models.Module{}).
				Where("id = ? AND course_id = ?", o.ModuleID, courseID).
				UpdateColumn("order_index", o.Order+offset)
			if result.Error != nil {
				return translateError(result.Error)
			}
			if result.RowsAffected == 0 {
				return repositories.ErrNotFound
			}
		}

		return tx.Model(&models.Module{}).
			Where("course_id = ? AND order_index >= ?", courseID, offset).
			UpdateColumn("order_index", gorm.Expr("order_index - ?", offset)).Error
	})
	if err != nil {
		return err
	}

	cache.InvalidateCourseCache(ctx, r.cache, courseID)
	return nil
}
