package postgres

import (
	"context"
	"fmt"

	"github.com/grocademy/course-service/internal/models"
)

func (r *postgresRepository) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	if err := r.db.WithContext(ctx).Create(purchase).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *postgresRepository) HasPurchased(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check purchase: %w", err)
	}
	return count > 0, nil
}

func (r *postgresRepository) ListPurchasesByUser(ctx context.Context, userID uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}

func (r *postgresRepository) ListPurchasesByCourse(ctx context.Context, courseID uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}

func (r *postgresRepository) ListAllPurchases(ctx context.Context) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}

// PurchasedCourseIDs returns which of the given courses the user owns, for
// flagging catalog pages without one query per row.
func (r *postgresRepository) PurchasedCourseIDs(ctx context.Context, userID uint, courseIDs []uint) (map[uint]bool, error) {
	owned := make(map[uint]bool, len(courseIDs))
	if len(courseIDs) == 0 {
		return owned, nil
	}

	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("user_id = ? AND course_id IN ?", userID, courseIDs).
		Pluck("course_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to load purchased courses: %w", err)
	}

	for _, id := range ids {
		owned[id] = true
	}
	return owned, nil
}

func (r *postgresRepository) DeletePurchasesByCourse(ctx context.Context, courseID uint) error {
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&models.Purchase{}).Error; err != nil {
		return fmt.Errorf("failed to delete purchases: %w", err)
	}
	return nil
}
