package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/grocademy/course-service/internal/models"
)

// MarkCompleted records a module completion. Replays are absorbed by the
// (user_id, module_id) unique index with ON CONFLICT DO NOTHING, so the
// call is idempotent.
func (r *postgresRepository) MarkCompleted(ctx context.Context, completion *models.Completion) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(completion).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *postgresRepository) CountCompletions(ctx context.Context, userID, courseID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Completion{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count completions: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) CompletedModuleIDs(ctx context.Context, userID, courseID uint) (map[uint]bool, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Completion{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Pluck("module_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}

	completed := make(map[uint]bool, len(ids))
	for _, id := range ids {
		completed[id] = true
	}
	return completed, nil
}

func (r *postgresRepository) DeleteCompletionsByModule(ctx context.Context, moduleID uint) error {
	if err := r.db.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Delete(&models.Completion{}).Error; err != nil {
		return fmt.Errorf("failed to delete completions: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteCompletionsByCourse(ctx context.Context, courseID uint) error {
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&models.Completion{}).Error; err != nil {
		return fmt.Errorf("failed to delete completions: %w", err)
	}
	return nil
}
