package postgres

import (
	"context"
	"fmt"

	"github.com/grocademy/course-service/internal/models"
	"github.com/grocademy/course-service/internal/repositories"
)

func (r *postgresRepository) CreateBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	if err := r.db.WithContext(ctx).Create(bookmark).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *postgresRepository) DeleteBookmark(ctx context.Context, userID, courseID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&models.Bookmark{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *postgresRepository) IsBookmarked(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Bookmark{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check bookmark: %w", err)
	}
	return count > 0, nil
}

func (r *postgresRepository) DeleteBookmarksByCourse(ctx context.Context, courseID uint) error {
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&models.Bookmark{}).Error; err != nil {
		return fmt.Errorf("failed to delete bookmarks: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListBookmarksByUser(ctx context.Context, userID uint) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return bookmarks, nil
}
