package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/grocademy/course-service/internal/cache"
	"github.com/grocademy/course-service/internal/models"
	"github.com/grocademy/course-service/internal/repositories"
)

func (r *postgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	cacheKey := fmt.Sprintf("id:%d", id)

	err := r.cache.User.CacheOrExecute(ctx, cacheKey, &user, r.cache.User.DefaultTTL(), func() (interface{}, error) {
		var fetched models.User
		if err := r.db.WithContext(ctx).First(&fetched, id).Error; err != nil {
			return nil, translateError(err)
		}
		return &fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *postgresRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetUserByIdentifier resolves a login identifier that may be a username
// or an email address.
func (r *postgresRepository) GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *postgresRepository) ListUsers(ctx context.Context, filters repositories.UserFilters) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if filters.Query != "" {
		pattern := searchPattern(filters.Query)
		query = query.Where(
			"LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			pattern, pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	if err := applyPagination(query, filters.Page, filters.Limit).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

func (r *postgresRepository) UpdateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return translateError(err)
	}
	cache.SafeDelete(ctx, r.cache.User, fmt.Sprintf("id:%d", user.ID))
	return nil
}

func (r *postgresRepository) DeleteUser(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	cache.SafeDelete(ctx, r.cache.User, fmt.Sprintf("id:%d", id))
	return nil
}

// AddBalance credits the user atomically and returns the updated record.
func (r *postgresRepository) AddBalance(ctx context.Context, userID uint, amount int64) (*models.User, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, repositories.ErrNotFound
	}

	cache.SafeDelete(ctx, r.cache.User, fmt.Sprintf("id:%d", userID))

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// DebitBalance debits the user only when the balance covers the amount.
// The balance check runs inside the UPDATE itself, so concurrent debits
// cannot overdraw. Returns the balance after the debit.
func (r *postgresRepository) DebitBalance(ctx context.Context, userID uint, amount int64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND balance >= ?", userID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return 0, translateError(result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.User{}).
			Where("id = ?", userID).Count(&count).Error; err != nil {
			return 0, fmt.Errorf("failed to check user: %w", err)
		}
		if count == 0 {
			return 0, repositories.ErrNotFound
		}
		return 0, repositories.ErrInsufficientFunds
	}

	cache.SafeDelete(ctx, r.cache.User, fmt.Sprintf("id:%d", userID))

	var balance int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Pluck("balance", &balance).Error; err != nil {
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}
	return balance, nil
}
