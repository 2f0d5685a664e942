package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/grocademy/course-service/internal/cache"
	"github.com/grocademy/course-service/internal/repositories"
)

// postgresRepository implements repositories.Repository on gorm. The same
// struct serves the root connection and transaction-bound copies, so every
// entity method works identically inside and outside WithTransaction.
type postgresRepository struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

var _ repositories.Repository = (*postgresRepository)(nil)

func newPostgresRepository(db *gorm.DB, cm *cache.CacheManager) *postgresRepository {
	return &postgresRepository{db: db, cache: cm}
}

// WithTransaction executes fn against a repository bound to one database
// transaction. gorm commits on nil and rolls back on error or panic.
func (r *postgresRepository) WithTransaction(ctx context.Context, fn func(repo repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newPostgresRepository(tx, r.cache))
	})
}

// translateError maps gorm errors onto the repository error vocabulary.
// Unique violations arrive as gorm.ErrDuplicatedKey because the connection
// is opened with TranslateError.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicate
	default:
		return err
	}
}

type repositoryManager struct {
	db   *gorm.DB
	repo *postgresRepository
}

// NewRepositoryManager wires the gorm connection and cache manager into a
// repository facade.
func NewRepositoryManager(db *gorm.DB, cacheManager *cache.CacheManager) repositories.RepositoryManager {
	return &repositoryManager{
		db:   db,
		repo: newPostgresRepository(db, cacheManager),
	}
}

func (m *repositoryManager) Repository() repositories.Repository {
	return m.repo
}

func (m *repositoryManager) HealthCheck(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

func (m *repositoryManager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
