package repositories

import (
	"context"
	"errors"
)

// Sentinel errors translated from storage-level failures. Services map
// these onto their own error vocabulary.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("duplicate record")
	ErrInvalidSort       = errors.New("invalid sort parameter")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Repository aggregates every entity repository behind one facade so
// services take a single dependency.
type Repository interface {
	UserRepository
	CourseRepository
	ModuleRepository
	PurchaseRepository
	CompletionRepository
	BookmarkRepository

	// WithTransaction runs fn against a Repository bound to a single
	// database transaction, committing on nil and rolling back on error.
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
}

// RepositoryManager owns the repository facade and its backing resources.
type RepositoryManager interface {
	Repository() Repository
	HealthCheck(ctx context.Context) error
	Close() error
}
