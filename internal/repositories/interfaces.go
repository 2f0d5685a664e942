package repositories

import (
	"context"

	"github.com/grocademy/course-service/internal/models"
)

// CourseFilters narrows and orders catalog listings. Query matches against
// title, instructor and topics. Page is 1-based.
type CourseFilters struct {
	Query     string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// UserFilters narrows admin user listings.
type UserFilters struct {
	Query string
	Page  int
	Limit int
}

// ModuleOrder pairs a module with its target position for reordering.
type ModuleOrder struct {
	ModuleID uint
	Order    int
}

// UserRepository handles user data operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	ListUsers(ctx context.Context, filters UserFilters) ([]models.User, int64, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uint) error
	AddBalance(ctx context.Context, userID uint, amount int64) (*models.User, error)
	DebitBalance(ctx context.Context, userID uint, amount int64) (int64, error)
}

// CourseRepository handles course data operations.
type CourseRepository interface {
	CreateCourse(ctx context.Context, course *models.Course) error
	GetCourseByID(ctx context.Context, id uint) (*models.Course, error)
	ListCourses(ctx context.Context, filters CourseFilters) ([]models.Course, int64, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id uint) error
	CourseExists(ctx context.Context, id uint) (bool, error)
	TitleExists(ctx context.Context, title string, excludeID uint) (bool, error)
}

// ModuleRepository handles module data operations.
type ModuleRepository interface {
	CreateModule(ctx context.Context, module *models.Module) error
	GetModuleByID(ctx context.Context, id uint) (*models.Module, error)
	ListModulesByCourse(ctx context.Context, courseID uint) ([]models.Module, error)
	CountModulesByCourse(ctx context.Context, courseID uint) (int64, error)
	MaxOrderForCourse(ctx context.Context, courseID uint) (int, error)
	UpdateModule(ctx context.Context, module *models.Module) error
	DeleteModule(ctx context.Context, id uint) error
	DeleteModulesByCourse(ctx context.Context, courseID uint) error
	ReorderModules(ctx context.Context, courseID uint, orders []ModuleOrder) error
}

// PurchaseRepository handles course ownership records.
type PurchaseRepository interface {
	CreatePurchase(ctx context.Context, purchase *models.Purchase) error
	HasPurchased(ctx context.Context, userID, courseID uint) (bool, error)
	ListPurchasesByUser(ctx context.Context, userID uint) ([]models.Purchase, error)
	ListPurchasesByCourse(ctx context.Context, courseID uint) ([]models.Purchase, error)
	ListAllPurchases(ctx context.Context) ([]models.Purchase, error)
	PurchasedCourseIDs(ctx context.Context, userID uint, courseIDs []uint) (map[uint]bool, error)
	DeletePurchasesByCourse(ctx context.Context, courseID uint) error
}

// CompletionRepository handles per-module completion records.
type CompletionRepository interface {
	MarkCompleted(ctx context.Context, completion *models.Completion) error
	CountCompletions(ctx context.Context, userID, courseID uint) (int64, error)
	CompletedModuleIDs(ctx context.Context, userID, courseID uint) (map[uint]bool, error)
	DeleteCompletionsByModule(ctx context.Context, moduleID uint) error
	DeleteCompletionsByCourse(ctx context.Context, courseID uint) error
}

// BookmarkRepository handles course bookmarks.
type BookmarkRepository interface {
	CreateBookmark(ctx context.Context, bookmark *models.Bookmark) error
	DeleteBookmark(ctx context.Context, userID, courseID uint) error
	IsBookmarked(ctx context.Context, userID, courseID uint) (bool, error)
	ListBookmarksByUser(ctx context.Context, userID uint) ([]models.Bookmark, error)
	DeleteBookmarksByCourse(ctx context.Context, courseID uint) error
}
