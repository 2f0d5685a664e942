package services

import (
	"context"
	"time"

	"github.com/grocademy/course-service/internal/validator"
)

// Pagination describes one page of a listing.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

// UserView is the safe user representation (no password hash).
type UserView struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Balance   int64  `json:"balance"`
}

// AuthResult is the login response payload.
type AuthResult struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// CourseView is the catalog listing entry.
type CourseView struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Instructor   string    `json:"instructor"`
	Description  string    `json:"description"`
	Topics       []string  `json:"topics"`
	Price        int64     `json:"price"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	TotalModules int       `json:"total_modules"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CourseDetail adds per-user state to a course view.
type CourseDetail struct {
	CourseView
	Purchased  bool `json:"purchased"`
	Bookmarked bool `json:"bookmarked"`
}

// CourseListResult is a catalog page.
type CourseListResult struct {
	Courses    []CourseView `json:"courses"`
	Pagination Pagination   `json:"pagination"`
}

// ListCoursesInput carries catalog query parameters plus the requester.
type ListCoursesInput struct {
	Query     string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// ModuleView is a module with the requester's completion state.
type ModuleView struct {
	ID          uint    `json:"id"`
	CourseID    uint    `json:"course_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Order       int     `json:"order"`
	VideoURL    *string `json:"video_url"`
	PDFURL      *string `json:"pdf_url"`
	IsCompleted bool    `json:"is_completed"`
}

// PurchaseResult reports a successful purchase.
type PurchaseResult struct {
	CourseID      uint  `json:"course_id"`
	TransactionID uint  `json:"transaction_id"`
	NewBalance    int64 `json:"new_balance"`
}

// CourseProgressView is the completion snapshot for one user and course.
type CourseProgressView struct {
	TotalModules     int `json:"total_modules"`
	CompletedModules int `json:"completed_modules"`
	Percentage       int `json:"percentage"`
}

// CompletionResult reports a module completion with the updated progress.
type CompletionResult struct {
	ModuleID       uint               `json:"module_id"`
	IsCompleted    bool               `json:"is_completed"`
	CourseProgress CourseProgressView `json:"course_progress"`
	CertificateURL *string            `json:"certificate_url"`
}

// BookmarkToggleResult reports the bookmark state after a toggle.
type BookmarkToggleResult struct {
	CourseID   uint `json:"course_id"`
	Bookmarked bool `json:"bookmarked"`
}

// BookmarkedCourse is a bookmark list entry.
type BookmarkedCourse struct {
	CourseView
	BookmarkedAt time.Time `json:"bookmarked_at"`
}

// UserListResult is an admin user listing page.
type UserListResult struct {
	Users      []UserView `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// AuthService owns registration, login and token-holder lookup.
type AuthService interface {
	Register(ctx context.Context, req *validator.RegisterRequest) (*UserView, error)
	Login(ctx context.Context, req *validator.LoginRequest) (*AuthResult, error)
	Self(ctx context.Context, userID uint) (*UserView, error)
}

// UserService owns admin user management and balance top-ups.
type UserService interface {
	ListUsers(ctx context.Context, query string, page, limit int) (*UserListResult, error)
	GetUser(ctx context.Context, id uint) (*UserView, error)
	UpdateUser(ctx context.Context, id uint, req *validator.UserUpdateRequest) (*UserView, error)
	DeleteUser(ctx context.Context, id uint) error
	TopUp(ctx context.Context, id uint, req *validator.TopUpRequest) (*UserView, error)
}

// CourseService owns the catalog and course administration.
type CourseService interface {
	ListCourses(ctx context.Context, input ListCoursesInput) (*CourseListResult, error)
	GetCourse(ctx context.Context, id, userID uint) (*CourseDetail, error)
	CreateCourse(ctx context.Context, req *validator.CourseCreateRequest) (*CourseView, error)
	UpdateCourse(ctx context.Context, id uint, req *validator.CourseUpdateRequest) (*CourseView, error)
	DeleteCourse(ctx context.Context, id uint) error
}

// ModuleService owns module administration and per-course listings.
type ModuleService interface {
	CreateModule(ctx context.Context, courseID uint, req *validator.ModuleCreateRequest) (*ModuleView, error)
	GetModule(ctx context.Context, id, userID uint) (*ModuleView, error)
	ListModules(ctx context.Context, courseID, userID uint) ([]ModuleView, error)
	UpdateModule(ctx context.Context, id uint, req *validator.ModuleUpdateRequest) (*ModuleView, error)
	DeleteModule(ctx context.Context, id uint) error
	ReorderModules(ctx context.Context, courseID uint, req *validator.ReorderModulesRequest) ([]ModuleView, error)
}

// PurchaseService owns the buy workflow.
type PurchaseService interface {
	Buy(ctx context.Context, courseID, userID uint) (*PurchaseResult, error)
}

// ProgressService owns module completion and progress reads.
type ProgressService interface {
	CompleteModule(ctx context.Context, moduleID, userID uint) (*CompletionResult, error)
	CourseProgress(ctx context.Context, courseID, userID uint) (*CourseProgressView, error)
}

// BookmarkService owns course bookmarks.
type BookmarkService interface {
	Toggle(ctx context.Context, userID, courseID uint) (*BookmarkToggleResult, error)
	ListBookmarks(ctx context.Context, userID uint) ([]BookmarkedCourse, error)
}

// CertificateService renders completion certificates.
type CertificateService interface {
	Generate(ctx context.Context, courseID, userID uint) ([]byte, error)
}

// ReportService produces admin exports.
type ReportService interface {
	ExportPurchases(ctx context.Context, courseID uint) ([]byte, string, error)
}

// ServiceManager aggregates every service for handler wiring.
type ServiceManager interface {
	Auth() AuthService
	Users() UserService
	Courses() CourseService
	Modules() ModuleService
	Purchases() PurchaseService
	Progress() ProgressService
	Bookmarks() BookmarkService
	Certificates() CertificateService
	Reports() ReportService
}
