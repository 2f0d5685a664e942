package services

import (
	"github.com/grocademy/course-service/internal/certificate"
	"github.com/grocademy/course-service/internal/config"
	"github.com/grocademy/course-service/internal/events"
	"github.com/grocademy/course-service/internal/repositories"
	"github.com/grocademy/course-service/internal/utils"
	"github.com/grocademy/course-service/internal/validator"
)

type serviceManager struct {
	auth         AuthService
	users        UserService
	courses      CourseService
	modules      ModuleService
	purchases    PurchaseService
	progress     ProgressService
	bookmarks    BookmarkService
	certificates CertificateService
	reports      ReportService
}

// NewServiceManager wires every service with its dependencies.
func NewServiceManager(
	repo repositories.Repository,
	v *validator.Validator,
	logger utils.Logger,
	publisher events.EventPublisher,
	renderer certificate.Renderer,
	cfg *config.Config,
) ServiceManager {
	return &serviceManager{
		auth:         NewAuthService(repo, v, logger, cfg.JWTSecret, cfg.TokenTTL),
		users:        NewUserService(repo, v, logger),
		courses:      NewCourseService(repo, v, logger, publisher, cfg.BaseURL),
		modules:      NewModuleService(repo, v, logger, cfg.BaseURL),
		purchases:    NewPurchaseService(repo, logger, publisher),
		progress:     NewProgressService(repo, logger, publisher, cfg.BaseURL),
		bookmarks:    NewBookmarkService(repo, logger, cfg.BaseURL),
		certificates: NewCertificateService(repo, logger, renderer),
		reports:      NewReportService(repo, logger),
	}
}

func (m *serviceManager) Auth() AuthService                { return m.auth }
func (m *serviceManager) Users() UserService               { return m.users }
func (m *serviceManager) Courses() CourseService           { return m.courses }
func (m *serviceManager) Modules() ModuleService           { return m.modules }
func (m *serviceManager) Purchases() PurchaseService       { return m.purchases }
func (m *serviceManager) Progress() ProgressService        { return m.progress }
func (m *serviceManager) Bookmarks() BookmarkService       { return m.bookmarks }
func (m *serviceManager) Certificates() CertificateService { return m.certificates }
func (m *serviceManager) Reports() ReportService           { return m.reports }
