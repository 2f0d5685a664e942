package services

import (
	"context"
	"errors"
	"time"

	"github.com/grocademy/course-service/internal/certificate"
	"github.com/grocademy/course-service/internal/repositories"
	"github.com/grocademy/course-service/internal/utils"
)

type certificateService struct {
	repo     repositories.Repository
	logger   utils.Logger
	renderer certificate.Renderer
}

func NewCertificateService(repo repositories.Repository, logger utils.Logger, renderer certificate.Renderer) CertificateService {
	return &certificateService{repo: repo, logger: logger, renderer: renderer}
}

// Generate renders the completion certificate. Eligibility requires the
// user to own the course and to have completed every module of a course
// that has at least one.
func (s *certificateService) Generate(ctx context.Context, courseID, userID uint) ([]byte, error) {
	course, err := s.repo.GetCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	owned, err := s.repo.HasPurchased(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, &PermissionError{UserID: userID, Action: "request a certificate for an unpurchased course"}
	}

	total, err := s.repo.CountModulesByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	completed, err := s.repo.CountCompletions(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if total == 0 || completed < total {
		return nil, &PermissionError{UserID: userID, Action: "request a certificate before completing the course"}
	}

	png, err := s.renderer.Render(certificate.Data{
		LearnerName:    user.FullName(),
		CourseTitle:    course.Title,
		Instructor:     course.Instructor,
		CompletionDate: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("certificate generated", "user_id", userID, "course_id", courseID)
	return png, nil
}
