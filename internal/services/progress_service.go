package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/grocademy/course-service/internal/events"
	"github.com/grocademy/course-service/internal/models"
	"github.com/grocademy/course-service/internal/repositories"
	"github.com/grocademy/course-service/internal/utils"
)

type progressService struct {
	repo      repositories.Repository
	logger    utils.Logger
	publisher events.EventPublisher
	baseURL   string
}

func NewProgressService(repo repositories.Repository, logger utils.Logger, publisher events.EventPublisher, baseURL string) ProgressService {
	return &progressService{repo: repo, logger: logger, publisher: publisher, baseURL: baseURL}
}

// CompleteModule marks a module done for the user. Repeat calls are
// idempotent; progress counts never exceed the module total.
func (s *progressService) CompleteModule(ctx context.Context, moduleID, userID uint) (*CompletionResult, error) {
	module, err := s.repo.GetModuleByID(ctx, moduleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, err
	}

	owned, err := s.repo.HasPurchased(ctx, userID, module.CourseID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, &PermissionError{UserID: userID, Action: "complete a module of an unpurchased course"}
	}

	completion := &models.Completion{
		UserID:   userID,
		ModuleID: moduleID,
		CourseID: module.CourseID,
	}
	if err := s.repo.MarkCompleted(ctx, completion); err != nil {
		return nil, err
	}

	progress, err := s.courseProgress(ctx, module.CourseID, userID)
	if err != nil {
		return nil, err
	}

	result := &CompletionResult{
		ModuleID:       moduleID,
		IsCompleted:    true,
		CourseProgress: *progress,
	}
	if progress.Percentage == 100 {
		url := s.certificateURL(module.CourseID)
		result.CertificateURL = &url
	}

	publishEvent(ctx, s.publisher, s.logger, events.EventModuleCompleted, &events.ModuleCompletedEvent{
		UserID:     userID,
		ModuleID:   moduleID,
		CourseID:   module.CourseID,
		Percentage: progress.Percentage,
	})
	if progress.Percentage == 100 {
		publishEvent(ctx, s.publisher, s.logger, events.EventCourseCompleted, &events.ModuleCompletedEvent{
			UserID:     userID,
			ModuleID:   moduleID,
			CourseID:   module.CourseID,
			Percentage: 100,
		})
	}

	return result, nil
}

func (s *progressService) CourseProgress(ctx context.Context, courseID, userID uint) (*CourseProgressView, error) {
	exists, err := s.repo.CourseExists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	owned, err := s.repo.HasPurchased(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, &PermissionError{UserID: userID, Action: "view progress of an unpurchased course"}
	}

	return s.courseProgress(ctx, courseID, userID)
}

func (s *progressService) courseProgress(ctx context.Context, courseID, userID uint) (*CourseProgressView, error) {
	total, err := s.repo.CountModulesByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	completed, err := s.repo.CountCompletions(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	return &CourseProgressView{
		TotalModules:     int(total),
		CompletedModules: int(completed),
		Percentage:       progressPercentage(completed, total),
	}, nil
}

func (s *progressService) certificateURL(courseID uint) string {
	return fmt.Sprintf("%s/api/v1/courses/%d/certificate", s.baseURL, courseID)
}
