package services

import (
	"context"
	"errors"

	"gorm.io/datatypes"

	"github.com/grocademy/course-service/internal/events"
	"github.com/grocademy/course-service/internal/models"
	"github.com/grocademy/course-service/internal/repositories"
	"github.com/grocademy/course-service/internal/utils"
	"github.com/grocademy/course-service/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    utils.Logger
	publisher events.EventPublisher
	baseURL   string
}

func NewCourseService(repo repositories.Repository, v *validator.Validator, logger utils.Logger, publisher events.EventPublisher, baseURL string) CourseService {
	return &courseService{
		repo:      repo,
		validator: v,
		logger:    logger,
		publisher: publisher,
		baseURL:   baseURL,
	}
}

func (s *courseService) ListCourses(ctx context.Context, input ListCoursesInput) (*CourseListResult, error) {
	page, limit := normalizePage(input.Page, input.Limit)

	courses, total, err := s.repo.ListCourses(ctx, repositories.CourseFilters{
		Query:     input.Query,
		Page:      page,
		Limit:     limit,
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidSort) {
			return nil, ErrInvalidSortField
		}
		return nil, err
	}

	views := make([]CourseView, len(courses))
	for i := range courses {
		views[i] = newCourseView(&courses[i], s.baseURL)
	}

	return &CourseListResult{
		Courses:    views,
		Pagination: buildPagination(page, limit, total),
	}, nil
}

func (s *courseService) GetCourse(ctx context.Context, id, userID uint) (*CourseDetail, error) {
	course, err := s.repo.GetCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	detail := &CourseDetail{CourseView: newCourseView(course, s.baseURL)}

	if userID != 0 {
		purchased, err := s.repo.HasPurchased(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		bookmarked, err := s.repo.IsBookmarked(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		detail.Purchased = purchased
		detail.Bookmarked = bookmarked
	}

	return detail, nil
}

func (s *courseService) CreateCourse(ctx context.Context, req *validator.CourseCreateRequest) (*CourseView, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	taken, err := s.repo.TitleExists(ctx, req.Title, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateTitle
	}

	course := &models.Course{
		Title:         req.Title,
		Instructor:    req.Instructor,
		Description:   req.Description,
		Price:         req.Price,
		Topics:        datatypes.JSONSlice[string](normalizeTopics(req.Topics)),
		ThumbnailPath: req.Thumbnail,
	}

	if err := s.repo.CreateCourse(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}

	s.logger.Info("course created", "course_id", course.ID, "title", course.Title)
	publishEvent(ctx, s.publisher, s.logger, events.EventCourseCreated, &events.CourseLifecycleEvent{
		CourseID: course.ID,
		Title:    course.Title,
	})

	view := newCourseView(course, s.baseURL)
	return &view, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, id uint, req *validator.CourseUpdateRequest) (*CourseView, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	course, err := s.repo.GetCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if req.Title != nil && *req.Title != course.Title {
		taken, err := s.repo.TitleExists(ctx, *req.Title, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateTitle
		}
		course.Title = *req.Title
	}
	if req.Instructor != nil {
		course.Instructor = *req.Instructor
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.Topics != nil {
		course.Topics = datatypes.JSONSlice[string](normalizeTopics(req.Topics))
	}
	if req.Thumbnail != nil {
		course.ThumbnailPath = req.Thumbnail
	}

	if err := s.repo.UpdateCourse(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}

	publishEvent(ctx, s.publisher, s.logger, events.EventCourseUpdated, &events.CourseLifecycleEvent{
		CourseID: course.ID,
		Title:    course.Title,
	})

	view := newCourseView(course, s.baseURL)
	return &view, nil
}

// DeleteCourse removes the course and all dependent records in one
// transaction, refunding every purchaser what they paid.
func (s *courseService) DeleteCourse(ctx context.Context, id uint) error {
	course, err := s.repo.GetCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCourseNotFound
		}
		return err
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		purchases, err := tx.ListPurchasesByCourse(ctx, id)
		if err != nil {
			return err
		}
		for _, p := range purchases {
			if _, err := tx.AddBalance(ctx, p.UserID, p.PricePaid); err != nil {
				return err
			}
		}

		if err := tx.DeleteCompletionsByCourse(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteBookmarksByCourse(ctx, id); err != nil {
			return err
		}
		if err := tx.DeletePurchasesByCourse(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteModulesByCourse(ctx, id); err != nil {
			return err
		}
		return tx.DeleteCourse(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("course deleted", "course_id", id, "title", course.Title)
	publishEvent(ctx, s.publisher, s.logger, events.EventCourseDeleted, &events.CourseLifecycleEvent{
		CourseID: id,
		Title:    course.Title,
	})

	return nil
}
