package services

import (
	"context"
	"errors"

	"github.com/grocademy/course-service/internal/models"
	"github.com/grocademy/course-service/internal/repositories"
	"github.com/grocademy/course-service/internal/utils"
)

type bookmarkService struct {
	repo    repositories.Repository
	logger  utils.Logger
	baseURL string
}

func NewBookmarkService(repo repositories.Repository, logger utils.Logger, baseURL string) BookmarkService {
	return &bookmarkService{repo: repo, logger: logger, baseURL: baseURL}
}

// Toggle flips the bookmark state for the course and reports the new state.
func (s *bookmarkService) Toggle(ctx context.Context, userID, courseID uint) (*BookmarkToggleResult, error) {
	exists, err := s.repo.CourseExists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	bookmarked, err := s.repo.IsBookmarked(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	if bookmarked {
		if err := s.repo.DeleteBookmark(ctx, userID, courseID); err != nil &&
			!errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return &BookmarkToggleResult{CourseID: courseID, Bookmarked: false}, nil
	}

	bookmark := &models.Bookmark{UserID: userID, CourseID: courseID}
	if err := s.repo.CreateBookmark(ctx, bookmark); err != nil &&
		!errors.Is(err, repositories.ErrDuplicate) {
		return nil, err
	}
	return &BookmarkToggleResult{CourseID: courseID, Bookmarked: true}, nil
}

// ListBookmarks returns the user's bookmarked courses, newest first.
func (s *bookmarkService) ListBookmarks(ctx context.Context, userID uint) ([]BookmarkedCourse, error) {
	bookmarks, err := s.repo.ListBookmarksByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]BookmarkedCourse, 0, len(bookmarks))
	for _, b := range bookmarks {
		course, err := s.repo.GetCourseByID(ctx, b.CourseID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, BookmarkedCourse{
			CourseView:   newCourseView(course, s.baseURL),
			BookmarkedAt: b.CreatedAt,
		})
	}
	return out, nil
}
