package services

import (
	"context"
	"errors"

	"github.com/grocademy/course-service/internal/events"
	"github.com/grocademy/course-service/internal/models"
	"github.com/grocademy/course-service/internal/repositories"
	"github.com/grocademy/course-service/internal/utils"
)

type purchaseService struct {
	repo      repositories.Repository
	logger    utils.Logger
	publisher events.EventPublisher
}

func NewPurchaseService(repo repositories.Repository, logger utils.Logger, publisher events.EventPublisher) PurchaseService {
	return &purchaseService{repo: repo, logger: logger, publisher: publisher}
}

// Buy purchases a course for the user. Debit, ownership insert and
// bookmark cleanup commit or roll back together; the unique
// (user, course) constraint backstops the pre-check against concurrent
// double purchases.
func (s *purchaseService) Buy(ctx context.Context, courseID, userID uint) (*PurchaseResult, error) {
	course, err := s.repo.GetCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	owned, err := s.repo.HasPurchased(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, ErrAlreadyPurchased
	}

	var (
		purchase   models.Purchase
		newBalance int64
	)

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		balance, err := tx.DebitBalance(ctx, userID, course.Price)
		if err != nil {
			switch {
			case errors.Is(err, repositories.ErrInsufficientFunds):
				return ErrInsufficientBalance
			case errors.Is(err, repositories.ErrNotFound):
				return ErrUserNotFound
			}
			return err
		}
		newBalance = balance

		purchase = models.Purchase{
			UserID:    userID,
			CourseID:  courseID,
			PricePaid: course.Price,
		}
		if err := tx.CreatePurchase(ctx, &purchase); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return ErrAlreadyPurchased
			}
			return err
		}

		// A bookmark on a now-owned course is stale; absence is fine.
		if err := tx.DeleteBookmark(ctx, userID, courseID); err != nil &&
			!errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("course purchased",
		"user_id", userID,
		"course_id", courseID,
		"transaction_id", purchase.ID,
		"price_paid", purchase.PricePaid)

	publishEvent(ctx, s.publisher, s.logger, events.EventCoursePurchased, &events.CoursePurchasedEvent{
		UserID:        userID,
		CourseID:      courseID,
		TransactionID: purchase.ID,
		PricePaid:     purchase.PricePaid,
		NewBalance:    newBalance,
	})

	return &PurchaseResult{
		CourseID:      courseID,
		TransactionID: purchase.ID,
		NewBalance:    newBalance,
	}, nil
}
