package services

import (
	"context"
	"errors"
	"testing"

	"github.com/grocademy/course-service/internal/events"
	"github.com/grocademy/course-service/internal/models"
)

func TestBuyDebitsBalanceAndRecordsOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice", 100)
	course := env.createCourse(t, "Go Basics", 60)

	svc := NewPurchaseService(env.repo, env.logger, env.publisher)
	result, err := svc.Buy(ctx, course.ID, user.ID)
	if err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	if result.NewBalance != 40 {
		t.Errorf("new balance = %d, want 40", result.NewBalance)
	}
	if result.CourseID != course.ID {
		t.Errorf("course id = %d, want %d", result.CourseID, course.ID)
	}
	if result.TransactionID == 0 {
		t.Error("transaction id not set")
	}

	owned, err := env.repo.HasPurchased(ctx, user.ID, course.ID)
	if err != nil {
		t.Fatalf("HasPurchased failed: %v", err)
	}
	if !owned {
		t.Error("purchase record missing")
	}

	if got := env.eventsOfType(events.EventCoursePurchased); len(got) != 1 {
		t.Errorf("published %d purchase events, want 1", len(got))
	}
}

func TestBuyTwiceReturnsAlreadyPurchased(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "bob", 200)
	course := env.createCourse(t, "Go Basics", 50)

	svc := NewPurchaseService(env.repo, env.logger, env.publisher)
	if _, err := svc.Buy(ctx, course.ID, user.ID); err != nil {
		t.Fatalf("first Buy failed: %v", err)
	}

	_, err := svc.Buy(ctx, course.ID, user.ID)
	if !errors.Is(err, ErrAlreadyPurchased) {
		t.Fatalf("second Buy error = %v, want ErrAlreadyPurchased", err)
	}

	// The failed attempt must not touch the balance.
	fresh, err := env.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if fresh.Balance != 150 {
		t.Errorf("balance = %d, want 150", fresh.Balance)
	}
}

func TestBuyInsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "carol", 30)
	course := env.createCourse(t, "Expensive Course", 100)

	svc := NewPurchaseService(env.repo, env.logger, env.publisher)
	_, err := svc.Buy(ctx, course.ID, user.ID)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("Buy error = %v, want ErrInsufficientBalance", err)
	}

	fresh, err := env.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if fresh.Balance != 30 {
		t.Errorf("balance = %d, want 30 (unchanged)", fresh.Balance)
	}

	owned, err := env.repo.HasPurchased(ctx, user.ID, course.ID)
	if err != nil {
		t.Fatalf("HasPurchased failed: %v", err)
	}
	if owned {
		t.Error("purchase record created despite failed debit")
	}
}

func TestBuyUnknownCourse(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "dave", 100)

	svc := NewPurchaseService(env.repo, env.logger, env.publisher)
	_, err := svc.Buy(context.Background(), 9999, user.ID)
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("Buy error = %v, want ErrCourseNotFound", err)
	}
}

func TestBuyRemovesBookmark(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "erin", 100)
	course := env.createCourse(t, "Go Basics", 20)

	bookmark := &models.Bookmark{UserID: user.ID, CourseID: course.ID}
	if err := env.repo.CreateBookmark(ctx, bookmark); err != nil {
		t.Fatalf("CreateBookmark failed: %v", err)
	}

	env.buy(t, course.ID, user.ID)

	bookmarked, err := env.repo.IsBookmarked(ctx, user.ID, course.ID)
	if err != nil {
		t.Fatalf("IsBookmarked failed: %v", err)
	}
	if bookmarked {
		t.Error("bookmark survived the purchase")
	}
}

func TestBuyFreeCourse(t *testing.T) {
	env := newTestEnv(t)

	user := env.createUser(t, "frank", 0)
	course := env.createCourse(t, "Free Intro", 0)

	result := env.buy(t, course.ID, user.ID)
	if result.NewBalance != 0 {
		t.Errorf("new balance = %d, want 0", result.NewBalance)
	}
}

func TestBuySequenceWalksBalanceDown(t *testing.T) {
	env := newTestEnv(t)

	user := env.createUser(t, "grace", 150)
	first := env.createCourse(t, "Course One", 40)
	second := env.createCourse(t, "Course Two", 60)

	if result := env.buy(t, first.ID, user.ID); result.NewBalance != 110 {
		t.Errorf("balance after first buy = %d, want 110", result.NewBalance)
	}
	if result := env.buy(t, second.ID, user.ID); result.NewBalance != 50 {
		t.Errorf("balance after second buy = %d, want 50", result.NewBalance)
	}
}
