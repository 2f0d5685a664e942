package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/grocademy/course-service/internal/cache"
	"github.com/grocademy/course-service/internal/events"
	"github.com/grocademy/course-service/internal/models"
	"github.com/grocademy/course-service/internal/repositories"
	"github.com/grocademy/course-service/internal/repositories/postgres"
	"github.com/grocademy/course-service/internal/utils"
	"github.com/grocademy/course-service/internal/validator"
	"github.com/grocademy/course-service/pkg"
)

var testDBSeq int64

type testEnv struct {
	repo      repositories.Repository
	publisher *events.MockEventPublisher
	logger    utils.Logger
	validator *validator.Validator
}

// newTestEnv builds a service test fixture on an in-memory sqlite database
// with the production schema, a recording event publisher and no Redis.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := pkg.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{
		repo:      postgres.NewRepositoryManager(db, cache.NewCacheManager(nil, 0)).Repository(),
		publisher: events.NewMockEventPublisher(slogger),
		logger:    utils.NewSlogLogger(slogger),
		validator: validator.New(),
	}
}

func (e *testEnv) createUser(t *testing.T, username string, balance int64) *models.User {
	t.Helper()
	user := &models.User{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "not-a-real-hash",
		Role:      models.RoleUser,
		Balance:   balance,
	}
	if err := e.repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func (e *testEnv) createCourse(t *testing.T, title string, price int64, topics ...string) *models.Course {
	t.Helper()
	course := &models.Course{
		Title:       title,
		Instructor:  "Jane Doe",
		Description: "test course",
		Price:       price,
		Topics:      datatypes.JSONSlice[string](topics),
	}
	if err := e.repo.CreateCourse(context.Background(), course); err != nil {
		t.Fatalf("failed to create course %s: %v", title, err)
	}
	return course
}

func (e *testEnv) addModules(t *testing.T, courseID uint, count int) []models.Module {
	t.Helper()
	modules := make([]models.Module, count)
	for i := 0; i < count; i++ {
		m := models.Module{
			CourseID:    courseID,
			Title:       fmt.Sprintf("Module %d", i+1),
			Description: "test module",
			Order:       i + 1,
		}
		if err := e.repo.CreateModule(context.Background(), &m); err != nil {
			t.Fatalf("failed to create module %d: %v", i+1, err)
		}
		modules[i] = m
	}
	return modules
}

func (e *testEnv) buy(t *testing.T, courseID, userID uint) *PurchaseResult {
	t.Helper()
	result, err := NewPurchaseService(e.repo, e.logger, e.publisher).Buy(context.Background(), courseID, userID)
	if err != nil {
		t.Fatalf("failed to buy course %d: %v", courseID, err)
	}
	return result
}

func (e *testEnv) eventsOfType(eventType string) []*events.Event {
	var out []*events.Event
	for _, ev := range e.publisher.GetPublishedEvents() {
		if ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}
