package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/grocademy/course-service/internal/cache"
	"github.com/grocademy/course-service/internal/models"
	"github.com/grocademy/course-service/internal/repositories"
	"github.com/grocademy/course-service/pkg"
)

var repoTestSeq int64

// newRepoTestEnv builds a repository over in-memory sqlite with the
// production schema, backed by a miniredis cache so key contents and
// expirations can be inspected directly.
func newRepoTestEnv(t *testing.T, catalogTTL time.Duration) (repositories.Repository, *miniredis.Miniredis) {
	t.Helper()

	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", atomic.AddInt64(&repoTestSeq, 1))
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

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRepositoryManager(db, cache.NewCacheManager(client, catalogTTL)).Repository(), mr
}

func catalogKeys(mr *miniredis.Miniredis) []string {
	var keys []string
	for _, k := range mr.Keys() {
		if strings.HasPrefix(k, "catalog:list:") {
			keys = append(keys, k)
		}
	}
	return keys
}

func TestListCoursesCacheHonorsConfiguredTTL(t *testing.T) {
	repo, mr := newRepoTestEnv(t, 45*time.Minute)
	ctx := context.Background()

	course := &models.Course{Title: "Go Basics", Instructor: "Jane Doe", Price: 100}
	if err := repo.CreateCourse(ctx, course); err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}

	if _, _, err := repo.ListCourses(ctx, repositories.CourseFilters{Page: 1, Limit: 10}); err != nil {
		t.Fatalf("ListCourses failed: %v", err)
	}

	keys := catalogKeys(mr)
	if len(keys) != 1 {
		t.Fatalf("catalog keys = %v, want exactly one listing entry", keys)
	}
	if ttl := mr.TTL(keys[0]); ttl != 45*time.Minute {
		t.Errorf("cached listing TTL = %v, want 45m", ttl)
	}
}

func TestListCoursesCacheKeyNormalizesQuery(t *testing.T) {
	repo, mr := newRepoTestEnv(t, 0)
	ctx := context.Background()

	course := &models.Course{Title: "Advanced Go", Instructor: "Jane Doe", Price: 100}
	if err := repo.CreateCourse(ctx, course); err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}

	// Case and surrounding whitespace variants of the same search must
	// land on one cache entry.
	for _, q := range []string{"Go", "go", "  GO "} {
		courses, _, err := repo.ListCourses(ctx, repositories.CourseFilters{Query: q, Page: 1, Limit: 10})
		if err != nil {
			t.Fatalf("ListCourses(%q) failed: %v", q, err)
		}
		if len(courses) != 1 {
			t.Errorf("ListCourses(%q) = %d courses, want 1", q, len(courses))
		}
	}

	if keys := catalogKeys(mr); len(keys) != 1 {
		t.Errorf("catalog keys = %v, want one shared entry for all query variants", keys)
	}
}

func TestCreateCourseRejectsTitleDifferingOnlyInCase(t *testing.T) {
	repo, _ := newRepoTestEnv(t, 0)
	ctx := context.Background()

	first := &models.Course{Title: "Go Basics", Instructor: "Jane Doe", Price: 100}
	if err := repo.CreateCourse(ctx, first); err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}

	second := &models.Course{Title: "go basics", Instructor: "John Smith", Price: 50}
	if err := repo.CreateCourse(ctx, second); !errors.Is(err, repositories.ErrDuplicate) {
		t.Fatalf("CreateCourse with case variant = %v, want ErrDuplicate", err)
	}

	exists, err := repo.TitleExists(ctx, "  GO BASICS  ", 0)
	if err != nil {
		t.Fatalf("TitleExists failed: %v", err)
	}
	if !exists {
		t.Error("TitleExists = false for case variant, want true")
	}
}

func TestModuleListCachedAndInvalidatedOnMutation(t *testing.T) {
	repo, mr := newRepoTestEnv(t, 0)
	ctx := context.Background()

	course := &models.Course{Title: "Go Basics", Instructor: "Jane Doe", Price: 100}
	if err := repo.CreateCourse(ctx, course); err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}
	module := &models.Module{CourseID: course.ID, Title: "Intro", Order: 1}
	if err := repo.CreateModule(ctx, module); err != nil {
		t.Fatalf("CreateModule failed: %v", err)
	}

	if _, err := repo.ListModulesByCourse(ctx, course.ID); err != nil {
		t.Fatalf("ListModulesByCourse failed: %v", err)
	}
	moduleKey := fmt.Sprintf("course:modules:%d", course.ID)
	if !mr.Exists(moduleKey) {
		t.Fatalf("module list not cached under %s", moduleKey)
	}

	module.Title = "Introduction"
	if err := repo.UpdateModule(ctx, module); err != nil {
		t.Fatalf("UpdateModule failed: %v", err)
	}
	if mr.Exists(moduleKey) {
		t.Fatalf("%s survived a module update", moduleKey)
	}

	modules, err := repo.ListModulesByCourse(ctx, course.ID)
	if err != nil {
		t.Fatalf("ListModulesByCourse failed: %v", err)
	}
	if len(modules) != 1 || modules[0].Title != "Introduction" {
		t.Errorf("modules after update = %+v, want the renamed module", modules)
	}
}
