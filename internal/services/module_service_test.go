package services

import (
	"context"
	"errors"
	"testing"

	"github.com/grocademy/course-service/internal/validator"
)

func newModuleSvc(env *testEnv) ModuleService {
	return NewModuleService(env.repo, env.validator, env.logger, "http://localhost:8080")
}

func intPtr(v int) *int { return &v }

func TestCreateModuleAppendsWhenOrderOmitted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.createCourse(t, "Go Basics", 10)
	env.addModules(t, course.ID, 2)

	svc := newModuleSvc(env)
	module, err := svc.CreateModule(ctx, course.ID, &validator.ModuleCreateRequest{
		Title:       "Closing Thoughts",
		Description: "desc",
	})
	if err != nil {
		t.Fatalf("CreateModule failed: %v", err)
	}
	if module.Order != 3 {
		t.Errorf("order = %d, want 3", module.Order)
	}
}

func TestCreateModuleCollidingOrderAppendsAtEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.createCourse(t, "Go Basics", 10)
	env.addModules(t, course.ID, 2)

	svc := newModuleSvc(env)
	module, err := svc.CreateModule(ctx, course.ID, &validator.ModuleCreateRequest{
		Title:       "Interloper",
		Description: "desc",
		Order:       intPtr(2),
	})
	if err != nil {
		t.Fatalf("CreateModule failed: %v", err)
	}
	if module.Order != 3 {
		t.Errorf("order = %d, want 3 (appended past the collision)", module.Order)
	}

	modules, err := svc.ListModules(ctx, course.ID, 0)
	if err != nil {
		t.Fatalf("ListModules failed: %v", err)
	}
	if len(modules) != 3 {
		t.Fatalf("got %d modules, want 3", len(modules))
	}
	for i, m := range modules {
		if m.Order != i+1 {
			t.Errorf("module %d order = %d, want %d", i, m.Order, i+1)
		}
	}
}

func TestCreateModuleUnknownCourse(t *testing.T) {
	env := newTestEnv(t)
	svc := newModuleSvc(env)

	_, err := svc.CreateModule(context.Background(), 9999, &validator.ModuleCreateRequest{
		Title:       "Orphan",
		Description: "desc",
	})
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("CreateModule error = %v, want ErrCourseNotFound", err)
	}
}

func TestReorderModules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.createCourse(t, "Go Basics", 10)
	modules := env.addModules(t, course.ID, 3)

	svc := newModuleSvc(env)
	result, err := svc.ReorderModules(ctx, course.ID, &validator.ReorderModulesRequest{
		ModuleOrder: []validator.ModuleOrderEntry{
			{ID: modules[0].ID, Order: 3},
			{ID: modules[1].ID, Order: 1},
			{ID: modules[2].ID, Order: 2},
		},
	})
	if err != nil {
		t.Fatalf("ReorderModules failed: %v", err)
	}

	if len(result) != 3 {
		t.Fatalf("got %d modules, want 3", len(result))
	}
	want := []uint{modules[1].ID, modules[2].ID, modules[0].ID}
	for i, m := range result {
		if m.ID != want[i] {
			t.Errorf("position %d has module %d, want %d", i+1, m.ID, want[i])
		}
	}
}

func TestReorderModulesMismatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.createCourse(t, "Go Basics", 10)
	other := env.createCourse(t, "Other Course", 10)
	modules := env.addModules(t, course.ID, 2)
	foreign := env.addModules(t, other.ID, 1)

	svc := newModuleSvc(env)

	cases := []struct {
		name    string
		entries []validator.ModuleOrderEntry
	}{
		{"incomplete set", []validator.ModuleOrderEntry{
			{ID: modules[0].ID, Order: 1},
		}},
		{"foreign module", []validator.ModuleOrderEntry{
			{ID: modules[0].ID, Order: 1},
			{ID: foreign[0].ID, Order: 2},
		}},
		{"duplicate module", []validator.ModuleOrderEntry{
			{ID: modules[0].ID, Order: 1},
			{ID: modules[0].ID, Order: 2},
		}},
		{"duplicate order", []validator.ModuleOrderEntry{
			{ID: modules[0].ID, Order: 1},
			{ID: modules[1].ID, Order: 1},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ReorderModules(ctx, course.ID, &validator.ReorderModulesRequest{
				ModuleOrder: tc.entries,
			})
			if !errors.Is(err, ErrReorderMismatch) {
				t.Fatalf("error = %v, want ErrReorderMismatch", err)
			}
		})
	}
}

func TestDeleteModuleRemovesCompletions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice", 100)
	course := env.createCourse(t, "Go Basics", 10)
	modules := env.addModules(t, course.ID, 2)
	env.buy(t, course.ID, user.ID)

	progressSvc := NewProgressService(env.repo, env.logger, env.publisher, "http://localhost:8080")
	if _, err := progressSvc.CompleteModule(ctx, modules[0].ID, user.ID); err != nil {
		t.Fatalf("CompleteModule failed: %v", err)
	}

	svc := newModuleSvc(env)
	if err := svc.DeleteModule(ctx, modules[0].ID); err != nil {
		t.Fatalf("DeleteModule failed: %v", err)
	}

	count, err := env.repo.CountCompletions(ctx, user.ID, course.ID)
	if err != nil {
		t.Fatalf("CountCompletions failed: %v", err)
	}
	if count != 0 {
		t.Errorf("completions = %d, want 0 after module deletion", count)
	}

	total, err := env.repo.CountModulesByCourse(ctx, course.ID)
	if err != nil {
		t.Fatalf("CountModulesByCourse failed: %v", err)
	}
	if total != 1 {
		t.Errorf("modules = %d, want 1", total)
	}
}

func TestListModulesMarksCompleted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "bob", 100)
	course := env.createCourse(t, "Go Basics", 10)
	modules := env.addModules(t, course.ID, 2)
	env.buy(t, course.ID, user.ID)

	progressSvc := NewProgressService(env.repo, env.logger, env.publisher, "http://localhost:8080")
	if _, err := progressSvc.CompleteModule(ctx, modules[0].ID, user.ID); err != nil {
		t.Fatalf("CompleteModule failed: %v", err)
	}

	svc := newModuleSvc(env)
	views, err := svc.ListModules(ctx, course.ID, user.ID)
	if err != nil {
		t.Fatalf("ListModules failed: %v", err)
	}
	if !views[0].IsCompleted || views[1].IsCompleted {
		t.Errorf("completion flags = %v/%v, want true/false", views[0].IsCompleted, views[1].IsCompleted)
	}
}
