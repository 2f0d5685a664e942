package services

import (
	"context"
	"errors"

	"github.com/grocademy/course-service/internal/models"
	"github.com/grocademy/course-service/internal/repositories"
	"github.com/grocademy/course-service/internal/utils"
	"github.com/grocademy/course-service/internal/validator"
)

type moduleService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    utils.Logger
	baseURL   string
}

func NewModuleService(repo repositories.Repository, v *validator.Validator, logger utils.Logger, baseURL string) ModuleService {
	return &moduleService{repo: repo, validator: v, logger: logger, baseURL: baseURL}
}

// CreateModule appends or inserts a module. An omitted order lands after
// the current last module; a supplied order that collides with an existing
// one is resolved by appending at the end instead.
func (s *moduleService) CreateModule(ctx context.Context, courseID uint, req *validator.ModuleCreateRequest) (*ModuleView, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.CourseExists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	module := &models.Module{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		VideoPath:   req.VideoPath,
		PDFPath:     req.PDFPath,
	}

	if req.Order != nil {
		module.Order = *req.Order
	} else {
		max, err := s.repo.MaxOrderForCourse(ctx, courseID)
		if err != nil {
			return nil, err
		}
		module.Order = max + 1
	}

	err = s.repo.CreateModule(ctx, module)
	if errors.Is(err, repositories.ErrDuplicate) {
		// Requested position is taken; append at the end.
		max, maxErr := s.repo.MaxOrderForCourse(ctx, courseID)
		if maxErr != nil {
			return nil, maxErr
		}
		module.Order = max + 1
		err = s.repo.CreateModule(ctx, module)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("module created", "module_id", module.ID, "course_id", courseID, "order", module.Order)

	view := newModuleView(module, s.baseURL, false)
	return &view, nil
}

func (s *moduleService) GetModule(ctx context.Context, id, userID uint) (*ModuleView, error) {
	module, err := s.repo.GetModuleByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, err
	}

	completed := false
	if userID != 0 {
		done, err := s.repo.CompletedModuleIDs(ctx, userID, module.CourseID)
		if err != nil {
			return nil, err
		}
		completed = done[module.ID]
	}

	view := newModuleView(module, s.baseURL, completed)
	return &view, nil
}

func (s *moduleService) ListModules(ctx context.Context, courseID, userID uint) ([]ModuleView, error) {
	exists, err := s.repo.CourseExists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	modules, err := s.repo.ListModulesByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	completed := map[uint]bool{}
	if userID != 0 {
		completed, err = s.repo.CompletedModuleIDs(ctx, userID, courseID)
		if err != nil {
			return nil, err
		}
	}

	views := make([]ModuleView, len(modules))
	for i := range modules {
		views[i] = newModuleView(&modules[i], s.baseURL, completed[modules[i].ID])
	}
	return views, nil
}

func (s *moduleService) UpdateModule(ctx context.Context, id uint, req *validator.ModuleUpdateRequest) (*ModuleView, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	module, err := s.repo.GetModuleByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		module.Title = *req.Title
	}
	if req.Description != nil {
		module.Description = *req.Description
	}
	if req.VideoPath != nil {
		module.VideoPath = req.VideoPath
	}
	if req.PDFPath != nil {
		module.PDFPath = req.PDFPath
	}

	if err := s.repo.UpdateModule(ctx, module); err != nil {
		return nil, err
	}

	view := newModuleView(module, s.baseURL, false)
	return &view, nil
}

// DeleteModule removes the module and its completion records atomically.
func (s *moduleService) DeleteModule(ctx context.Context, id uint) error {
	if _, err := s.repo.GetModuleByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrModuleNotFound
		}
		return err
	}

	return s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.DeleteCompletionsByModule(ctx, id); err != nil {
			return err
		}
		return tx.DeleteModule(ctx, id)
	})
}

// ReorderModules applies a complete new ordering. The request must cover
// exactly the modules of the course, each exactly once, with distinct
// positions.
func (s *moduleService) ReorderModules(ctx context.Context, courseID uint, req *validator.ReorderModulesRequest) ([]ModuleView, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.CourseExists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	modules, err := s.repo.ListModulesByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if len(req.ModuleOrder) != len(modules) {
		return nil, ErrReorderMismatch
	}

	belongs := make(map[uint]bool, len(modules))
	for _, m := range modules {
		belongs[m.ID] = true
	}

	seenID := make(map[uint]bool, len(req.ModuleOrder))
	seenOrder := make(map[int]bool, len(req.ModuleOrder))
	orders := make([]repositories.ModuleOrder, len(req.ModuleOrder))
	for i, entry := range req.ModuleOrder {
		if !belongs[entry.ID] || seenID[entry.ID] || seenOrder[entry.Order] {
			return nil, ErrReorderMismatch
		}
		seenID[entry.ID] = true
		seenOrder[entry.Order] = true
		orders[i] = repositories.ModuleOrder{ModuleID: entry.ID, Order: entry.Order}
	}

	if err := s.repo.ReorderModules(ctx, courseID, orders); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReorderMismatch
		}
		return nil, err
	}

	s.logger.Info("modules reordered", "course_id", courseID, "count", len(orders))

	return s.ListModules(ctx, courseID, 0)
}
