package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/grocademy/course-service/internal/repositories"
	"github.com/grocademy/course-service/internal/utils"
	"github.com/grocademy/course-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    utils.Logger
}

func NewUserService(repo repositories.Repository, v *validator.Validator, logger utils.Logger) UserService {
	return &userService{repo: repo, validator: v, logger: logger}
}

func (s *userService) ListUsers(ctx context.Context, query string, page, limit int) (*UserListResult, error) {
	page, limit = normalizePage(page, limit)

	users, total, err := s.repo.ListUsers(ctx, repositories.UserFilters{
		Query: query,
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	views := make([]UserView, len(users))
	for i := range users {
		views[i] = newUserView(&users[i])
	}

	return &UserListResult{
		Users:      views,
		Pagination: buildPagination(page, limit, total),
	}, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*UserView, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	view := newUserView(user)
	return &view, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, req *validator.UserUpdateRequest) (*UserView, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.IsAdmin() {
		return nil, ErrAdminImmutable
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}

	view := newUserView(user)
	return &view, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.IsAdmin() {
		return ErrAdminImmutable
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// TopUp credits the user's wallet by a positive increment.
func (s *userService) TopUp(ctx context.Context, id uint, req *validator.TopUpRequest) (*UserView, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.repo.AddBalance(ctx, id, req.Increment)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.logger.Info("balance topped up", "user_id", id, "increment", req.Increment, "balance", user.Balance)

	view := newUserView(user)
	return &view, nil
}
