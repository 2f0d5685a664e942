package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/grocademy/course-service/internal/models"
	"github.com/grocademy/course-service/internal/repositories"
	"github.com/grocademy/course-service/internal/utils"
	"github.com/grocademy/course-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    utils.Logger
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo repositories.Repository, v *validator.Validator, logger utils.Logger, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		repo:      repo,
		validator: v,
		logger:    logger,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, req *validator.RegisterRequest) (*UserView, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
		Role:      models.RoleUser,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)

	view := newUserView(user)
	return &view, nil
}

func (s *authService) Login(ctx context.Context, req *validator.LoginRequest) (*AuthResult, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := IssueToken(s.jwtSecret, s.tokenTTL, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return &AuthResult{
		Token: token,
		User:  newUserView(user),
	}, nil
}

func (s *authService) Self(ctx context.Context, userID uint) (*UserView, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	view := newUserView(user)
	return &view, nil
}
