package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/grocademy/course-service/internal/validator"
)

const testSecret = "test-secret"

func newAuthSvc(env *testEnv) AuthService {
	return NewAuthService(env.repo, env.validator, env.logger, testSecret, time.Hour)
}

func registerReq(username string) *validator.RegisterRequest {
	return &validator.RegisterRequest{
		Email:           username + "@example.com",
		Username:        username,
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Password:        "correct horse",
		ConfirmPassword: "correct horse",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthSvc(env)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("ada"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Role != "user" {
		t.Errorf("role = %q, want user", user.Role)
	}
	if user.Balance != 0 {
		t.Errorf("balance = %d, want 0", user.Balance)
	}

	// Login works with the username and with the email.
	for _, identifier := range []string{"ada", "ada@example.com"} {
		result, err := svc.Login(ctx, &validator.LoginRequest{
			Identifier: identifier,
			Password:   "correct horse",
		})
		if err != nil {
			t.Fatalf("Login(%q) failed: %v", identifier, err)
		}
		if result.Token == "" {
			t.Error("empty token")
		}

		claims, err := ParseToken(testSecret, result.Token)
		if err != nil {
			t.Fatalf("ParseToken failed: %v", err)
		}
		if claims.UserID != user.ID || claims.Role != "user" {
			t.Errorf("claims = %d/%s, want %d/user", claims.UserID, claims.Role, user.ID)
		}
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthSvc(env)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq("ada")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Login(ctx, &validator.LoginRequest{Identifier: "ada", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login error = %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.Login(ctx, &validator.LoginRequest{Identifier: "nobody", Password: "whatever"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateAccount(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthSvc(env)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq("ada")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Register(ctx, registerReq("ada"))
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("Register error = %v, want ErrDuplicateAccount", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthSvc(env)

	req := registerReq("ada")
	req.ConfirmPassword = "something else"

	_, err := svc.Register(context.Background(), req)
	var validationErr *validator.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Register error = %v, want *validator.ValidationError", err)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	svc := NewAuthService(env.repo, env.validator, env.logger, testSecret, -time.Minute)
	if _, err := svc.Register(ctx, registerReq("ada")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	result, err := svc.Login(ctx, &validator.LoginRequest{Identifier: "ada", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := ParseToken(testSecret, result.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("ParseToken error = %v, want ErrUnauthorized", err)
	}
}
