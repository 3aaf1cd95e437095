package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	pkg_hash "github.com/Skotchmaster/ecommerce_hub/pkg/hash"
	"github.com/Skotchmaster/ecommerce_hub/pkg/logging"
	"github.com/Skotchmaster/ecommerce_hub/pkg/tokens"
	"github.com/Skotchmaster/ecommerce_hub/pkg/validation"
	"github.com/Skotchmaster/ecommerce_hub/services/auth/internal/domain"
	"github.com/Skotchmaster/ecommerce_hub/services/auth/internal/models"
	"github.com/Skotchmaster/ecommerce_hub/services/auth/internal/repo"
	"github.com/Skotchmaster/ecommerce_hub/services/auth/internal/transport"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// FieldError carries the message shown to the client for a rejected body.
type FieldError struct {
	Reason string
}

func (e *FieldError) Error() string { return e.Reason }
func (e *FieldError) Unwrap() error { return ErrValidation }

const DefaultAccessTTL = 15 * time.Minute

var validate = validation.New()

// dummyHash keeps the response time of unknown emails close to that of a
// wrong password.
var dummyHash, _ = pkg_hash.HashPassword("not-a-real-password")

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	AccessTTL time.Duration
	Now       func() time.Time
}

type LoginResult struct {
	User        models.User
	AccessToken string
	AccessExp   time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*LoginResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", req.Email)

	if err := validate.Struct(req); err != nil {
		return nil, &FieldError{Reason: validation.Describe(err)}
	}

	user, err := s.Repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			pkg_hash.CheckPassword(dummyHash, req.Password)
			l.Warn("login_failed", "status", 401, "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 401, "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}

	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	accessExp := s.now().Add(ttl).UTC()
	accessToken, err := tokens.NewAccessToken(s.JWTSecret, user.ID.String(), user.Role, user.Email, accessExp)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	l.Info("login_successful", "role", user.Role)
	return &LoginResult{User: *user, AccessToken: accessToken, AccessExp: accessExp}, nil
}

// Seed creates the demo accounts that are missing and reports how many were
// added.
func (s *AuthService) Seed(ctx context.Context) (int, error) {
	created := 0
	for _, du := range domain.DemoUsers() {
		pwHash, err := pkg_hash.HashPassword(domain.DemoPassword)
		if err != nil {
			return created, fmt.Errorf("hash password: %w", err)
		}
		u := models.User{FullName: du.FullName, Email: du.Email, PasswordHash: pwHash, Role: du.Role}
		if err := s.Repo.CreateUserIfNotExists(ctx, &u); err != nil {
			if errors.Is(err, repo.ErrUserAlreadyExist) {
				continue
			}
			return created, fmt.Errorf("seed %s: %w", du.Email, err)
		}
		created++
	}
	return created, nil
}
