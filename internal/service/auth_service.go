package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/course-service/internal/auth"
	"github.com/spec-kit/course-service/internal/config"
	"github.com/spec-kit/course-service/internal/domain"
	"github.com/spec-kit/course-service/internal/repository"
	apperrors "github.com/spec-kit/course-service/pkg/util"
)

const invalidCredentialsMsg = "invalid email or password"
const invalidAdminCredentialsMsg = "invalid credentials"

// AuthService coordinates registration, the two login flows, and admin token
// retrieval. User and admin credentials are stored under divergent policies;
// the divergence stays behind the CredentialVerifier implementations.
type AuthService struct {
	users         repository.UserRepository
	admins        repository.AdminRepository
	tokenCache    repository.TokenCache
	tokenMgr      *auth.TokenManager
	userVerifier  auth.CredentialVerifier
	adminVerifier auth.CredentialVerifier
	bcryptCost    int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	AdminRepo  repository.AdminRepository
	TokenCache repository.TokenCache
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:         deps.UserRepo,
		admins:        deps.AdminRepo,
		tokenCache:    deps.TokenCache,
		tokenMgr:      auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLMinutes),
		userVerifier:  auth.PlaintextVerifier{},
		adminVerifier: auth.BcryptVerifier{},
		bcryptCost:    cfg.Auth.BcryptCost,
	}
}

// RegisterUser creates a new end-user account. The email is lowercased so the
// store's uniqueness constraint is case-insensitive; the password is stored
// exactly as supplied.
func (s *AuthService) RegisterUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, apperrors.NewValidationError("username, email, password required", nil)
	}

	user := &domain.User{
		Username: username,
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: password,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewPersistenceError("email already registered", err)
		}
		return nil, apperrors.NewPersistenceError("could not create user", err)
	}
	return user, nil
}

// LoginUser authenticates an end-user and issues a bearer token. The token is
// returned to the caller only, never persisted server-side.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.NewInvalidCredentials(invalidCredentialsMsg)
		}
		return "", time.Time{}, err
	}
	if err := s.userVerifier.Verify(user.Password, password); err != nil {
		return "", time.Time{}, apperrors.NewInvalidCredentials(invalidCredentialsMsg)
	}
	return s.tokenMgr.GenerateToken(user.ID, domain.SubjectTypeUser, "")
}

// LoginAdmin authenticates an administrator. On success the issued token is
// returned, written back onto the admin record as the current token, and
// cached in Redis for the lookup path. A rejected attempt leaves any
// previously stored token untouched.
func (s *AuthService) LoginAdmin(ctx context.Context, username, password string) (string, time.Time, error) {
	admin, err := s.admins.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.NewInvalidCredentials(invalidAdminCredentialsMsg)
		}
		return "", time.Time{}, err
	}
	if err := s.adminVerifier.Verify(admin.PasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewInvalidCredentials(invalidAdminCredentialsMsg)
	}

	token, exp, err := s.tokenMgr.GenerateToken(admin.ID, domain.SubjectTypeAdmin, admin.Username)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := s.admins.UpdateToken(ctx, admin.ID, token); err != nil {
		return "", time.Time{}, apperrors.NewPersistenceError("could not store admin token", err)
	}
	if s.tokenCache != nil {
		// Best effort; the record in postgres remains the source of truth.
		_ = s.tokenCache.Set(ctx, admin.Username, token, time.Until(exp))
	}
	return token, exp, nil
}

// LookupAdminToken returns the last token issued to the named admin without
// re-authenticating. This is a deliberate capability of the design: the stored
// token is the queryable proof of last login.
func (s *AuthService) LookupAdminToken(ctx context.Context, username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", apperrors.NewValidationError("username required", nil)
	}

	if s.tokenCache != nil {
		if token, err := s.tokenCache.Get(ctx, username); err == nil && token != "" {
			return token, nil
		}
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewTokenNotFound()
		}
		return "", err
	}
	if admin.CurrentToken == nil || *admin.CurrentToken == "" {
		return "", apperrors.NewTokenNotFound()
	}
	return *admin.CurrentToken, nil
}

// EnsureAdmin seeds the administrator account from configuration. The hash is
// computed at creation and recomputed only when the configured secret no
// longer matches the stored hash.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		hash, hashErr := auth.HashPassword(password, s.bcryptCost)
		if hashErr != nil {
			return hashErr
		}
		return s.admins.Create(ctx, &domain.Admin{Username: username, PasswordHash: hash})
	}
	if err != nil {
		return err
	}

	if auth.ComparePassword(admin.PasswordHash, password) != nil {
		hash, hashErr := auth.HashPassword(password, s.bcryptCost)
		if hashErr != nil {
			return hashErr
		}
		return s.admins.UpdatePasswordHash(ctx, admin.ID, hash)
	}
	return nil
}

// TokenManager exposes the underlying token manager.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
