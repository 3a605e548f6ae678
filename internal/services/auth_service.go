package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/collegeconnect/backend/internal/api/middleware"
	"github.com/collegeconnect/backend/internal/models"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
	"github.com/collegeconnect/backend/internal/utils"
)

// AuthConfig carries the token signing material and lifetimes.
type AuthConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func DefaultAuthConfig(secret string) AuthConfig {
	return AuthConfig{
		Secret:     secret,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 30 * 24 * time.Hour,
	}
}

type LoginRequest struct {
	Login     string // email or username
	Password  string
	Subdomain string // empty = super-admin login
}

type RecoverPasswordRequest struct {
	Login       string
	Subdomain   string
	DOB         string // YYYY-MM-DD
	NewPassword string
}

// AuthResult is a fresh token pair plus the authenticated account.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *models.User
}

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	// Refresh issues a new access token. The presented refresh token must
	// match the one on record and stays valid until logout or the next login.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Logout looks up the session by the presented refresh token and clears
	// it. A token that matches no session is a no-op.
	Logout(ctx context.Context, refreshToken string) error
	RecoverPassword(ctx context.Context, req RecoverPasswordRequest) error
	// BootstrapSuperAdmin creates the first SUPER_ADMIN account unless one
	// already exists.
	BootstrapSuperAdmin(ctx context.Context, username, email, password string) error
}

type authService struct {
	users    pgrepo.UserRepository
	colleges pgrepo.CollegeRepository
	cfg      AuthConfig
}

func NewAuthService(users pgrepo.UserRepository, colleges pgrepo.CollegeRepository, cfg AuthConfig) AuthService {
	return &authService{users: users, colleges: colleges, cfg: cfg}
}

const invalidCredentials = "Invalid credentials."

func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	const op = "AuthService.Login"

	if req.Login == "" || req.Password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, invalidCredentials, nil)
	}

	var collegeID *string
	superOnly := req.Subdomain == ""
	if !superOnly {
		college, err := s.colleges.FindBySubdomain(ctx, req.Subdomain)
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "College not found.", nil)
		}
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to resolve college", err)
		}
		collegeID = &college.ID
	}

	user, err := s.users.FindByLogin(ctx, req.Login, collegeID, superOnly)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "User not found.", nil)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to look up account", err)
	}

	if err := utils.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, invalidCredentials, nil)
	}

	return s.issuePair(ctx, op, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	const op = "AuthService.Refresh"

	if refreshToken == "" {
		return "", utils.E(utils.CodeUnauthorized, op, "refresh token is required", nil)
	}

	claims := &middleware.AccessClaims{}
	tok, err := jwt.ParseWithClaims(refreshToken, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid || claims.UserID == "" {
		return "", utils.E(utils.CodeUnauthorized, op, "invalid refresh token", err)
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, utils.ErrNotFound) {
		return "", utils.E(utils.CodeUnauthorized, op, "invalid refresh token", nil)
	}
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to look up account", err)
	}

	// a logout or a later login invalidates the stored token
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return "", utils.E(utils.CodeForbidden, op, "invalid refresh token", nil)
	}

	access, err := s.signToken(user, s.cfg.AccessTTL)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to sign access token", err)
	}
	return access, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	const op = "AuthService.Logout"

	if refreshToken == "" {
		return nil
	}
	user, err := s.users.FindByRefreshToken(ctx, refreshToken)
	if errors.Is(err, utils.ErrNotFound) {
		return nil
	}
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to look up session", err)
	}
	if err := s.users.UpdateRefreshToken(ctx, user.ID, nil); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to clear session", err)
	}
	return nil
}

func (s *authService) RecoverPassword(ctx context.Context, req RecoverPasswordRequest) error {
	const op = "AuthService.RecoverPassword"

	if req.Login == "" || req.DOB == "" || req.NewPassword == "" {
		return utils.E(utils.CodeInvalidArgument, op, "login, dob and newPassword are required", nil)
	}

	var collegeID *string
	superOnly := req.Subdomain == ""
	if !superOnly {
		college, err := s.colleges.FindBySubdomain(ctx, req.Subdomain)
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "College not found.", nil)
		}
		if err != nil {
			return utils.E(utils.CodeInternal, op, "failed to resolve college", err)
		}
		collegeID = &college.ID
	}

	user, err := s.users.FindByLogin(ctx, req.Login, collegeID, superOnly)
	if errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeNotFound, op, "User not found.", nil)
	}
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to look up account", err)
	}

	if user.DOB == nil || time.Time(*user.DOB).Format("2006-01-02") != req.DOB {
		return utils.E(utils.CodeInvalidArgument, op, "Invalid Date of Birth.", nil)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to update password", err)
	}
	// a recovered account starts with no active session
	if err := s.users.UpdateRefreshToken(ctx, user.ID, nil); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to clear session", err)
	}
	return nil
}

func (s *authService) BootstrapSuperAdmin(ctx context.Context, username, email, password string) error {
	const op = "AuthService.BootstrapSuperAdmin"

	exists, err := s.users.HasSuperAdmin(ctx)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to check for super admin", err)
	}
	if exists {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}
	u := &models.User{
		Username:     username,
		Role:         models.RoleSuperAdmin,
		PasswordHash: hash,
	}
	if email != "" {
		u.Email = &email
	}
	if err := s.users.Create(ctx, u); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to create super admin", err)
	}
	return nil
}

func (s *authService) issuePair(ctx context.Context, op string, user *models.User) (*AuthResult, error) {
	access, err := s.signToken(user, s.cfg.AccessTTL)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to sign access token", err)
	}
	refresh, err := s.signToken(user, s.cfg.RefreshTTL)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to sign refresh token", err)
	}
	if err := s.users.UpdateRefreshToken(ctx, user.ID, &refresh); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store refresh token", err)
	}
	user.RefreshToken = &refresh
	return &AuthResult{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

func (s *authService) signToken(user *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := middleware.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
		CollegeID: user.CollegeID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}
