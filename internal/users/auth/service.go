// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/taibuivan/voxmundi/internal/platform/apperr"
	"github.com/taibuivan/voxmundi/internal/platform/sec"
	"github.com/taibuivan/voxmundi/internal/platform/validate"
	"github.com/taibuivan/voxmundi/pkg/uuid"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// # Contracts & Types

// TokenProvider signs access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

type txManager interface {
	RunInTx(ctx stdctx.Context, fn func(ctx stdctx.Context) error) error
}

// Service implements registration, login and session rotation.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenProvider
	tx       txManager
	logger   *slog.Logger
}

// NewService constructs an auth [Service].
func NewService(users UserRepository, sessions SessionRepository, tokens TokenProvider, tx txManager, logger *slog.Logger) *Service {
	return &Service{users: users, sessions: sessions, tokens: tokens, tx: tx, logger: logger}
}

// # Registration Flow

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

/*
Register validates, hashes and persists a new account.

Returns:
  - *User: The created account
  - error: Validation failure, or Conflict when the username or email is taken
*/
func (service *Service) Register(context stdctx.Context, input RegisterInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Custom(FieldUsername, input.Username != "" && !usernamePattern.MatchString(input.Username), "Only letters, digits, dot, dash and underscore are allowed").
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Custom(FieldPassword, len(input.Password) > sec.MaxPasswordBytes, "Must be at most 72 bytes").
		MaxLen(FieldDisplayName, input.DisplayName, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_hash_failed: %w", err))
	}

	if input.DisplayName == "" {
		input.DisplayName = input.Username
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
		Role:         sec.RoleMember,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return user, nil
}

// # Authentication Flow

// LoginInput holds the credentials of a login attempt.
type LoginInput struct {
	Login     string // Username or email
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession is an established session ready for transport.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login checks credentials and opens a session.

Returns:
  - *LoginSession: Tokens and the account
  - error: Unauthorized with one generic message for every credential failure
*/
func (service *Service) Login(context stdctx.Context, input LoginInput) (*LoginSession, error) {
	validator := &validate.Validator{}
	validator.Required(FieldLogin, input.Login).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByLogin(context, strings.TrimSpace(input.Login))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, err
	}

	if !user.IsActive || !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, err := service.openSession(context, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := service.users.TouchLastLogin(context, user.ID, now); err != nil {
		service.logger.Warn("last_login_update_failed", slog.String("user_id", user.ID), slog.Any("error", err))
	} else {
		user.LastLoginAt = &now
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))
	return session, nil
}

/*
Logout revokes the session behind a refresh token. Unknown or already
revoked tokens are ignored.
*/
func (service *Service) Logout(context stdctx.Context, refreshToken string) error {
	session, err := service.sessions.FindActiveByHash(context, sec.HashToken(refreshToken), time.Now())
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil
		}
		return err
	}

	if _, err := service.sessions.Revoke(context, session.ID); err != nil {
		return err
	}

	service.logger.Info("user_logged_out", slog.String("user_id", session.UserID))
	return nil
}

// # Session Management

/*
Refresh rotates a refresh token: the old session is revoked and a new one
opened in the same transaction.

Returns:
  - *LoginSession: New tokens
  - error: Unauthorized for an unknown, expired, revoked or replayed token
*/
func (service *Service) Refresh(context stdctx.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	var rotated *LoginSession

	err := service.tx.RunInTx(context, func(ctx stdctx.Context) error {
		session, err := service.sessions.FindActiveByHash(ctx, sec.HashToken(refreshToken), time.Now())
		if err != nil {
			if apperr.IsNotFound(err) {
				return apperr.Unauthorized("Invalid or expired refresh token")
			}
			return err
		}

		revoked, err := service.sessions.Revoke(ctx, session.ID)
		if err != nil {
			return err
		}
		if !revoked {
			return apperr.Unauthorized("Invalid or expired refresh token")
		}

		user, err := service.users.FindByID(ctx, session.UserID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return apperr.Unauthorized("Account is no longer active")
			}
			return err
		}

		rotated, err = service.openSession(ctx, user, userAgent, ipAddress)
		return err
	})
	if err != nil {
		return nil, err
	}

	return rotated, nil
}

// Me returns the authenticated account.
func (service *Service) Me(context stdctx.Context, userID string) (*User, error) {
	return service.users.FindByID(context, userID)
}

// openSession signs an access token and stores a new refresh session.
func (service *Service) openSession(context stdctx.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_access_token_failed: %w", err))
	}

	refreshToken, err := sec.GenerateSecureToken()
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_refresh_token_failed: %w", err))
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}
	if err := service.sessions.Create(context, session); err != nil {
		return nil, err
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}
