// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profile manages what a member shows about themselves: display name,
bio, avatar and the cultures they want surfaced first. It also lets a member
see and revoke their own sessions.
*/
package profile

import (
	"context"
	"time"

	"github.com/taibuivan/voxmundi/internal/users/auth"
)

// # Domain Entities

// Profile is the private view of the caller's own account.
type Profile struct {
	*auth.User
	PreferredCultureIDs []string `json:"preferred_culture_ids"`
}

// PublicProfile is what anyone may see about a member.
type PublicProfile struct {
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"created_at"`
}

// SessionInfo is a session as shown to its owner.
type SessionInfo struct {
	ID         string    `json:"id"`
	DeviceName *string   `json:"device_name"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// UpdateInput is a partial profile update; nil fields are left unchanged.
type UpdateInput struct {
	DisplayName         *string   `json:"display_name"`
	Bio                 *string   `json:"bio"`
	AvatarURL           *string   `json:"avatar_url"`
	PreferredCultureIDs *[]string `json:"preferred_culture_ids"`
}

// Field names used in validation errors.
const (
	FieldDisplayName         = "display_name"
	FieldBio                 = "bio"
	FieldAvatarURL           = "avatar_url"
	FieldPreferredCultureIDs = "preferred_culture_ids"
)

// # Repository Contracts

// Repository persists profile data.
type Repository interface {
	FindByID(context context.Context, id string) (*auth.User, error)
	FindByUsername(context context.Context, username string) (*auth.User, error)
	Update(context context.Context, user *auth.User) error

	PreferredCultures(context context.Context, userID string) ([]string, error)
	ReplacePreferredCultures(context context.Context, userID string, cultureIDs []string) error

	ActiveSessions(context context.Context, userID string) ([]SessionInfo, error)

	// RevokeSession reports false when the session is not the user's or is
	// already revoked.
	RevokeSession(context context.Context, userID, sessionID string) (bool, error)
}
