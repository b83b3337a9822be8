// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository is the persistence contract for accounts.
type UserRepository interface {

	// FindByID returns an active account.
	FindByID(context context.Context, id string) (*User, error)

	// FindByLogin returns the active account whose username or email
	// matches login, case-insensitively.
	FindByLogin(context context.Context, login string) (*User, error)

	/*
		Create inserts a new account.

		Returns:
		  - error: Conflict when the username or email is taken
	*/
	Create(context context.Context, user *User) error

	// TouchLastLogin records a successful login.
	TouchLastLogin(context context.Context, id string, at time.Time) error
}

// # Session Data Access

// SessionRepository is the persistence contract for refresh sessions.
type SessionRepository interface {

	// Create inserts a session.
	Create(context context.Context, session *Session) error

	// FindActiveByHash returns the unrevoked, unexpired session for a token digest.
	FindActiveByHash(context context.Context, tokenHash string, now time.Time) (*Session, error)

	/*
		Revoke marks a session revoked.

		Returns:
		  - bool: False when it was already revoked, which signals a replayed token
		  - error: Storage failures
	*/
	Revoke(context context.Context, id string) (bool, error)
}
