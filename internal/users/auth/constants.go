// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is how long a JWT access token stays valid.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is how long a refresh session stays valid.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8

	// MaxUsernameLength matches users.account.username.
	MaxUsernameLength = 50
)
