// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/voxmundi/internal/platform/apperr"
	"github.com/taibuivan/voxmundi/internal/platform/validate"
	"github.com/taibuivan/voxmundi/pkg/pointer"
	"github.com/taibuivan/voxmundi/pkg/slice"
	"github.com/taibuivan/voxmundi/pkg/uuid"
)

// CultureOwnership resolves which culture ids a user owns.
type CultureOwnership interface {
	OwnedCultureIDs(ctx stdctx.Context, ownerID string, ids []string) ([]string, error)
}

type txManager interface {
	RunInTx(ctx stdctx.Context, fn func(ctx stdctx.Context) error) error
}

// # Service Layer

// Service manages member profiles.
type Service struct {
	repo     Repository
	cultures CultureOwnership
	tx       txManager
	logger   *slog.Logger
}

// NewService constructs a profile [Service].
func NewService(repo Repository, cultures CultureOwnership, tx txManager, logger *slog.Logger) *Service {
	return &Service{repo: repo, cultures: cultures, tx: tx, logger: logger}
}

// Me returns the caller's private profile.
func (service *Service) Me(context stdctx.Context, userID string) (*Profile, error) {
	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	preferred, err := service.repo.PreferredCultures(context, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, PreferredCultureIDs: preferred}, nil
}

// Public returns the public view of a member.
func (service *Service) Public(context stdctx.Context, username string) (*PublicProfile, error) {
	user, err := service.repo.FindByUsername(context, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}

	return &PublicProfile{
		Username:    user.Username,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		Bio:         user.Bio,
		CreatedAt:   user.CreatedAt,
	}, nil
}

/*
UpdateMe applies a partial update to the caller's profile.

Description: Preferred cultures replace the whole set and must all be owned
by the caller; malformed or foreign ids are listed in one field error.

Returns:
  - *Profile: The updated profile
  - error: Validation failures
*/
func (service *Service) UpdateMe(context stdctx.Context, userID string, input UpdateInput) (*Profile, error) {
	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}

	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
		validator.Required(FieldDisplayName, user.DisplayName).MaxLen(FieldDisplayName, user.DisplayName, 100)
	}
	if input.Bio != nil {
		user.Bio = strings.TrimSpace(*input.Bio)
		validator.MaxLen(FieldBio, user.Bio, 2000)
	}
	if input.AvatarURL != nil {
		user.AvatarURL = pointer.NonEmpty(*input.AvatarURL)
		if user.AvatarURL != nil {
			validator.URL(FieldAvatarURL, *user.AvatarURL)
		}
	}

	var preferred []string
	if input.PreferredCultureIDs != nil {
		preferred, err = service.checkPreferred(context, userID, *input.PreferredCultureIDs, validator)
		if err != nil {
			return nil, err
		}
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	err = service.tx.RunInTx(context, func(ctx stdctx.Context) error {
		if err := service.repo.Update(ctx, user); err != nil {
			return err
		}
		if input.PreferredCultureIDs != nil {
			return service.repo.ReplacePreferredCultures(ctx, userID, preferred)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("profile_updated", slog.String("user_id", userID))
	return service.Me(context, userID)
}

// checkPreferred dedupes ids and reports any that are malformed or not owned.
func (service *Service) checkPreferred(context stdctx.Context, userID string, ids []string, validator *validate.Validator) ([]string, error) {
	foreign := slice.Filter(ids, func(raw string) bool { return uuid.Normalize(raw) == "" })
	unique := slice.Unique(slice.Filter(slice.Map(ids, uuid.Normalize), func(id string) bool { return id != "" }))

	if len(unique) > 0 {
		owned, err := service.cultures.OwnedCultureIDs(context, userID, unique)
		if err != nil {
			return nil, err
		}
		foreign = append(foreign, slice.Difference(unique, owned)...)
	}

	validator.Custom(FieldPreferredCultureIDs, len(foreign) > 0, fmt.Sprintf("Cultures not owned by you: %v", foreign))
	return unique, nil
}

// # Sessions

// Sessions lists the caller's live sessions.
func (service *Service) Sessions(context stdctx.Context, userID string) ([]SessionInfo, error) {
	return service.repo.ActiveSessions(context, userID)
}

// RevokeSession ends one of the caller's sessions.
func (service *Service) RevokeSession(context stdctx.Context, userID, sessionID string) error {
	if !uuid.IsValid(sessionID) {
		return apperr.NotFound("Session")
	}

	revoked, err := service.repo.RevokeSession(context, userID, sessionID)
	if err != nil {
		return err
	}
	if !revoked {
		return apperr.NotFound("Session")
	}

	service.logger.Info("session_revoked", slog.String("user_id", userID), slog.String("session_id", sessionID))
	return nil
}
