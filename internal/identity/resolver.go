// Package identity maps the external authentication identity to the internal
// User record. Every authorized operation starts here.
package identity

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"client-portal-backend/internal/apperr"
	"client-portal-backend/internal/middleware"
	"client-portal-backend/internal/models"
)

type UserStore interface {
	GetUserByAuthSubject(subject string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	CreateUser(user *models.User) (*models.User, error)
	UpdateUserProfile(id uuid.UUID, name, email string, avatarURL sql.NullString) (*models.User, error)
	LinkAuthSubject(id uuid.UUID, subject, name string, avatarURL sql.NullString) (*models.User, error)
	SetUserRole(id uuid.UUID, role models.Role) error
}

type Resolver struct {
	store UserStore
}

func NewResolver(store UserStore) *Resolver {
	return &Resolver{store: store}
}

// ResolveOrCreate returns the User for an external identity, creating the
// record on first sight. The identity provider is authoritative for
// name/email, so stale values are patched. An invitation placeholder with a
// matching email is linked rather than duplicated.
func (r *Resolver) ResolveOrCreate(identity middleware.Identity) (*models.User, error) {
	if identity.Subject == "" {
		return nil, apperr.Unauthenticated("no identity present")
	}

	user, err := r.store.GetUserByAuthSubject(identity.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user != nil {
		if needsProfilePatch(user, identity) {
			return r.store.UpdateUserProfile(user.ID,
				coalesce(identity.Name, user.Name),
				coalesce(identity.Email, user.Email),
				avatarOf(identity, user))
		}
		return user, nil
	}

	// First login of an invited client links the placeholder row by email.
	if identity.Email != "" {
		invited, err := r.store.GetUserByEmail(identity.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to look up user by email: %w", err)
		}
		if invited != nil && !invited.AuthSubject.Valid {
			return r.store.LinkAuthSubject(invited.ID, identity.Subject,
				coalesce(identity.Name, invited.Name),
				avatarOf(identity, invited))
		}
	}

	name := identity.Name
	if name == "" {
		name = "Anonymous"
	}
	return r.store.CreateUser(&models.User{
		ID:          uuid.New(),
		Email:       identity.Email,
		Name:        name,
		Role:        models.RoleClient,
		AuthSubject: sql.NullString{String: identity.Subject, Valid: true},
		AvatarURL:   nullString(identity.AvatarURL),
	})
}

// Current is the read-only companion of ResolveOrCreate: nil, not an error,
// when no identity is present or no record exists yet.
func (r *Resolver) Current(identity middleware.Identity) (*models.User, error) {
	if identity.Subject == "" {
		return nil, nil
	}
	user, err := r.store.GetUserByAuthSubject(identity.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

// Require resolves the requester for an authorized operation. Unlike
// ResolveOrCreate it never creates: an identity without a record is
// UserNotFound, distinct from both Unauthenticated and Unauthorized.
func (r *Resolver) Require(identity middleware.Identity) (*models.User, error) {
	if identity.Subject == "" {
		return nil, apperr.Unauthenticated("no identity present")
	}
	user, err := r.store.GetUserByAuthSubject(identity.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apperr.UserNotFound("user record not found")
	}
	return user, nil
}

// ElevateToAdmin promotes the caller's own record. Idempotent, never
// demotes, never targets another user; exists for bootstrap.
func (r *Resolver) ElevateToAdmin(identity middleware.Identity) (*models.User, error) {
	if identity.Subject == "" {
		return nil, apperr.Unauthenticated("no identity present")
	}

	user, err := r.store.GetUserByAuthSubject(identity.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apperr.UserNotFound("user record not found")
	}

	if user.Role != models.RoleAdmin {
		if err := r.store.SetUserRole(user.ID, models.RoleAdmin); err != nil {
			return nil, fmt.Errorf("failed to set role: %w", err)
		}
		user.Role = models.RoleAdmin
	}

	return user, nil
}

func needsProfilePatch(user *models.User, identity middleware.Identity) bool {
	if identity.Name != "" && identity.Name != user.Name {
		return true
	}
	if identity.Email != "" && identity.Email != user.Email {
		return true
	}
	if identity.AvatarURL != "" && identity.AvatarURL != user.AvatarURL.String {
		return true
	}
	return false
}

func coalesce(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func avatarOf(identity middleware.Identity, user *models.User) sql.NullString {
	if identity.AvatarURL != "" {
		return sql.NullString{String: identity.AvatarURL, Valid: true}
	}
	return user.AvatarURL
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
