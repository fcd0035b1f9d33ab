// Package authz holds the fixed authorization rules. This is not a generic
// RBAC engine: two roles, one ownership relation, rule per operation.
package authz

import (
	"client-portal-backend/internal/apperr"
	"client-portal-backend/internal/models"
)

// RequireAdmin gates admin-only operations: project create/status, artifact
// upload, invoice create.
func RequireAdmin(caller *models.User) error {
	if caller == nil {
		return apperr.Unauthenticated("no caller")
	}
	if !caller.IsAdmin() {
		return apperr.Unauthorized("admin only")
	}
	return nil
}

// RequireProjectAccess allows the admin and the project's owning client.
func RequireProjectAccess(caller *models.User, project *models.Project) error {
	if caller == nil {
		return apperr.Unauthenticated("no caller")
	}
	if caller.IsAdmin() || project.ClientID == caller.ID {
		return nil
	}
	return apperr.Unauthorized("not the project owner")
}

// IsOwner reports the ownership relation without deciding an operation.
func IsOwner(caller *models.User, project *models.Project) bool {
	return caller != nil && project.ClientID == caller.ID
}

// CanUploadFile gates upload registration by category: artifacts are
// admin-only, general files are admin-or-owner.
func CanUploadFile(caller *models.User, project *models.Project, category models.FileCategory) error {
	if category == models.FileCategoryArtifact {
		if err := RequireAdmin(caller); err != nil {
			return apperr.Unauthorized("only admins can upload artifacts")
		}
		return nil
	}
	return RequireProjectAccess(caller, project)
}

// CanDeleteFile allows the admin to delete any file, and a client to delete
// only a general file they personally uploaded.
func CanDeleteFile(caller *models.User, file *models.File) error {
	if caller == nil {
		return apperr.Unauthenticated("no caller")
	}
	if caller.IsAdmin() {
		return nil
	}
	if file.Category == models.FileCategoryGeneral && file.UploadedBy == caller.ID {
		return nil
	}
	return apperr.Unauthorized("not allowed to delete this file")
}
