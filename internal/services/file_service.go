package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"client-portal-backend/internal/apperr"
	"client-portal-backend/internal/authz"
	"client-portal-backend/internal/models"
)

// FileWithURL is the read-side shape of a file: the stored metadata plus the
// resolved retrieval URL (signed URL for blobs, the registered link for
// external references, empty string when resolution failed).
type FileWithURL struct {
	models.File
	URL string
}

type FileService struct {
	files      FileStore
	projects   ProjectStore
	activities *ActivityService
	blobs      BlobStorage
}

func NewFileService(files FileStore, projects ProjectStore, activities *ActivityService, blobs BlobStorage) *FileService {
	return &FileService{
		files:      files,
		projects:   projects,
		activities: activities,
		blobs:      blobs,
	}
}

// IssueUploadURL hands out a signed upload target for a project the caller
// can access. The returned handle is what RegisterUpload stores.
func (s *FileService) IssueUploadURL(caller *models.User, projectID uuid.UUID, filename string) (uploadURL, handle string, err error) {
	project, err := s.projects.GetProject(projectID)
	if err != nil {
		return "", "", fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return "", "", apperr.NotFound("project not found")
	}
	if err := authz.RequireProjectAccess(caller, project); err != nil {
		return "", "", err
	}

	uploadURL, handle, err = s.blobs.IssueUploadURL(projectID, filename)
	if err != nil {
		return "", "", apperr.Upstream("failed to issue upload url", err)
	}
	return uploadURL, handle, nil
}

// RegisterUpload records upload metadata after the blob or link is in place.
// Artifact uploads are admin-only and start pending; general uploads are
// admin-or-owner and never carry approval state.
func (s *FileService) RegisterUpload(caller *models.User, projectID uuid.UUID, req models.RegisterFileRequest) (*models.File, error) {
	if !models.ValidFileCategory(req.Category) {
		return nil, apperr.InvalidArgument("invalid file category")
	}
	if (req.StorageHandle == "") == (req.ExternalURL == "") {
		return nil, apperr.InvalidArgument("exactly one of storage_handle and external_url must be set")
	}

	project, err := s.projects.GetProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, apperr.NotFound("project not found")
	}

	if err := authz.CanUploadFile(caller, project, req.Category); err != nil {
		return nil, err
	}

	file := &models.File{
		ID:            uuid.New(),
		ProjectID:     projectID,
		Name:          req.Name,
		StorageHandle: nullString(req.StorageHandle),
		ExternalURL:   nullString(req.ExternalURL),
		MimeType:      req.MimeType,
		Category:      req.Category,
		UploadedBy:    caller.ID,
	}
	if req.SizeBytes != nil {
		file.SizeBytes = sql.NullInt64{Int64: *req.SizeBytes, Valid: true}
	}
	if req.Category == models.FileCategoryArtifact {
		file.Status = sql.NullString{String: string(models.FileStatusPending), Valid: true}
	}

	file, err = s.files.CreateFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	s.activities.Append(projectID, models.ActionFileUploaded, file.ID.String(), file.Name, caller.ID)

	return file, nil
}

// List returns a project's files with retrieval URLs. Signed-URL resolution
// failures degrade that one file to an empty URL with a warning; the listing
// itself never fails on a storage outage.
func (s *FileService) List(caller *models.User, projectID uuid.UUID, category *models.FileCategory) ([]FileWithURL, error) {
	project, err := s.projects.GetProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, apperr.NotFound("project not found")
	}
	if err := authz.RequireProjectAccess(caller, project); err != nil {
		return nil, err
	}

	files, err := s.files.ListFiles(projectID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	result := make([]FileWithURL, len(files))
	for i, file := range files {
		url := ""
		switch {
		case file.ExternalURL.Valid:
			url = file.ExternalURL.String
		case file.StorageHandle.Valid:
			resolved, err := s.blobs.ResolveURL(file.StorageHandle.String)
			if err != nil {
				log.Printf("Warning: failed to resolve URL for handle %s: %v", file.StorageHandle.String, err)
			} else {
				url = resolved
			}
		}
		result[i] = FileWithURL{File: file, URL: url}
	}

	return result, nil
}

// UpdateApprovalStatus approves or rejects an artifact. The approval info is
// overwritten on repeat calls; there is deliberately no already-decided
// guard.
func (s *FileService) UpdateApprovalStatus(caller *models.User, fileID uuid.UUID, status models.FileStatus, comment string) (*models.File, error) {
	if status != models.FileStatusApproved && status != models.FileStatusRejected {
		return nil, apperr.InvalidArgument("status must be approved or rejected")
	}

	file, err := s.files.GetFile(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	if file == nil {
		return nil, apperr.NotFound("file not found")
	}

	if file.Category != models.FileCategoryArtifact {
		return nil, apperr.InvalidState("cannot approve non-artifact files")
	}

	project, err := s.projects.GetProject(file.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, apperr.NotFound("project not found")
	}
	if err := authz.RequireProjectAccess(caller, project); err != nil {
		return nil, err
	}

	updated, err := s.files.UpdateFileApproval(fileID, status, caller.ID, time.Now(), nullString(comment))
	if err != nil {
		return nil, fmt.Errorf("failed to update file status: %w", err)
	}

	action := models.ActionDeliverableApproved
	if status == models.FileStatusRejected {
		action = models.ActionDeliverableChanges
	}
	s.activities.Append(file.ProjectID, action, fileID.String(), file.Name, caller.ID)

	return updated, nil
}

// Delete removes the blob first and the metadata row only after the blob
// deletion succeeded, so a storage outage cannot orphan a stored blob.
func (s *FileService) Delete(caller *models.User, fileID uuid.UUID) error {
	file, err := s.files.GetFile(fileID)
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}
	if file == nil {
		return apperr.NotFound("file not found")
	}

	if err := authz.CanDeleteFile(caller, file); err != nil {
		return err
	}

	if file.StorageHandle.Valid {
		if err := s.blobs.DeleteBlob(file.StorageHandle.String); err != nil {
			return apperr.Upstream("failed to delete blob", err)
		}
	}

	if err := s.files.DeleteFile(fileID); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.activities.Append(file.ProjectID, models.ActionFileDeleted, fileID.String(), file.Name, caller.ID)

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
