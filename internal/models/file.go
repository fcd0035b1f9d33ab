package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type FileCategory string

const (
	FileCategoryGeneral  FileCategory = "general"
	FileCategoryArtifact FileCategory = "artifact"
)

func ValidFileCategory(c FileCategory) bool {
	return c == FileCategoryGeneral || c == FileCategoryArtifact
}

type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusApproved FileStatus = "approved"
	FileStatusRejected FileStatus = "rejected"
)

// File is an upload-metadata row. Exactly one of StorageHandle/ExternalURL is
// populated: a blob handle resolved to a signed URL at read time, or a plain
// link registered as-is. Status and the approval fields exist only for
// artifacts; a general file never carries them.
type File struct {
	ID              uuid.UUID
	ProjectID       uuid.UUID
	Name            string
	StorageHandle   sql.NullString
	ExternalURL     sql.NullString
	MimeType        string
	SizeBytes       sql.NullInt64
	Category        FileCategory
	Status          sql.NullString
	ApprovedBy      uuid.NullUUID
	ApprovedAt      sql.NullTime
	ApprovalComment sql.NullString
	UploadedBy      uuid.UUID
	UploadedAt      time.Time
}
