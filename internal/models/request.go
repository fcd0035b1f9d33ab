package models

import "time"

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	ClientEmail string `json:"client_email" binding:"required,email"`
}

type UpdateProjectStatusRequest struct {
	Status ProjectStatus `json:"status" binding:"required"`
}

type CreateTaskRequest struct {
	Title     string     `json:"title" binding:"required"`
	Status    TaskStatus `json:"status" binding:"required"`
	Tags      []string   `json:"tags,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	SortOrder *int64     `json:"sort_order,omitempty"`
}

type UpdateTaskRequest struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	Tags        *[]string   `json:"tags,omitempty"`
	DueDate     *time.Time  `json:"due_date,omitempty"`
	SortOrder   *int64      `json:"sort_order,omitempty"`
}

// RegisterFileRequest records upload metadata after the blob or link is
// already placed. Exactly one of storage_handle/external_url must be set.
type RegisterFileRequest struct {
	Name          string       `json:"name" binding:"required"`
	StorageHandle string       `json:"storage_handle,omitempty"`
	ExternalURL   string       `json:"external_url,omitempty"`
	MimeType      string       `json:"mime_type" binding:"required"`
	SizeBytes     *int64       `json:"size_bytes,omitempty"`
	Category      FileCategory `json:"category" binding:"required"`
}

type UpdateFileStatusRequest struct {
	Status  FileStatus `json:"status" binding:"required"`
	Comment string     `json:"comment,omitempty"`
}

type UploadURLRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	Filename  string `json:"filename" binding:"required"`
}

type CreateInvoiceRequest struct {
	Amount   int64    `json:"amount" binding:"required"`
	Currency Currency `json:"currency,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
