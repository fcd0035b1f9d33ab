// Package services holds the business operations. Each service receives its
// collaborators through the interfaces below; the Postgres client implements
// the store interfaces, the storage and notify packages the rest.
package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"client-portal-backend/internal/models"
	"client-portal-backend/internal/notify"
)

type UserStore interface {
	GetUserByID(id uuid.UUID) (*models.User, error)
	InsertOrGetUserByEmail(email, name string, role models.Role) (*models.User, error)
}

type ProjectStore interface {
	CreateProject(clientID uuid.UUID, title string, status models.ProjectStatus) (*models.Project, error)
	GetProject(id uuid.UUID) (*models.Project, error)
	ListProjects() ([]models.Project, error)
	ListProjectsByClient(clientID uuid.UUID) ([]models.Project, error)
	UpdateProjectStatus(id uuid.UUID, status models.ProjectStatus) error
	SetProjectPaymentPending(id uuid.UUID, pending bool) error
}

type TaskStore interface {
	CreateTask(task *models.Task) (*models.Task, error)
	GetTask(id uuid.UUID) (*models.Task, error)
	ListTasks(projectID uuid.UUID) ([]models.Task, error)
	UpdateTask(id uuid.UUID, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(id uuid.UUID) error
}

type FileStore interface {
	CreateFile(file *models.File) (*models.File, error)
	GetFile(id uuid.UUID) (*models.File, error)
	ListFiles(projectID uuid.UUID, category *models.FileCategory) ([]models.File, error)
	UpdateFileApproval(id uuid.UUID, status models.FileStatus, approvedBy uuid.UUID, approvedAt time.Time, comment sql.NullString) (*models.File, error)
	DeleteFile(id uuid.UUID) error
}

type InvoiceStore interface {
	CreateInvoice(projectID uuid.UUID, amount int64, currency models.Currency) (*models.Invoice, error)
	GetPendingInvoice(projectID uuid.UUID) (*models.Invoice, error)
}

type ActivityStore interface {
	InsertActivity(activity *models.Activity) error
	ListRecentActivities(projectID uuid.UUID, limit int) ([]models.ActivityWithUser, error)
}

// BlobStorage is the storage collaborator: signed upload targets, signed
// retrieval URLs, blob deletion.
type BlobStorage interface {
	IssueUploadURL(projectID uuid.UUID, filename string) (uploadURL, handle string, err error)
	ResolveURL(handle string) (string, error)
	DeleteBlob(handle string) error
}

// Notifier is the fire-and-forget webhook side channel.
type Notifier interface {
	EnqueueProjectCreated(e notify.ProjectCreatedEvent)
	EnqueueInvoiceRequested(e notify.InvoiceRequestedEvent)
}
