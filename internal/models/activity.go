package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Activity action tags appended by the mutating operations.
const (
	ActionProjectStatusUpdated = "project_status_updated"
	ActionTaskCreated          = "task_created"
	ActionTaskUpdated          = "task_updated"
	ActionTaskCompleted        = "task_completed"
	ActionTaskDeleted          = "task_deleted"
	ActionFileUploaded         = "file_uploaded"
	ActionFileDeleted          = "file_deleted"
	ActionDeliverableApproved  = "deliverable_approved"
	ActionDeliverableChanges   = "deliverable_changes_requested"
)

type Activity struct {
	ID         uuid.UUID
	ProjectID  uuid.UUID
	Action     string
	EntityID   string
	EntityName string
	UserID     uuid.UUID
	CreatedAt  time.Time
}

// ActivityWithUser is the read-side row, enriched with display fields from a
// left join on users. A deleted user degrades to the "Unknown" label.
type ActivityWithUser struct {
	Activity
	UserName   string
	UserAvatar sql.NullString
	UserRole   sql.NullString
}
