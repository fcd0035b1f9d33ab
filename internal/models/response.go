package models

import "time"

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type ProjectResponse struct {
	ID               string        `json:"id"`
	ClientID         string        `json:"client_id"`
	Title            string        `json:"title"`
	Status           ProjectStatus `json:"status"`
	IsPaymentPending bool          `json:"is_payment_pending"`
	CreatedAt        time.Time     `json:"created_at"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type TaskResponse struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	Tags        []string   `json:"tags"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	SortOrder   *int64     `json:"sort_order,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

type ApprovalInfoResponse struct {
	ApprovedBy string    `json:"approved_by"`
	ApprovedAt time.Time `json:"approved_at"`
	Comment    string    `json:"comment,omitempty"`
}

type FileResponse struct {
	ID         string                `json:"id"`
	ProjectID  string                `json:"project_id"`
	Name       string                `json:"name"`
	URL        string                `json:"url"`
	MimeType   string                `json:"mime_type"`
	SizeBytes  int64                 `json:"size_bytes,omitempty"`
	Category   FileCategory          `json:"category"`
	Status     string                `json:"status,omitempty"`
	Approval   *ApprovalInfoResponse `json:"approval_info,omitempty"`
	UploadedBy string                `json:"uploaded_by"`
	UploadedAt time.Time             `json:"uploaded_at"`
}

type FilesResponse struct {
	Files []FileResponse `json:"files"`
}

type RegisterFileResponse struct {
	ID string `json:"id"`
}

type UploadURLResponse struct {
	UploadURL     string `json:"upload_url"`
	StorageHandle string `json:"storage_handle"`
}

type InvoiceResponse struct {
	ID          string        `json:"id"`
	ProjectID   string        `json:"project_id"`
	Amount      int64         `json:"amount"`
	Currency    Currency      `json:"currency"`
	PaymentLink string        `json:"payment_link"`
	Status      InvoiceStatus `json:"status"`
	IssuedAt    time.Time     `json:"issued_at"`
}

type ActivityResponse struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Action     string    `json:"action"`
	EntityID   string    `json:"entity_id"`
	EntityName string    `json:"entity_name"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar,omitempty"`
	UserRole   string    `json:"user_role,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
