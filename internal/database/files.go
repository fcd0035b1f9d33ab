package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"client-portal-backend/internal/models"
)

const fileColumns = `id, project_id, name, storage_handle, external_url, mime_type, size_bytes,
	category, status, approved_by, approved_at, approval_comment, uploaded_by, uploaded_at`

func scanFile(row *sql.Row) (*models.File, error) {
	var f models.File
	err := row.Scan(
		&f.ID, &f.ProjectID, &f.Name, &f.StorageHandle, &f.ExternalURL,
		&f.MimeType, &f.SizeBytes, &f.Category, &f.Status,
		&f.ApprovedBy, &f.ApprovedAt, &f.ApprovalComment,
		&f.UploadedBy, &f.UploadedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan file: %w", err)
	}
	return &f, nil
}

func (c *Client) CreateFile(file *models.File) (*models.File, error) {
	return scanFile(c.db.QueryRow(`
		INSERT INTO files (id, project_id, name, storage_handle, external_url, mime_type,
			size_bytes, category, status, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+fileColumns+`
	`, file.ID, file.ProjectID, file.Name, file.StorageHandle, file.ExternalURL,
		file.MimeType, file.SizeBytes, file.Category, file.Status, file.UploadedBy))
}

func (c *Client) GetFile(id uuid.UUID) (*models.File, error) {
	return scanFile(c.db.QueryRow(`
		SELECT `+fileColumns+`
		FROM files
		WHERE id = $1
	`, id))
}

// ListFiles returns a project's files, optionally narrowed to one category.
func (c *Client) ListFiles(projectID uuid.UUID, category *models.FileCategory) ([]models.File, error) {
	query := `
		SELECT ` + fileColumns + `
		FROM files
		WHERE project_id = $1
	`
	args := []interface{}{projectID}
	if category != nil {
		query += " AND category = $2"
		args = append(args, *category)
	}
	query += " ORDER BY uploaded_at DESC"

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var f models.File
		err := rows.Scan(
			&f.ID, &f.ProjectID, &f.Name, &f.StorageHandle, &f.ExternalURL,
			&f.MimeType, &f.SizeBytes, &f.Category, &f.Status,
			&f.ApprovedBy, &f.ApprovedAt, &f.ApprovalComment,
			&f.UploadedBy, &f.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

func (c *Client) UpdateFileApproval(id uuid.UUID, status models.FileStatus, approvedBy uuid.UUID, approvedAt time.Time, comment sql.NullString) (*models.File, error) {
	return scanFile(c.db.QueryRow(`
		UPDATE files
		SET status = $1, approved_by = $2, approved_at = $3, approval_comment = $4
		WHERE id = $5
		RETURNING `+fileColumns+`
	`, status, approvedBy, approvedAt, comment, id))
}

func (c *Client) DeleteFile(id uuid.UUID) error {
	_, err := c.db.Exec(`
		DELETE FROM files
		WHERE id = $1
	`, id)
	return err
}
