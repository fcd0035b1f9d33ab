package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"client-portal-backend/internal/models"
)

const projectColumns = "id, client_id, title, status, is_payment_pending, created_at"

func scanProject(row *sql.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.ClientID, &p.Title, &p.Status, &p.IsPaymentPending, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}
	return &p, nil
}

func (c *Client) CreateProject(clientID uuid.UUID, title string, status models.ProjectStatus) (*models.Project, error) {
	return scanProject(c.db.QueryRow(`
		INSERT INTO projects (id, client_id, title, status, is_payment_pending)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING `+projectColumns+`
	`, uuid.New(), clientID, title, status))
}

func (c *Client) GetProject(id uuid.UUID) (*models.Project, error) {
	return scanProject(c.db.QueryRow(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE id = $1
	`, id))
}

func (c *Client) ListProjects() ([]models.Project, error) {
	return c.queryProjects(`
		SELECT `+projectColumns+`
		FROM projects
		ORDER BY created_at DESC
	`)
}

func (c *Client) ListProjectsByClient(clientID uuid.UUID) ([]models.Project, error) {
	return c.queryProjects(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE client_id = $1
		ORDER BY created_at DESC
	`, clientID)
}

func (c *Client) queryProjects(query string, args ...interface{}) ([]models.Project, error) {
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Title, &p.Status, &p.IsPaymentPending, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

func (c *Client) UpdateProjectStatus(id uuid.UUID, status models.ProjectStatus) error {
	_, err := c.db.Exec(`
		UPDATE projects
		SET status = $1
		WHERE id = $2
	`, status, id)
	return err
}

func (c *Client) SetProjectPaymentPending(id uuid.UUID, pending bool) error {
	_, err := c.db.Exec(`
		UPDATE projects
		SET is_payment_pending = $1
		WHERE id = $2
	`, pending, id)
	return err
}
