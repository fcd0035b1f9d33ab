package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"client-portal-backend/internal/models"
)

const taskColumns = "id, project_id, title, description, status, tags, due_date, sort_order, created_at"

func scanTask(row *sql.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status,
		&t.Tags, &t.DueDate, &t.SortOrder, &t.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}
	return &t, nil
}

func (c *Client) CreateTask(task *models.Task) (*models.Task, error) {
	if task.Tags == nil {
		task.Tags = pq.StringArray{}
	}
	return scanTask(c.db.QueryRow(`
		INSERT INTO tasks (id, project_id, title, description, status, tags, due_date, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+taskColumns+`
	`, task.ID, task.ProjectID, task.Title, task.Description, task.Status,
		task.Tags, task.DueDate, task.SortOrder))
}

func (c *Client) GetTask(id uuid.UUID) (*models.Task, error) {
	return scanTask(c.db.QueryRow(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1
	`, id))
}

func (c *Client) ListTasks(projectID uuid.UUID) ([]models.Task, error) {
	rows, err := c.db.Query(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE project_id = $1
		ORDER BY sort_order NULLS LAST, created_at ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		err := rows.Scan(
			&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status,
			&t.Tags, &t.DueDate, &t.SortOrder, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// UpdateTask applies a partial patch; untouched fields keep their values.
func (c *Client) UpdateTask(id uuid.UUID, patch models.TaskPatch) (*models.Task, error) {
	var sets []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Tags != nil {
		add("tags", pq.StringArray(*patch.Tags))
	}
	if patch.DueDate != nil {
		add("due_date", *patch.DueDate)
	}
	if patch.SortOrder != nil {
		add("sort_order", *patch.SortOrder)
	}

	if len(sets) == 0 {
		return c.GetTask(id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE tasks
		SET %s
		WHERE id = $%d
		RETURNING `+taskColumns,
		strings.Join(sets, ", "), len(args))

	return scanTask(c.db.QueryRow(query, args...))
}

func (c *Client) DeleteTask(id uuid.UUID) error {
	_, err := c.db.Exec(`
		DELETE FROM tasks
		WHERE id = $1
	`, id)
	return err
}
