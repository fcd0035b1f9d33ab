package database

import (
	"fmt"

	"client-portal-backend/internal/models"

	"github.com/google/uuid"
)

func (c *Client) InsertActivity(activity *models.Activity) error {
	_, err := c.db.Exec(`
		INSERT INTO activities (id, project_id, action, entity_id, entity_name, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, activity.ID, activity.ProjectID, activity.Action,
		activity.EntityID, activity.EntityName, activity.UserID)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

// ListRecentActivities returns the newest activities joined with user display
// fields. A since-deleted user degrades to the "Unknown" label instead of
// dropping the row.
func (c *Client) ListRecentActivities(projectID uuid.UUID, limit int) ([]models.ActivityWithUser, error) {
	rows, err := c.db.Query(`
		SELECT a.id, a.project_id, a.action, a.entity_id, a.entity_name, a.user_id, a.created_at,
			COALESCE(u.name, 'Unknown'), u.avatar_url, u.role
		FROM activities a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.project_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2
	`, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []models.ActivityWithUser
	for rows.Next() {
		var a models.ActivityWithUser
		err := rows.Scan(
			&a.ID, &a.ProjectID, &a.Action, &a.EntityID, &a.EntityName,
			&a.UserID, &a.CreatedAt, &a.UserName, &a.UserAvatar, &a.UserRole,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	return activities, rows.Err()
}
