package services

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"client-portal-backend/internal/apperr"
	"client-portal-backend/internal/authz"
	"client-portal-backend/internal/models"
)

const recentActivityLimit = 20

type ActivityService struct {
	store    ActivityStore
	projects ProjectStore
}

func NewActivityService(store ActivityStore, projects ProjectStore) *ActivityService {
	return &ActivityService{store: store, projects: projects}
}

// Append records one audit row for a mutation that already passed its own
// authorization. The log is advisory: callers treat failures as non-fatal,
// so Append logs and never panics the mutation path.
func (s *ActivityService) Append(projectID uuid.UUID, action, entityID, entityName string, userID uuid.UUID) {
	err := s.store.InsertActivity(&models.Activity{
		ID:         uuid.New(),
		ProjectID:  projectID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		UserID:     userID,
	})
	if err != nil {
		log.Printf("Warning: failed to append %s activity for project %s: %v", action, projectID, err)
	}
}

// Recent returns the newest activity rows enriched with user display fields.
func (s *ActivityService) Recent(caller *models.User, projectID uuid.UUID) ([]models.ActivityWithUser, error) {
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

	activities, err := s.store.ListRecentActivities(projectID, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}
