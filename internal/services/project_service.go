package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"client-portal-backend/internal/apperr"
	"client-portal-backend/internal/authz"
	"client-portal-backend/internal/models"
	"client-portal-backend/internal/notify"
)

type ProjectService struct {
	projects      ProjectStore
	users         UserStore
	activities    *ActivityService
	notifier      Notifier
	portalBaseURL string
}

func NewProjectService(projects ProjectStore, users UserStore, activities *ActivityService, notifier Notifier, portalBaseURL string) *ProjectService {
	return &ProjectService{
		projects:      projects,
		users:         users,
		activities:    activities,
		notifier:      notifier,
		portalBaseURL: strings.TrimRight(portalBaseURL, "/"),
	}
}

// Create inserts a new project in the hearing phase for the client with the
// given email, inviting an unknown email as a placeholder user. The
// ProjectCreated webhook is enqueued after the writes; notifier failures
// never roll the project back.
func (s *ProjectService) Create(caller *models.User, title, clientEmail string) (*models.Project, error) {
	if err := authz.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if title == "" || clientEmail == "" {
		return nil, apperr.InvalidArgument("title and client_email are required")
	}

	client, err := s.users.InsertOrGetUserByEmail(clientEmail, "Invited Client", models.RoleClient)
	if err != nil {
		return nil, fmt.Errorf("failed to find or invite client: %w", err)
	}

	project, err := s.projects.CreateProject(client.ID, title, models.ProjectStatusHearing)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.notifier.EnqueueProjectCreated(notify.ProjectCreatedEvent{
		Email:     clientEmail,
		ProjectID: project.ID.String(),
		InviteURL: fmt.Sprintf("%s/portal/%s", s.portalBaseURL, project.ID.String()),
	})

	return project, nil
}

// UpdateStatus sets any of the five phases unconditionally; the sequence is
// not required to be monotonic.
func (s *ProjectService) UpdateStatus(caller *models.User, projectID uuid.UUID, status models.ProjectStatus) (*models.Project, error) {
	if err := authz.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if !models.ValidProjectStatus(status) {
		return nil, apperr.InvalidArgument("invalid project status")
	}

	project, err := s.projects.GetProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, apperr.NotFound("project not found")
	}

	if err := s.projects.UpdateProjectStatus(projectID, status); err != nil {
		return nil, fmt.Errorf("failed to update project status: %w", err)
	}
	project.Status = status

	s.activities.Append(projectID, models.ActionProjectStatusUpdated,
		projectID.String(),
		fmt.Sprintf("Status changed to %s", strings.ToUpper(string(status))),
		caller.ID)

	return project, nil
}

// List returns all projects for an admin (optionally filtered to one
// client); a client sees only their own, any filter argument ignored.
func (s *ProjectService) List(caller *models.User, clientID *uuid.UUID) ([]models.Project, error) {
	if caller == nil {
		return nil, apperr.Unauthenticated("no caller")
	}

	if caller.IsAdmin() {
		if clientID != nil {
			return s.projects.ListProjectsByClient(*clientID)
		}
		return s.projects.ListProjects()
	}

	return s.projects.ListProjectsByClient(caller.ID)
}

// Get returns nil (not an error) for an unknown id, and Unauthorized when
// the caller is neither admin nor the owning client.
func (s *ProjectService) Get(caller *models.User, projectID uuid.UUID) (*models.Project, error) {
	if caller == nil {
		return nil, apperr.Unauthenticated("no caller")
	}

	project, err := s.projects.GetProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, nil
	}

	if err := authz.RequireProjectAccess(caller, project); err != nil {
		return nil, err
	}

	return project, nil
}
