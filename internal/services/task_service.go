package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"client-portal-backend/internal/apperr"
	"client-portal-backend/internal/authz"
	"client-portal-backend/internal/models"
)

// Task board writes are allowed for the admin and the owning client. Earlier
// revisions of the portal restricted writes to the admin; the permissive
// policy is the one kept.
type TaskService struct {
	tasks      TaskStore
	projects   ProjectStore
	activities *ActivityService
}

func NewTaskService(tasks TaskStore, projects ProjectStore, activities *ActivityService) *TaskService {
	return &TaskService{
		tasks:      tasks,
		projects:   projects,
		activities: activities,
	}
}

func (s *TaskService) List(caller *models.User, projectID uuid.UUID) ([]models.Task, error) {
	if _, err := s.requireProject(caller, projectID); err != nil {
		return nil, err
	}

	return s.tasks.ListTasks(projectID)
}

func (s *TaskService) Create(caller *models.User, projectID uuid.UUID, req models.CreateTaskRequest) (*models.Task, error) {
	if _, err := s.requireProject(caller, projectID); err != nil {
		return nil, err
	}
	if !models.ValidTaskStatus(req.Status) {
		return nil, apperr.InvalidArgument("invalid task status")
	}

	task := &models.Task{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     req.Title,
		Status:    req.Status,
		Tags:      pq.StringArray(req.Tags),
	}
	if req.DueDate != nil {
		task.DueDate = sql.NullTime{Time: *req.DueDate, Valid: true}
	}
	if req.SortOrder != nil {
		task.SortOrder = sql.NullInt64{Int64: *req.SortOrder, Valid: true}
	}

	task, err := s.tasks.CreateTask(task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.activities.Append(projectID, models.ActionTaskCreated, task.ID.String(), task.Title, caller.ID)

	return task, nil
}

// Update applies a partial patch. A transition into done from a non-done
// state is logged as task_completed; every other change as task_updated.
// Re-saving an already-done task counts as an update, not a completion.
func (s *TaskService) Update(caller *models.User, taskID uuid.UUID, patch models.TaskPatch) (*models.Task, error) {
	task, err := s.tasks.GetTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, apperr.NotFound("task not found")
	}

	if _, err := s.requireProject(caller, task.ProjectID); err != nil {
		return nil, err
	}

	if patch.Status != nil && !models.ValidTaskStatus(*patch.Status) {
		return nil, apperr.InvalidArgument("invalid task status")
	}

	completed := patch.Status != nil &&
		*patch.Status == models.TaskStatusDone &&
		task.Status != models.TaskStatusDone

	updated, err := s.tasks.UpdateTask(taskID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	action := models.ActionTaskUpdated
	if completed {
		action = models.ActionTaskCompleted
	}
	s.activities.Append(task.ProjectID, action, taskID.String(), updated.Title, caller.ID)

	return updated, nil
}

func (s *TaskService) Delete(caller *models.User, taskID uuid.UUID) error {
	task, err := s.tasks.GetTask(taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return apperr.NotFound("task not found")
	}

	if _, err := s.requireProject(caller, task.ProjectID); err != nil {
		return err
	}

	if err := s.tasks.DeleteTask(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.activities.Append(task.ProjectID, models.ActionTaskDeleted, taskID.String(), task.Title, caller.ID)

	return nil
}

func (s *TaskService) requireProject(caller *models.User, projectID uuid.UUID) (*models.Project, error) {
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
	return project, nil
}
