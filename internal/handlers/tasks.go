package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"client-portal-backend/internal/identity"
	"client-portal-backend/internal/models"
	"client-portal-backend/internal/services"
)

type TasksHandler struct {
	resolver *identity.Resolver
	tasks    *services.TaskService
}

func NewTasksHandler(resolver *identity.Resolver, tasks *services.TaskService) *TasksHandler {
	return &TasksHandler{
		resolver: resolver,
		tasks:    tasks,
	}
}

func (h *TasksHandler) ListTasks(c *gin.Context) {
	caller, ok := requireCaller(c, h.resolver)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	tasks, err := h.tasks.List(caller, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = taskResponse(&tasks[i])
	}

	c.JSON(http.StatusOK, models.TaskListResponse{Tasks: responses})
}

// CreateTask godoc
// @Summary     Create a task
// @Description Adds a task to the project board and records a task_created activity.
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.CreateTaskRequest true "Task"
// @Success     200 {object} models.TaskResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/tasks [post]
func (h *TasksHandler) CreateTask(c *gin.Context) {
	caller, ok := requireCaller(c, h.resolver)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	task, err := h.tasks.Create(caller, projectID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

func (h *TasksHandler) UpdateTask(c *gin.Context) {
	caller, ok := requireCaller(c, h.resolver)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid task id"})
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	task, err := h.tasks.Update(caller, taskID, models.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Tags:        req.Tags,
		DueDate:     req.DueDate,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

func (h *TasksHandler) DeleteTask(c *gin.Context) {
	caller, ok := requireCaller(c, h.resolver)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid task id"})
		return
	}

	if err := h.tasks.Delete(caller, taskID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted successfully"})
}
