package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/models"
	"taskboard/internal/storage/sqlite"
)

// taskRequest covers both create and full-update payloads. Pointer fields
// distinguish absent from empty, which matters for PUT: whatever the caller
// omits is written as NULL.
type taskRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Priority    *string  `json:"priority"`
	Category    *string  `json:"category"`
	DueDate     *string  `json:"dueDate"`
	Assignees   []string `json:"assignees"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// handleListTasks returns tasks matching the optional status, priority and
// category query filters.
func (s *Server) handleListTasks(c *gin.Context) {
	filter := sqlite.TaskFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
	}

	tasks, err := s.store.ListTasks(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// handleGetTask fetches a single task by id.
func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	task, err := s.store.GetTask(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// handleCreateTask inserts a new task and returns the materialized row.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == nil || *req.Title == "" {
		s.respondError(c, models.ErrTitleRequired)
		return
	}

	task, err := s.store.CreateTask(c.Request.Context(), sqlite.NewTask{
		Title:       *req.Title,
		Description: req.Description,
		Status:      getString(req.Status),
		Priority:    getString(req.Priority),
		Category:    getString(req.Category),
		DueDate:     req.DueDate,
		Assignees:   req.Assignees,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// handleUpdateTask overwrites all mutable fields of a task with exactly the
// payload sent.
func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := s.store.UpdateTask(c.Request.Context(), id, sqlite.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     req.DueDate,
		Assignees:   req.Assignees,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// handleUpdateTaskStatus moves a task between the board columns. This is
// the one endpoint validating the status enum.
func (s *Server) handleUpdateTaskStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.UpdateTaskStatus(c.Request.Context(), id, req.Status); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task status updated successfully"})
}

// handleDeleteTask removes a task completely.
func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := s.store.DeleteTask(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func getString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
