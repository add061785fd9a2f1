package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/models"
	"taskboard/internal/storage/sqlite"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return New(store, logger, "")
}

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func decodeTask(t *testing.T, w *httptest.ResponseRecorder) models.Task {
	t.Helper()
	var task models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	return task
}

func createTask(t *testing.T, srv *Server, body map[string]any) models.Task {
	t.Helper()
	w := doRequest(t, srv, http.MethodPost, "/api/tasks", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeTask(t, w)
}

func TestCreateTaskMissingTitle(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []map[string]any{
		{},
		{"title": ""},
		{"description": "no title here"},
	} {
		w := doRequest(t, srv, http.MethodPost, "/api/tasks", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Title is required"}`, w.Body.String())
	}

	// No rows were written.
	w := doRequest(t, srv, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":0,"todo":0,"inprogress":0,"done":0}`, w.Body.String())
}

func TestCreateTaskDefaults(t *testing.T) {
	srv := newTestServer(t)

	task := createTask(t, srv, map[string]any{"title": "Bare minimum"})

	assert.NotZero(t, task.ID)
	assert.Equal(t, "todo", task.Status)
	assert.Equal(t, "medium", task.Priority)
	assert.Equal(t, "work", task.Category)
	assert.Equal(t, []string{}, task.Assignees)
	assert.Equal(t, int64(0), task.Comments)
	assert.Equal(t, int64(0), task.Files)
}

func TestGetTask(t *testing.T) {
	srv := newTestServer(t)

	created := createTask(t, srv, map[string]any{"title": "Fetch me", "dueDate": "2026-09-15"})

	w := doRequest(t, srv, http.MethodGet, fmt.Sprintf("/api/tasks/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	task := decodeTask(t, w)
	assert.Equal(t, created.ID, task.ID)
	assert.Equal(t, "Fetch me", task.Title)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2026-09-15", *task.DueDate)
}

func TestGetTaskNotFound(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/tasks/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Task not found"}`, w.Body.String())
}

func TestAssigneesRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	created := createTask(t, srv, map[string]any{
		"title":     "Crewed",
		"assignees": []string{"a", "b", "c"},
	})
	assert.Equal(t, []string{"a", "b", "c"}, created.Assignees)

	w := doRequest(t, srv, http.MethodGet, fmt.Sprintf("/api/tasks/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"a", "b", "c"}, decodeTask(t, w).Assignees)
}

func TestPatchStatus(t *testing.T) {
	srv := newTestServer(t)

	created := createTask(t, srv, map[string]any{"title": "Mover"})

	for _, status := range []string{"inprogress", "done", "todo"} {
		w := doRequest(t, srv, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/status", created.ID),
			map[string]string{"status": status})
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Task status updated successfully"}`, w.Body.String())

		w = doRequest(t, srv, http.MethodGet, fmt.Sprintf("/api/tasks/%d", created.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, status, decodeTask(t, w).Status)
	}
}

func TestPatchStatusRefreshesUpdatedAt(t *testing.T) {
	srv := newTestServer(t)

	created := createTask(t, srv, map[string]any{"title": "Timestamped"})

	time.Sleep(20 * time.Millisecond)
	w := doRequest(t, srv, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/status", created.ID),
		map[string]string{"status": "done"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, srv, http.MethodGet, fmt.Sprintf("/api/tasks/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeTask(t, w)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestPatchStatusInvalid(t *testing.T) {
	srv := newTestServer(t)

	created := createTask(t, srv, map[string]any{"title": "Unmovable"})

	w := doRequest(t, srv, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/status", created.ID),
		map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid status"}`, w.Body.String())

	// Row is unchanged.
	w = doRequest(t, srv, http.MethodGet, fmt.Sprintf("/api/tasks/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "todo", decodeTask(t, w).Status)
}

func TestPatchStatusNotFound(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodPatch, "/api/tasks/9999/status",
		map[string]string{"status": "done"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Task not found"}`, w.Body.String())
}

func TestUpdateTask(t *testing.T) {
	srv := newTestServer(t)

	created := createTask(t, srv, map[string]any{
		"title":       "Original",
		"description": "original description",
		"dueDate":     "2026-01-01",
	})

	w := doRequest(t, srv, http.MethodPut, fmt.Sprintf("/api/tasks/%d", created.ID), map[string]any{
		"title":     "Rewritten",
		"status":    "inprogress",
		"priority":  "high",
		"category":  "design",
		"assignees": []string{"z"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	task := decodeTask(t, w)
	assert.Equal(t, "Rewritten", task.Title)
	assert.Equal(t, "inprogress", task.Status)
	assert.Equal(t, "high", task.Priority)
	assert.Equal(t, "design", task.Category)
	assert.Equal(t, []string{"z"}, task.Assignees)
	// Omitted fields are overwritten with null, not merged.
	assert.Nil(t, task.Description)
	assert.Nil(t, task.DueDate)
}

func TestUpdateTaskDoesNotValidateStatus(t *testing.T) {
	srv := newTestServer(t)

	created := createTask(t, srv, map[string]any{"title": "Lax"})

	w := doRequest(t, srv, http.MethodPut, fmt.Sprintf("/api/tasks/%d", created.ID), map[string]any{
		"title":  "Lax",
		"status": "blocked",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "blocked", decodeTask(t, w).Status)
}

func TestUpdateTaskNotFound(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodPut, "/api/tasks/9999", map[string]any{"title": "Ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Task not found"}`, w.Body.String())
}

func TestDeleteTask(t *testing.T) {
	srv := newTestServer(t)

	created := createTask(t, srv, map[string]any{"title": "Doomed"})

	w := doRequest(t, srv, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Task deleted successfully"}`, w.Body.String())

	w = doRequest(t, srv, http.MethodGet, fmt.Sprintf("/api/tasks/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, srv, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Task not found"}`, w.Body.String())
}

func TestListTasksFilterCombination(t *testing.T) {
	srv := newTestServer(t)

	createTask(t, srv, map[string]any{"title": "todo-high", "status": "todo", "priority": "high"})
	createTask(t, srv, map[string]any{"title": "todo-low", "status": "todo", "priority": "low"})
	createTask(t, srv, map[string]any{"title": "done-high", "status": "done", "priority": "high"})
	createTask(t, srv, map[string]any{"title": "todo-high-2", "status": "todo", "priority": "high"})

	w := doRequest(t, srv, http.MethodGet, "/api/tasks?status=todo&priority=high", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tasks []models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 2)
	assert.Equal(t, "todo-high-2", tasks[0].Title)
	assert.Equal(t, "todo-high", tasks[1].Title)
}

func TestListTasksEmptyIsArray(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestStatsScenario(t *testing.T) {
	srv := newTestServer(t)

	createTask(t, srv, map[string]any{"title": "X"})
	createTask(t, srv, map[string]any{"title": "Y", "status": "done"})

	w := doRequest(t, srv, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":2,"todo":1,"inprogress":0,"done":1}`, w.Body.String())
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-Id"))

	// And one is generated when the caller sends none.
	w = doRequest(t, srv, http.MethodGet, "/api/healthz", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}
