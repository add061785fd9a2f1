package client

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/models"
	"taskboard/internal/server"
	"taskboard/internal/storage/sqlite"
)

// newTestClient runs the real engine behind an httptest server and returns
// a client pointed at it.
func newTestClient(t *testing.T) *Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(server.New(store, logger, "").Engine())
	t.Cleanup(srv.Close)

	return New(srv.URL)
}

func TestTaskLifecycle(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateTask(ctx, TaskPayload{
		Title:       "Round trip",
		Description: "through the wire",
		Priority:    "high",
		Assignees:   []string{"a", "b"},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "todo", created.Status)
	assert.Equal(t, "high", created.Priority)
	assert.Equal(t, []string{"a", "b"}, created.Assignees)

	require.NoError(t, c.UpdateTaskStatus(ctx, created.ID, "done"))

	fetched, err := c.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "done", fetched.Status)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Total: 1, Todo: 0, InProgress: 0, Done: 1}, stats)

	require.NoError(t, c.DeleteTask(ctx, created.ID))

	_, err = c.GetTask(ctx, created.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestListTasksWithFilter(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.CreateTask(ctx, TaskPayload{Title: "keep", Priority: "high", Assignees: []string{}})
	require.NoError(t, err)
	_, err = c.CreateTask(ctx, TaskPayload{Title: "skip", Priority: "low", Assignees: []string{}})
	require.NoError(t, err)

	tasks, err := c.ListTasks(ctx, TaskFilter{Priority: "high"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "keep", tasks[0].Title)

	all, err := c.ListTasks(ctx, TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreateTaskValidationError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.CreateTask(context.Background(), TaskPayload{Assignees: []string{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title is required")
}

func TestUpdateTaskStatusInvalid(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateTask(ctx, TaskPayload{Title: "Fixed", Assignees: []string{}})
	require.NoError(t, err)

	err = c.UpdateTaskStatus(ctx, created.ID, "archived")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid status")
}
