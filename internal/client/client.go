package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskboard/internal/models"
)

// Client talks to the task board API over HTTP+JSON. One method per
// endpoint; no retries, every failure is terminal for the call.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the API at baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// TaskFilter narrows a task listing server-side. Empty fields are omitted
// from the query string.
type TaskFilter struct {
	Status   string
	Priority string
	Category string
}

// TaskPayload is the request body for creating or fully updating a task.
type TaskPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Category    string   `json:"category,omitempty"`
	DueDate     string   `json:"dueDate,omitempty"`
	Assignees   []string `json:"assignees"`
}

// ListTasks fetches tasks matching the optional server-side filters.
func (c *Client) ListTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	params := url.Values{}
	if filter.Status != "" {
		params.Set("status", filter.Status)
	}
	if filter.Priority != "" {
		params.Set("priority", filter.Priority)
	}
	if filter.Category != "" {
		params.Set("category", filter.Category)
	}

	endpoint := "/api/tasks"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches a single task by id.
func (c *Client) GetTask(ctx context.Context, id int64) (models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), nil, &task)
	return task, err
}

// CreateTask creates a task and returns the materialized row.
func (c *Client) CreateTask(ctx context.Context, payload TaskPayload) (models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", payload, &task)
	return task, err
}

// UpdateTask overwrites all mutable fields of a task.
func (c *Client) UpdateTask(ctx context.Context, id int64, payload TaskPayload) (models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), payload, &task)
	return task, err
}

// UpdateTaskStatus moves a task to another board column.
func (c *Client) UpdateTaskStatus(ctx context.Context, id int64, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/status", id), body, nil)
}

// DeleteTask removes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil, nil)
}

// ListProjects fetches all projects ordered by name.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Stats fetches the aggregate task counts.
func (c *Client) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	err := c.do(ctx, http.MethodGet, "/api/stats", nil, &stats)
	return stats, err
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, endpoint, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, endpoint, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
