package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusTodo, StatusInProgress, StatusDone} {
		assert.True(t, ValidStatus(s), s)
	}
	for _, s := range []string{"", "archived", "TODO", "in_progress"} {
		assert.False(t, ValidStatus(s), s)
	}
}

func TestTaskWireFieldNames(t *testing.T) {
	due := "2026-09-15"
	task := Task{ID: 1, Title: "T", Status: StatusTodo, DueDate: &due, Assignees: []string{"a"}}

	encoded, err := json.Marshal(task)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(encoded, &fields))

	// The wire contract is fixed; renaming a key breaks existing clients.
	for _, key := range []string{"id", "title", "description", "status", "priority",
		"category", "dueDate", "comments", "files", "assignees", "created_at", "updated_at"} {
		assert.Contains(t, fields, key)
	}
}
