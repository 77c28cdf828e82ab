package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insighteck/todo-app/internal/tasks"
)

func testTasks() []tasks.Task {
	effort := tasks.Hours(8)
	target := tasks.NewDate(2025, time.March, 15)
	done := time.Date(2025, time.March, 2, 10, 30, 0, 0, time.UTC)
	return []tasks.Task{
		{
			ID:         1,
			Text:       "Buy groceries",
			Priority:   tasks.PriorityHigh,
			Status:     tasks.StatusPending,
			Effort:     &effort,
			TargetDate: &target,
			CreatedAt:  time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:          2,
			Text:        "File taxes",
			Priority:    tasks.PriorityMedium,
			Status:      tasks.StatusCompleted,
			CreatedAt:   time.Date(2025, time.March, 1, 9, 5, 0, 0, time.UTC),
			CompletedAt: &done,
		},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	s := NewFileStore(path)

	want := testTasks()
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, want[0].ID, got[0].ID)
	assert.Equal(t, want[0].Text, got[0].Text)
	require.NotNil(t, got[0].Effort)
	assert.Equal(t, tasks.Hours(8), *got[0].Effort)
	require.NotNil(t, got[0].TargetDate)
	assert.Equal(t, "2025-03-15", got[0].TargetDate.String())
	assert.Nil(t, got[0].CompletedAt)
	require.NotNil(t, got[1].CompletedAt)
	assert.True(t, want[1].CompletedAt.Equal(*got[1].CompletedAt))
}

func TestFileStore_WireShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	s := NewFileStore(path)
	require.NoError(t, s.Save(testTasks()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)

	assert.Contains(t, body, `"task": "Buy groceries"`)
	assert.Contains(t, body, `"effort": "8"`, "effort is stored as hours text")
	assert.Contains(t, body, `"target_date": "2025-03-15"`)
	assert.Contains(t, body, `"completed_at": null`)
	assert.NotContains(t, body, "target_status", "derived fields are never persisted")
	assert.NotContains(t, body, "days_until_target")
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestFileStore_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "todos.json")
	s := NewFileStore(path)
	require.NoError(t, s.Save(testTasks()))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	s := NewFileStore(path)

	require.NoError(t, s.Save(testTasks()))
	require.NoError(t, s.Save([]tasks.Task{}))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	// No temp file left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
