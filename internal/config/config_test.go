package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TODO_DATA_FILE", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, ".todo_list.json", filepath.Base(cfg.DataFile))
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TODO_DATA_FILE", "/tmp/tasks.json")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://todo.example.com")

	cfg := Load()
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/tmp/tasks.json", cfg.DataFile)
	assert.Equal(t, []string{"http://localhost:3000", "https://todo.example.com"}, cfg.CORSOrigins)
}

func TestLoad_BadPortFallsBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	assert.Equal(t, 8080, Load().Port)
}

func TestValidate(t *testing.T) {
	cfg := &Config{AppName: "TodoApp", Version: "1.2.3"}
	assert.NoError(t, cfg.Validate())

	cfg = &Config{AppName: "", Version: "1.2.3"}
	assert.Error(t, cfg.Validate())

	for _, bad := range []string{"1.2", "v1.2.3", "1.2.3-beta", "", "one.two.three"} {
		cfg = &Config{AppName: "TodoApp", Version: bad}
		assert.Error(t, cfg.Validate(), bad)
	}
}

func TestIsValidSemver(t *testing.T) {
	assert.True(t, IsValidSemver("1.0.0"))
	assert.True(t, IsValidSemver("2.1.0"))
	assert.True(t, IsValidSemver("10.20.30"))
	assert.False(t, IsValidSemver("1.2"))
	assert.False(t, IsValidSemver("v1.2.3"))
}
