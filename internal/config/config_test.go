package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 5000, cfg.App.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "schoolsite", cfg.Mongo.Database)
	assert.Equal(t, "local", cfg.Media.Driver)
	assert.Equal(t, 10, cfg.Media.MaxImageMB)
	assert.Equal(t, 50, cfg.Media.MaxVideoMB)
	assert.Equal(t, "0 3 * * *", cfg.Cleanup.CronSpec)
	assert.Equal(t, 3, cfg.Cleanup.RetentionMonth)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.Dev())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := []byte(`
app:
  env: production
  port: 8080
  public_base_url: https://school.example.com
mongodb:
  uri: mongodb://db:27017
  database: school
jwt:
  secret: file-secret
  ttl_hours: 12
media:
  driver: s3
`)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "https://school.example.com", cfg.App.PublicBaseURL)
	assert.Equal(t, "school", cfg.Mongo.Database)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "s3", cfg.Media.Driver)
	assert.False(t, cfg.Dev())
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("ADMIN_EMAIL", "head@school.example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "head@school.example.com", cfg.SMTP.AdminTo)
}
