package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/feed")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, fileFound, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.False(t, fileFound)
	assert.Equal(t, "postgres://localhost/feed", cfg.DatabaseURL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "8800", cfg.Port)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.MediaEnabled())
}

func TestLoadConfigFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	content := "DATABASE_URL=postgres://file/feed\nJWT_SECRET=from-file\nENV=production\nTOKEN_TTL=24h\n" +
		"CLOUDINARY_CLOUD_NAME=demo\nCLOUDINARY_API_KEY=key\nCLOUDINARY_API_SECRET=secret\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Setenv("JWT_SECRET", "from-env")

	cfg, fileFound, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.True(t, fileFound)
	assert.Equal(t, "postgres://file/feed", cfg.DatabaseURL)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.MediaEnabled())
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/feed")
	t.Setenv("JWT_SECRET", "")

	_, _, err := LoadConfig(t.TempDir())
	assert.EqualError(t, err, "JWT_SECRET is required")
}
