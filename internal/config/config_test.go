package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_KEY", "")
	cfg := Load()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.HasRemoteCatalog())
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_KEY", "anon-key")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("COLLAGE_DEV", "1")

	cfg := Load()
	assert.Equal(t, "https://proj.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.HasRemoteCatalog())
	assert.True(t, cfg.DevMode)
}
