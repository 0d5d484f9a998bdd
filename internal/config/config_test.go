// File: internal/config/config_test.go
package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "fresco", cfg.Logger.ServiceName)
	assert.Equal(t, 800, cfg.Render.ViewportWidth)
	assert.Equal(t, 600, cfg.Render.ViewportHeight)
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadViewport(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Render.ViewportWidth = 0
	assert.Error(t, cfg.Validate())

	cfg = NewDefaultConfig()
	cfg.Render.ViewportHeight = -10
	assert.Error(t, cfg.Validate())
}

func TestFileValuesOverrideDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("render.viewport_width", 1024)
	v.Set("logger.level", "debug")

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.Equal(t, 1024, cfg.Render.ViewportWidth)
	assert.Equal(t, 600, cfg.Render.ViewportHeight, "untouched keys keep their defaults")
	assert.Equal(t, "debug", cfg.Logger.Level)
}
