// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/authgate/internal/platform/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend.local/")
	t.Setenv("MOUNT_PREFIX", "/login/")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "/login", cfg.MountPrefix)
	assert.Equal(t, "/studio/", cfg.StudioPath)
	assert.Equal(t, "http://backend.local", cfg.BackendURL)
	assert.Equal(t, "zh", cfg.DefaultLocale)
	assert.False(t, cfg.AdminCreateEnabled)
	assert.False(t, cfg.TrustProxyHeaders)
	assert.Empty(t, cfg.PublicOrigin)
	assert.False(t, cfg.GitHubEnabled)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_PublicOrigin(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend.local")
	t.Setenv("PUBLIC_ORIGIN", " https://app.example/ ")
	t.Setenv("ADMIN_CREATE_ENABLED", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://app.example", cfg.PublicOrigin)
	assert.True(t, cfg.AdminCreateEnabled)
}

func TestLoad_RequiresBackendURL(t *testing.T) {
	t.Setenv("BACKEND_URL", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestNormalizePrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/login", "/login"},
		{"login/", "/login"},
		{"/", ""},
		{"", ""},
		{" /auth/ ", "/auth"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, config.NormalizePrefix(tt.in))
		})
	}
}

func TestConfig_Origins(t *testing.T) {
	cfg := &config.Config{ExtraOrigins: "https://a.example, ,https://b.example"}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
}
