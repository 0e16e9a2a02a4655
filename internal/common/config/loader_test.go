// internal/common/config/loader_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gandi-command-center", cfg.App.Name)
	assert.Equal(t, 8501, cfg.Server.Port)
	assert.Equal(t, "data/live_data.json", cfg.Dashboard.DataFile)
	assert.Equal(t, 300000, cfg.Dashboard.RefreshInterval)
	assert.Equal(t, 300000, cfg.Dashboard.CacheTTL)
	assert.Equal(t, "gandi-activity", cfg.Dashboard.ActivityIndex)
	assert.Equal(t, 10000, cfg.Webhooks.N8N.Timeout)
	assert.Equal(t, 8501, cfg.Launcher.Port)
	assert.Equal(t, "main", cfg.Publish.Branch)
	assert.NotEmpty(t, cfg.Publish.CredentialHelper)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"refresh too fast", func(c *Config) { c.Dashboard.RefreshInterval = 500 }},
		{"n8n url not http", func(c *Config) { c.Webhooks.N8N.BaseURL = "ftp://n8n.local" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tt.mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}

func TestDefaultCredentialHelperNonEmpty(t *testing.T) {
	assert.NotEmpty(t, defaultCredentialHelper())
}

func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db.internal",
		Port:     5432,
		Database: "gandi",
		User:     "gandi",
		Password: "secret",
		SSLMode:  "disable",
	}

	dsn := cfg.GetDSN()
	assert.Contains(t, dsn, "host=db.internal")
	assert.Contains(t, dsn, "dbname=gandi")
	assert.Contains(t, dsn, "sslmode=disable")
}
