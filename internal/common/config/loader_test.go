// internal/common/config/loader_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	t.Setenv("MCP_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "us-east-2", cfg.AWS.Region)
	assert.Equal(t, "ciag-intake", cfg.Intake.Table)
	assert.NotEmpty(t, cfg.Intake.NotifyEmail)
	assert.NotEmpty(t, cfg.Intake.SenderEmail)
	assert.NotEmpty(t, cfg.MCP.ServerURL)
	assert.Empty(t, cfg.MCP.APIKey, "no key means the proxy is not deployed here")
	assert.Equal(t, 0, cfg.Intake.RatePerMin, "limiter disabled by default")
}

func TestLoad_DeploymentEnvOverrides(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("CIAG_NOTIFY_EMAIL", "ops@example.com")
	t.Setenv("MCP_SERVER_URL", "https://tools.internal.example.com")
	t.Setenv("MCP_API_KEY", "k-123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
	assert.Equal(t, "ops@example.com", cfg.Intake.NotifyEmail)
	assert.Equal(t, "https://tools.internal.example.com", cfg.MCP.ServerURL)
	assert.Equal(t, "k-123", cfg.MCP.APIKey)
}
