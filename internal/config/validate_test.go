package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Empty(t, Validate(&cfg))
}

func TestValidatePortRange(t *testing.T) {
	cfg := Defaults()
	cfg.Gateway.Port = 70000

	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "gateway.port", issues[0].Path)
}

func TestValidateBindMode(t *testing.T) {
	cfg := Defaults()
	cfg.Gateway.Bind = "tailnet"

	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "gateway.bind", issues[0].Path)
}

func TestValidateAuthMode(t *testing.T) {
	cfg := Defaults()
	cfg.Gateway.Auth.Mode = "mtls"

	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "gateway.auth.mode", issues[0].Path)
}

func TestValidateTLSRequiresPaths(t *testing.T) {
	cfg := Defaults()
	cfg.Gateway.TLS.Enabled = true

	issues := Validate(&cfg)
	require.Len(t, issues, 2)
	assert.Equal(t, "gateway.tls.certPath", issues[0].Path)
	assert.Equal(t, "gateway.tls.keyPath", issues[1].Path)
}

func TestValidateChunkMode(t *testing.T) {
	cfg := Defaults()
	cfg.Coordinator.ChunkMode = "tokens"

	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "coordinator.chunkMode", issues[0].Path)

	cfg.Coordinator.ChunkMode = "delta"
	assert.Empty(t, Validate(&cfg))
}

func TestValidateLogging(t *testing.T) {
	cfg := Defaults()
	cfg.Logging.Level = "verbose"
	cfg.Logging.ConsoleStyle = "rainbow"

	issues := Validate(&cfg)
	require.Len(t, issues, 2)
	assert.Equal(t, "logging.level", issues[0].Path)
	assert.Equal(t, "logging.consoleStyle", issues[1].Path)
}

func TestValidationIssueString(t *testing.T) {
	issue := ValidationIssue{Path: "gateway.port", Message: "bad"}
	assert.Equal(t, "gateway.port: bad", issue.String())
}
