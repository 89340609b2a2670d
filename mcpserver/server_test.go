package mcpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/snipstash/runnerd/config"
	"github.com/snipstash/runnerd/guard"
	"github.com/snipstash/runnerd/runner"
)

func TestNewMCPServer(t *testing.T) {
	logger := zaptest.NewLogger(t)
	cfg := &config.Config{
		Server: config.ServerConfig{
			Transport: "stdio",
			HTTPPort:  8080,
		},
		Execution: config.ExecutionConfig{
			TimeoutSec:   5,
			MaxCodeBytes: 65536,
		},
		Logging: config.LoggingConfig{
			Mode:  "production",
			Level: "info",
		},
	}

	g, err := guard.New(logger, nil)
	require.NoError(t, err)
	engine := runner.NewEngine(logger, g, cfg)

	srv, err := New(cfg, logger, engine)
	require.NoError(t, err)
	require.NotNil(t, srv)
	assert.Equal(t, cfg, srv.config)
	assert.Equal(t, logger, srv.logger)
	assert.Equal(t, engine, srv.engine)
	assert.NotNil(t, srv.mcpServer)
}
