package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/snipstash/runnerd/config"
	"github.com/snipstash/runnerd/guard"
	"github.com/snipstash/runnerd/httpserver"
	"github.com/snipstash/runnerd/logger"
	"github.com/snipstash/runnerd/mcpserver"
	"github.com/snipstash/runnerd/ratelimit"
	"github.com/snipstash/runnerd/runner"
)

func main() {
	app := fx.New(
		// Provide dependencies
		fx.Provide(
			// Config
			config.New,

			// Logger with configuration
			logger.NewFromConfig,

			// Denylist guard with configured extra patterns
			func(log *zap.Logger, cfg *config.Config) (*guard.Guard, error) {
				return guard.New(log, cfg.Guard.ExtraPatterns)
			},

			// Evaluation engine
			func(log *zap.Logger, g *guard.Guard, cfg *config.Config) *runner.Engine {
				return runner.NewEngine(log, g, cfg)
			},

			// Fixed-window rate limiter
			func(cfg *config.Config) *ratelimit.Limiter {
				store := ratelimit.NewMemoryStore(cfg.GetWindow())
				return ratelimit.NewLimiter(store, cfg.RateLimit.MaxRequests)
			},

			// Transports
			func(cfg *config.Config, log *zap.Logger, engine *runner.Engine, limiter *ratelimit.Limiter) *httpserver.Server {
				return httpserver.New(cfg, log, engine, limiter)
			},
			mcpserver.New,
		),

		// Start the appropriate transport based on config
		fx.Invoke(
			func(cfg *config.Config, log *zap.Logger, g *guard.Guard, httpSrv *httpserver.Server, mcpSrv *mcpserver.MCPServer) {
				log.Info("configuration loaded",
					zap.String("server.transport", cfg.Server.Transport),
					zap.Int("server.http_port", cfg.Server.HTTPPort),
					zap.Int("execution.timeout_sec", cfg.Execution.TimeoutSec),
					zap.Int("execution.max_code_bytes", cfg.Execution.MaxCodeBytes),
					zap.Int("ratelimit.window_sec", cfg.RateLimit.WindowSec),
					zap.Int("ratelimit.max_requests", cfg.RateLimit.MaxRequests),
					zap.Int("guard.rules", g.RuleCount()),
				)

				switch cfg.Server.Transport {
				case "stdio":
					go func() {
						if err := mcpSrv.ServeStdio(); err != nil {
							panic(err)
						}
					}()
				case "http":
					go func() {
						if err := httpSrv.Serve(); err != nil {
							panic(err)
						}
					}()
				default:
					panic("unsupported transport: " + cfg.Server.Transport)
				}
			},
		),

		// Use the application logger for fx logs
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
	)

	// Start the application
	app.Run()
}
