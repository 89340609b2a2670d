package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/snipstash/runnerd/config"
	"github.com/snipstash/runnerd/ratelimit"
	"github.com/snipstash/runnerd/runner"
)

// Server is the HTTP request boundary: it authenticates the caller,
// validates and size-limits the payload, applies the rate limit, runs
// the engine and serializes the envelope.
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	engine   *runner.Engine
	limiter  *ratelimit.Limiter
	verifier TokenVerifier
	router   *gin.Engine
}

// ServerOption defines a functional option for Server
type ServerOption func(*Server)

// WithTokenVerifier overrides the config-backed verifier.
func WithTokenVerifier(verifier TokenVerifier) ServerOption {
	return func(s *Server) {
		s.verifier = verifier
	}
}

// New creates the HTTP server with its middleware chain and routes.
func New(cfg *config.Config, logger *zap.Logger, engine *runner.Engine, limiter *ratelimit.Limiter, opts ...ServerOption) *Server {
	s := &Server{
		config:   cfg,
		logger:   logger,
		engine:   engine,
		limiter:  limiter,
		verifier: NewStaticVerifier(cfg.Auth.Tokens),
	}

	for _, opt := range opts {
		opt(s)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSAllowedOrigins,
		AllowMethods: []string{"POST", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	router.GET("/healthz", s.handleHealth)
	router.POST("/v1/execute", s.authenticate, s.rateLimit, s.handleExecute)

	s.router = router
	return s
}

// executeRequest is the JSON request body for /v1/execute
type executeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

func (s *Server) handleExecute(c *gin.Context) {
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithEnvelope(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Code) == "" {
		abortWithEnvelope(c, http.StatusBadRequest, "code must not be empty")
		return
	}

	if len(req.Code) > s.config.Execution.MaxCodeBytes {
		abortWithEnvelope(c, http.StatusBadRequest,
			fmt.Sprintf("code exceeds maximum length of %d bytes", s.config.Execution.MaxCodeBytes))
		return
	}

	if !s.engine.Supports(req.Language) {
		abortWithEnvelope(c, http.StatusBadRequest,
			fmt.Sprintf("unsupported language: %s, must be one of: %s",
				req.Language, strings.Join(s.engine.Languages(), ", ")))
		return
	}

	// A failing snippet is still a successful HTTP call; only
	// malformed, unauthenticated or rate-limited requests get non-200.
	envelope := s.engine.Run(c.Request.Context(), runner.Request{
		Code:     req.Code,
		Language: req.Language,
	})
	c.JSON(http.StatusOK, envelope)
}

func (*Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Serve starts listening on the configured port. It blocks until the
// listener fails.
func (s *Server) Serve() error {
	addr := fmt.Sprintf(":%d", s.config.Server.HTTPPort)
	s.logger.Info("starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}
