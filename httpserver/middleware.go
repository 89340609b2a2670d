package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/snipstash/runnerd/runner"
)

const (
	callerKey    = "caller"
	requestIDKey = "request_id"
)

// TokenVerifier maps a bearer credential to a caller identity or
// rejects it. The production implementation is config-backed; tests
// inject their own.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (caller string, err error)
}

// StaticVerifier verifies tokens against a fixed token -> caller map
// from configuration.
type StaticVerifier struct {
	tokens map[string]string
}

// NewStaticVerifier creates a StaticVerifier over the given map.
func NewStaticVerifier(tokens map[string]string) *StaticVerifier {
	return &StaticVerifier{tokens: tokens}
}

// Verify implements TokenVerifier
func (v *StaticVerifier) Verify(_ context.Context, token string) (string, error) {
	caller, ok := v.tokens[token]
	if !ok {
		return "", errors.New("unknown token")
	}
	return caller, nil
}

// abortWithEnvelope terminates the request with a non-200 status. The
// body keeps the envelope shape so clients parse exactly one
// structure on every path.
func abortWithEnvelope(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, runner.BoundaryEnvelope(message))
}

// requestID assigns each request an id, honoring one supplied by the
// caller, and echoes it in the response.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// requestLogger logs one line per request after it completes.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("caller", c.GetString(callerKey)),
		)
	}
}

// authenticate rejects requests without a valid bearer credential and
// records the caller identity for downstream middleware.
func (s *Server) authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		abortWithEnvelope(c, http.StatusUnauthorized, "missing bearer token")
		return
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		abortWithEnvelope(c, http.StatusUnauthorized, "malformed authorization header")
		return
	}

	caller, err := s.verifier.Verify(c.Request.Context(), token)
	if err != nil {
		s.logger.Warn("authentication failed", zap.Error(err))
		abortWithEnvelope(c, http.StatusUnauthorized, "invalid bearer token")
		return
	}

	c.Set(callerKey, caller)
	c.Next()
}

// rateLimit enforces the per-caller fixed-window limit. Runs after
// authenticate so the key is the verified caller identity.
func (s *Server) rateLimit(c *gin.Context) {
	decision := s.limiter.Allow(c.GetString(callerKey))
	if !decision.Allowed {
		retryAfter := int(decision.RetryAfter.Seconds() + 1)
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		abortWithEnvelope(c, http.StatusTooManyRequests, "rate limit exceeded, retry after the window resets")
		return
	}
	c.Next()
}
