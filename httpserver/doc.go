// Package httpserver provides the HTTP request boundary for snippet
// execution.
//
// The server exposes a single execution endpoint. Requests are
// authenticated against configured bearer tokens, size-validated,
// rate-limited per caller, and dispatched to the runner engine. Every
// response body, 200 or not, uses the same envelope shape; a snippet
// that fails is still an HTTP 200 carrying a non-zero exit code.
//
// Usage:
//
//	server := httpserver.New(cfg, logger, engine, limiter)
//	if err := server.Serve(); err != nil {
//	    log.Fatal(err)
//	}
package httpserver
