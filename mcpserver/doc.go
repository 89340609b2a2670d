// Package mcpserver exposes snippet execution as a Model Context
// Protocol (MCP) tool.
//
// The run_snippet tool accepts the same code/language pair as the HTTP
// endpoint and returns the same result envelope, serialized as JSON
// text content. The stdio transport is meant for trusted local
// callers; authentication and rate limiting apply only on the HTTP
// surface.
//
// Usage:
//
//	srv, err := mcpserver.New(cfg, logger, engine)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = srv.ServeStdio()
package mcpserver
