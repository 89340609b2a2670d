// Package main is the entry point for the runnerd snippet execution
// service.
//
// runnerd is the "run this snippet" backend of a developer snippet
// vault: it accepts code plus a language tag, screens the code against
// a denylist of dangerous patterns, evaluates it (really for
// JavaScript, as a text simulation for python/shell/sql) under a
// wall-clock timeout, and returns a normalized result envelope.
//
// The application uses Uber's fx framework for dependency injection
// and lifecycle management, with zap for structured logging and viper
// for configuration.
package main
