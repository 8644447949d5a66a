//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// These tools are installed globally via `go install` and are not tracked in go.mod
// since they are development tools, not runtime dependencies.
package tools

// Development tools (install via `go install`):
//
// Air - Live reload for Go apps
//   Install: go install github.com/air-verse/air@v1.63.0
//   Docs: https://github.com/air-verse/air
//
// MockGen - Mock generation for the locale ports
//   Invoked via `go generate ./internal/mocks` (pinned there at v0.6.0)
//   Docs: https://github.com/uber-go/mock
