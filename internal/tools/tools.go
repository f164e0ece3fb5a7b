//go:build tools
// +build tools

// Package tools pins the lint and test runners invoked with go run.
package tools

import (
	_ "github.com/golangci/golangci-lint/v2/cmd/golangci-lint"
	_ "gotest.tools/gotestsum"
)
