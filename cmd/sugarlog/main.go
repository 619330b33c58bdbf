// Package main is the single-binary entrypoint for SugarLog.
// One binary: local CLI plus the REST API server.
package main

import "github.com/sugarlog-app/sugarlog/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
