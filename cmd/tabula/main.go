// Package main provides the tabula CLI: it edits a visual relational schema
// project from the command line and compiles it to PostgreSQL DDL.
//
// Usage:
//
//	tabula init                        # Create schema.json and tabula.yaml
//	tabula table add users             # Add a table with a uuid "id" key
//	tabula column add posts title      # Add a column
//	tabula link users.id posts.id      # Relate two columns
//	tabula check                       # Report structural problems
//	tabula compile -o schema.sql       # Emit DDL
//	tabula compile --watch             # Recompile on every project change
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hlop3z/tabula/internal/cli"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(os.Stdout, os.Stderr, os.Getenv)
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprint(os.Stderr, cli.FormatError(err))
		}
		os.Exit(1)
	}
}
