package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/hlop3z/tabula/internal/alerr"
	"github.com/hlop3z/tabula/internal/cli"
	"github.com/hlop3z/tabula/internal/dialect"
	"github.com/hlop3z/tabula/internal/lockfile"
	"github.com/hlop3z/tabula/internal/project"
	"github.com/hlop3z/tabula/internal/sqlgen"
)

// compileCmd compiles the project to DDL.
func (a *app) compileCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "compile [file]",
		Short: "Compile the project to SQL DDL",
		Long: `Compile the project to SQL DDL.

SQL goes to stdout unless --output (or 'output' in the config) names a file.
Warnings are printed to stderr; they also appear as comments in the SQL.
Writing a file also records checksums in tabula.lock next to it, which
'tabula check' uses to report stale output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.projectPath(args)
			if err := a.compile(path); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return a.watch(cmd.Context(), path)
		},
	}
	cmd.Flags().StringVarP(&a.flags.Output, "output", "o", "", "Write SQL to file instead of stdout")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Recompile whenever the project file changes")
	return cmd
}

// compile reads the project at path and writes its DDL.
func (a *app) compile(path string) error {
	p, err := project.LoadFile(path)
	if err != nil {
		return err
	}
	res := sqlgen.NewCompiler(dialect.Get(a.cfg.Dialect)).Compile(p.Tables, p.Relations)
	for _, w := range res.Warnings {
		fmt.Fprint(a.stderr, cli.FormatWarning(w.Code, w.Message))
	}

	out := a.cfg.Output
	if out == "" {
		_, err := fmt.Fprint(a.stdout, res.SQL)
		return err
	}
	if err := os.WriteFile(out, []byte(res.SQL), 0o644); err != nil {
		return alerr.Wrap(alerr.ErrIO, err, "failed to write SQL").WithFile(out)
	}
	if err := lockfile.Write(lockfile.PathFor(out), path, out); err != nil {
		return err
	}
	a.log.Info("compiled", "project", path, "output", out, "warnings", len(res.Warnings))
	a.printf("%s", cli.FormatSuccess(fmt.Sprintf("wrote %s (%s)", out,
		cli.FormatCount(len(res.Warnings), "warning", "warnings"))))
	return nil
}

// watch recompiles path on every change until ctx is done. Compile errors
// are reported and watching continues.
func (a *app) watch(ctx context.Context, path string) error {
	a.printf("Watching %s\n", cli.FilePath(path))
	return watchFile(ctx, path, func() {
		if err := a.compile(path); err != nil {
			fmt.Fprint(a.stderr, cli.FormatError(err))
		}
	}, a.log)
}

// watchFile calls onChange whenever path is written or created. The parent
// directory is watched so atomic replacements are seen.
func watchFile(ctx context.Context, path string, onChange func(), log *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return alerr.Wrap(alerr.ErrIO, err, "file watcher failed")
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return alerr.Wrap(alerr.ErrIO, err, "failed to resolve path").WithFile(path)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return alerr.Wrap(alerr.ErrIO, err, "failed to watch directory").WithFile(path)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)
		}
	}
}
