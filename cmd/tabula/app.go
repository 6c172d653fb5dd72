package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hlop3z/tabula/internal/alerr"
	"github.com/hlop3z/tabula/internal/config"
	"github.com/hlop3z/tabula/internal/editor"
	"github.com/hlop3z/tabula/internal/graph"
	"github.com/hlop3z/tabula/internal/project"
	"github.com/hlop3z/tabula/internal/schema"
)

// errCheckFailed makes the process exit 1 after check already printed why.
var errCheckFailed = errors.New("check failed")

// app carries the state shared by every command.
type app struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	// persistent flags
	configFile string
	flags      config.Overrides

	cfg *config.Config
	log *slog.Logger
}

func newApp(stdout, stderr io.Writer, getenv func(string) string) *app {
	return &app{stdout: stdout, stderr: stderr, getenv: getenv}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tabula",
		Short:         "Visual relational schema editor and PostgreSQL DDL compiler",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configFile, "config", "c", config.FileName, "Path to config file")
	pf.StringVarP(&a.flags.Project, "project", "p", "", "Project file (overrides config)")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		a.initCmd(),
		a.compileCmd(),
		a.checkCmd(),
		a.tableCmd(),
		a.columnCmd(),
		a.linkCmd(),
		a.unlinkCmd(),
		a.importCmd(),
		a.exportCmd(),
	)
	return root
}

// setup loads the config and installs the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.configFile, a.getenv, a.flags)
	if err != nil {
		return err
	}
	lvl, _ := cfg.Level()
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: lvl}))
	a.log.Debug("config loaded", "project", cfg.Project, "dialect", cfg.Dialect)
	return nil
}

// projectPath returns the positional file argument if given, else the
// configured project.
func (a *app) projectPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return a.cfg.Project
}

// open loads the project at path into an editor.
func (a *app) open(path string) (*editor.Editor, error) {
	p, err := project.LoadFile(path)
	if err != nil {
		if alerr.Is(err, alerr.ErrIO) {
			var ae *alerr.Error
			if errors.As(err, &ae) {
				ae.WithHelp("run 'tabula init' to create a project")
			}
		}
		return nil, err
	}
	a.log.Debug("project loaded", "file", path, "tables", len(p.Tables), "relations", len(p.Relations))
	return editor.Open(p,
		editor.WithLogger(a.log),
		editor.WithHistoryLimit(a.cfg.HistoryLimit),
	), nil
}

// save writes the editor's project back to path.
func (a *app) save(path string, e *editor.Editor) error {
	if err := project.SaveFile(path, e.Project()); err != nil {
		return err
	}
	a.log.Debug("project saved", "file", path)
	return nil
}

// edit opens the configured project, runs fn and saves the result when fn
// changed the graph.
func (a *app) edit(fn func(e *editor.Editor) error) error {
	path := a.cfg.Project
	e, err := a.open(path)
	if err != nil {
		return err
	}
	if err := fn(e); err != nil {
		return err
	}
	if !e.CanUndo() {
		return nil
	}
	return a.save(path, e)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.stdout, format, args...)
}

// -----------------------------------------------------------------------------
// Addressing tables and columns by id or name
// -----------------------------------------------------------------------------

// findTable resolves a table by id, then by name.
func findTable(g graph.Graph, key string) (*schema.Table, error) {
	if t := g.Table(key); t != nil {
		return t, nil
	}
	if t := g.TableByName(key); t != nil {
		return t, nil
	}
	return nil, alerr.NotFound("table", key, g.TableNames())
}

// findColumn resolves a column of t by id, then by name.
func findColumn(t *schema.Table, key string) (*schema.Column, error) {
	if c := t.Column(key); c != nil {
		return c, nil
	}
	if c := t.ColumnByName(key); c != nil {
		return c, nil
	}
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return nil, alerr.NotFound("column", key, names).WithTable(t.Name)
}

// findRef resolves "table.column".
func findRef(g graph.Graph, s string) (schema.ColumnRef, error) {
	tableKey, columnKey, ok := strings.Cut(s, ".")
	if !ok || tableKey == "" || columnKey == "" {
		return schema.ColumnRef{}, alerr.Newf(alerr.ErrInvalidReference, "invalid column reference %q", s).
			WithHelp("use <table>.<column>, e.g. users.id")
	}
	t, err := findTable(g, tableKey)
	if err != nil {
		return schema.ColumnRef{}, err
	}
	c, err := findColumn(t, columnKey)
	if err != nil {
		return schema.ColumnRef{}, err
	}
	return schema.ColumnRef{TableID: t.ID, ColumnID: c.ID}, nil
}
