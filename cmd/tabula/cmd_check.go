package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hlop3z/tabula/internal/alerr"
	"github.com/hlop3z/tabula/internal/cli"
	"github.com/hlop3z/tabula/internal/graph"
	"github.com/hlop3z/tabula/internal/lockfile"
)

// checkCmd reports structural diagnostics and compile warnings.
func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Report schema problems; exits 1 when any are errors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(a.projectPath(args))
			if err != nil {
				return err
			}

			diags := e.Check()
			errs, warns := 0, 0
			for _, d := range diags {
				if d.Severity == graph.SeverityError {
					errs++
					fmt.Fprint(a.stdout, cli.FormatError(d.Error()))
					continue
				}
				warns++
				fmt.Fprint(a.stdout, cli.FormatWarning(d.Code, d.Message))
				if d.Help != "" {
					fmt.Fprint(a.stdout, cli.FormatHelp(d.Help))
				}
			}
			for _, w := range e.CompileReport().Warnings {
				warns++
				fmt.Fprint(a.stdout, cli.FormatWarning(w.Code, w.Message))
			}
			stale, err := a.staleOutput()
			if err != nil {
				return err
			}
			for _, msg := range stale {
				warns++
				fmt.Fprint(a.stdout, cli.FormatWarning(alerr.ErrStaleOutput, msg))
			}
			if len(stale) > 0 {
				fmt.Fprint(a.stdout, cli.FormatHelp("run 'tabula compile' to regenerate "+a.cfg.Output))
			}

			switch {
			case errs > 0:
				a.printf("%s %s, %s\n", cli.RenderErrorBadge(),
					cli.FormatCount(errs, "error", "errors"),
					cli.FormatCount(warns, "warning", "warnings"))
				return errCheckFailed
			case warns > 0:
				a.printf("%s %s\n", cli.RenderWarnBadge(), cli.FormatCount(warns, "warning", "warnings"))
			default:
				a.printf("%s %s, %s\n", cli.RenderOKBadge(),
					cli.FormatCount(len(e.Graph().Tables), "table", "tables"),
					cli.FormatCount(len(e.Graph().Relations), "relation", "relations"))
			}
			return nil
		},
	}
}

// staleOutput compares the configured output against its lock file. No
// output or no lock means nothing to report.
func (a *app) staleOutput() ([]string, error) {
	if a.cfg.Output == "" {
		return nil, nil
	}
	res, err := lockfile.Verify(lockfile.PathFor(a.cfg.Output))
	if err != nil || !res.LockFileExists {
		return nil, err
	}
	var msgs []string
	for _, f := range res.ModifiedFiles {
		msgs = append(msgs, f+" changed since the last compile")
	}
	for _, f := range res.RemovedFiles {
		msgs = append(msgs, f+" is missing since the last compile")
	}
	return msgs, nil
}
