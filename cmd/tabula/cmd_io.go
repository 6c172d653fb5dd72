package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hlop3z/tabula/internal/alerr"
	"github.com/hlop3z/tabula/internal/cli"
	"github.com/hlop3z/tabula/internal/editor"
	"github.com/hlop3z/tabula/internal/project"
)

// importCmd merges another project file into the current one.
func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge tables and relations from another project file",
		Long: `Merge tables and relations from another project file.

Entries are matched by id: existing ones are kept and new ones appended.
The current viewport is preserved. The merge clears undo history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			incoming, err := project.LoadFile(args[0])
			if err != nil {
				return err
			}
			return a.edit(func(e *editor.Editor) error {
				before := len(e.Graph().Tables)
				e.Replace(project.Merge(e.Project(), incoming))
				if err := a.save(a.cfg.Project, e); err != nil {
					return err
				}
				added := len(e.Graph().Tables) - before
				a.printf("%s", cli.FormatSuccess("imported "+cli.FormatCount(added, "table", "tables")+" from "+args[0]))
				return nil
			})
		},
	}
}

// exportCmd prints the project as JSON or YAML.
func (a *app) exportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Print the project as json or yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.LoadFile(a.projectPath(args))
			if err != nil {
				return err
			}
			var data []byte
			switch format {
			case "json":
				data, err = project.Marshal(p)
			case "yaml", "yml":
				data, err = project.MarshalYAML(p)
			default:
				return alerr.Newf(alerr.ErrInvalidArgument, "unsupported export format %q", format).
					WithHelp("use one of: json, yaml")
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.stdout, string(data))
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, yaml")
	return cmd
}
