package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hlop3z/tabula/internal/cli"
	"github.com/hlop3z/tabula/internal/editor"
)

// tableCmd groups table subcommands.
func (a *app) tableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Add, rename, drop and list tables",
	}
	cmd.AddCommand(a.tableAddCmd(), a.tableRenameCmd(), a.tableDropCmd(), a.tableListCmd())
	return cmd
}

func (a *app) tableAddCmd() *cobra.Command {
	var x, y float64

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a table with a uuid primary key named id",
		Long: `Add a table with a uuid primary key named id.

Without a name the table is called table_<n>.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return a.edit(func(e *editor.Editor) error {
				id := e.CreateTable(name, x, y)
				a.printf("%s", cli.FormatSuccess("added table "+e.Graph().Table(id).Name))
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "Canvas x position")
	cmd.Flags().Float64Var(&y, "y", 0, "Canvas y position")
	return cmd
}

func (a *app) tableRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <table> <name>",
		Short: "Rename a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(func(e *editor.Editor) error {
				t, err := findTable(e.Graph(), args[0])
				if err != nil {
					return err
				}
				if e.RenameTable(t.ID, args[1]) {
					a.printf("%s", cli.FormatSuccess("renamed table to "+args[1]))
				}
				return nil
			})
		},
	}
}

func (a *app) tableDropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop <table>",
		Short: "Drop a table with its relations and the FK columns pointing at it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(func(e *editor.Editor) error {
				t, err := findTable(e.Graph(), args[0])
				if err != nil {
					return err
				}
				name := t.Name
				e.DeleteTable(t.ID)
				a.printf("%s", cli.FormatSuccess("dropped table "+name))
				return nil
			})
		},
	}
}

func (a *app) tableListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [file]",
		Short: "List tables",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(a.projectPath(args))
			if err != nil {
				return err
			}
			g := e.Graph()
			table := cli.NewTable("ID", "NAME", "COLUMNS", "RELATIONS")
			for _, t := range g.Tables {
				table.AddRow(t.ID, t.Name, strconv.Itoa(len(t.Columns)), strconv.Itoa(len(g.RelationsOf(t.ID))))
			}
			a.printf("%s", table.String())
			return nil
		},
	}
}
