package main

import (
	"github.com/spf13/cobra"

	"github.com/hlop3z/tabula/internal/alerr"
	"github.com/hlop3z/tabula/internal/cli"
	"github.com/hlop3z/tabula/internal/editor"
	"github.com/hlop3z/tabula/internal/graph"
	"github.com/hlop3z/tabula/internal/schema"
)

// columnCmd groups column subcommands.
func (a *app) columnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Add, edit and drop columns",
	}
	cmd.AddCommand(a.columnAddCmd(), a.columnSetCmd(), a.columnToggleCmd(), a.columnDropCmd())
	return cmd
}

func (a *app) columnAddCmd() *cobra.Command {
	var (
		typ        string
		primary    bool
		unique     bool
		notNull    bool
		enumValues []string
		def        string
		references string
	)

	cmd := &cobra.Command{
		Use:   "add <table> <name>",
		Short: "Add a column to a table",
		Example: `  tabula column add users email --unique --not-null
  tabula column add posts status --type enum --enum draft,published
  tabula column add posts author_id --type uuid --references users.id`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(func(e *editor.Editor) error {
				g := e.Graph()
				t, err := findTable(g, args[0])
				if err != nil {
					return err
				}
				col := schema.Column{
					Name:         args[1],
					Type:         schema.ColumnType(typ),
					EnumValues:   enumValues,
					DefaultValue: def,
					IsPrimary:    primary,
					IsUnique:     unique,
					IsNullable:   !notNull,
				}
				if references != "" {
					ref, err := findRef(g, references)
					if err != nil {
						return err
					}
					col.IsForeign = true
					col.References = &ref
				}
				if !col.Type.Known() {
					a.log.Warn("unknown column type; compiles as TEXT", "type", typ)
				}
				e.InsertColumn(t.ID, col)
				a.printf("%s", cli.FormatSuccess("added column "+t.Name+"."+col.Name))
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&typ, "type", "t", string(schema.TypeText), "Column type: integer, text, uuid, date, timestamp, boolean, json, enum")
	f.BoolVar(&primary, "primary", false, "Part of the primary key")
	f.BoolVar(&unique, "unique", false, "Unique")
	f.BoolVar(&notNull, "not-null", false, "Not nullable")
	f.StringSliceVar(&enumValues, "enum", nil, "Enum values (comma separated)")
	f.StringVar(&def, "default", "", "Default value as a raw SQL expression")
	f.StringVar(&references, "references", "", "Make this a foreign key to <table>.<column> without a relation")
	return cmd
}

func (a *app) columnSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <table> <column> <field> <value>",
		Short: "Set a column field: name, type, default or enum",
		Long: `Set a column field: name, type, default or enum.

Renaming or retyping a key column also updates the FK columns that
reference it. Enum values are comma separated.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := graph.ParseColumnField(args[2])
			if err != nil {
				return alerr.Wrap(alerr.ErrInvalidArgument, err, "invalid column field").
					WithHelp("use one of: name, type, default, enum")
			}
			return a.edit(func(e *editor.Editor) error {
				t, c, err := a.findColumnArgs(e, args[0], args[1])
				if err != nil {
					return err
				}
				if e.UpdateColumnField(t.ID, c.ID, field, args[3]) {
					a.printf("%s", cli.FormatSuccess("updated "+t.Name+"."+c.Name))
				}
				return nil
			})
		},
	}
}

func (a *app) columnToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <table> <column> <flag>",
		Short: "Flip a column flag: primary, unique, nullable or foreign",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			flag, err := graph.ParseColumnFlag(args[2])
			if err != nil {
				return alerr.Wrap(alerr.ErrInvalidArgument, err, "invalid column flag").
					WithHelp("use one of: primary, unique, nullable, foreign")
			}
			return a.edit(func(e *editor.Editor) error {
				t, c, err := a.findColumnArgs(e, args[0], args[1])
				if err != nil {
					return err
				}
				if e.ToggleColumnFlag(t.ID, c.ID, flag) {
					a.printf("%s", cli.FormatSuccess("toggled "+flag.String()+" on "+t.Name+"."+c.Name))
				}
				return nil
			})
		},
	}
}

func (a *app) columnDropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop <table> <column>",
		Short: "Drop a column and the relations attached to it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(func(e *editor.Editor) error {
				t, c, err := a.findColumnArgs(e, args[0], args[1])
				if err != nil {
					return err
				}
				name := t.Name + "." + c.Name
				e.RemoveColumn(t.ID, c.ID)
				a.printf("%s", cli.FormatSuccess("dropped column "+name))
				return nil
			})
		},
	}
}

func (a *app) findColumnArgs(e *editor.Editor, tableKey, columnKey string) (*schema.Table, *schema.Column, error) {
	t, err := findTable(e.Graph(), tableKey)
	if err != nil {
		return nil, nil, err
	}
	c, err := findColumn(t, columnKey)
	if err != nil {
		return nil, nil, err
	}
	return t, c, nil
}
