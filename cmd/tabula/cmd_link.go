package main

import (
	"github.com/spf13/cobra"

	"github.com/hlop3z/tabula/internal/alerr"
	"github.com/hlop3z/tabula/internal/cli"
	"github.com/hlop3z/tabula/internal/editor"
	"github.com/hlop3z/tabula/internal/schema"
)

// linkCmd relates two columns. It mirrors dragging from one column to
// another on the canvas: the endpoint that is a primary key becomes the
// parent and the child gets an FK column.
func (a *app) linkCmd() *cobra.Command {
	var (
		cardinality = cardinalityFlag(schema.OneToMany)
		reversed    bool
		onDelete    deleteRuleFlag
		onUpdate    updateRuleFlag
	)

	cmd := &cobra.Command{
		Use:   "link <table.column> <table.column>",
		Short: "Create a relation between two columns",
		Example: `  tabula link users.id posts.id
  tabula link students.id courses.id --cardinality n:m
  tabula link users.id profiles.id --cardinality 1:1 --on-delete set-null`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			card := schema.Cardinality(cardinality)
			del, upd := schema.DeleteRule(onDelete), schema.UpdateRule(onUpdate)
			return a.edit(func(e *editor.Editor) error {
				g := e.Graph()
				src, err := findRef(g, args[0])
				if err != nil {
					return err
				}
				dst, err := findRef(g, args[1])
				if err != nil {
					return err
				}

				id, err := e.CreateRelation(src, dst)
				if err != nil {
					return err
				}
				if id == "" {
					a.printf("%s", cli.FormatNote("relation already exists"))
					return nil
				}
				if card != schema.OneToMany || reversed {
					if err := e.SetCardinality(id, card, reversed); err != nil {
						return err
					}
				}
				if del != "" || upd != "" {
					r := e.Graph().Relation(id)
					if del == "" {
						del = r.DeleteRule
					}
					if upd == "" {
						upd = r.UpdateRule
					}
					e.SetRelationRules(id, del, upd)
				}
				a.printf("%s", cli.FormatSuccess("created relation "+id))
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.Var(&cardinality, "cardinality", "one-to-one (1:1), one-to-many (1:n) or many-to-many (n:m)")
	f.BoolVar(&reversed, "reversed", false, "Swap parent and child")
	f.Var(&onDelete, "on-delete", "ON DELETE rule: cascade, set-null, restrict")
	f.Var(&onUpdate, "on-update", "ON UPDATE rule: cascade, restrict")
	return cmd
}

// unlinkCmd deletes a relation.
func (a *app) unlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <relation-id>",
		Short: "Delete a relation and the FK column it implied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(func(e *editor.Editor) error {
				g := e.Graph()
				if g.Relation(args[0]) == nil {
					ids := make([]string, len(g.Relations))
					for i, r := range g.Relations {
						ids[i] = r.ID
					}
					return alerr.NotFound("relation", args[0], ids)
				}
				e.DeleteRelation(args[0])
				a.printf("%s", cli.FormatSuccess("deleted relation "+args[0]))
				return nil
			})
		},
	}
}
