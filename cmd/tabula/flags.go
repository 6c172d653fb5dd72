package main

import (
	"github.com/spf13/pflag"

	"github.com/hlop3z/tabula/internal/schema"
)

// Typed flag values validate while flags are parsed.
var (
	_ pflag.Value = (*cardinalityFlag)(nil)
	_ pflag.Value = (*deleteRuleFlag)(nil)
	_ pflag.Value = (*updateRuleFlag)(nil)
)

type cardinalityFlag schema.Cardinality

func (f *cardinalityFlag) String() string { return string(*f) }
func (f *cardinalityFlag) Type() string   { return "cardinality" }

func (f *cardinalityFlag) Set(s string) error {
	c, err := schema.ParseCardinality(s)
	if err != nil {
		return err
	}
	*f = cardinalityFlag(c)
	return nil
}

// deleteRuleFlag is empty until set.
type deleteRuleFlag schema.DeleteRule

func (f *deleteRuleFlag) String() string { return string(*f) }
func (f *deleteRuleFlag) Type() string   { return "rule" }

func (f *deleteRuleFlag) Set(s string) error {
	r, err := schema.ParseDeleteRule(s)
	if err != nil {
		return err
	}
	*f = deleteRuleFlag(r)
	return nil
}

// updateRuleFlag is empty until set.
type updateRuleFlag schema.UpdateRule

func (f *updateRuleFlag) String() string { return string(*f) }
func (f *updateRuleFlag) Type() string   { return "rule" }

func (f *updateRuleFlag) Set(s string) error {
	r, err := schema.ParseUpdateRule(s)
	if err != nil {
		return err
	}
	*f = updateRuleFlag(r)
	return nil
}
