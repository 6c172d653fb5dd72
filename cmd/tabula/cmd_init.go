package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/hlop3z/tabula/internal/alerr"
	"github.com/hlop3z/tabula/internal/cli"
	"github.com/hlop3z/tabula/internal/project"
)

// initCmd writes an empty project and a config file pointing at it.
func (a *app) initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Create an empty project and a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.projectPath(args)
			if !force {
				if _, err := os.Stat(path); err == nil {
					return alerr.New(alerr.ErrIO, "project file already exists").
						WithFile(path).
						WithHelp("pass --force to overwrite it")
				}
			}
			if err := project.SaveFile(path, project.Empty()); err != nil {
				return err
			}
			a.printf("%s", cli.FormatSuccess("created "+path))

			_, err := os.Stat(a.configFile)
			if !errors.Is(err, fs.ErrNotExist) && !force {
				return nil
			}
			cfg := *a.cfg
			cfg.Project = path
			if err := cfg.Write(a.configFile); err != nil {
				return err
			}
			a.printf("%s", cli.FormatSuccess("created "+a.configFile))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}
