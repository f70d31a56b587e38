package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"shireesh.com/nodegen/internal/compressor"
	"shireesh.com/nodegen/internal/generator"
)

func newPackCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "pack <project-name>",
		Short: "Zip a generated project into <output>/<project-name>.zip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := generator.ValidateProjectName(name); err != nil {
				return err
			}
			_, base, err := g.settings()
			if err != nil {
				return err
			}
			src := filepath.Join(base, name)
			dest := src + ".zip"
			p := g.printer(cmd)
			if _, err := os.Stat(dest); err == nil {
				p.Warn("Overwriting %s", dest)
			}
			if err := compressor.ZipDir(src, dest); err != nil {
				return err
			}
			p.Success("Packed %s into %s", name, dest)
			return nil
		},
	}
}
