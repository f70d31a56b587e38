package cmd

import (
	"github.com/spf13/cobra"

	"shireesh.com/nodegen/internal/generator"
)

func newPlanCmd(g *globalFlags) *cobra.Command {
	var req generateRequest
	cmd := &cobra.Command{
		Use:   "plan <project-name>",
		Short: "Show the directories and files a project would get, without writing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, base, err := g.settings()
			if err != nil {
				return err
			}
			req.name = args[0]
			archetype, err := archetypeFor(cfg, req)
			if err != nil {
				return err
			}
			entries, err := generator.Plan(generator.ProjectSpec{Name: req.name, BasePath: base}, archetype)
			if err != nil {
				return err
			}
			return generator.RenderPlan(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().StringVarP(&req.archetype, "archetype", "a", "plain", archetypeUsage)
	cmd.Flags().StringVar(&req.schemaDir, "schema", "", "directory of *.up.sql migrations to turn into models (express only)")
	return cmd
}
