package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shireesh.com/nodegen/internal/config"
	"shireesh.com/nodegen/internal/generator"
	"shireesh.com/nodegen/internal/schema"
)

var archetypeUsage = "project type: " + strings.Join(generator.ArchetypeNames(), ", ")

type generateRequest struct {
	name      string
	archetype string
	schemaDir string
	rollback  bool
}

func newNewCmd(g *globalFlags) *cobra.Command {
	var req generateRequest
	cmd := &cobra.Command{
		Use:     "new <project-name>",
		Aliases: []string{"n"},
		Short:   "Generate a project under the output root",
		Example: "  nodegen new shop-api --archetype express",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, base, err := g.settings()
			if err != nil {
				return err
			}
			req.name = args[0]
			if !cmd.Flags().Changed("rollback") {
				req.rollback = cfg.Rollback
			}
			return generate(g.printer(cmd), cfg, base, req)
		},
	}
	cmd.Flags().StringVarP(&req.archetype, "archetype", "a", "plain", archetypeUsage)
	cmd.Flags().StringVar(&req.schemaDir, "schema", "", "directory of *.up.sql migrations to turn into models (express only)")
	cmd.Flags().BoolVar(&req.rollback, "rollback", false, "remove what was created if generation fails")
	return cmd
}

// archetypeFor resolves the archetype for req, loading migrations when a
// schema directory was given.
func archetypeFor(cfg config.Config, req generateRequest) (generator.Archetype, error) {
	opts := cfg.FrameworkOptions()
	if req.schemaDir != "" {
		if req.archetype != "express" {
			return nil, fmt.Errorf("--schema needs the express archetype, got %q", req.archetype)
		}
		s, err := schema.LoadDir(req.schemaDir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, generator.WithSchema(s))
	}
	return generator.Lookup(req.archetype, opts...)
}

func generate(r generator.Reporter, cfg config.Config, base string, req generateRequest) error {
	archetype, err := archetypeFor(cfg, req)
	if err != nil {
		return err
	}
	spec := generator.ProjectSpec{Name: req.name, BasePath: base}
	return generator.New(spec, archetype,
		generator.WithReporter(r),
		generator.WithRollback(req.rollback),
	).InitializeProject()
}
