package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"shireesh.com/nodegen/internal/config"
	"shireesh.com/nodegen/internal/generator"
	"shireesh.com/nodegen/internal/tui"
	"shireesh.com/nodegen/internal/ui"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	outputRoot string
	verbose    bool
	noColor    bool
}

// interaction asks the user for the project type and name.
type interaction struct {
	selectArchetype func(cmd *cobra.Command, choices []tui.Choice) (string, error)
	promptName      func(cmd *cobra.Command) (string, error)
}

func terminalInteraction() interaction {
	return interaction{
		selectArchetype: func(cmd *cobra.Command, choices []tui.Choice) (string, error) {
			return tui.SelectArchetype(choices, tui.WithIO(cmd.InOrStdin(), cmd.OutOrStdout())...)
		},
		promptName: func(cmd *cobra.Command) (string, error) {
			prompt := namePrompt(cmd)
			return prompt.Run()
		},
	}
}

// NewRootCmd builds the nodegen command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(terminalInteraction())
}

func newRootCmd(ask interaction) *cobra.Command {
	g := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:           "nodegen",
		Short:         "Scaffold Node.js starter projects",
		Long:          "Run without a subcommand to pick a project type and name interactively.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, g, ask)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" if present)")
	pf.StringVarP(&g.outputRoot, "output", "o", "", "output root for generated projects (default \""+config.DefaultOutputRoot+"\")")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "print debug output")
	pf.BoolVar(&g.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newNewCmd(g),
		newPlanCmd(g),
		newPackCmd(g),
	)
	return rootCmd
}

// Execute runs nodegen and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// settings loads the config file and applies the --output flag.
func (g *globalFlags) settings() (config.Config, string, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return config.Config{}, "", err
	}
	if g.outputRoot != "" {
		cfg.OutputRoot = g.outputRoot
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, cfg.BasePath(wd), nil
}

func (g *globalFlags) printer(cmd *cobra.Command) *ui.Printer {
	opts := []ui.Option{ui.WithVerbose(g.verbose)}
	if g.noColor {
		opts = append(opts, ui.WithColor(false))
	}
	return ui.New(cmd.OutOrStdout(), opts...)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// namePrompt reads the project name from the command's streams.
func namePrompt(cmd *cobra.Command) *promptui.Prompt {
	return &promptui.Prompt{
		Label:    "Enter project name",
		Validate: generator.ValidateProjectName,
		Stdin:    io.NopCloser(cmd.InOrStdin()),
		Stdout:   nopWriteCloser{cmd.OutOrStdout()},
	}
}

func runInteractive(cmd *cobra.Command, g *globalFlags, ask interaction) error {
	cfg, base, err := g.settings()
	if err != nil {
		return err
	}

	var choices []tui.Choice
	for _, a := range generator.Archetypes() {
		choices = append(choices, tui.Choice{Name: a.Name(), Description: a.Description()})
	}
	archetype, err := ask.selectArchetype(cmd, choices)
	if err != nil {
		return err
	}

	projectName, err := ask.promptName(cmd)
	if err != nil {
		return err
	}

	return generate(g.printer(cmd), cfg, base, generateRequest{
		name:      projectName,
		archetype: archetype,
		rollback:  cfg.Rollback,
	})
}
