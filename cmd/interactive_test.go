package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shireesh.com/nodegen/internal/generator"
	"shireesh.com/nodegen/internal/tui"
)

func scripted(archetype, name string, selectErr error) (interaction, *[]tui.Choice) {
	var offered []tui.Choice
	return interaction{
		selectArchetype: func(_ *cobra.Command, choices []tui.Choice) (string, error) {
			offered = choices
			return archetype, selectErr
		},
		promptName: func(*cobra.Command) (string, error) { return name, nil },
	}, &offered
}

func TestInteractive_GeneratesChosenProject(t *testing.T) {
	dist := filepath.Join(t.TempDir(), "dist")
	ask, offered := scripted("express", "shop-api", nil)

	var out bytes.Buffer
	root := newRootCmd(ask)
	root.SetOut(&out)
	root.SetArgs([]string{"-o", dist, "--no-color"})
	require.NoError(t, root.Execute())

	require.Len(t, *offered, len(generator.ArchetypeNames()))
	assert.Equal(t, "plain", (*offered)[0].Name)
	assert.Equal(t, "express", (*offered)[1].Name)
	assert.Contains(t, out.String(), "Project 'shop-api' has been initialized successfully.")
	assert.FileExists(t, filepath.Join(dist, "shop-api", "package.json"))
	assert.FileExists(t, filepath.Join(dist, "shop-api", "src", "server.js"))
}

func TestInteractive_AbortedSelection(t *testing.T) {
	dist := filepath.Join(t.TempDir(), "dist")
	ask, _ := scripted("", "", tui.ErrAborted)

	root := newRootCmd(ask)
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"-o", dist})
	assert.ErrorIs(t, root.Execute(), tui.ErrAborted)
	assert.NoDirExists(t, dist)
}

func TestNamePrompt_UsesCommandStreams(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("shop-api\n"))
	cmd.SetOut(&out)

	p := namePrompt(cmd)
	require.NotNil(t, p.Stdin)
	require.NotNil(t, p.Stdout)

	_, err := p.Stdout.Write([]byte("echo"))
	require.NoError(t, err)
	assert.Equal(t, "echo", out.String())
	require.NoError(t, p.Stdout.Close())

	buf := make([]byte, 8)
	n, err := p.Stdin.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "shop-api", string(buf[:n]))

	assert.NoError(t, p.Validate("shop-api"))
	assert.ErrorIs(t, p.Validate("Bad Name"), generator.ErrInvalidProjectName)
}
