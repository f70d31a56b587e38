package generator

import (
	"fmt"
	"io"
	"path"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// PlanEntry is one line of a dry-run preview.
type PlanEntry struct {
	Kind string // "dir", "text" or "data"
	Path string // relative to the output root
	Size int    // bytes, files only
}

// Plan lists what InitializeProject would create, without touching the
// filesystem.
func Plan(spec ProjectSpec, archetype Archetype) ([]PlanEntry, error) {
	if err := ValidateProjectName(spec.Name); err != nil {
		return nil, err
	}
	var entries []PlanEntry
	for _, rel := range archetype.DirectoryPlan() {
		entries = append(entries, PlanEntry{Kind: "dir", Path: path.Join(spec.Name, rel)})
	}
	artifacts, err := archetype.FileArtifacts(spec)
	if err != nil {
		return nil, err
	}
	for _, a := range artifacts {
		data, err := a.Bytes()
		if err != nil {
			return nil, err
		}
		entries = append(entries, PlanEntry{Kind: a.Kind(), Path: path.Join(spec.Name, a.RelPath), Size: len(data)})
	}
	return entries, nil
}

// RenderPlan writes entries as a markdown table.
func RenderPlan(w io.Writer, entries []PlanEntry) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{})),
	)
	table.Header([]string{"Kind", "Path", "Size"})

	var rows [][]string
	for _, e := range entries {
		size := "-"
		if e.Kind != "dir" {
			size = strconv.Itoa(e.Size)
		}
		rows = append(rows, []string{e.Kind, e.Path, size})
	}
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("render plan: %w", err)
	}
	return table.Render()
}
