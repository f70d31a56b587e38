package generator

// PlainProject lays out root/src with a single welcome script.
type PlainProject struct{}

// NewPlainProject returns the plain archetype.
func NewPlainProject() *PlainProject { return &PlainProject{} }

func (p *PlainProject) Name() string { return "plain" }

func (p *PlainProject) Description() string {
	return "Minimal Node.js project with a single entry script"
}

func (p *PlainProject) DirectoryPlan() []string {
	return []string{".", "src"}
}

func (p *PlainProject) FileArtifacts(spec ProjectSpec) ([]FileArtifact, error) {
	return []FileArtifact{
		{RelPath: PlainEntryFile, Content: PlainEntryTemplate(spec.Name)},
	}, nil
}
