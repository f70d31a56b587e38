package generator

import "fmt"

const (
	// PlainEntryFile is the entry point of the plain archetype.
	PlainEntryFile = "src/app.js"
	// ServerEntryFile is the entry point of the express archetype.
	ServerEntryFile = "src/server.js"
	// ManifestFile is the package descriptor written at the project root.
	ManifestFile = "package.json"
)

const plainEntryTemplate = "console.log('Welcome to %s project!')\n"

// serverEntryTemplate boots a minimal express server on PORT (default 3000).
const serverEntryTemplate = `import express from 'express'

const setupExpressServer = () => {
  const app = express()

  const port = process.env.PORT || 3000

  app.get('/', (req, res) => {
    res.send('Hello, world!')
  })

  app.listen(port, () => {
    console.log('Press Ctrl-C to terminate...')
  })
}

try {
  setupExpressServer()
} catch (error) {
  console.error(error)
  process.exitCode = 1
}
`

// PlainEntryTemplate returns the welcome script for the plain archetype.
func PlainEntryTemplate(projectName string) string {
	return fmt.Sprintf(plainEntryTemplate, projectName)
}

// ServerEntryTemplate returns the source of src/server.js. The result is
// always the same string.
func ServerEntryTemplate() string {
	return serverEntryTemplate
}
