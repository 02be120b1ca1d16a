package locales

import (
	"embed"
	"io/fs"
)

//go:embed help/*.yaml
var help embed.FS

// HelpDir is the directory, relative to HelpFS, that holds <locale>.yaml files.
const HelpDir = "."

// HelpFS returns the bundled help content.
func HelpFS() (fs.FS, error) {
	return fs.Sub(help, "help")
}
