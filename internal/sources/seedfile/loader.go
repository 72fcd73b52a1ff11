package seedfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is one bookmark in the seed file.
type Entry struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

// File is the root structure of the seed YAML.
type File struct {
	Bookmarks []Entry `yaml:"bookmarks"`
}

// Loader handles loading and parsing of the bookmark seed file.
type Loader struct {
	filePath string
}

// NewLoader creates a seed file loader.
func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Load reads and parses the seed file.
func (l *Loader) Load() (*File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmark seed file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse bookmark seed yaml: %w", err)
	}

	return &f, nil
}
