package label

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyManifest indicates a manifest with no definitions.
var ErrEmptyManifest = errors.New("manifest has no definitions")

// Manifest is a YAML file listing label definitions to convert. The expected
// field holds the golden output for verification runs.
type Manifest struct {
	Definitions []ManifestEntry `yaml:"definitions"`
}

// ManifestEntry is one definition in a manifest file.
type ManifestEntry struct {
	Name       string `yaml:"name"`
	Engine     string `yaml:"engine,omitempty"`
	Expression string `yaml:"expression"`
	Expected   string `yaml:"expected,omitempty"`
}

// ParseManifest decodes a manifest from raw YAML bytes.
func ParseManifest(data []byte) (*Manifest, error) {
	var manifest Manifest

	err := yaml.Unmarshal(data, &manifest)
	if err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	if len(manifest.Definitions) == 0 {
		return nil, ErrEmptyManifest
	}

	return &manifest, nil
}

// LoadManifest reads and decodes a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	return ParseManifest(data)
}

// ToDefinitions converts manifest entries to definitions.
func (m *Manifest) ToDefinitions() []Definition {
	defs := make([]Definition, len(m.Definitions))

	for i, entry := range m.Definitions {
		defs[i] = Definition{
			Name:       entry.Name,
			Engine:     entry.Engine,
			Expression: entry.Expression,
			Expected:   entry.Expected,
		}
	}

	return defs
}
