// Package yaml loads documentation corpus manifests from YAML files.
package yaml

import (
	"log/slog"
	"os"

	"github.com/ragtools/docrag"
	"gopkg.in/yaml.v3"
)

// Compile-time interface verification.
var _ docrag.ManifestService = (*Loader)(nil)

// Loader implements docrag.ManifestService for YAML manifests. A missing
// or unparseable manifest yields an empty manifest rather than an error,
// so downstream commands degrade to a no-op instead of crashing.
type Loader struct {
	Logger *slog.Logger
}

// NewLoader creates a Loader that logs problems to the given logger.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{Logger: logger}
}

// manifest mirrors the YAML document shape. The categories mapping is
// decoded through a yaml.Node so its entries keep document order
// instead of map iteration order.
type manifest struct {
	Categories yaml.Node `yaml:"categories"`
}

type category struct {
	Guides []guide `yaml:"guides"`
}

type guide struct {
	Name  string `yaml:"name"`
	URL   string `yaml:"url"`
	Links []link `yaml:"links"`
}

type link struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Load reads and parses the manifest at path.
func (l *Loader) Load(path string) (*docrag.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		l.Logger.Warn("manifest not readable, using empty manifest", "path", path, "error", err)
		return &docrag.Manifest{}, nil
	}

	var doc manifest
	if err := yaml.Unmarshal(data, &doc); err != nil {
		l.Logger.Warn("manifest not parseable, using empty manifest", "path", path, "error", err)
		return &docrag.Manifest{}, nil
	}

	out := &docrag.Manifest{}
	if doc.Categories.Kind != yaml.MappingNode {
		return out, nil
	}

	// Mapping node content alternates key, value.
	for i := 0; i+1 < len(doc.Categories.Content); i += 2 {
		name := doc.Categories.Content[i].Value

		var cat category
		if err := doc.Categories.Content[i+1].Decode(&cat); err != nil {
			l.Logger.Warn("manifest not parseable, using empty manifest", "path", path, "error", err)
			return &docrag.Manifest{}, nil
		}

		guides := make([]docrag.Guide, 0, len(cat.Guides))
		for _, g := range cat.Guides {
			links := make([]docrag.Link, 0, len(g.Links))
			for _, ln := range g.Links {
				links = append(links, docrag.Link{Name: ln.Name, URL: ln.URL})
			}
			guides = append(guides, docrag.Guide{Name: g.Name, URL: g.URL, Links: links})
		}
		out.Categories = append(out.Categories, docrag.Category{Name: name, Guides: guides})
	}

	return out, nil
}
