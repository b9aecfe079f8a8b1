package docrag

// Manifest describes the documentation corpus to crawl. Categories are
// kept in the order they appear in the manifest file.
type Manifest struct {
	Categories []Category `json:"categories"`
}

// Category groups related documentation guides.
type Category struct {
	Name   string  `json:"name"`
	Guides []Guide `json:"guides"`
}

// Guide is a single documentation entry point. A guide either points at a
// URL directly or holds a list of links.
type Guide struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Links []Link `json:"links"`
}

// Link is a named URL within a guide.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// URLs returns every guide and link URL in the manifest, in manifest
// order. Duplicate entries are preserved; the crawler skips pages it has
// already collected.
func (m *Manifest) URLs() []string {
	if m == nil {
		return nil
	}

	var urls []string
	for _, cat := range m.Categories {
		for _, guide := range cat.Guides {
			if guide.URL != "" {
				urls = append(urls, guide.URL)
			}
			for _, link := range guide.Links {
				if link.URL != "" {
					urls = append(urls, link.URL)
				}
			}
		}
	}
	return urls
}

// ManifestService loads corpus manifests.
type ManifestService interface {
	// Load reads the manifest at path. A missing or unparseable file is
	// not an error: implementations log the problem and return an empty
	// manifest so builds degrade to a no-op.
	Load(path string) (*Manifest, error)
}
