package mock

import "github.com/ragtools/docrag"

var _ docrag.ManifestService = (*ManifestService)(nil)

// ManifestService is a mock implementation of docrag.ManifestService.
type ManifestService struct {
	LoadFn func(path string) (*docrag.Manifest, error)
}

func (m *ManifestService) Load(path string) (*docrag.Manifest, error) {
	return m.LoadFn(path)
}
