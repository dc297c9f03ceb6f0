package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/fjod/go_storefront/internal/domain"
)

// Source produces the raw item list of a catalog.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.Item, error)
}

// FileSource reads a catalog document from the local filesystem.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file:" + s.path
}

func (s *FileSource) Fetch(context.Context) ([]domain.Item, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return DecodeItems(data)
}

// ItemLister is implemented by the SQLite catalog repository.
type ItemLister interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
}

// RepositorySource reads the catalog from a local database.
type RepositorySource struct {
	name string
	repo ItemLister
}

func NewRepositorySource(name string, repo ItemLister) *RepositorySource {
	return &RepositorySource{name: name, repo: repo}
}

func (s *RepositorySource) Name() string {
	return "sqlite:" + s.name
}

func (s *RepositorySource) Fetch(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return items, nil
}
