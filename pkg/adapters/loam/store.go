package loam

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/draftkit/pkg/domain"
	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
)

// Store implements ports.BlobStore on top of a Loam document repository.
// Each key becomes a markdown document whose body is the serialized tree,
// so saved drafts live next to other notes managed by Loam.
type Store struct {
	repo core.Repository
	root string
}

// New initializes a Loam repository at root (without git versioning).
func New(root string) (*Store, error) {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithVersioning(false),
		loam.WithForceTemp(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return &Store{repo: repo, root: absPath}, nil
}

// NewFromRepository wraps an existing repository rooted at root.
func NewFromRepository(repo core.Repository, root string) *Store {
	return &Store{repo: repo, root: root}
}

func docID(key string) string {
	return key + ".md"
}

func (s *Store) exists(key string) bool {
	_, err := os.Stat(filepath.Join(s.root, docID(key)))
	return err == nil
}

// Get returns the body of the document named after key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	doc, err := s.repo.Get(ctx, key)
	if err != nil {
		if !s.exists(key) {
			return "", domain.ErrBlobNotFound
		}
		return "", fmt.Errorf("loam get failed for %s: %w", key, err)
	}
	return strings.TrimSpace(doc.Content), nil
}

// Set saves value as the body of the document named after key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.repo.Save(ctx, core.Document{ID: docID(key), Content: value}); err != nil {
		return fmt.Errorf("loam save failed for %s: %w", key, err)
	}
	return nil
}

// Delete removes the document named after key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if !s.exists(key) {
		return nil
	}
	if err := s.repo.Delete(ctx, docID(key)); err != nil {
		return fmt.Errorf("loam delete failed for %s: %w", key, err)
	}
	return nil
}
