package metrics

import (
	"github.com/metafates/gache"
	"github.com/myselfbbs/vodplay/filesystem"
	"github.com/myselfbbs/vodplay/where"
)

// Store persists a Tally across runs.
type Store struct {
	cacher *gache.Cache[*Tally]
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{
		cacher: gache.New[*Tally](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// DefaultStore returns the store at the standard statistics location.
func DefaultStore() *Store {
	return NewStore(where.Stats())
}

// Load returns the persisted tally, empty when nothing was saved yet.
func (s *Store) Load() (Tally, error) {
	cached, expired, err := s.cacher.Get()
	if err != nil {
		return Tally{}, err
	}

	if expired || cached == nil {
		return Tally{ByShape: make(map[string]ShapeTally)}, nil
	}

	return *cached, nil
}

// Merge adds a tally to the persisted one and returns the result.
func (s *Store) Merge(t Tally) (Tally, error) {
	saved, err := s.Load()
	if err != nil {
		return Tally{}, err
	}

	saved.Merge(t)
	return saved, s.cacher.Set(&saved)
}

// Reset clears the persisted tally.
func (s *Store) Reset() error {
	return s.cacher.Set(&Tally{ByShape: make(map[string]ShapeTally)})
}
