// Package memory is a process-local store used for development and tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// Store holds users, categories and products behind one lock so that
// cross-entity checks such as "category still has products" are atomic.
type Store struct {
	mu         sync.RWMutex
	users      map[int64]domain.User
	categories map[int64]domain.Category
	products   map[int64]domain.Product
	seq        map[string]int64
}

func NewStore() *Store {
	return &Store{
		users:      make(map[int64]domain.User),
		categories: make(map[int64]domain.Category),
		products:   make(map[int64]domain.Product),
		seq:        make(map[string]int64),
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// next must be called with the write lock held.
func (s *Store) next(name string) int64 {
	s.seq[name]++
	return s.seq[name]
}

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }
func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{s: s} }
func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }

func sortedValues[T any](m map[int64]T) []T {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
