// internal/adapters/memory/store.go
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
)

// Store keeps materials and movements in process memory. Every transaction
// holds the write lock for its whole duration, so postings against the same
// material are serialized.
type Store struct {
	mu        sync.RWMutex
	materials map[uuid.UUID]domain.Material
	movements []domain.Movement
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		materials: make(map[uuid.UUID]domain.Material),
	}
}

type txKey struct{}

var _ ports.TxManager = (*Store)(nil)

// RunInTransaction runs fn with exclusive access to the store. When fn fails
// the store is restored to the state it had before fn started.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	materials := make(map[uuid.UUID]domain.Material, len(s.materials))
	for id, m := range s.materials {
		materials[id] = m
	}
	movements := append([]domain.Movement(nil), s.movements...)

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.materials = materials
		s.movements = movements
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// read acquires shared access unless the caller already owns the store.
func (s *Store) read(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

// write acquires exclusive access unless the caller already owns the store.
func (s *Store) write(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// Repositories returns the material and movement repositories over s.
func (s *Store) Repositories() (ports.MaterialRepository, ports.MovementRepository) {
	return &materialRepository{store: s}, &movementRepository{store: s}
}

// sortNewestFirst orders movements by event time, newest first.
func sortNewestFirst(mvs []*domain.Movement) {
	sort.SliceStable(mvs, func(i, j int) bool {
		return mvs[i].CreatedAt.After(mvs[j].CreatedAt)
	})
}
