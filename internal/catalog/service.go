package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/gudangkain/gudangkain/internal/shared"
)

// Service coordinates master item operations. Writes hold the process write
// gate because uniqueness is checked by reading before writing.
type Service struct {
	repo *Repository
	gate *shared.WriteGate
}

// NewService builds Service.
func NewService(repo *Repository, gate *shared.WriteGate) *Service {
	return &Service{repo: repo, gate: gate}
}

// List returns every master item.
func (s *Service) List(ctx context.Context) ([]MaterialVariant, error) {
	return s.repo.List(ctx)
}

// Get returns the item with the given key.
func (s *Service) Get(ctx context.Context, key ItemKey) (MaterialVariant, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return MaterialVariant{}, err
	}
	for _, item := range items {
		if item.Key() == key {
			return item, nil
		}
	}
	return MaterialVariant{}, fmt.Errorf("%w: %s/%s", ErrItemNotFound, key.KodeBahan, key.Warna)
}

// Add inserts a new item. The (kode_bahan, warna) pair must be unique.
func (s *Service) Add(ctx context.Context, item MaterialVariant) error {
	if err := validate(item); err != nil {
		return err
	}
	s.gate.Lock()
	defer s.gate.Unlock()

	items, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, existing := range items {
		if existing.Key() == item.Key() {
			return fmt.Errorf("%w: %s/%s", ErrDuplicateItem, item.KodeBahan, item.Warna)
		}
	}
	return s.repo.Append(ctx, item)
}

// Rename replaces the item at oldKey with updated, which may carry a new key.
// The new key is checked against every other row before anything is written.
// The removal and the reinsert are two backend writes; a crash in between
// loses the row, which is an accepted property of the positional backend.
func (s *Service) Rename(ctx context.Context, oldKey ItemKey, updated MaterialVariant) error {
	if err := validate(updated); err != nil {
		return err
	}
	s.gate.Lock()
	defer s.gate.Unlock()

	items, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	oldIndex := -1
	for i, existing := range items {
		if existing.Key() == oldKey {
			oldIndex = i
			continue
		}
		if existing.Key() == updated.Key() {
			return fmt.Errorf("%w: %s/%s", ErrDuplicateItem, updated.KodeBahan, updated.Warna)
		}
	}
	if oldIndex < 0 {
		return fmt.Errorf("%w: %s/%s", ErrItemNotFound, oldKey.KodeBahan, oldKey.Warna)
	}
	if err := s.repo.DeleteAt(ctx, oldIndex); err != nil {
		return err
	}
	return s.repo.Append(ctx, updated)
}

// Remove deletes the item with the given key. Removing an absent key is a
// no-op, not an error.
func (s *Service) Remove(ctx context.Context, key ItemKey) error {
	s.gate.Lock()
	defer s.gate.Unlock()

	items, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	for i, existing := range items {
		if existing.Key() == key {
			return s.repo.DeleteAt(ctx, i)
		}
	}
	return nil
}

func validate(item MaterialVariant) error {
	if strings.TrimSpace(item.KodeBahan) == "" {
		return fmt.Errorf("%w: kode bahan is required", ErrInvalidItem)
	}
	if strings.TrimSpace(item.Warna) == "" {
		return fmt.Errorf("%w: warna is required", ErrInvalidItem)
	}
	if item.Harga < 0 {
		return fmt.Errorf("%w: harga cannot be negative", ErrInvalidItem)
	}
	return nil
}
