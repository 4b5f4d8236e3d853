package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gudangkain/gudangkain/internal/shared"
)

// Service maintains the two movement ledgers and derives stock balances from
// them. Writes hold the process write gate; reads never do.
type Service struct {
	repo *Repository
	gate *shared.WriteGate
	now  func() time.Time
}

// NewService builds Service.
func NewService(repo *Repository, gate *shared.WriteGate) *Service {
	return &Service{repo: repo, gate: gate, now: time.Now}
}

// RecordIncoming appends one goods-in movement.
func (s *Service) RecordIncoming(ctx context.Context, input MovementInput) (Movement, error) {
	return s.record(ctx, KindIncoming, input)
}

// RecordOutgoing appends one goods-out movement.
func (s *Service) RecordOutgoing(ctx context.Context, input MovementInput) (Movement, error) {
	return s.record(ctx, KindOutgoing, input)
}

func (s *Service) record(ctx context.Context, kind Kind, input MovementInput) (Movement, error) {
	m, err := s.build(kind, input)
	if err != nil {
		return Movement{}, err
	}
	s.gate.Lock()
	defer s.gate.Unlock()
	if err := s.repo.Append(ctx, m); err != nil {
		return Movement{}, err
	}
	return m, nil
}

// UpdateMovement rewrites an existing ledger row in place.
func (s *Service) UpdateMovement(ctx context.Context, kind Kind, rowID string, input MovementInput) (Movement, error) {
	m, err := s.build(kind, input)
	if err != nil {
		return Movement{}, err
	}
	m.RowID = rowID
	s.gate.Lock()
	defer s.gate.Unlock()
	if err := s.repo.Update(ctx, kind, rowID, m); err != nil {
		return Movement{}, err
	}
	return m, nil
}

// DeleteMovement removes a ledger row.
func (s *Service) DeleteMovement(ctx context.Context, kind Kind, rowID string) error {
	s.gate.Lock()
	defer s.gate.Unlock()
	return s.repo.Delete(ctx, kind, rowID)
}

// Balance derives on-hand stock for one variant as the difference between the
// cumulative goods-in and goods-out quantities. Empty ledgers yield 0.
func (s *Service) Balance(ctx context.Context, kodeBahan, warna string) (int64, error) {
	incoming, err := s.repo.List(ctx, KindIncoming)
	if err != nil {
		return 0, err
	}
	outgoing, err := s.repo.List(ctx, KindOutgoing)
	if err != nil {
		return 0, err
	}
	var balance int64
	for _, m := range incoming {
		if m.KodeBahan == kodeBahan && m.Warna == warna {
			balance += m.Qty
		}
	}
	for _, m := range outgoing {
		if m.KodeBahan == kodeBahan && m.Warna == warna {
			balance -= m.Qty
		}
	}
	return balance, nil
}

// Movements returns the merged movement history of one variant, ascending by
// timestamp, restricted to [from, to] inclusive on the calendar date. Zero
// bounds leave the corresponding side open.
func (s *Service) Movements(ctx context.Context, kodeBahan, warna string, from, to time.Time) ([]Movement, error) {
	var merged []Movement
	for _, kind := range []Kind{KindIncoming, KindOutgoing} {
		movements, err := s.repo.List(ctx, kind)
		if err != nil {
			return nil, err
		}
		for _, m := range movements {
			if m.KodeBahan != kodeBahan || m.Warna != warna {
				continue
			}
			if !inDateWindow(m.Timestamp, from, to) {
				continue
			}
			merged = append(merged, m)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.Before(merged[j].Timestamp)
	})
	return merged, nil
}

// DistinctYards returns the yard measures seen in either ledger for one
// variant, ascending. Used to offer known values during data entry.
func (s *Service) DistinctYards(ctx context.Context, kodeBahan, warna string) ([]float64, error) {
	seen := map[float64]struct{}{}
	for _, kind := range []Kind{KindIncoming, KindOutgoing} {
		movements, err := s.repo.List(ctx, kind)
		if err != nil {
			return nil, err
		}
		for _, m := range movements {
			if m.KodeBahan == kodeBahan && m.Warna == warna {
				seen[m.Yard] = struct{}{}
			}
		}
	}
	yards := make([]float64, 0, len(seen))
	for y := range seen {
		yards = append(yards, y)
	}
	sort.Float64s(yards)
	return yards, nil
}

func (s *Service) build(kind Kind, input MovementInput) (Movement, error) {
	if strings.TrimSpace(input.KodeBahan) == "" || strings.TrimSpace(input.Warna) == "" {
		return Movement{}, fmt.Errorf("%w: kode bahan and warna are required", ErrInvalidMovement)
	}
	if input.Qty <= 0 {
		return Movement{}, fmt.Errorf("%w: stok must be positive", ErrInvalidMovement)
	}
	if input.Yard < 0 {
		return Movement{}, fmt.Errorf("%w: yard cannot be negative", ErrInvalidMovement)
	}
	ts := input.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	return Movement{
		RowID:      uuid.NewString(),
		Kind:       kind,
		Timestamp:  ts,
		KodeBahan:  input.KodeBahan,
		Warna:      input.Warna,
		Qty:        input.Qty,
		Yard:       input.Yard,
		Keterangan: input.Keterangan,
	}, nil
}

func inDateWindow(ts, from, to time.Time) bool {
	day := ts.Truncate(24 * time.Hour)
	if !from.IsZero() && day.Before(from.Truncate(24*time.Hour)) {
		return false
	}
	if !to.IsZero() && day.After(to.Truncate(24*time.Hour)) {
		return false
	}
	return true
}
