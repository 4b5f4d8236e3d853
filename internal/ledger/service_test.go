package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gudangkain/gudangkain/internal/shared"
	"github.com/gudangkain/gudangkain/internal/sheetdb"
)

func newService() *Service {
	return NewService(NewRepository(sheetdb.NewMemStore()), shared.NewWriteGate())
}

func at(day string, hour int) time.Time {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return t.Add(time.Duration(hour) * time.Hour)
}

func TestBalanceIsLedgerDifference(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	in := func(qty int64) MovementInput {
		return MovementInput{KodeBahan: "KB-01", Warna: "merah", Qty: qty, Yard: 40}
	}

	_, err := svc.RecordIncoming(ctx, in(10))
	require.NoError(t, err)
	_, err = svc.RecordOutgoing(ctx, in(3))
	require.NoError(t, err)
	_, err = svc.RecordIncoming(ctx, in(5))
	require.NoError(t, err)
	_, err = svc.RecordOutgoing(ctx, in(4))
	require.NoError(t, err)

	balance, err := svc.Balance(ctx, "KB-01", "merah")
	require.NoError(t, err)
	require.Equal(t, int64(8), balance)

	// Other variants are unaffected regardless of interleaving.
	balance, err = svc.Balance(ctx, "KB-01", "biru")
	require.NoError(t, err)
	require.Equal(t, int64(0), balance)
}

func TestBalanceEmptyLedgersIsZero(t *testing.T) {
	svc := newService()

	balance, err := svc.Balance(context.Background(), "KB-99", "hitam")
	require.NoError(t, err)
	require.Equal(t, int64(0), balance)
}

func TestMovementsWindowInclusiveAndSorted(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	record := func(kind Kind, ts time.Time, qty int64) {
		input := MovementInput{Timestamp: ts, KodeBahan: "KB-01", Warna: "merah", Qty: qty}
		var err error
		if kind == KindIncoming {
			_, err = svc.RecordIncoming(ctx, input)
		} else {
			_, err = svc.RecordOutgoing(ctx, input)
		}
		require.NoError(t, err)
	}

	record(KindIncoming, at("2025-01-10", 9), 10)
	record(KindOutgoing, at("2025-01-12", 14), 2)
	record(KindIncoming, at("2025-01-12", 8), 5)
	record(KindOutgoing, at("2025-01-20", 10), 1)

	movements, err := svc.Movements(ctx, "KB-01", "merah", at("2025-01-12", 0), at("2025-01-12", 0))
	require.NoError(t, err)
	require.Len(t, movements, 2, "window bounds are inclusive on the calendar date")
	require.True(t, movements[0].Timestamp.Before(movements[1].Timestamp))
	require.Equal(t, KindIncoming, movements[0].Kind)

	movements, err = svc.Movements(ctx, "KB-01", "merah", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, movements, 4)
	for i := 1; i < len(movements); i++ {
		require.False(t, movements[i].Timestamp.Before(movements[i-1].Timestamp))
	}
}

func TestDistinctYardsUnionOfBothLedgers(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.RecordIncoming(ctx, MovementInput{KodeBahan: "KB-01", Warna: "merah", Qty: 5, Yard: 38.5})
	require.NoError(t, err)
	_, err = svc.RecordIncoming(ctx, MovementInput{KodeBahan: "KB-01", Warna: "merah", Qty: 5, Yard: 40})
	require.NoError(t, err)
	_, err = svc.RecordOutgoing(ctx, MovementInput{KodeBahan: "KB-01", Warna: "merah", Qty: 2, Yard: 38.5})
	require.NoError(t, err)

	yards, err := svc.DistinctYards(ctx, "KB-01", "merah")
	require.NoError(t, err)
	require.Equal(t, []float64{38.5, 40}, yards)
}

func TestUpdateAndDeleteByRowID(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	first, err := svc.RecordIncoming(ctx, MovementInput{KodeBahan: "KB-01", Warna: "merah", Qty: 10})
	require.NoError(t, err)
	second, err := svc.RecordIncoming(ctx, MovementInput{KodeBahan: "KB-01", Warna: "merah", Qty: 7})
	require.NoError(t, err)

	_, err = svc.UpdateMovement(ctx, KindIncoming, second.RowID, MovementInput{KodeBahan: "KB-01", Warna: "merah", Qty: 9})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMovement(ctx, KindIncoming, first.RowID))

	balance, err := svc.Balance(ctx, "KB-01", "merah")
	require.NoError(t, err)
	require.Equal(t, int64(9), balance)

	err = svc.DeleteMovement(ctx, KindIncoming, first.RowID)
	require.ErrorIs(t, err, ErrMovementNotFound)
}

func TestRecordValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.RecordIncoming(ctx, MovementInput{KodeBahan: "", Warna: "merah", Qty: 1})
	require.ErrorIs(t, err, ErrInvalidMovement)

	_, err = svc.RecordIncoming(ctx, MovementInput{KodeBahan: "KB-01", Warna: "merah", Qty: 0})
	require.ErrorIs(t, err, ErrInvalidMovement)

	_, err = svc.RecordOutgoing(ctx, MovementInput{KodeBahan: "KB-01", Warna: "merah", Qty: 1, Yard: -2})
	require.ErrorIs(t, err, ErrInvalidMovement)
}
