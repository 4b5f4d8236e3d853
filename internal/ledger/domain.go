package ledger

import (
	"errors"
	"time"
)

// Kind selects one of the two movement ledgers.
type Kind string

const (
	// KindIncoming is the goods-in ledger (barang_masuk).
	KindIncoming Kind = "incoming"
	// KindOutgoing is the goods-out ledger (barang_keluar).
	KindOutgoing Kind = "outgoing"
)

// Movement is one row of either ledger. Stock per (kode_bahan, warna) is
// never stored; it is always the difference of the two ledgers.
type Movement struct {
	RowID      string    `json:"row_id"`
	Kind       Kind      `json:"kind"`
	Timestamp  time.Time `json:"tanggal_waktu"`
	KodeBahan  string    `json:"kode_bahan"`
	Warna      string    `json:"warna"`
	Qty        int64     `json:"stok"`
	Yard       float64   `json:"yard"`
	Keterangan string    `json:"keterangan"`
}

// MovementInput describes a movement to record or rewrite.
type MovementInput struct {
	Timestamp  time.Time
	KodeBahan  string
	Warna      string
	Qty        int64
	Yard       float64
	Keterangan string
}

var (
	// ErrInvalidMovement indicates missing key fields, qty <= 0 or yard < 0.
	ErrInvalidMovement = errors.New("ledger: invalid movement")
	// ErrMovementNotFound indicates the row id no longer exists in the ledger.
	ErrMovementNotFound = errors.New("ledger: movement not found")
	// ErrUnknownKind indicates a ledger kind outside incoming/outgoing.
	ErrUnknownKind = errors.New("ledger: unknown ledger kind")
)
