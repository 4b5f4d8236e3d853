package sales

import (
	"errors"
	"fmt"
	"time"
)

// Invoice is the header of one sale.
type Invoice struct {
	Number       string    `json:"invoice_number"`
	Timestamp    time.Time `json:"tanggal_waktu"`
	CustomerName string    `json:"customer_name"`
}

// InvoiceLine is one sold item on an invoice.
type InvoiceLine struct {
	InvoiceNumber string  `json:"invoice_number"`
	KodeBahan     string  `json:"kode_bahan"`
	NamaBahan     string  `json:"nama_bahan"`
	Qty           int64   `json:"qty"`
	Harga         float64 `json:"harga"`
	Total         float64 `json:"total"`
}

// CartLine is one requested sale item as submitted by the caller.
type CartLine struct {
	KodeBahan  string  `json:"kode_bahan"`
	Warna      string  `json:"warna"`
	Qty        int64   `json:"qty"`
	Harga      float64 `json:"harga"`
	Yard       float64 `json:"yard"`
	Keterangan string  `json:"keterangan"`
}

var (
	// ErrMissingCustomer indicates an empty customer name.
	ErrMissingCustomer = errors.New("sales: customer name is required")
	// ErrEmptyCart indicates no cart line with a positive quantity.
	ErrEmptyCart = errors.New("sales: cart has no sellable lines")
	// ErrInvalidCartLine indicates a negative quantity or price.
	ErrInvalidCartLine = errors.New("sales: invalid cart line")
	// ErrInvoiceNotFound indicates an unknown invoice number.
	ErrInvoiceNotFound = errors.New("sales: invoice not found")
)

// InsufficientStockError reports the first cart line whose quantity exceeds
// the current balance. Nothing is written when it is returned.
type InsufficientStockError struct {
	KodeBahan string
	Warna     string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("sales: insufficient stock for %s/%s: requested %d, available %d",
		e.KodeBahan, e.Warna, e.Requested, e.Available)
}

// PartialWriteError reports a sale that failed after some rows were already
// committed. It is never downgraded to a generic error because the operator
// may need to reconcile the backend by hand.
type PartialWriteError struct {
	InvoiceNumber string
	Err           error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("sales: partial write for invoice %s: %v", e.InvoiceNumber, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
