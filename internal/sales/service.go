package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gudangkain/gudangkain/internal/catalog"
	"github.com/gudangkain/gudangkain/internal/ledger"
	"github.com/gudangkain/gudangkain/internal/shared"
)

// StockPort reads derived balances from the movement ledgers.
type StockPort interface {
	Balance(ctx context.Context, kodeBahan, warna string) (int64, error)
}

// OutgoingPort appends goods-out movements.
type OutgoingPort interface {
	Append(ctx context.Context, m ledger.Movement) error
}

// CatalogPort resolves display names for invoice lines.
type CatalogPort interface {
	Get(ctx context.Context, key catalog.ItemKey) (catalog.MaterialVariant, error)
}

// Service coordinates sale submission: stock sufficiency pre-flight, invoice
// numbering, and the multi-row write across the invoice, invoice line and
// goods-out tables. The backend has no multi-row transactions, so the write
// sequence is not atomic; failures after the first append surface as
// PartialWriteError. The whole operation holds the process write gate so the
// balance check and the invoice number stay valid until the rows land.
type Service struct {
	repo     *Repository
	stock    StockPort
	outgoing OutgoingPort
	catalog  CatalogPort
	gate     *shared.WriteGate
	now      func() time.Time
}

// NewService builds Service.
func NewService(repo *Repository, stock StockPort, outgoing OutgoingPort, cat CatalogPort, gate *shared.WriteGate) *Service {
	return &Service{
		repo:     repo,
		stock:    stock,
		outgoing: outgoing,
		catalog:  cat,
		gate:     gate,
		now:      time.Now,
	}
}

// SubmitSale validates and persists one sale, returning the new invoice
// number. Lines with quantity zero are dropped silently; every surviving line
// is checked against the current balance before anything is written.
func (s *Service) SubmitSale(ctx context.Context, customerName string, cart []CartLine) (string, error) {
	if strings.TrimSpace(customerName) == "" {
		return "", ErrMissingCustomer
	}
	lines := make([]CartLine, 0, len(cart))
	for _, line := range cart {
		if line.Qty == 0 {
			continue
		}
		if line.Qty < 0 || line.Harga < 0 || line.Yard < 0 {
			return "", fmt.Errorf("%w: %s/%s", ErrInvalidCartLine, line.KodeBahan, line.Warna)
		}
		if strings.TrimSpace(line.KodeBahan) == "" || strings.TrimSpace(line.Warna) == "" {
			return "", fmt.Errorf("%w: kode bahan and warna are required", ErrInvalidCartLine)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	s.gate.Lock()
	defer s.gate.Unlock()

	// One timestamp for every row of this sale, so the movements stay
	// temporally co-located in later ledger queries.
	ts := s.now()

	// Pre-flight: the whole batch is checked before any mutation begins.
	// Demand is accumulated per variant so a cart holding several lines of
	// the same variant is checked against their sum, not line by line.
	type variantKey struct{ kode, warna string }
	balances := make(map[variantKey]int64)
	requested := make(map[variantKey]int64)
	for _, line := range lines {
		key := variantKey{line.KodeBahan, line.Warna}
		available, ok := balances[key]
		if !ok {
			var err error
			available, err = s.stock.Balance(ctx, line.KodeBahan, line.Warna)
			if err != nil {
				return "", err
			}
			balances[key] = available
		}
		requested[key] += line.Qty
		if requested[key] > available {
			return "", &InsufficientStockError{
				KodeBahan: line.KodeBahan,
				Warna:     line.Warna,
				Requested: requested[key],
				Available: available,
			}
		}
	}

	numbers, err := s.repo.ListInvoiceNumbers(ctx)
	if err != nil {
		return "", err
	}
	number := NextNumber(numbers, ts)

	if err := s.repo.AppendInvoice(ctx, Invoice{Number: number, Timestamp: ts, CustomerName: customerName}); err != nil {
		return "", err
	}

	// From here on, rows are already committed: failures are partial writes,
	// reported distinctly and never rolled back.
	for _, line := range lines {
		name := line.KodeBahan
		if item, err := s.catalog.Get(ctx, catalog.ItemKey{KodeBahan: line.KodeBahan, Warna: line.Warna}); err == nil {
			name = item.NamaBahan
		}
		invoiceLine := InvoiceLine{
			InvoiceNumber: number,
			KodeBahan:     line.KodeBahan,
			NamaBahan:     name,
			Qty:           line.Qty,
			Harga:         line.Harga,
			Total:         float64(line.Qty) * line.Harga,
		}
		if err := s.repo.AppendInvoiceLine(ctx, invoiceLine); err != nil {
			return "", &PartialWriteError{InvoiceNumber: number, Err: err}
		}
		movement := ledger.Movement{
			RowID:      uuid.NewString(),
			Kind:       ledger.KindOutgoing,
			Timestamp:  ts,
			KodeBahan:  line.KodeBahan,
			Warna:      line.Warna,
			Qty:        line.Qty,
			Yard:       line.Yard,
			Keterangan: line.Keterangan,
		}
		if err := s.outgoing.Append(ctx, movement); err != nil {
			return "", &PartialWriteError{InvoiceNumber: number, Err: err}
		}
	}
	return number, nil
}

// NextInvoiceNumber previews the number the next sale of the given day would
// receive.
func (s *Service) NextInvoiceNumber(ctx context.Context, today time.Time) (string, error) {
	numbers, err := s.repo.ListInvoiceNumbers(ctx)
	if err != nil {
		return "", err
	}
	return NextNumber(numbers, today), nil
}

// ListInvoices returns every invoice header.
func (s *Service) ListInvoices(ctx context.Context) ([]Invoice, error) {
	return s.repo.ListInvoices(ctx)
}

// GetInvoice returns one invoice with its lines.
func (s *Service) GetInvoice(ctx context.Context, number string) (Invoice, []InvoiceLine, error) {
	if strings.TrimSpace(number) == "" {
		return Invoice{}, nil, errors.New("sales: invoice number is required")
	}
	return s.repo.GetInvoice(ctx, number)
}
