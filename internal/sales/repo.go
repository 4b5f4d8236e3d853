package sales

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gudangkain/gudangkain/internal/sheetdb"
)

// Repository maps invoices and their lines onto the invoices and
// invoice_items tables.
type Repository struct {
	store sheetdb.Store
}

// NewRepository constructs Repository.
func NewRepository(store sheetdb.Store) *Repository {
	return &Repository{store: store}
}

// ListInvoiceNumbers reads every stored invoice number in table order.
func (r *Repository) ListInvoiceNumbers(ctx context.Context) ([]string, error) {
	rows, err := r.store.ListRows(ctx, sheetdb.TableInvoices)
	if err != nil {
		return nil, err
	}
	numbers := make([]string, 0, len(rows))
	for _, row := range rows {
		numbers = append(numbers, row["invoice_number"])
	}
	return numbers, nil
}

// ListInvoices reads every invoice header.
func (r *Repository) ListInvoices(ctx context.Context) ([]Invoice, error) {
	rows, err := r.store.ListRows(ctx, sheetdb.TableInvoices)
	if err != nil {
		return nil, err
	}
	invoices := make([]Invoice, 0, len(rows))
	for _, row := range rows {
		invoices = append(invoices, invoiceFromRow(row))
	}
	return invoices, nil
}

// GetInvoice returns one invoice header with its lines.
func (r *Repository) GetInvoice(ctx context.Context, number string) (Invoice, []InvoiceLine, error) {
	rows, err := r.store.ListRows(ctx, sheetdb.TableInvoices)
	if err != nil {
		return Invoice{}, nil, err
	}
	var invoice Invoice
	found := false
	for _, row := range rows {
		if row["invoice_number"] == number {
			invoice = invoiceFromRow(row)
			found = true
			break
		}
	}
	if !found {
		return Invoice{}, nil, fmt.Errorf("%w: %s", ErrInvoiceNotFound, number)
	}

	itemRows, err := r.store.ListRows(ctx, sheetdb.TableInvoiceItems)
	if err != nil {
		return Invoice{}, nil, err
	}
	var lines []InvoiceLine
	for _, row := range itemRows {
		if row["invoice_number"] != number {
			continue
		}
		qty, _ := strconv.ParseInt(row["qty"], 10, 64)
		harga, _ := strconv.ParseFloat(row["harga"], 64)
		total, _ := strconv.ParseFloat(row["total"], 64)
		lines = append(lines, InvoiceLine{
			InvoiceNumber: number,
			KodeBahan:     row["kode_bahan"],
			NamaBahan:     row["nama_bahan"],
			Qty:           qty,
			Harga:         harga,
			Total:         total,
		})
	}
	return invoice, lines, nil
}

// AppendInvoice adds one invoice header row.
func (r *Repository) AppendInvoice(ctx context.Context, invoice Invoice) error {
	return r.store.AppendRow(ctx, sheetdb.TableInvoices, []string{
		invoice.Number,
		sheetdb.FormatTime(invoice.Timestamp),
		invoice.CustomerName,
	})
}

// AppendInvoiceLine adds one invoice item row.
func (r *Repository) AppendInvoiceLine(ctx context.Context, line InvoiceLine) error {
	return r.store.AppendRow(ctx, sheetdb.TableInvoiceItems, []string{
		line.InvoiceNumber,
		line.KodeBahan,
		line.NamaBahan,
		strconv.FormatInt(line.Qty, 10),
		strconv.FormatFloat(line.Harga, 'f', -1, 64),
		strconv.FormatFloat(line.Total, 'f', -1, 64),
	})
}

func invoiceFromRow(row sheetdb.Row) Invoice {
	ts, err := sheetdb.ParseTime(row["tanggal_waktu"])
	if err != nil {
		ts = time.Time{}
	}
	return Invoice{
		Number:       row["invoice_number"],
		Timestamp:    ts,
		CustomerName: row["customer_name"],
	}
}
