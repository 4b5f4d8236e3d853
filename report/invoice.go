package report

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gudangkain/gudangkain/internal/sales"
	"github.com/gudangkain/gudangkain/internal/sheetdb"
)

// Renderer builds printable documents and hands them to Gotenberg.
type Renderer struct {
	client *Client
}

// NewRenderer constructs a Renderer on top of a Gotenberg client.
func NewRenderer(client *Client) *Renderer {
	return &Renderer{client: client}
}

var rupiahPrinter = message.NewPrinter(language.Indonesian)

// Rupiah formats an amount the way the printed documents show money.
func Rupiah(v float64) string {
	return rupiahPrinter.Sprintf("Rp %.0f", v)
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; margin: 32px; }
h1 { font-size: 18px; margin-bottom: 0; }
.meta { margin: 8px 0 16px; color: #333; }
table { width: 100%; border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 6px 8px; text-align: left; }
th { background: #eee; }
td.num, th.num { text-align: right; }
tfoot td { font-weight: bold; }
</style>
</head>
<body>
<h1>Invoice {{.Number}}</h1>
<div class="meta">
<div>Tanggal: {{.Date}}</div>
<div>Customer: {{.Customer}}</div>
</div>
<table>
<thead>
<tr><th>Kode Bahan</th><th>Nama Bahan</th><th class="num">Qty</th><th class="num">Harga</th><th class="num">Total</th></tr>
</thead>
<tbody>
{{range .Lines}}<tr><td>{{.KodeBahan}}</td><td>{{.NamaBahan}}</td><td class="num">{{.Qty}}</td><td class="num">{{.Harga}}</td><td class="num">{{.Total}}</td></tr>
{{end}}</tbody>
<tfoot>
<tr><td colspan="4">Grand Total</td><td class="num">{{.GrandTotal}}</td></tr>
</tfoot>
</table>
</body>
</html>
`))

type invoiceLineView struct {
	KodeBahan string
	NamaBahan string
	Qty       int64
	Harga     string
	Total     string
}

type invoiceView struct {
	Number     string
	Date       string
	Customer   string
	Lines      []invoiceLineView
	GrandTotal string
}

// InvoiceHTML builds the printable HTML for one invoice.
func InvoiceHTML(invoice sales.Invoice, lines []sales.InvoiceLine) (string, error) {
	view := invoiceView{
		Number:   invoice.Number,
		Date:     invoice.Timestamp.Format(sheetdb.TimeLayout),
		Customer: invoice.CustomerName,
	}
	var grand float64
	for _, line := range lines {
		view.Lines = append(view.Lines, invoiceLineView{
			KodeBahan: line.KodeBahan,
			NamaBahan: line.NamaBahan,
			Qty:       line.Qty,
			Harga:     Rupiah(line.Harga),
			Total:     Rupiah(line.Total),
		})
		grand += line.Total
	}
	view.GrandTotal = Rupiah(grand)

	var sb strings.Builder
	if err := invoiceTmpl.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("build invoice html: %w", err)
	}
	return sb.String(), nil
}

// RenderInvoice builds the invoice document and converts it to PDF.
func (r *Renderer) RenderInvoice(ctx context.Context, invoice sales.Invoice, lines []sales.InvoiceLine) ([]byte, error) {
	html, err := InvoiceHTML(invoice, lines)
	if err != nil {
		return nil, err
	}
	return r.client.RenderHTML(ctx, html)
}
