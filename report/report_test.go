package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gudangkain/gudangkain/internal/payroll"
	"github.com/gudangkain/gudangkain/internal/sales"
)

func TestRupiahUsesIndonesianGrouping(t *testing.T) {
	require.Equal(t, "Rp 1.500.000", Rupiah(1500000))
	require.Equal(t, "Rp 0", Rupiah(0))
}

func TestInvoiceHTML(t *testing.T) {
	invoice := sales.Invoice{
		Number:       "INV-250115-001",
		Timestamp:    time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
		CustomerName: "Toko Maju Jaya",
	}
	lines := []sales.InvoiceLine{
		{InvoiceNumber: invoice.Number, KodeBahan: "KB-01", NamaBahan: "Katun Combed", Qty: 10, Harga: 25000, Total: 250000},
		{InvoiceNumber: invoice.Number, KodeBahan: "KB-02", NamaBahan: "Rayon", Qty: 4, Harga: 30000, Total: 120000},
	}

	html, err := InvoiceHTML(invoice, lines)
	require.NoError(t, err)

	require.Contains(t, html, "Invoice INV-250115-001")
	require.Contains(t, html, "Toko Maju Jaya")
	require.Contains(t, html, "2025-01-15 10:30:00")
	require.Contains(t, html, "Katun Combed")
	require.Contains(t, html, "Rp 250.000")
	// grand total is the sum of line totals
	require.Contains(t, html, "Rp 370.000")
}

func TestPayslipsHTML(t *testing.T) {
	roster := []payroll.Employee{
		{RowID: "emp-1", NamaKaryawan: "Budi Santoso", Bagian: "Gudang", GajiPokok: 4500000},
	}
	records := []payroll.PayrollRecord{
		{
			GajiBulan:  "2025-01",
			EmployeeID: "emp-1",
			Input:      payroll.PayslipInput{GajiPokok: 4500000, Lembur: 500000, UangMakan: 300000, Kasbon: 200000},
			Totals:     payroll.PayslipTotals{Gross: 5300000, PostAttendance: 5300000, Net: 5100000},
		},
		// employee removed from the roster after the run
		{
			GajiBulan:  "2025-01",
			EmployeeID: "emp-gone",
			Input:      payroll.PayslipInput{GajiPokok: 4000000},
			Totals:     payroll.PayslipTotals{Gross: 4000000, PostAttendance: 4000000, Net: 4000000},
		},
	}

	html, err := PayslipsHTML("2025-01", records, roster)
	require.NoError(t, err)

	require.Contains(t, html, "Slip Gaji 2025-01")
	require.Contains(t, html, "Budi Santoso")
	require.Contains(t, html, "Gudang")
	require.Contains(t, html, "Rp 5.100.000")
	require.Contains(t, html, "emp-gone")
}
