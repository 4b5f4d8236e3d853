package report

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/gudangkain/gudangkain/internal/payroll"
)

var payslipTmpl = template.Must(template.New("payslips").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; margin: 32px; }
.slip { page-break-after: always; border: 1px solid #999; padding: 16px; }
.slip:last-child { page-break-after: auto; }
h1 { font-size: 16px; margin: 0 0 4px; }
.meta { color: #333; margin-bottom: 12px; }
table { width: 100%; border-collapse: collapse; }
td { padding: 3px 8px; }
td.num { text-align: right; }
tr.subtotal td { border-top: 1px solid #999; font-weight: bold; }
</style>
</head>
<body>
{{range .Slips}}<div class="slip">
<h1>Slip Gaji {{$.Period}}</h1>
<div class="meta">
<div>Nama: {{.Name}}</div>
<div>Bagian: {{.Bagian}}</div>
{{if .Keterangan}}<div>Keterangan: {{.Keterangan}}</div>{{end}}
</div>
<table>
<tr><td>Gaji Pokok</td><td class="num">{{.GajiPokok}}</td></tr>
<tr><td>Lembur</td><td class="num">{{.Lembur}}</td></tr>
<tr><td>Lembur Minggu</td><td class="num">{{.LemburMinggu}}</td></tr>
<tr><td>Uang Makan</td><td class="num">{{.UangMakan}}</td></tr>
<tr class="subtotal"><td>Total Kotor</td><td class="num">{{.Gross}}</td></tr>
<tr><td>Pot. Absen Finger</td><td class="num">{{.PotAbsenFinger}}</td></tr>
<tr><td>Ijin HR</td><td class="num">{{.IjinHR}}</td></tr>
<tr class="subtotal"><td>Setelah Absensi</td><td class="num">{{.PostAttendance}}</td></tr>
<tr><td>Simpanan Wajib</td><td class="num">{{.SimpananWajib}}</td></tr>
<tr><td>Potongan Koperasi</td><td class="num">{{.PotonganKoperasi}}</td></tr>
<tr><td>Kasbon</td><td class="num">{{.Kasbon}}</td></tr>
<tr class="subtotal"><td>Gaji Akhir</td><td class="num">{{.Net}}</td></tr>
</table>
</div>
{{end}}</body>
</html>
`))

type payslipView struct {
	Name             string
	Bagian           string
	Keterangan       string
	GajiPokok        string
	Lembur           string
	LemburMinggu     string
	UangMakan        string
	Gross            string
	PotAbsenFinger   string
	IjinHR           string
	PostAttendance   string
	SimpananWajib    string
	PotonganKoperasi string
	Kasbon           string
	Net              string
}

type payslipBatchView struct {
	Period string
	Slips  []payslipView
}

// PayslipsHTML builds the printable HTML for every payslip of one period,
// one page per record. Names come from the roster; records for an employee
// since removed fall back to the raw id.
func PayslipsHTML(gajiBulan string, records []payroll.PayrollRecord, roster []payroll.Employee) (string, error) {
	names := make(map[string]payroll.Employee, len(roster))
	for _, e := range roster {
		names[e.RowID] = e
	}

	batch := payslipBatchView{Period: gajiBulan}
	for _, rec := range records {
		name, bagian := rec.EmployeeID, ""
		if e, ok := names[rec.EmployeeID]; ok {
			name, bagian = e.NamaKaryawan, e.Bagian
		}
		batch.Slips = append(batch.Slips, payslipView{
			Name:             name,
			Bagian:           bagian,
			Keterangan:       rec.Keterangan,
			GajiPokok:        Rupiah(rec.Input.GajiPokok),
			Lembur:           Rupiah(rec.Input.Lembur),
			LemburMinggu:     Rupiah(rec.Input.LemburMinggu),
			UangMakan:        Rupiah(rec.Input.UangMakan),
			Gross:            Rupiah(rec.Totals.Gross),
			PotAbsenFinger:   Rupiah(rec.Input.PotAbsenFinger),
			IjinHR:           Rupiah(rec.Input.IjinHR),
			PostAttendance:   Rupiah(rec.Totals.PostAttendance),
			SimpananWajib:    Rupiah(rec.Input.SimpananWajib),
			PotonganKoperasi: Rupiah(rec.Input.PotonganKoperasi),
			Kasbon:           Rupiah(rec.Input.Kasbon),
			Net:              Rupiah(rec.Totals.Net),
		})
	}

	var sb strings.Builder
	if err := payslipTmpl.Execute(&sb, batch); err != nil {
		return "", fmt.Errorf("build payslip html: %w", err)
	}
	return sb.String(), nil
}

// RenderPayslips builds the payslip batch document and converts it to PDF.
func (r *Renderer) RenderPayslips(ctx context.Context, gajiBulan string, records []payroll.PayrollRecord, roster []payroll.Employee) ([]byte, error) {
	html, err := PayslipsHTML(gajiBulan, records, roster)
	if err != nil {
		return nil, err
	}
	return r.client.RenderHTML(ctx, html)
}
