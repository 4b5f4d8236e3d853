package payroll

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gudangkain/gudangkain/internal/sheetdb"
)

// Repository maps the employee roster and payroll records onto their tables.
type Repository struct {
	store sheetdb.Store
}

// NewRepository constructs Repository.
func NewRepository(store sheetdb.Store) *Repository {
	return &Repository{store: store}
}

// ListEmployees reads the roster in table order.
func (r *Repository) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := r.store.ListRows(ctx, sheetdb.TableEmployees)
	if err != nil {
		return nil, err
	}
	employees := make([]Employee, 0, len(rows))
	for _, row := range rows {
		gaji, _ := strconv.ParseFloat(row["gaji_pokok"], 64)
		employees = append(employees, Employee{
			RowID:        row["row_id"],
			NamaKaryawan: row["nama_karyawan"],
			Bagian:       row["bagian"],
			GajiPokok:    gaji,
		})
	}
	return employees, nil
}

// AppendEmployee adds one roster entry.
func (r *Repository) AppendEmployee(ctx context.Context, e Employee) error {
	return r.store.AppendRow(ctx, sheetdb.TableEmployees, []string{
		e.NamaKaryawan,
		e.Bagian,
		strconv.FormatFloat(e.GajiPokok, 'f', -1, 64),
		e.RowID,
	})
}

// DeleteEmployee removes the roster entry with the given row id.
func (r *Repository) DeleteEmployee(ctx context.Context, rowID string) error {
	rows, err := r.store.ListRows(ctx, sheetdb.TableEmployees)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if row["row_id"] == rowID {
			return r.store.DeleteRow(ctx, sheetdb.TableEmployees, i)
		}
	}
	return fmt.Errorf("%w: %s", ErrEmployeeNotFound, rowID)
}

// ListRecords reads every payroll record in append order.
func (r *Repository) ListRecords(ctx context.Context) ([]PayrollRecord, error) {
	rows, err := r.store.ListRows(ctx, sheetdb.TablePayroll)
	if err != nil {
		return nil, err
	}
	records := make([]PayrollRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromRow(row))
	}
	return records, nil
}

// AppendRecord adds one payroll record.
func (r *Repository) AppendRecord(ctx context.Context, rec PayrollRecord) error {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return r.store.AppendRow(ctx, sheetdb.TablePayroll, []string{
		sheetdb.FormatTime(rec.Timestamp),
		rec.GajiBulan,
		rec.EmployeeID,
		f(rec.Input.GajiPokok),
		f(rec.Input.Lembur),
		f(rec.Input.LemburMinggu),
		f(rec.Input.UangMakan),
		f(rec.Input.PotAbsenFinger),
		f(rec.Input.IjinHR),
		f(rec.Input.SimpananWajib),
		f(rec.Input.PotonganKoperasi),
		f(rec.Input.Kasbon),
		f(rec.Totals.Net),
		rec.Keterangan,
	})
}

// DeleteRecordsFor removes every payroll record for one employee and period.
// Indexes are re-resolved after each delete because later rows shift up.
func (r *Repository) DeleteRecordsFor(ctx context.Context, employeeID, gajiBulan string) error {
	for {
		rows, err := r.store.ListRows(ctx, sheetdb.TablePayroll)
		if err != nil {
			return err
		}
		found := -1
		for i, row := range rows {
			if row["employee_id"] == employeeID && row["gaji_bulan"] == gajiBulan {
				found = i
				break
			}
		}
		if found < 0 {
			return nil
		}
		if err := r.store.DeleteRow(ctx, sheetdb.TablePayroll, found); err != nil {
			return err
		}
	}
}

func recordFromRow(row sheetdb.Row) PayrollRecord {
	ts, err := sheetdb.ParseTime(row["tanggal_waktu"])
	if err != nil {
		ts = time.Time{}
	}
	p := func(col string) float64 {
		v, _ := strconv.ParseFloat(row[col], 64)
		return v
	}
	input := PayslipInput{
		GajiPokok:        p("gaji_pokok"),
		Lembur:           p("lembur"),
		LemburMinggu:     p("lembur_minggu"),
		UangMakan:        p("uang_makan"),
		PotAbsenFinger:   p("pot_absen_finger"),
		IjinHR:           p("ijin_hr"),
		SimpananWajib:    p("simpanan_wajib"),
		PotonganKoperasi: p("potongan_koperasi"),
		Kasbon:           p("kasbon"),
	}
	totals, err := ComputePayslip(input)
	if err != nil {
		totals = PayslipTotals{Net: p("gaji_akhir")}
	}
	return PayrollRecord{
		Timestamp:  ts,
		GajiBulan:  row["gaji_bulan"],
		EmployeeID: row["employee_id"],
		Input:      input,
		Totals:     totals,
		Keterangan: row["keterangan"],
	}
}
