package payroll

import (
	"errors"
	"fmt"
	"time"
)

// Employee is one roster entry. Identity is the surrogate row id, not the
// position in the table.
type Employee struct {
	RowID        string  `json:"row_id"`
	NamaKaryawan string  `json:"nama_karyawan"`
	Bagian       string  `json:"bagian"`
	GajiPokok    float64 `json:"gaji_pokok"`
}

// PayslipInput carries the fixed earning and deduction line items of one
// payroll run.
type PayslipInput struct {
	GajiPokok        float64 `json:"gaji_pokok"`
	Lembur           float64 `json:"lembur"`
	LemburMinggu     float64 `json:"lembur_minggu"`
	UangMakan        float64 `json:"uang_makan"`
	PotAbsenFinger   float64 `json:"pot_absen_finger"`
	IjinHR           float64 `json:"ijin_hr"`
	SimpananWajib    float64 `json:"simpanan_wajib"`
	PotonganKoperasi float64 `json:"potongan_koperasi"`
	Kasbon           float64 `json:"kasbon"`
}

// PayslipTotals is the three-stage result of the payroll formula. All three
// values are rendered on the payslip, not just the net.
type PayslipTotals struct {
	Gross          float64 `json:"gross"`
	PostAttendance float64 `json:"post_attendance"`
	Net            float64 `json:"net"`
}

// PayrollRecord is one persisted payroll run for one employee and period.
type PayrollRecord struct {
	Timestamp  time.Time     `json:"tanggal_waktu"`
	GajiBulan  string        `json:"gaji_bulan"`
	EmployeeID string        `json:"employee_id"`
	Input      PayslipInput  `json:"input"`
	Totals     PayslipTotals `json:"totals"`
	Keterangan string        `json:"keterangan"`
}

// RerunPolicy decides what a second run for the same employee and period does.
type RerunPolicy string

const (
	// PolicyAppend keeps every run as its own record.
	PolicyAppend RerunPolicy = "append"
	// PolicyReplace removes earlier records for the employee and period first.
	PolicyReplace RerunPolicy = "replace"
)

var (
	// ErrInvalidPayrollInput indicates a negative earning or deduction field.
	ErrInvalidPayrollInput = errors.New("payroll: input fields cannot be negative")
	// ErrEmployeeNotFound indicates an unknown employee id.
	ErrEmployeeNotFound = errors.New("payroll: employee not found")
	// ErrInvalidEmployee indicates missing employee fields or negative salary.
	ErrInvalidEmployee = errors.New("payroll: invalid employee")
	// ErrMissingPeriod indicates an empty pay period label.
	ErrMissingPeriod = errors.New("payroll: pay period is required")
)

// ComputePayslip applies the deterministic three-stage payroll formula. Every
// input field must be non-negative; the calculator re-validates even though
// callers are expected to, because it is the authority on the formula.
func ComputePayslip(input PayslipInput) (PayslipTotals, error) {
	for _, v := range []float64{
		input.GajiPokok, input.Lembur, input.LemburMinggu, input.UangMakan,
		input.PotAbsenFinger, input.IjinHR, input.SimpananWajib,
		input.PotonganKoperasi, input.Kasbon,
	} {
		if v < 0 {
			return PayslipTotals{}, fmt.Errorf("%w", ErrInvalidPayrollInput)
		}
	}
	gross := input.GajiPokok + input.Lembur + input.LemburMinggu + input.UangMakan
	postAttendance := gross - input.PotAbsenFinger - input.IjinHR
	net := postAttendance - input.SimpananWajib - input.PotonganKoperasi - input.Kasbon
	return PayslipTotals{Gross: gross, PostAttendance: postAttendance, Net: net}, nil
}
