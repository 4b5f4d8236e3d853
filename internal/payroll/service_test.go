package payroll

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gudangkain/gudangkain/internal/shared"
	"github.com/gudangkain/gudangkain/internal/sheetdb"
)

func newService(policy RerunPolicy) *Service {
	return NewService(NewRepository(sheetdb.NewMemStore()), shared.NewWriteGate(), policy)
}

func sampleInput() PayslipInput {
	return PayslipInput{
		GajiPokok:        5_000_000,
		Lembur:           200_000,
		LemburMinggu:     0,
		UangMakan:        300_000,
		PotAbsenFinger:   50_000,
		IjinHR:           0,
		SimpananWajib:    100_000,
		PotonganKoperasi: 50_000,
		Kasbon:           0,
	}
}

func TestComputePayslipFormula(t *testing.T) {
	totals, err := ComputePayslip(sampleInput())
	require.NoError(t, err)
	require.Equal(t, 5_500_000.0, totals.Gross)
	require.Equal(t, 5_450_000.0, totals.PostAttendance)
	require.Equal(t, 5_300_000.0, totals.Net)
}

func TestComputePayslipRejectsNegativeInput(t *testing.T) {
	input := sampleInput()
	input.Kasbon = -1
	_, err := ComputePayslip(input)
	require.ErrorIs(t, err, ErrInvalidPayrollInput)

	input = sampleInput()
	input.GajiPokok = -5
	_, err = ComputePayslip(input)
	require.ErrorIs(t, err, ErrInvalidPayrollInput)
}

func TestRunPersistsAllThreeSubtotals(t *testing.T) {
	svc := newService(PolicyAppend)
	ctx := context.Background()

	emp, err := svc.AddEmployee(ctx, Employee{NamaKaryawan: "Budi", Bagian: "produksi", GajiPokok: 5_000_000})
	require.NoError(t, err)

	record, err := svc.Run(ctx, emp.RowID, "2025-01", sampleInput(), "")
	require.NoError(t, err)
	require.Equal(t, 5_300_000.0, record.Totals.Net)

	stored, err := svc.RecordsForPeriod(ctx, "2025-01")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, 5_500_000.0, stored[0].Totals.Gross)
	require.Equal(t, 5_450_000.0, stored[0].Totals.PostAttendance)
	require.Equal(t, 5_300_000.0, stored[0].Totals.Net)
}

func TestRunRequiresKnownEmployeeAndPeriod(t *testing.T) {
	svc := newService(PolicyAppend)
	ctx := context.Background()

	_, err := svc.Run(ctx, "tidak-ada", "2025-01", sampleInput(), "")
	require.ErrorIs(t, err, ErrEmployeeNotFound)

	emp, err := svc.AddEmployee(ctx, Employee{NamaKaryawan: "Budi", GajiPokok: 1})
	require.NoError(t, err)
	_, err = svc.Run(ctx, emp.RowID, "  ", sampleInput(), "")
	require.ErrorIs(t, err, ErrMissingPeriod)
}

func TestRerunPolicyAppendKeepsBothRecords(t *testing.T) {
	svc := newService(PolicyAppend)
	ctx := context.Background()

	emp, err := svc.AddEmployee(ctx, Employee{NamaKaryawan: "Budi", GajiPokok: 1})
	require.NoError(t, err)

	_, err = svc.Run(ctx, emp.RowID, "2025-01", sampleInput(), "")
	require.NoError(t, err)
	_, err = svc.Run(ctx, emp.RowID, "2025-01", sampleInput(), "koreksi")
	require.NoError(t, err)

	records, err := svc.RecordsForPeriod(ctx, "2025-01")
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestRerunPolicyReplaceKeepsLatestOnly(t *testing.T) {
	svc := newService(PolicyReplace)
	ctx := context.Background()

	emp, err := svc.AddEmployee(ctx, Employee{NamaKaryawan: "Budi", GajiPokok: 1})
	require.NoError(t, err)
	other, err := svc.AddEmployee(ctx, Employee{NamaKaryawan: "Sari", GajiPokok: 1})
	require.NoError(t, err)

	_, err = svc.Run(ctx, emp.RowID, "2025-01", sampleInput(), "")
	require.NoError(t, err)
	_, err = svc.Run(ctx, other.RowID, "2025-01", sampleInput(), "")
	require.NoError(t, err)

	corrected := sampleInput()
	corrected.Kasbon = 200_000
	_, err = svc.Run(ctx, emp.RowID, "2025-01", corrected, "koreksi")
	require.NoError(t, err)

	records, err := svc.RecordsForPeriod(ctx, "2025-01")
	require.NoError(t, err)
	require.Len(t, records, 2, "replace only affects the same employee and period")
	for _, rec := range records {
		if rec.EmployeeID == emp.RowID {
			require.Equal(t, 5_100_000.0, rec.Totals.Net)
		}
	}
}

func TestEmployeeRoster(t *testing.T) {
	svc := newService(PolicyAppend)
	ctx := context.Background()

	_, err := svc.AddEmployee(ctx, Employee{NamaKaryawan: "", GajiPokok: 1})
	require.ErrorIs(t, err, ErrInvalidEmployee)

	_, err = svc.AddEmployee(ctx, Employee{NamaKaryawan: "Budi", GajiPokok: -1})
	require.ErrorIs(t, err, ErrInvalidEmployee)

	emp, err := svc.AddEmployee(ctx, Employee{NamaKaryawan: "Budi", Bagian: "gudang", GajiPokok: 4_000_000})
	require.NoError(t, err)
	require.NotEmpty(t, emp.RowID)

	require.NoError(t, svc.RemoveEmployee(ctx, emp.RowID))
	err = svc.RemoveEmployee(ctx, emp.RowID)
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}
