package payroll

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gudangkain/gudangkain/internal/shared"
)

// Service runs payroll computations and maintains the employee roster.
type Service struct {
	repo   *Repository
	gate   *shared.WriteGate
	policy RerunPolicy
	now    func() time.Time
}

// NewService builds Service. The policy decides whether a re-run for the
// same employee and period appends a correction record or replaces the
// earlier ones.
func NewService(repo *Repository, gate *shared.WriteGate, policy RerunPolicy) *Service {
	if policy == "" {
		policy = PolicyAppend
	}
	return &Service{repo: repo, gate: gate, policy: policy, now: time.Now}
}

// ListEmployees returns the roster.
func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.repo.ListEmployees(ctx)
}

// AddEmployee adds one roster entry and assigns its surrogate id.
func (s *Service) AddEmployee(ctx context.Context, e Employee) (Employee, error) {
	if strings.TrimSpace(e.NamaKaryawan) == "" {
		return Employee{}, fmt.Errorf("%w: nama karyawan is required", ErrInvalidEmployee)
	}
	if e.GajiPokok < 0 {
		return Employee{}, fmt.Errorf("%w: gaji pokok cannot be negative", ErrInvalidEmployee)
	}
	e.RowID = uuid.NewString()
	s.gate.Lock()
	defer s.gate.Unlock()
	if err := s.repo.AppendEmployee(ctx, e); err != nil {
		return Employee{}, err
	}
	return e, nil
}

// RemoveEmployee deletes one roster entry by id.
func (s *Service) RemoveEmployee(ctx context.Context, rowID string) error {
	s.gate.Lock()
	defer s.gate.Unlock()
	return s.repo.DeleteEmployee(ctx, rowID)
}

// Run computes one payslip and persists the payroll record. The three
// subtotals are all derived from the inputs; gaji_akhir is stored and the
// rest recomputed on read.
func (s *Service) Run(ctx context.Context, employeeID, gajiBulan string, input PayslipInput, keterangan string) (PayrollRecord, error) {
	if strings.TrimSpace(gajiBulan) == "" {
		return PayrollRecord{}, ErrMissingPeriod
	}
	totals, err := ComputePayslip(input)
	if err != nil {
		return PayrollRecord{}, err
	}

	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return PayrollRecord{}, err
	}
	known := false
	for _, e := range employees {
		if e.RowID == employeeID {
			known = true
			break
		}
	}
	if !known {
		return PayrollRecord{}, fmt.Errorf("%w: %s", ErrEmployeeNotFound, employeeID)
	}

	record := PayrollRecord{
		Timestamp:  s.now(),
		GajiBulan:  gajiBulan,
		EmployeeID: employeeID,
		Input:      input,
		Totals:     totals,
		Keterangan: keterangan,
	}

	s.gate.Lock()
	defer s.gate.Unlock()
	if s.policy == PolicyReplace {
		if err := s.repo.DeleteRecordsFor(ctx, employeeID, gajiBulan); err != nil {
			return PayrollRecord{}, err
		}
	}
	if err := s.repo.AppendRecord(ctx, record); err != nil {
		return PayrollRecord{}, err
	}
	return record, nil
}

// RecordsForPeriod lists every record of one pay period, for payslip export.
func (s *Service) RecordsForPeriod(ctx context.Context, gajiBulan string) ([]PayrollRecord, error) {
	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]PayrollRecord, 0, len(records))
	for _, rec := range records {
		if rec.GajiBulan == gajiBulan {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}
