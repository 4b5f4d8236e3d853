package sheetdb

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Workbook stores every table as one sheet of a single xlsx file. The first
// row of each sheet is the header; data rows follow in append order. Each
// mutation rewrites the file on disk, so the adapter serializes access with
// a mutex.
type Workbook struct {
	mu   sync.Mutex
	path string
	file *excelize.File
}

// NewWorkbook opens the workbook at path, creating it with empty tables when
// it does not exist yet.
func NewWorkbook(path string) (*Workbook, error) {
	var file *excelize.File
	if _, err := os.Stat(path); err == nil {
		file, err = excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: open workbook: %v", ErrBackendUnavailable, err)
		}
	} else if os.IsNotExist(err) {
		file = excelize.NewFile()
	} else {
		return nil, fmt.Errorf("%w: stat workbook: %v", ErrBackendUnavailable, err)
	}

	w := &Workbook{path: path, file: file}
	if err := w.ensureSheets(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Workbook) ensureSheets() error {
	created := false
	for _, table := range TableNames() {
		if idx, err := w.file.GetSheetIndex(table); err == nil && idx >= 0 {
			continue
		}
		if _, err := w.file.NewSheet(table); err != nil {
			return fmt.Errorf("%w: create sheet %s: %v", ErrBackendUnavailable, table, err)
		}
		header := make([]interface{}, 0, len(Columns(table)))
		for _, col := range Columns(table) {
			header = append(header, col)
		}
		if err := w.file.SetSheetRow(table, "A1", &header); err != nil {
			return fmt.Errorf("%w: write header %s: %v", ErrBackendUnavailable, table, err)
		}
		created = true
	}
	// Drop the default sheet excelize seeds new files with.
	if idx, err := w.file.GetSheetIndex("Sheet1"); err == nil && idx >= 0 {
		_ = w.file.DeleteSheet("Sheet1")
		created = true
	}
	if created {
		return w.save()
	}
	return nil
}

// ListRows reads all data rows of a table in sheet order.
func (w *Workbook) ListRows(_ context.Context, table string) ([]Row, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cols := Columns(table)
	if cols == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	raw, err := w.file.GetRows(table)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrBackendUnavailable, table, err)
	}
	if len(raw) <= 1 {
		return nil, nil
	}
	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := make(Row, len(cols))
		for i, col := range cols {
			if i < len(cells) {
				row[col] = cells[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow adds one row at the bottom of a table.
func (w *Workbook) AppendRow(_ context.Context, table string, values []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkShape(table, values); err != nil {
		return err
	}
	raw, err := w.file.GetRows(table)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrBackendUnavailable, table, err)
	}
	return w.writeRow(table, len(raw)+1, values)
}

// UpdateRow rewrites the data row at index in place.
func (w *Workbook) UpdateRow(_ context.Context, table string, index int, values []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkShape(table, values); err != nil {
		return err
	}
	count, err := w.dataRowCount(table)
	if err != nil {
		return err
	}
	if index < 0 || index >= count {
		return fmt.Errorf("%w: %s row %d", ErrRowNotFound, table, index)
	}
	return w.writeRow(table, index+2, values)
}

// DeleteRow removes the data row at index; later rows shift up.
func (w *Workbook) DeleteRow(_ context.Context, table string, index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if Columns(table) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	count, err := w.dataRowCount(table)
	if err != nil {
		return err
	}
	if index < 0 || index >= count {
		return fmt.Errorf("%w: %s row %d", ErrRowNotFound, table, index)
	}
	if err := w.file.RemoveRow(table, index+2); err != nil {
		return fmt.Errorf("%w: delete %s row %d: %v", ErrBackendUnavailable, table, index, err)
	}
	return w.save()
}

func (w *Workbook) checkShape(table string, values []string) error {
	cols := Columns(table)
	if cols == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if len(values) != len(cols) {
		return fmt.Errorf("%w: %s wants %d columns, got %d", ErrColumnCount, table, len(cols), len(values))
	}
	return nil
}

func (w *Workbook) dataRowCount(table string) (int, error) {
	raw, err := w.file.GetRows(table)
	if err != nil {
		return 0, fmt.Errorf("%w: read %s: %v", ErrBackendUnavailable, table, err)
	}
	if len(raw) == 0 {
		return 0, nil
	}
	return len(raw) - 1, nil
}

func (w *Workbook) writeRow(table string, sheetRow int, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	anchor, err := excelize.CoordinatesToCellName(1, sheetRow)
	if err != nil {
		return fmt.Errorf("%w: cell name: %v", ErrBackendUnavailable, err)
	}
	if err := w.file.SetSheetRow(table, anchor, &cells); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrBackendUnavailable, table, err)
	}
	return w.save()
}

func (w *Workbook) save() error {
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("%w: save workbook: %v", ErrBackendUnavailable, err)
	}
	return nil
}

// Close releases the underlying file handle.
func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
