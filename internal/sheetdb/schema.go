package sheetdb

import "time"

// Table names.
const (
	TableMasterBarang = "master_barang"
	TableBarangMasuk  = "barang_masuk"
	TableBarangKeluar = "barang_keluar"
	TableInvoices     = "invoices"
	TableInvoiceItems = "invoice_items"
	TableEmployees    = "employees"
	TablePayroll      = "payroll"
	TableUsers        = "users"
)

// TimeLayout is the timestamp format stored in tanggal_waktu columns.
const TimeLayout = "2006-01-02 15:04:05"

// DateLayout is the calendar date format used for range filters.
const DateLayout = "2006-01-02"

// schemas holds the column order of every table. The row_id columns are
// surrogate identities assigned at append time; the backends have no stable
// row keys of their own.
var schemas = map[string][]string{
	TableMasterBarang: {"kode_bahan", "nama_supplier", "nama_bahan", "warna", "rak", "harga"},
	TableBarangMasuk:  {"tanggal_waktu", "kode_bahan", "warna", "stok", "yard", "keterangan", "row_id"},
	TableBarangKeluar: {"tanggal_waktu", "kode_bahan", "warna", "stok", "yard", "keterangan", "row_id"},
	TableInvoices:     {"invoice_number", "tanggal_waktu", "customer_name"},
	TableInvoiceItems: {"invoice_number", "kode_bahan", "nama_bahan", "qty", "harga", "total"},
	TableEmployees:    {"nama_karyawan", "bagian", "gaji_pokok", "row_id"},
	TablePayroll: {
		"tanggal_waktu", "gaji_bulan", "employee_id", "gaji_pokok", "lembur",
		"lembur_minggu", "uang_makan", "pot_absen_finger", "ijin_hr",
		"simpanan_wajib", "potongan_koperasi", "kasbon", "gaji_akhir", "keterangan",
	},
	TableUsers: {"username", "password_hash"},
}

// TableNames lists every known table in a stable order.
func TableNames() []string {
	return []string{
		TableMasterBarang, TableBarangMasuk, TableBarangKeluar,
		TableInvoices, TableInvoiceItems, TableEmployees, TablePayroll, TableUsers,
	}
}

// Columns returns the column order of a table, nil when unknown.
func Columns(table string) []string {
	return schemas[table]
}

// FormatTime renders a timestamp in the stored layout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime parses a stored timestamp. Bare dates are accepted as midnight so
// that hand-edited backends keep working.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(DateLayout, s)
}
