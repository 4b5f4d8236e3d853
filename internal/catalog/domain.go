package catalog

import "errors"

// ItemKey identifies a material variant: one fabric code in one color.
type ItemKey struct {
	KodeBahan string `json:"kode_bahan"`
	Warna     string `json:"warna"`
}

// MaterialVariant is one master item record.
type MaterialVariant struct {
	KodeBahan    string  `json:"kode_bahan"`
	NamaSupplier string  `json:"nama_supplier"`
	NamaBahan    string  `json:"nama_bahan"`
	Warna        string  `json:"warna"`
	Rak          string  `json:"rak"`
	Harga        float64 `json:"harga"`
}

// Key returns the variant identity.
func (v MaterialVariant) Key() ItemKey {
	return ItemKey{KodeBahan: v.KodeBahan, Warna: v.Warna}
}

var (
	// ErrDuplicateItem indicates the (kode_bahan, warna) pair already exists.
	ErrDuplicateItem = errors.New("catalog: item already exists")
	// ErrItemNotFound indicates the requested key is absent.
	ErrItemNotFound = errors.New("catalog: item not found")
	// ErrInvalidItem indicates missing key fields or a negative price.
	ErrInvalidItem = errors.New("catalog: invalid item")
)
