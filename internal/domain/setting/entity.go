package setting

import (
	"errors"
	"time"
)

var ErrEmptyKey = errors.New("setting key cannot be empty")

// Well-known setting keys. The store is free-form, these are the keys the
// application itself reads.
const (
	KeyStoreName      = "store_name"
	KeyStoreNameLatin = "store_name_latin"
	KeyCurrency       = "currency"
	KeyTaxRate        = "tax_rate"
	KeyPhone          = "phone"
	KeyAddress        = "address"
)

// Setting is a single key/value configuration entry
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSetting creates a setting entry
func NewSetting(key, value string) (*Setting, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	return &Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}, nil
}
