package product

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName         = errors.New("product name cannot be empty")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
	ErrInsufficientStock = errors.New("insufficient stock for product")
)

// Status represents the state of a product
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Product represents an item in the store inventory. Name holds the Arabic
// display name, NameLatin an optional transliteration. The barcode is kept
// as an opaque string; rendering is a client concern.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	NameLatin   string          `json:"name_latin"`
	Barcode     string          `json:"barcode"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
	Status      Status          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewProduct creates a new product
func NewProduct(name, barcode string, price, cost decimal.Decimal, quantity, minQuantity int) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if price.IsNegative() || cost.IsNegative() {
		return nil, ErrNegativePrice
	}
	if quantity < 0 || minQuantity < 0 {
		return nil, ErrNegativeQuantity
	}

	now := time.Now()
	return &Product{
		Name:        name,
		Barcode:     barcode,
		Price:       price,
		Cost:        cost,
		Quantity:    quantity,
		MinQuantity: minQuantity,
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update replaces the product's editable fields
func (p *Product) Update(name, nameLatin, barcode string, price, cost decimal.Decimal, quantity, minQuantity int) error {
	if name == "" {
		return ErrEmptyName
	}
	if price.IsNegative() || cost.IsNegative() {
		return ErrNegativePrice
	}
	if quantity < 0 || minQuantity < 0 {
		return ErrNegativeQuantity
	}

	p.Name = name
	p.NameLatin = nameLatin
	p.Barcode = barcode
	p.Price = price
	p.Cost = cost
	p.Quantity = quantity
	p.MinQuantity = minQuantity
	p.UpdatedAt = time.Now()
	return nil
}

// RemoveStock decrements the quantity on hand
func (p *Product) RemoveStock(quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	if quantity > p.Quantity {
		return ErrInsufficientStock
	}
	p.Quantity -= quantity
	p.UpdatedAt = time.Now()
	return nil
}

// AddStock increments the quantity on hand
func (p *Product) AddStock(quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	p.Quantity += quantity
	p.UpdatedAt = time.Now()
	return nil
}

// IsLowStock reports whether the quantity on hand fell to the minimum
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinQuantity
}
