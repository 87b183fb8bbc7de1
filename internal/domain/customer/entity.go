package customer

import (
	"errors"
	"time"
)

var (
	ErrEmptyName  = errors.New("customer name cannot be empty")
	ErrEmptyPhone = errors.New("customer phone cannot be empty")
)

// Status represents the state of a customer
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Customer represents a customer of the store. Name fields are bilingual:
// Name holds the Arabic display name, NameLatin an optional transliteration.
type Customer struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	NameLatin      string    `json:"name_latin"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	IdentityNumber string    `json:"identity_number"`
	Notes          string    `json:"notes"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewCustomer creates a new customer
func NewCustomer(name, phone string) (*Customer, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if phone == "" {
		return nil, ErrEmptyPhone
	}

	now := time.Now()
	return &Customer{
		Name:      name,
		Phone:     phone,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update replaces the customer's editable fields
func (c *Customer) Update(name, nameLatin, phone, email, address, identityNumber, notes string) error {
	if name == "" {
		return ErrEmptyName
	}
	if phone == "" {
		return ErrEmptyPhone
	}

	c.Name = name
	c.NameLatin = nameLatin
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.IdentityNumber = identityNumber
	c.Notes = notes
	c.UpdatedAt = time.Now()
	return nil
}

// IsActive reports whether the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == StatusActive
}

// Deactivate marks the customer as inactive
func (c *Customer) Deactivate() {
	c.Status = StatusInactive
	c.UpdatedAt = time.Now()
}

// Activate marks the customer as active
func (c *Customer) Activate() {
	c.Status = StatusActive
	c.UpdatedAt = time.Now()
}
