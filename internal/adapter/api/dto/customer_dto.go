package dto

import (
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/customer"
)

// CustomerRequest creates or updates a customer. Name is the Arabic
// display name, NameLatin an optional transliteration.
type CustomerRequest struct {
	Name           string `json:"name" binding:"required"`
	NameLatin      string `json:"name_latin"`
	Phone          string `json:"phone" binding:"required"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	IdentityNumber string `json:"identity_number"`
	Notes          string `json:"notes"`
}

// CustomerStatusRequest changes a customer's status
type CustomerStatusRequest struct {
	Status customer.Status `json:"status" binding:"required,oneof=active inactive"`
}

// CustomerResponse is the API representation of a customer
type CustomerResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	NameLatin      string          `json:"name_latin"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Address        string          `json:"address"`
	IdentityNumber string          `json:"identity_number"`
	Notes          string          `json:"notes"`
	Status         customer.Status `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CustomerListResponse is a paginated list of customers
type CustomerListResponse struct {
	Items      []CustomerResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Size       int                `json:"size"`
	TotalPages int                `json:"total_pages"`
}

// ToCustomerResponse converts a customer to the API representation
func ToCustomerResponse(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		NameLatin:      c.NameLatin,
		Phone:          c.Phone,
		Email:          c.Email,
		Address:        c.Address,
		IdentityNumber: c.IdentityNumber,
		Notes:          c.Notes,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
