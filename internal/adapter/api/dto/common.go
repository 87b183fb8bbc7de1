package dto

// ErrorResponse is the error envelope returned by every endpoint
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse is the envelope for operations without a dedicated body
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewErrorResponse creates an error envelope
func NewErrorResponse(code int, message, details string) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewSuccessResponse creates a success envelope
func NewSuccessResponse(message string, data interface{}) SuccessResponse {
	return SuccessResponse{
		Message: message,
		Data:    data,
	}
}

// Pagination holds normalized paging parameters
type Pagination struct {
	Page int
	Size int
}

// GetPagination normalizes raw paging parameters
func GetPagination(page, size int) Pagination {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	} else if size > 100 {
		size = 100
	}
	return Pagination{Page: page, Size: size}
}

// Offset returns the list offset for the current page
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Size
}

// TotalPages computes the page count for a total number of records
func (p Pagination) TotalPages(total int) int {
	pages := (total + p.Size - 1) / p.Size
	if pages == 0 {
		pages = 1
	}
	return pages
}
