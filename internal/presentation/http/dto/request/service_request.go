package request

// CreateServiceRequest represents a catalog entry creation request.
// Prices are whole rupiah.
type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required,min=2,max=255"`
	Description     *string `json:"description"`
	BasePrice       int64   `json:"base_price" binding:"min=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"omitempty,min=1"`
	HomeVisit       bool    `json:"home_visit"`
}

// UpdateServiceRequest represents a catalog entry update request
type UpdateServiceRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=2,max=255"`
	Description     *string `json:"description"`
	BasePrice       *int64  `json:"base_price" binding:"omitempty,min=0"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=1"`
	HomeVisit       *bool   `json:"home_visit"`
	Active          *bool   `json:"active"`
}
