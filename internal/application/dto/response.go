package dto

import (
	"time"
)

// PriceResponse is the body of GET /api/v1/price
// @Description Cached BTC/USD exchange rate
type PriceResponse struct {
	Time    string  `json:"time" example:"2024-01-01T00:00:00.0000000Z"` // Observation time reported by the price API
	Rate    float64 `json:"rate" example:"42000.51"`                     // BTC price in USD
	Display string  `json:"display" example:"$42001"`                    // Rounded rate as shown in chat
}

// ErrorResponse represents a standard error response for endpoints
// @Description Standard error response for endpoints
type ErrorResponse struct {
	Error   string `json:"error" example:"PRICE_UNAVAILABLE"`                             // Stable error code
	Message string `json:"message,omitempty" example:"Failed to fetch the current price"` // Human readable description
}

// HealthResponse represents the health check response with service status
// @Description Health check response with service status
type HealthResponse struct {
	Status    string            `json:"status" example:"OK" enums:"OK,ready,unhealthy"` // Overall service status
	Timestamp time.Time         `json:"timestamp" example:"2023-12-01T10:30:00Z"`       // When the check ran
	Services  map[string]string `json:"services,omitempty"`                             // Individual dependency statuses
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: code, Message: message}
}

// NewHealthResponse creates a health response stamped with the current time
func NewHealthResponse(status string, services map[string]string) *HealthResponse {
	return &HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Services:  services,
	}
}
