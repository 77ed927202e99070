package dto

import (
	"fmt"
	"strings"
)

// PriceFormat selects the representation of GET /api/v1/price
type PriceFormat string

const (
	FormatJSON PriceFormat = "json"
	FormatText PriceFormat = "text"
)

// GetPriceRequest holds the parsed query of GET /api/v1/price
type GetPriceRequest struct {
	Format PriceFormat
}

// NewGetPriceRequest validates the format query parameter; empty means json
func NewGetPriceRequest(format string) (*GetPriceRequest, error) {
	switch PriceFormat(strings.ToLower(strings.TrimSpace(format))) {
	case "", FormatJSON:
		return &GetPriceRequest{Format: FormatJSON}, nil
	case FormatText:
		return &GetPriceRequest{Format: FormatText}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q, expected json or text", format)
	}
}
