package dto

import "btc-rate-monitor/internal/domain/entities"

// ToPriceResponse maps a rate onto its HTTP representation
func ToPriceResponse(rate entities.ExchangeRate) *PriceResponse {
	return &PriceResponse{
		Time:    rate.Time,
		Rate:    rate.Rate,
		Display: rate.Display(),
	}
}
