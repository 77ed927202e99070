package coinapi

import (
	"btc-rate-monitor/internal/domain/entities"
	"errors"
)

var (
	errMissingTime = errors.New("response has no time field")
	errMissingRate = errors.New("response has no rate field")
)

// exchangeRateResponse is the body of GET /v1/exchangerate/{base}/{quote}.
// Pointers distinguish an absent field from a zero value.
type exchangeRateResponse struct {
	Time       *string  `json:"time"`
	AssetBase  string   `json:"asset_id_base"`
	AssetQuote string   `json:"asset_id_quote"`
	Rate       *float64 `json:"rate"`
}

// toEntity keeps only time and rate
func (r exchangeRateResponse) toEntity() (entities.ExchangeRate, error) {
	if r.Time == nil || *r.Time == "" {
		return entities.ExchangeRate{}, errMissingTime
	}
	if r.Rate == nil {
		return entities.ExchangeRate{}, errMissingRate
	}
	return entities.NewExchangeRate(*r.Time, *r.Rate), nil
}

// errorResponse is what CoinAPI returns alongside 4xx/5xx statuses
type errorResponse struct {
	Error string `json:"error"`
}
