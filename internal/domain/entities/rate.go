package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var (
	ErrMissingTime = errors.New("cached rate has no time field")
	ErrMissingRate = errors.New("cached rate has no rate field")
)

// ExchangeRate is a single observation of the BTC/USD rate.
type ExchangeRate struct {
	Time string  `json:"time"`
	Rate float64 `json:"rate"`
}

// NewExchangeRate creates an ExchangeRate value
func NewExchangeRate(time string, rate float64) ExchangeRate {
	return ExchangeRate{
		Time: time,
		Rate: rate,
	}
}

// Rounded returns the rate rounded to the nearest whole unit of the quote asset
func (r ExchangeRate) Rounded() int64 {
	return int64(math.Round(r.Rate))
}

// Display renders the rate the way it is shown to chat users, e.g. "$50213"
func (r ExchangeRate) Display() string {
	return fmt.Sprintf("$%d", r.Rounded())
}

// EncodeRate serializes a rate into its cache representation
func EncodeRate(rate ExchangeRate) (string, error) {
	data, err := json.Marshal(rate)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// storedRate mirrors ExchangeRate with pointers so absent fields are detectable
type storedRate struct {
	Time *string  `json:"time"`
	Rate *float64 `json:"rate"`
}

// DecodeRate parses the cache representation of a rate.
// The payload must be an object carrying both time and rate; null counts as missing.
func DecodeRate(raw string) (ExchangeRate, error) {
	var stored storedRate
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return ExchangeRate{}, err
	}
	if stored.Time == nil {
		return ExchangeRate{}, ErrMissingTime
	}
	if stored.Rate == nil {
		return ExchangeRate{}, ErrMissingRate
	}
	return NewExchangeRate(*stored.Time, *stored.Rate), nil
}
