package entities

import (
	"fmt"
	"math"
	"time"
)

// Direction of a price movement between two observations
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Movement compares a fresh observation against the cached baseline.
type Movement struct {
	Previous      ExchangeRate `json:"previous"`
	Current       ExchangeRate `json:"current"`
	PercentChange float64      `json:"percent_change"`
	Direction     Direction    `json:"direction"`
}

// NewMovement computes (current-previous)/previous*100.
// A zero baseline yields a zero percentage rather than an infinity.
func NewMovement(previous, current ExchangeRate) Movement {
	percent := 0.0
	if previous.Rate != 0 {
		percent = (current.Rate - previous.Rate) / previous.Rate * 100
	}

	direction := DirectionDown
	if current.Rate > previous.Rate {
		direction = DirectionUp
	}

	return Movement{
		Previous:      previous,
		Current:       current,
		PercentChange: percent,
		Direction:     direction,
	}
}

// Exceeds reports whether the absolute change is strictly above threshold percent
func (m Movement) Exceeds(threshold float64) bool {
	return math.Abs(m.PercentChange) > threshold
}

// Message renders the chat notification text
func (m Movement) Message() string {
	return fmt.Sprintf("BTC now at %s, %.2f%% %s", m.Current.Display(), math.Abs(m.PercentChange), m.Direction)
}

// MovementAlert is what gets published to live subscribers after a notification
type MovementAlert struct {
	Movement
	Heartbeat bool      `json:"heartbeat"`
	SentAt    time.Time `json:"sent_at"`
}
