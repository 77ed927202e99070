package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMovement(t *testing.T) {
	tests := []struct {
		name        string
		previous    float64
		current     float64
		wantPercent float64
		wantDir     Direction
		exceeds     bool
	}{
		{name: "four percent up", previous: 50000, current: 52000, wantPercent: 4, wantDir: DirectionUp, exceeds: true},
		{name: "one percent up", previous: 50000, current: 50500, wantPercent: 1, wantDir: DirectionUp, exceeds: false},
		{name: "five percent down", previous: 50000, current: 47500, wantPercent: -5, wantDir: DirectionDown, exceeds: true},
		{name: "exactly three percent", previous: 50000, current: 51500, wantPercent: 3, wantDir: DirectionUp, exceeds: false},
		{name: "unchanged", previous: 50000, current: 50000, wantPercent: 0, wantDir: DirectionDown, exceeds: false},
		{name: "zero baseline", previous: 0, current: 50000, wantPercent: 0, wantDir: DirectionUp, exceeds: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMovement(NewExchangeRate("t0", tt.previous), NewExchangeRate("t1", tt.current))

			assert.InDelta(t, tt.wantPercent, m.PercentChange, 1e-9)
			assert.Equal(t, tt.wantDir, m.Direction)
			assert.Equal(t, tt.exceeds, m.Exceeds(3.0))
		})
	}
}

func TestMovement_Message(t *testing.T) {
	up := NewMovement(NewExchangeRate("", 50000), NewExchangeRate("", 52000))
	assert.Equal(t, "BTC now at $52000, 4.00% up", up.Message())

	down := NewMovement(NewExchangeRate("", 50000), NewExchangeRate("", 47500.4))
	assert.Equal(t, "BTC now at $47500, 5.00% down", down.Message())
}
