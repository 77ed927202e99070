package dto

import (
	"btc-rate-monitor/internal/domain/entities"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPriceRequest(t *testing.T) {
	tests := []struct {
		in      string
		want    PriceFormat
		wantErr bool
	}{
		{in: "", want: FormatJSON},
		{in: "json", want: FormatJSON},
		{in: " TEXT ", want: FormatText},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			req, err := NewGetPriceRequest(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Format)
		})
	}
}

func TestToPriceResponse(t *testing.T) {
	resp := ToPriceResponse(entities.NewExchangeRate("2024-01-01T00:00:00Z", 42000.51))

	assert.Equal(t, "2024-01-01T00:00:00Z", resp.Time)
	assert.Equal(t, 42000.51, resp.Rate)
	assert.Equal(t, "$42001", resp.Display)
}
