package handlers

import (
	"btc-rate-monitor/internal/application/dto"
	"btc-rate-monitor/internal/domain/apperr"
	"btc-rate-monitor/internal/domain/interfaces"
	"btc-rate-monitor/internal/infrastructure/logging"
	"net/http"
)

// PriceHandler serves the cached exchange rate on demand
type PriceHandler struct {
	priceService interfaces.PriceService
}

// NewPriceHandler creates a new price handler
func NewPriceHandler(priceService interfaces.PriceService) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

// GetPrice godoc
// @Summary Current BTC/USD rate
// @Description Returns the cached rate, fetching it from the price API on a cache miss.
// @Tags price
// @Produce json
// @Produce plain
// @Param format query string false "Response format" Enums(json, text)
// @Success 200 {object} dto.PriceResponse
// @Failure 400 {object} dto.ErrorResponse "Unsupported format"
// @Failure 503 {object} dto.ErrorResponse "Price temporarily unavailable"
// @Router /api/v1/price [get]
func (h *PriceHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	request, err := dto.NewGetPriceRequest(r.URL.Query().Get("format"))
	if err != nil {
		writeJSONResponse(w, http.StatusBadRequest, dto.NewErrorResponse("INVALID_PARAMETER", err.Error()))
		return
	}

	rate, err := h.priceService.GetPrice(ctx)
	if err != nil {
		// the caller only gets a generic message, the cause stays in the log
		logging.ErrorWithError(ctx, "failed to serve price", err, logging.Fields{
			logging.FieldErrorKind: apperr.KindOf(err).String(),
		})
		writeJSONResponse(w, http.StatusServiceUnavailable,
			dto.NewErrorResponse("PRICE_UNAVAILABLE", "Failed to fetch the current price, please try again later"))
		return
	}

	if request.Format == dto.FormatText {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(rate.Display()))
		return
	}

	writeJSONResponse(w, http.StatusOK, dto.ToPriceResponse(rate))
}
