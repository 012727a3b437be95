package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ktnkk/crosslist/internal/shipping"
	"github.com/ktnkk/crosslist/internal/store"
)

// ShippingHandler computes shipping quotes from the carrier tariff
// tables.
type ShippingHandler struct {
	store store.Store
	calc  *shipping.Calculator
}

// NewShippingHandler creates a new ShippingHandler.
func NewShippingHandler(s store.Store, calc *shipping.Calculator) *ShippingHandler {
	return &ShippingHandler{store: s, calc: calc}
}

type quoteRequest struct {
	ServiceID   int    `json:"service_id"`
	CountryCode string `json:"country_code"`
	WeightGrams int    `json:"weight"`
}

// Services handles GET /api/v1/shipping-services.
func (h *ShippingHandler) Services(c echo.Context) error {
	services, err := h.store.ListServices(c.Request().Context())
	if err != nil {
		return respondError(c, http.StatusInternalServerError,
			"Failed to list shipping services", err)
	}
	return respond(c, http.StatusOK, "Successfully listed shipping services", services)
}

// Quote handles POST /api/v1/shipping-calculator.
func (h *ShippingHandler) Quote(c echo.Context) error {
	const failMsg = "Failed to calculate shipping cost"

	var req quoteRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, failMsg, err)
	}

	if req.ServiceID <= 0 || req.CountryCode == "" || req.WeightGrams <= 0 {
		return respondError(c, http.StatusBadRequest, failMsg,
			errors.New("service_id, country_code and weight are required"))
	}

	quote, err := h.calc.Quote(
		c.Request().Context(), req.ServiceID, req.CountryCode, req.WeightGrams,
	)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondError(c, http.StatusNotFound, failMsg, err)
		}
		return respondError(c, http.StatusInternalServerError, failMsg, err)
	}

	return respond(c, http.StatusOK, "Successfully calculated shipping cost", quote)
}
