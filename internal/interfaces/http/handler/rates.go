package handler

import (
	"github.com/gin-gonic/gin"

	apppricing "github.com/driftwear/storefront/internal/application/pricing"
)

// RatesHandler exposes the current exchange-rate table for display pricing.
type RatesHandler struct {
	BaseHandler
	service *apppricing.Service
}

func NewRatesHandler(service *apppricing.Service) *RatesHandler {
	return &RatesHandler{service: service}
}

// GetRates handles GET /exchange-rates
// @Summary Return the active exchange-rate table
// @Tags rates
// @Router /api/v1/exchange-rates [get]
func (h *RatesHandler) GetRates(c *gin.Context) {
	// Always answers 200: the service degrades to the static table when
	// every provider is down.
	h.Success(c, h.service.GetRates(c.Request.Context()))
}
