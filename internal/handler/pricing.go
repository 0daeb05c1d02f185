package handler

import (
	"net/http"

	"fabcost/internal/apierror"
	"fabcost/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PricingHandler serves the read-only price queries: effective-dated item
// cost, forecasts, and supplier quotes.
type PricingHandler struct{ svc service.PricingService }

func NewPricingHandler(svc service.PricingService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

// ItemCost godoc
// @Summary      Effective cost of an item at a date
// @Tags         pricing
// @Security     BearerAuth
// @Param        id   path  string true  "Item UUID"
// @Param        date query string false "RFC 3339 or YYYY-MM-DD (default now)"
// @Success      200 {object} dto.ItemCostResponse
// @Router       /v1/items/{id}/cost [get]
func (h *PricingHandler) ItemCost(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid item ID"))
		return
	}
	date, ok := dateQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.ItemCost(c.Request.Context(), itemID, date)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ItemForecast returns the trend-projected cost at the query date.
func (h *PricingHandler) ItemForecast(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid item ID"))
		return
	}
	date, ok := dateQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.ItemForecast(c.Request.Context(), itemID, date)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowestQuote returns the cheapest eligible supplier quote, 204 when none.
func (h *PricingHandler) LowestQuote(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid item ID"))
		return
	}
	date, ok := dateQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.LowestQuote(c.Request.Context(), itemID, date)
	if err != nil {
		serviceError(c, err)
		return
	}
	if resp == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, resp)
}
