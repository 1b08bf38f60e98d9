package handlers

import (
	"github.com/gin-gonic/gin"

	"langodata/internal/domain/extract"
	"langodata/internal/domain/rates"
	"langodata/internal/infrastructure/http/v1/dto"
)

// RatesHandler handles currency-rate endpoints.
type RatesHandler struct {
	*BaseHandler
	service *rates.Service
}

// NewRatesHandler creates a new rates handler.
func NewRatesHandler(base *BaseHandler, service *rates.Service) *RatesHandler {
	return &RatesHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /rates
func (h *RatesHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.RatesQuery
	if !h.BindQuery(c, &q) {
		return
	}

	start, err := extract.ParsePeriod(q.StartPeriod)
	if err != nil {
		h.Error(c, invalidPeriod("start_period", q.StartPeriod))
		return
	}
	end, err := extract.ParsePeriod(q.EndPeriod)
	if err != nil {
		h.Error(c, invalidPeriod("end_period", q.EndPeriod))
		return
	}

	items, err := h.service.List(ctx, start, end)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(items))
}

// RegisterRoutes registers rate routes.
func (h *RatesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}
