package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"langodata/internal/core/apperror"
	"langodata/internal/domain/catalog"
	"langodata/internal/domain/extract"
	"langodata/internal/domain/submissions"
	"langodata/internal/infrastructure/http/v1/dto"
)

// SubmissionsHandler handles submission-monitoring endpoints.
type SubmissionsHandler struct {
	*BaseHandler
	service *submissions.Service
}

// NewSubmissionsHandler creates a new submissions handler.
func NewSubmissionsHandler(base *BaseHandler, service *submissions.Service) *SubmissionsHandler {
	return &SubmissionsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /submissions
func (h *SubmissionsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.SubmissionsQuery
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

	items, err := h.service.List(ctx,
		catalog.DataSource(strings.ToUpper(q.DataSource)),
		submissions.Filter{
			Status:          submissions.Status(strings.ToUpper(q.Status)),
			InstitutionCode: q.InstitutionCode,
			Start:           start,
			End:             end,
		},
	)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(items))
}

// RegisterRoutes registers submission routes.
func (h *SubmissionsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

func invalidPeriod(field, value string) error {
	return apperror.NewValidation(
		fmt.Sprintf("Invalid %s: %s. Expected format: DD-MMM-YYYY", field, value),
	)
}
