package handlers

import (
	"github.com/gin-gonic/gin"

	"langodata/internal/domain/extract"
	"langodata/internal/infrastructure/http/v1/dto"
)

// ExtractHandler handles parameterized data-retrieval endpoints. The
// dispatcher never returns an error: failures arrive as debug text inside
// the envelope, so both endpoints always answer 200.
type ExtractHandler struct {
	*BaseHandler
	service *extract.Service
}

// NewExtractHandler creates a new extract handler.
func NewExtractHandler(base *BaseHandler, service *extract.Service) *ExtractHandler {
	return &ExtractHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Read handles POST /data/read
func (h *ExtractHandler) Read(c *gin.Context) {
	var req dto.ReadRequest
	if !h.BindJSON(c, &req) {
		return
	}

	env := h.service.Read(c.Request.Context(), req.ToQueryRequest())
	h.OK(c, dto.FromEnvelope(env))
}

// ReadProfile handles POST /data/profile
func (h *ExtractHandler) ReadProfile(c *gin.Context) {
	var req dto.ProfileReadRequest
	if !h.BindJSON(c, &req) {
		return
	}

	env := h.service.ReadProfile(c.Request.Context(), req.ToProfileRequest())
	h.OK(c, dto.FromEnvelope(env))
}

// RegisterRoutes registers data-retrieval routes.
func (h *ExtractHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/read", h.Read)
	rg.POST("/profile", h.ReadProfile)
}
