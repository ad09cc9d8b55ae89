package http

import (
	"net/http"
	"strings"

	"rillid/internal/core/domain"
	"rillid/internal/core/ports"
	apperrors "rillid/pkg/errors"

	"github.com/gin-gonic/gin"
)

type StreamIDHandler struct {
	service ports.StreamIDService
}

func NewStreamIDHandler(service ports.StreamIDService) *StreamIDHandler {
	return &StreamIDHandler{service: service}
}

// SetupRoutes registers the stream id routes. The GET route is a catch-all
// because the base64 body may contain '/'.
func (h *StreamIDHandler) SetupRoutes(router gin.IRouter) {
	api := router.Group("/api/v1")
	{
		api.POST("/streamids", h.EncodeStreamID)
		api.POST("/streamids/decode", h.DecodeBody)
		api.GET("/streamids/*id", h.DecodePath)
	}
}

// DecodePath decodes the id carried in the URL path. A URI-safe id such as
// %23!R... arrives here already unescaped to #!R...
func (h *StreamIDHandler) DecodePath(c *gin.Context) {
	h.decode(c, strings.TrimPrefix(c.Param("id"), "/"))
}

func (h *StreamIDHandler) DecodeBody(c *gin.Context) {
	var req struct {
		StreamID string `json:"streamid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewInvalidInputError(err.Error()))
		return
	}
	h.decode(c, req.StreamID)
}

func (h *StreamIDHandler) decode(c *gin.Context, text string) {
	desc, err := h.service.Decode(c.Request.Context(), text)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stream": desc,
	})
}

func (h *StreamIDHandler) EncodeStreamID(c *gin.Context) {
	var req domain.EncodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewInvalidInputError(err.Error()))
		return
	}

	encoded, err := h.service.Encode(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"stream": encoded,
	})
}
