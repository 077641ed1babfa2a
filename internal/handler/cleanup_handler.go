package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autocloud/autocloud-api/internal/dto"
	"github.com/autocloud/autocloud-api/internal/middleware"
	appErrors "github.com/autocloud/autocloud-api/pkg/errors"
	"github.com/autocloud/autocloud-api/pkg/response"
)

type cleanupRunner interface {
	Run(ctx context.Context, req dto.CleanupRequest) (*dto.CleanupResult, error)
}

// CleanupHandler wires the cleanup orchestrator to HTTP.
type CleanupHandler struct {
	service cleanupRunner
}

// NewCleanupHandler constructs the handler.
func NewCleanupHandler(service cleanupRunner) *CleanupHandler {
	return &CleanupHandler{service: service}
}

// Run godoc
// @Summary Preview or execute a Drive cleanup
// @Tags Cleanup
// @Accept json
// @Produce json
// @Param payload body dto.CleanupRequest true "Cleanup payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /cleanup/drive [post]
func (h *CleanupHandler) Run(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	var req dto.CleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cleanup payload"))
		return
	}

	result, err := h.service.Run(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, result.FromCache)
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}
