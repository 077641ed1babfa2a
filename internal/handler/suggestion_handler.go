package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autocloud/autocloud-api/internal/dto"
	"github.com/autocloud/autocloud-api/internal/middleware"
	"github.com/autocloud/autocloud-api/internal/service"
	appErrors "github.com/autocloud/autocloud-api/pkg/errors"
	"github.com/autocloud/autocloud-api/pkg/response"
)

// SuggestionHandler serves heuristic cleanup recommendations.
type SuggestionHandler struct {
	service *service.SuggestionService
}

// NewSuggestionHandler creates a new handler.
func NewSuggestionHandler(svc *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{service: svc}
}

// Analyze godoc
// @Summary Suggest cleanup candidates
// @Description Scans the Drive listing for duplicates, large files and stale files
// @Tags Suggestions
// @Accept json
// @Produce json
// @Param payload body dto.SuggestionsRequest true "Suggestions payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /suggestions [post]
func (h *SuggestionHandler) Analyze(c *gin.Context) {
	var req dto.SuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid suggestions payload"))
		return
	}

	res, err := h.service.Analyze(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, res.FromCache)
	response.JSON(c, http.StatusOK, res, middleware.ExtractMeta(c))
}
