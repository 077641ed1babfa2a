package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autocloud/autocloud-api/internal/dto"
	"github.com/autocloud/autocloud-api/internal/service"
	appErrors "github.com/autocloud/autocloud-api/pkg/errors"
	"github.com/autocloud/autocloud-api/pkg/response"
)

// DashboardHandler serves the live storage overview.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Overview godoc
// @Summary Live storage overview
// @Description Fetches the current quota breakdown and a page of media previews
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body dto.DashboardRequest true "Dashboard payload"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /dashboard [post]
func (h *DashboardHandler) Overview(c *gin.Context) {
	var req dto.DashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid dashboard payload"))
		return
	}

	res, err := h.service.Overview(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}
