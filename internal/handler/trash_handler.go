package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/autocloud/autocloud-api/internal/dto"
	appErrors "github.com/autocloud/autocloud-api/pkg/errors"
	"github.com/autocloud/autocloud-api/pkg/response"
)

type trashManager interface {
	History(ctx context.Context, req dto.HistoryRequest) (*dto.HistoryResponse, error)
	Restore(ctx context.Context, req dto.RestoreRequest) (*dto.RestoreResponse, error)
	Export(ctx context.Context, ownerEmail string, filterDays int, format string) ([]byte, string, error)
}

// TrashHandler exposes the trash ledger over HTTP.
type TrashHandler struct {
	service trashManager
}

// NewTrashHandler constructs the handler.
func NewTrashHandler(service trashManager) *TrashHandler {
	return &TrashHandler{service: service}
}

// History godoc
// @Summary List cleanup history
// @Tags Cleanup
// @Accept json
// @Produce json
// @Param payload body dto.HistoryRequest true "History payload"
// @Success 200 {object} response.Envelope
// @Router /cleanup/history [post]
func (h *TrashHandler) History(c *gin.Context) {
	var req dto.HistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid history payload"))
		return
	}

	res, err := h.service.History(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// Restore godoc
// @Summary Restore a trashed file
// @Tags Cleanup
// @Accept json
// @Produce json
// @Param payload body dto.RestoreRequest true "Restore payload"
// @Success 200 {object} response.Envelope
// @Router /cleanup/restore [post]
func (h *TrashHandler) Restore(c *gin.Context) {
	var req dto.RestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid restore payload"))
		return
	}

	res, err := h.service.Restore(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// Export godoc
// @Summary Export cleanup history as CSV or PDF
// @Tags Cleanup
// @Produce text/csv
// @Produce application/pdf
// @Param email query string true "Owner email"
// @Param days query int false "Limit to records deleted within N days"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /cleanup/history/export [get]
func (h *TrashHandler) Export(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "email is required"))
		return
	}

	days := 0
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "days must be a non-negative integer"))
			return
		}
		days = parsed
	}

	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "csv")))

	payload, contentType, err := h.service.Export(c.Request.Context(), email, days, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := "cleanup-history-" + time.Now().UTC().Format("20060102") + "." + format
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}
