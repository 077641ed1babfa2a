package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autocloud/autocloud-api/internal/service"
	"github.com/autocloud/autocloud-api/pkg/response"
)

// UserHandler serves persisted account snapshots.
type UserHandler struct {
	service *service.AuthService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc *service.AuthService) *UserHandler {
	return &UserHandler{service: svc}
}

// Get godoc
// @Summary Get a user snapshot
// @Description Returns the persisted account and last-known storage usage for an email
// @Tags Users
// @Produce json
// @Param email path string true "Account email"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{email} [get]
func (h *UserHandler) Get(c *gin.Context) {
	res, err := h.service.Usage(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}
