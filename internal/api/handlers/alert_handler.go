package handlers

import (
	"context"
	"net/http"

	"relief-coordination-api/internal/alert"
	"relief-coordination-api/internal/api/middleware"
	"relief-coordination-api/internal/models"

	"github.com/gin-gonic/gin"
)

type AlertService interface {
	Create(ctx context.Context, req alert.CreateRequest, createdBy string) (*models.Alert, error)
	List(ctx context.Context, city string) ([]models.Alert, error)
}

type AlertHandler struct {
	Service AlertService
}

func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var req alert.CreateRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.Service.Create(c.Request.Context(), req, c.GetString(middleware.ContextUserEmail))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AlertHandler) ListAlerts(c *gin.Context) {
	alerts, err := h.Service.List(c.Request.Context(), c.Query("city"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}
