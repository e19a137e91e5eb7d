package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"relief-coordination-api/internal/apperr"
	"relief-coordination-api/internal/inventory"
	"relief-coordination-api/internal/models"

	"github.com/gin-gonic/gin"
)

type InventoryService interface {
	Submit(ctx context.Context, req inventory.SubmitRequest) (*models.InventoryRecord, error)
	Get(ctx context.Context, registrationNumber string) (*models.InventoryRecord, error)
	SetMonitoring(ctx context.Context, registrationNumber string, monitoring bool) (*models.InventoryRecord, error)
	Rank(ctx context.Context, limit int) ([]models.InventoryRecord, error)
}

type InventoryHandler struct {
	Service InventoryService
}

type MonitoringRequest struct {
	IsMonitoringStock *bool `json:"isMonitoringStock" binding:"required"`
}

// SubmitInventory replaces the caller's stock list and returns the rescored record.
func (h *InventoryHandler) SubmitInventory(c *gin.Context) {
	var req inventory.SubmitRequest
	if !bindJSON(c, &req) {
		return
	}
	// A blank number is left to the service, which reports it as a field error.
	if regNo := strings.TrimSpace(req.RegistrationNumber); regNo != "" && !canActFor(c, regNo) {
		forbidOtherOrganization(c)
		return
	}

	record, err := h.Service.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *InventoryHandler) GetInventory(c *gin.Context) {
	regNo := c.Param("registrationNumber")
	if !canActFor(c, regNo) {
		forbidOtherOrganization(c)
		return
	}

	record, err := h.Service.Get(c.Request.Context(), regNo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *InventoryHandler) SetMonitoring(c *gin.Context) {
	regNo := c.Param("registrationNumber")
	if !canActFor(c, regNo) {
		forbidOtherOrganization(c)
		return
	}

	var req MonitoringRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.Service.SetMonitoring(c.Request.Context(), regNo, *req.IsMonitoringStock)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// RankInventories lists organizations neediest first.
func (h *InventoryHandler) RankInventories(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(c, apperr.Invalid("limit", "must be a non-negative integer"))
			return
		}
		limit = n
	}

	records, err := h.Service.Rank(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *InventoryHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, inventory.Catalog())
}
