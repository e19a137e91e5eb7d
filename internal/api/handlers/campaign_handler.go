package handlers

import (
	"net/http"

	"relief-coordination-api/internal/api/middleware"
	"relief-coordination-api/internal/models"

	"github.com/gin-gonic/gin"
)

type CampaignLedger interface {
	Donate(campaignID, donor string, amount float64) (*models.Campaign, error)
	GetCampaign(campaignID string) (*models.Campaign, error)
}

type CampaignHandler struct {
	Ledger CampaignLedger
}

type DonateRequest struct {
	Donor  string  `json:"donor"`
	Amount float64 `json:"amount" binding:"required"`
}

func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaign, err := h.Ledger.GetCampaign(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// Donate records a donation; the donor defaults to the caller's email.
func (h *CampaignHandler) Donate(c *gin.Context) {
	var req DonateRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Donor == "" {
		req.Donor = c.GetString(middleware.ContextUserEmail)
	}

	campaign, err := h.Ledger.Donate(c.Param("id"), req.Donor, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, campaign)
}
