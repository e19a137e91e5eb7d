package blockchain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"relief-coordination-api/internal/apperr"
	"relief-coordination-api/internal/models"

	"go.uber.org/zap"
)

// Contract is the subset of *gateway.Contract used by the ledger.
type Contract interface {
	SubmitTransaction(name string, args ...string) ([]byte, error)
	EvaluateTransaction(name string, args ...string) ([]byte, error)
}

// CampaignLedger submits donations to and reads campaigns from the chaincode.
type CampaignLedger struct {
	contract Contract
	log      *zap.Logger
}

func NewCampaignLedger(contract Contract, log *zap.Logger) *CampaignLedger {
	return &CampaignLedger{contract: contract, log: log}
}

// Donate records a donation on-chain and returns the updated campaign.
func (l *CampaignLedger) Donate(campaignID, donor string, amount float64) (*models.Campaign, error) {
	switch {
	case strings.TrimSpace(campaignID) == "":
		return nil, apperr.Invalid("campaignID", "is required")
	case strings.TrimSpace(donor) == "":
		return nil, apperr.Invalid("donor", "is required")
	case !(amount > 0):
		return nil, apperr.Invalid("amount", "must be greater than 0")
	}

	result, err := l.contract.SubmitTransaction("Donate", campaignID, donor, strconv.FormatFloat(amount, 'f', 2, 64))
	if err != nil {
		return nil, l.translate("Donate", campaignID, err)
	}
	l.log.Info("donation recorded", zap.String("campaignID", campaignID), zap.String("donor", donor), zap.Float64("amount", amount))

	if len(result) == 0 {
		return l.GetCampaign(campaignID)
	}
	return decodeCampaign(result)
}

func (l *CampaignLedger) GetCampaign(campaignID string) (*models.Campaign, error) {
	if strings.TrimSpace(campaignID) == "" {
		return nil, apperr.Invalid("campaignID", "is required")
	}
	result, err := l.contract.EvaluateTransaction("GetCampaign", campaignID)
	if err != nil {
		return nil, l.translate("GetCampaign", campaignID, err)
	}
	return decodeCampaign(result)
}

// translate maps chaincode "does not exist" errors to NotFound; everything
// else is treated as the ledger being unavailable.
func (l *CampaignLedger) translate(fn, campaignID string, err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "does not exist") {
		return apperr.NotFound("campaign %s", campaignID)
	}
	l.log.Error("chaincode call failed", zap.String("function", fn), zap.String("campaignID", campaignID), zap.Error(err))
	return apperr.Persistence(fmt.Sprintf("chaincode %s", fn), err)
}

func decodeCampaign(raw []byte) (*models.Campaign, error) {
	var c models.Campaign
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode campaign: %w", err)
	}
	return &c, nil
}
