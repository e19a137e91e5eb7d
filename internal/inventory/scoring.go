package inventory

import (
	"math"

	"relief-coordination-api/internal/models"
)

// Status thresholds. A score equal to a threshold belongs to the higher
// bucket.
const (
	SatisfactoryThreshold = 50.0
	GoodThreshold         = 150.0
	ExcellentThreshold    = 300.0
)

// tierWeight is how much one usable unit of an item contributes to the
// score. Critical items count the most.
func tierWeight(priority int) float64 {
	switch priority {
	case PriorityCritical:
		return 5
	case PriorityHigh:
		return 4
	case PriorityMedium:
		return 3
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// conditionFactor discounts used stock and ignores damaged stock.
func conditionFactor(condition string) float64 {
	switch condition {
	case models.ConditionNew:
		return 1
	case models.ConditionUsed:
		return 0.5
	default:
		return 0
	}
}

// ItemScore is quantity × weight(priority) × conditionFactor(condition).
func ItemScore(item models.InventoryItem) float64 {
	if item.Quantity <= 0 {
		return 0
	}
	return float64(item.Quantity) * tierWeight(item.Priority) * conditionFactor(item.Condition)
}

// TotalScore recomputes the aggregate from scratch over every item.
func TotalScore(items []models.InventoryItem) float64 {
	var total float64
	for _, item := range items {
		total += ItemScore(item)
	}
	return total
}

// Classify maps a score onto a status label. It is total over float64:
// NaN and anything below SatisfactoryThreshold is Critical.
func Classify(score float64) models.InventoryStatus {
	switch {
	case math.IsNaN(score) || score < SatisfactoryThreshold:
		return models.StatusCritical
	case score < GoodThreshold:
		return models.StatusSatisfactory
	case score < ExcellentThreshold:
		return models.StatusGood
	default:
		return models.StatusExcellent
	}
}

// statusRank orders statuses from worst to best.
func statusRank(s models.InventoryStatus) int {
	switch s {
	case models.StatusCritical:
		return 0
	case models.StatusSatisfactory:
		return 1
	case models.StatusGood:
		return 2
	case models.StatusExcellent:
		return 3
	default:
		return -1
	}
}
