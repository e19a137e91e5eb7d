package inventory

import (
	"math"
	"testing"

	"relief-coordination-api/internal/models"

	"github.com/stretchr/testify/assert"
)

func item(name string, qty int, condition string) models.InventoryItem {
	return models.InventoryItem{
		ItemName:  name,
		Category:  models.CategoryMedicalEquipment,
		Quantity:  qty,
		Unit:      models.UnitUnits,
		Condition: condition,
		Priority:  ResolvePriority(name),
	}
}

func TestItemScoreWeights(t *testing.T) {
	assert.Equal(t, 15.0, ItemScore(item("Ventilator", 3, models.ConditionNew)))
	assert.Equal(t, 7.5, ItemScore(item("Ventilator", 3, models.ConditionUsed)))
	assert.Equal(t, 0.0, ItemScore(item("Ventilator", 3, models.ConditionDamaged)))
	assert.Equal(t, 8.0, ItemScore(item("Insulin", 2, models.ConditionNew)))
	assert.Equal(t, 3.0, ItemScore(item("Unknown Widget", 3, models.ConditionNew)))
	assert.Equal(t, 0.0, ItemScore(item("Ventilator", 0, models.ConditionNew)))
}

func TestTotalScoreIsDeterministic(t *testing.T) {
	items := []models.InventoryItem{
		item("Ventilator", 4, models.ConditionNew),
		item("Gloves", 120, models.ConditionNew),
		item("Wheelchair", 3, models.ConditionUsed),
	}
	first := TotalScore(items)
	second := TotalScore(items)
	assert.Equal(t, first, second)
	assert.Equal(t, 20.0+360.0+4.5, first)
	assert.Equal(t, 0.0, TotalScore(nil))
}

func TestTotalScoreGrowsWithCriticalStock(t *testing.T) {
	base := []models.InventoryItem{item("Gloves", 10, models.ConditionNew)}
	withVentilators := append([]models.InventoryItem{item("Ventilator", 3, models.ConditionNew)}, base...)
	assert.Greater(t, TotalScore(withVentilators), TotalScore(base))

	// one more critical unit outweighs one more low-tier unit
	critical := TotalScore([]models.InventoryItem{item("Ventilator", 1, models.ConditionNew)})
	low := TotalScore([]models.InventoryItem{item("Pill Boxes", 1, models.ConditionNew)})
	assert.Greater(t, critical, low)
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  models.InventoryStatus
	}{
		{math.Inf(-1), models.StatusCritical},
		{-1, models.StatusCritical},
		{0, models.StatusCritical},
		{49.999, models.StatusCritical},
		{50, models.StatusSatisfactory},
		{149.999, models.StatusSatisfactory},
		{150, models.StatusGood},
		{299.999, models.StatusGood},
		{300, models.StatusExcellent},
		{math.Inf(1), models.StatusExcellent},
		{math.NaN(), models.StatusCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.score), "score %v", tc.score)
	}
}

func TestClassifyIsMonotonic(t *testing.T) {
	prev := statusRank(Classify(-10))
	for score := -10.0; score <= 400; score += 0.25 {
		rank := statusRank(Classify(score))
		assert.GreaterOrEqual(t, rank, 0)
		assert.GreaterOrEqual(t, rank, prev, "score %v", score)
		prev = rank
	}
}
