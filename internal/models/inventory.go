// server/internal/models/inventory.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item categories accepted on an inventory line.
const (
	CategoryMedicalEquipment = "Medical Equipment"
	CategoryMedications      = "Medications"
	CategoryPPE              = "Personal Protective Equipment"
	CategoryBeds             = "Beds"
	CategorySurgicalSupplies = "Surgical Supplies"
	CategoryOther            = "Other"
)

// Units of measure accepted on an inventory line.
const (
	UnitUnits  = "Units"
	UnitBoxes  = "Boxes"
	UnitLiters = "Liters"
	UnitBeds   = "Beds"
	UnitBags   = "Bags"
	UnitSets   = "Sets"
)

// Physical condition of stocked items.
const (
	ConditionNew     = "New"
	ConditionUsed    = "Used"
	ConditionDamaged = "Damaged"
)

var (
	Categories = []string{CategoryMedicalEquipment, CategoryMedications, CategoryPPE, CategoryBeds, CategorySurgicalSupplies, CategoryOther}
	Units      = []string{UnitUnits, UnitBoxes, UnitLiters, UnitBeds, UnitBags, UnitSets}
	Conditions = []string{ConditionNew, ConditionUsed, ConditionDamaged}
)

// InventoryStatus is the categorical health label derived from a score.
type InventoryStatus string

const (
	StatusCritical     InventoryStatus = "Critical"
	StatusSatisfactory InventoryStatus = "Satisfactory"
	StatusGood         InventoryStatus = "Good"
	StatusExcellent    InventoryStatus = "Excellent"
)

// InventoryItem is one stock line. Priority is always derived from ItemName.
type InventoryItem struct {
	ItemName  string `bson:"itemName" json:"itemName"`
	Category  string `bson:"category" json:"category"`
	Quantity  int    `bson:"quantity" json:"quantity"`
	Unit      string `bson:"unit" json:"unit"`
	Condition string `bson:"condition" json:"condition"`
	Priority  int    `bson:"priority" json:"priority"`
}

// InventoryRecord is the single stock snapshot of one organization.
type InventoryRecord struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RegistrationNumber string             `bson:"registrationNumber" json:"registrationNumber"`
	Items              []InventoryItem    `bson:"items" json:"items"`
	TotalScore         float64            `bson:"totalScore" json:"totalScore"`
	InventoryStatus    InventoryStatus    `bson:"inventoryStatus" json:"inventoryStatus"`
	IsMonitoringStock  bool               `bson:"isMonitoringStock" json:"isMonitoringStock"`
	LastUpdated        time.Time          `bson:"lastUpdated" json:"lastUpdated"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func IsCategory(v string) bool  { return contains(Categories, v) }
func IsUnit(v string) bool      { return contains(Units, v) }
func IsCondition(v string) bool { return contains(Conditions, v) }
