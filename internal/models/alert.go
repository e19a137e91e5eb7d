// server/internal/models/alert.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SeverityLow      = "LOW"
	SeverityMedium   = "MEDIUM"
	SeverityHigh     = "HIGH"
	SeverityCritical = "CRITICAL"
)

// Alert is a disaster warning scoped to one city.
type Alert struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AlertID      string             `bson:"alertID" json:"alertID"`
	City         string             `bson:"city" json:"city"`
	DisasterType string             `bson:"disasterType" json:"disasterType"`
	Severity     string             `bson:"severity" json:"severity"`
	Message      string             `bson:"message" json:"message"`
	CreatedBy    string             `bson:"createdBy" json:"createdBy"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
