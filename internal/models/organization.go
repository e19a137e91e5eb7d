// server/internal/models/organization.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrgTypeHospital = "HOSPITAL"
	OrgTypeNGO      = "NGO"

	OrgStatusPending  = "PENDING"
	OrgStatusApproved = "APPROVED"
	OrgStatusRejected = "REJECTED"
)

// Organization is a hospital or NGO known by its registration number.
type Organization struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RegistrationNumber string             `bson:"registrationNumber" json:"registrationNumber"`
	Name               string             `bson:"name" json:"name"`
	Type               string             `bson:"type" json:"type"`
	City               string             `bson:"city" json:"city"`
	Email              string             `bson:"email" json:"email"`
	Certificate        *MediaPointer      `bson:"certificate,omitempty" json:"certificate,omitempty"`
	Status             string             `bson:"status" json:"status"`
	ReviewedBy         string             `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
