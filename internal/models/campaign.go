package models

import "time"

// Campaign mirrors the campaign state held by the donations chaincode.
type Campaign struct {
	CampaignID   string     `json:"campaignID"`
	Title        string     `json:"title"`
	Organizer    string     `json:"organizer"`
	TargetAmount float64    `json:"targetAmount"`
	RaisedAmount float64    `json:"raisedAmount"`
	Status       string     `json:"status"`
	Donations    []Donation `json:"donations,omitempty"`
}

type Donation struct {
	DonationID string    `json:"donationID"`
	CampaignID string    `json:"campaignID"`
	Donor      string    `json:"donor"`
	Amount     float64   `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}
