package models

import "time"

type ReferralStatus string

const (
	ReferralPending   ReferralStatus = "pending"
	ReferralActive    ReferralStatus = "active"
	ReferralCompleted ReferralStatus = "completed"
)

// Referral links a partner to a farmer they brought onto the platform.
type Referral struct {
	ID             string         `json:"id"`
	Farmer         Party          `json:"farmer"`
	CommissionRate float64        `json:"commissionRate"`
	Status         ReferralStatus `json:"status"`
	Notes          string         `json:"notes,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	Commission     *float64       `json:"commission,omitempty"`
}
