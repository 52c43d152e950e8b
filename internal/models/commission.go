package models

import "time"

type CommissionStatus string

const (
	CommissionPending   CommissionStatus = "pending"
	CommissionApproved  CommissionStatus = "approved"
	CommissionPaid      CommissionStatus = "paid"
	CommissionCancelled CommissionStatus = "cancelled"
)

// Commission is earned by a partner on a completed order.
type Commission struct {
	ID           string           `json:"id"`
	Farmer       Party            `json:"farmer"`
	Order        string           `json:"order"`
	Amount       float64          `json:"amount"`
	Rate         float64          `json:"rate"`
	Status       CommissionStatus `json:"status"`
	OrderAmount  float64          `json:"orderAmount"`
	OrderDate    time.Time        `json:"orderDate"`
	PaidAt       *time.Time       `json:"paidAt,omitempty"`
	WithdrawalID string           `json:"withdrawalId,omitempty"`
}

// PayoutRequest asks the backend to pay out approved commissions.
type PayoutRequest struct {
	CommissionIDs []string `json:"commissionIds"`
	Amount        float64  `json:"amount"`
}

type PayoutReceipt struct {
	WithdrawalID string    `json:"withdrawalId"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	RequestedAt  time.Time `json:"requestedAt"`
}
