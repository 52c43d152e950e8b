package models

import "time"

type CreditEvent struct {
	TransactionID string    `json:"transactionId"`
	Amount        float64   `json:"amount"`
	Date          time.Time `json:"date"`
}

// CreditScore is computed by the backend and is read-only here.
type CreditScore struct {
	Score     int           `json:"score"`
	History   []CreditEvent `json:"history"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// LoanApplication is the payload of the loan application form.
type LoanApplication struct {
	Amount        float64 `json:"amount" validate:"gt=0,lte=50000000"`
	Term          int     `json:"term" validate:"gte=1,lte=60"`
	Purpose       string  `json:"purpose" validate:"required,min=10"`
	MonthlyIncome float64 `json:"monthlyIncome" validate:"gt=0"`
	ExistingLoans float64 `json:"existingLoans" validate:"gte=0"`
	Collateral    string  `json:"collateral,omitempty"`
	CropType      string  `json:"cropType,omitempty"`
	FarmSize      float64 `json:"farmSize,omitempty" validate:"gte=0"`
	Rate          float64 `json:"interestRate"`
	MonthlyRepay  float64 `json:"monthlyPayment"`
}

type LoanApplicationResult struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoanReferral passes a farmer on to a partner lender.
type LoanReferral struct {
	FarmerID string  `json:"farmerId" validate:"required"`
	Amount   float64 `json:"amount" validate:"gt=0"`
	Purpose  string  `json:"purpose" validate:"required"`
	Partner  string  `json:"partner,omitempty"`
	Notes    string  `json:"notes,omitempty" validate:"max=500"`
}

type LoanReferralResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
