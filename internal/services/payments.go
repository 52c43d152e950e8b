package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"grochain-dashboard/internal/models"
)

type Payments struct {
	api    PaymentAPI
	logger *slog.Logger
}

func NewPayments(api PaymentAPI, logger *slog.Logger) *Payments {
	return &Payments{api: api, logger: logger}
}

// Initiate starts checkout for an order. Each attempt gets a fresh client
// reference so the payment gateway can tell retries apart.
func (s *Payments) Initiate(ctx context.Context, p models.PaymentInitiation) (models.PaymentSession, error) {
	p.Reference = "GC-" + strings.ToUpper(uuid.NewString())
	if err := validateForm(p); err != nil {
		return models.PaymentSession{}, err
	}
	sess, err := s.api.InitiatePayment(ctx, p)
	if err != nil {
		return models.PaymentSession{}, err
	}
	s.logger.InfoContext(ctx, "payment initiated", "order_id", p.OrderID, "reference", p.Reference, "method", p.Method)
	return sess, nil
}
