package services

import (
	"context"
	"log/slog"

	"grochain-dashboard/internal/demo"
	"grochain-dashboard/internal/listing"
	"grochain-dashboard/internal/models"
)

type OrderHistory struct {
	State        listing.State              `json:"state"`
	Page         listing.Page[models.Order] `json:"page"`
	StatusCounts map[string]int             `json:"statusCounts"`
	TotalSpent   float64                    `json:"totalSpent"`
	Demo         bool                       `json:"demo"`
}

type Orders struct {
	api    OrderAPI
	demo   demo.Provider
	logger *slog.Logger
}

func NewOrders(api OrderAPI, provider demo.Provider, logger *slog.Logger) *Orders {
	return &Orders{api: api, demo: provider, logger: logger}
}

// BuyerOrders lists a buyer's orders. TotalSpent counts only paid orders.
func (s *Orders) BuyerOrders(ctx context.Context, buyerID string, st listing.State) (*OrderHistory, error) {
	all, fromDemo, err := load(ctx,
		func(ctx context.Context) ([]models.Order, error) { return s.api.ListOrders(ctx, buyerID) },
		func(ctx context.Context, cause error) ([]models.Order, error) { return s.demo.Orders(ctx, buyerID, cause) },
	)
	if err != nil {
		return nil, err
	}

	hist := &OrderHistory{
		State: st,
		Page: listing.Apply(st, all, func(o models.Order) bool {
			return listing.MatchStatus(st.Status, o.Status) &&
				listing.MatchAny(st.Search, o.OrderNumber, o.Seller.Label(), o.Status, o.TrackingNumber)
		}),
		StatusCounts: make(map[string]int),
		Demo:         fromDemo,
	}
	for _, o := range all {
		hist.StatusCounts[o.Status]++
		if o.PaymentStatus == "paid" {
			hist.TotalSpent += o.TotalAmount
		}
	}
	return hist, nil
}
