package services

import (
	"context"
	"log/slog"
	"strings"

	"grochain-dashboard/internal/demo"
	apperrors "grochain-dashboard/internal/errors"
	"grochain-dashboard/internal/models"
)

type HarvestCheck struct {
	Verification models.HarvestVerification `json:"verification"`
	Demo         bool                       `json:"demo"`
}

type Harvests struct {
	api    HarvestAPI
	demo   demo.Provider
	logger *slog.Logger
}

func NewHarvests(api HarvestAPI, provider demo.Provider, logger *slog.Logger) *Harvests {
	return &Harvests{api: api, demo: provider, logger: logger}
}

// Create validates and logs a new harvest batch. The backend assigns the
// batch id and QR code.
func (s *Harvests) Create(ctx context.Context, h models.Harvest) (models.Harvest, error) {
	if err := validateForm(h); err != nil {
		return models.Harvest{}, err
	}
	created, err := s.api.CreateHarvest(ctx, h)
	if err != nil {
		return models.Harvest{}, err
	}
	s.logger.InfoContext(ctx, "harvest logged", "batch_id", created.BatchID, "crop", created.CropType)
	return created, nil
}

// Verify looks up a batch by the id encoded in its QR code.
func (s *Harvests) Verify(ctx context.Context, batchID string) (*HarvestCheck, error) {
	batchID = strings.TrimSpace(batchID)
	if batchID == "" {
		return nil, apperrors.ValidationFields(map[string]string{"batchId": "batchId is required"})
	}
	v, fromDemo, err := load(ctx,
		func(ctx context.Context) (models.HarvestVerification, error) { return s.api.VerifyHarvest(ctx, batchID) },
		func(ctx context.Context, cause error) (models.HarvestVerification, error) {
			return s.demo.Harvest(ctx, batchID, cause)
		},
	)
	if err != nil {
		return nil, err
	}
	return &HarvestCheck{Verification: v, Demo: fromDemo}, nil
}
