package services

import (
	"context"
	"log/slog"

	"grochain-dashboard/internal/demo"
	"grochain-dashboard/internal/listing"
	"grochain-dashboard/internal/models"
)

type FarmerDirectory struct {
	State        listing.State               `json:"state"`
	Page         listing.Page[models.Farmer] `json:"page"`
	StatusCounts map[models.FarmerStatus]int `json:"statusCounts"`
	Total        int                         `json:"total"`
	Demo         bool                        `json:"demo"`
}

type Farmers struct {
	api    FarmerAPI
	demo   demo.Provider
	logger *slog.Logger
}

func NewFarmers(api FarmerAPI, provider demo.Provider, logger *slog.Logger) *Farmers {
	return &Farmers{api: api, demo: provider, logger: logger}
}

func (s *Farmers) load(ctx context.Context) ([]models.Farmer, bool, error) {
	return load(ctx, s.api.ListFarmers, s.demo.Farmers)
}

// Directory searches farmers by name, email or phone and filters by status.
func (s *Farmers) Directory(ctx context.Context, st listing.State) (*FarmerDirectory, error) {
	all, fromDemo, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.FarmerStatus]int)
	for _, f := range all {
		counts[f.Status]++
	}

	return &FarmerDirectory{
		State:        st,
		Page:         listing.Apply(st, all, FarmerFilter(st)),
		StatusCounts: counts,
		Total:        len(all),
		Demo:         fromDemo,
	}, nil
}

// FarmerFilter matches the search term against name, email and phone.
func FarmerFilter(st listing.State) func(models.Farmer) bool {
	return func(f models.Farmer) bool {
		return listing.MatchStatus(st.Status, string(f.Status)) &&
			listing.MatchAny(st.Search, f.Name, f.Email, f.Phone)
	}
}
