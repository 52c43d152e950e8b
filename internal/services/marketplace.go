package services

import (
	"context"
	"log/slog"
	"strings"

	"grochain-dashboard/internal/apiclient"
	"grochain-dashboard/internal/demo"
	apperrors "grochain-dashboard/internal/errors"
	"grochain-dashboard/internal/listing"
	"grochain-dashboard/internal/models"
)

const (
	minSuggestionTerm = 2
	maxSuggestions    = 8
)

type MarketplacePage struct {
	State      listing.State                `json:"state"`
	Category   string                       `json:"category,omitempty"`
	Page       listing.Page[models.Listing] `json:"page"`
	Categories []string                     `json:"categories"`
	Demo       bool                         `json:"demo"`
}

type ProductDetail struct {
	Listing models.Listing `json:"listing"`
	Slug    string         `json:"slug"`
	Demo    bool           `json:"demo"`
}

type Marketplace struct {
	api    MarketplaceAPI
	demo   demo.Provider
	logger *slog.Logger
}

func NewMarketplace(api MarketplaceAPI, provider demo.Provider, logger *slog.Logger) *Marketplace {
	return &Marketplace{api: api, demo: provider, logger: logger}
}

// Browse lists marketplace listings. The search term and category are sent
// to the backend and applied again locally, so canned data and backends that
// ignore the parameters behave the same.
func (s *Marketplace) Browse(ctx context.Context, st listing.State, category string) (*MarketplacePage, error) {
	all, fromDemo, err := load(ctx,
		func(ctx context.Context) ([]models.Listing, error) {
			return s.api.ListListings(ctx, apiclient.ListingQuery{Search: st.Search, Category: category})
		},
		s.demo.Listings,
	)
	if err != nil {
		return nil, err
	}

	var categories []string
	seen := make(map[string]bool)
	for _, l := range all {
		key := strings.ToLower(l.Category)
		if l.Category != "" && !seen[key] {
			seen[key] = true
			categories = append(categories, l.Category)
		}
	}

	return &MarketplacePage{
		State:    st,
		Category: category,
		Page: listing.Apply(st, all, func(l models.Listing) bool {
			return listing.MatchStatus(category, l.Category) &&
				listing.MatchAny(st.Search, l.Name, l.Category, l.Location, l.Farmer.Label())
		}),
		Categories: categories,
		Demo:       fromDemo,
	}, nil
}

func (s *Marketplace) Product(ctx context.Context, id string) (*ProductDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.BadRequest("Product id is required")
	}
	l, fromDemo, err := load(ctx,
		func(ctx context.Context) (models.Listing, error) { return s.api.GetProduct(ctx, id) },
		func(ctx context.Context, cause error) (models.Listing, error) { return s.demo.Product(ctx, id, cause) },
	)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{Listing: l, Slug: l.Slug(), Demo: fromDemo}, nil
}

// Suggest returns search suggestions for term. Terms shorter than two
// characters return nothing without calling the backend. Suggestions are
// best effort: a backend failure yields an empty list, but a cancelled
// request (the user kept typing) is reported so the caller can drop it.
func (s *Marketplace) Suggest(ctx context.Context, term string) ([]models.SearchSuggestion, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < minSuggestionTerm {
		return []models.SearchSuggestion{}, nil
	}

	out, err := s.api.SearchSuggestions(ctx, term)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.WarnContext(ctx, "search suggestions unavailable", "term", term, "error", err)
		return []models.SearchSuggestion{}, nil
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out, nil
}
