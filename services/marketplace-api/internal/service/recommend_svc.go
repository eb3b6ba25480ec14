package service

import (
	"context"
	"math"

	"github.com/you/agrigo/pkg/obs"
	"github.com/you/agrigo/services/marketplace-api/internal/domain"
	"github.com/you/agrigo/services/marketplace-api/internal/repository"
)

const farmerPicks = 6

var (
	fallbackRecs = []domain.Recommendation{
		{ID: "rec-1", Title: "Rent a Tractor", Score: 0.8},
		{ID: "rec-2", Title: "Bulk Seeds Discount", Score: 0.75},
		{ID: "rec-3", Title: "Nearby Storage Options", Score: 0.7},
	}
	providerRecs = []domain.Recommendation{
		{ID: "p-1", Title: "Promote Your Resources", Score: 0.9},
		{ID: "p-2", Title: "Enable Instant Booking", Score: 0.8},
		{ID: "p-3", Title: "Offer Seasonal Discounts", Score: 0.7},
	}
)

type RecommendSvc struct {
	users     *repository.UserRepo
	resources *repository.ResourceRepo
}

func NewRecommendSvc(users *repository.UserRepo, resources *repository.ResourceRepo) *RecommendSvc {
	return &RecommendSvc{users: users, resources: resources}
}

// For never fails: store errors and unknown users fall back to the generic list.
func (s *RecommendSvc) For(ctx context.Context, userID string) []domain.Recommendation {
	if userID == "" {
		return clone(fallbackRecs)
	}
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		return clone(fallbackRecs)
	}
	if u.Role == domain.RoleProvider {
		return clone(providerRecs)
	}

	top, err := s.resources.TopAvailable(ctx, farmerPicks)
	if err != nil {
		obs.LoggerFromContext(ctx).Warn().Err(err).Msg("recommendations: list resources")
		return clone(fallbackRecs)
	}
	if len(top) == 0 {
		return clone(fallbackRecs)
	}
	out := make([]domain.Recommendation, 0, len(top))
	for i, r := range top {
		out = append(out, domain.Recommendation{
			ID:    r.ID,
			Title: title(r),
			Score: math.Max(0.5, 1-float64(i)*0.1),
		})
	}
	return out
}

func title(r domain.Resource) string {
	switch {
	case r.Name != "":
		return r.Name
	case r.Type != "":
		return r.Type
	}
	return "Resource"
}

func clone(in []domain.Recommendation) []domain.Recommendation {
	return append([]domain.Recommendation(nil), in...)
}
