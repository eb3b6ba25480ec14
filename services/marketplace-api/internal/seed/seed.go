// Package seed loads demo accounts, listings and bookings through the
// service layer, so every record passes the same validation as the API.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/you/agrigo/pkg/obs"
	"github.com/you/agrigo/services/marketplace-api/internal/domain"
	"github.com/you/agrigo/services/marketplace-api/internal/policy"
	"github.com/you/agrigo/services/marketplace-api/internal/service"
)

type demoUser struct {
	key string
	in  service.RegisterInput
}

var users = []demoUser{
	{"farmer1", service.RegisterInput{Email: "farmer1@example.com", Password: "FarmerPass123", Name: "John Smith", Role: domain.RoleFarmer}},
	{"farmer2", service.RegisterInput{Email: "farmer2@example.com", Password: "FarmerPass123", Name: "Sarah Johnson", Role: domain.RoleFarmer}},
	{"provider1", service.RegisterInput{Email: "provider1@example.com", Password: "ProviderPass123", Name: "Mike Equipment", Role: domain.RoleProvider}},
	{"provider2", service.RegisterInput{Email: "provider2@example.com", Password: "ProviderPass123", Name: "Jane Resources", Role: domain.RoleProvider}},
}

type demoResource struct {
	provider string
	in       service.CreateResourceInput
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

var resources = []demoResource{
	{"provider1", service.CreateResourceInput{Name: "Tractor Model XYZ", Type: "machinery",
		Description: "Heavy-duty tractor suitable for plowing and tilling", Price: price("50.00"), Location: "New York, USA"}},
	{"provider1", service.CreateResourceInput{Name: "Harvester Machine", Type: "machinery",
		Description: "Automated harvester for grain crops", Price: price("75.00"), Location: "Iowa, USA"}},
	{"provider2", service.CreateResourceInput{Name: "Irrigation System", Type: "equipment",
		Description: "Complete drip irrigation setup", Price: price("35.00"), Location: "California, USA"}},
	{"provider2", service.CreateResourceInput{Name: "Soil Testing Kit", Type: "tools",
		Description: "Professional soil analysis kit", Price: price("15.00"), Location: "Texas, USA"}},
	{"provider1", service.CreateResourceInput{Name: "Pesticide Sprayer", Type: "equipment",
		Description: "Commercial-grade pesticide sprayer", Price: price("25.00"), Location: "Illinois, USA"}},
}

// demoBooking books resources[resource] for days starting offset days from now.
type demoBooking struct {
	farmer   string
	resource int
	offset   int
	days     int
	qty      string
	notes    string
}

var bookings = []demoBooking{
	{"farmer1", 0, 7, 3, "1", "Spring plowing"},
	{"farmer2", 2, 14, 5, "2", "Drip lines for the east field"},
	{"farmer1", 3, 3, 1, "1", ""},
}

// Report counts what a run created and which accounts it skipped.
type Report struct {
	Users     int
	Skipped   []string
	Resources int
	Bookings  int
}

type Seeder struct {
	Auth      *service.AuthSvc
	Resources *service.ResourceSvc
	Bookings  *service.BookingSvc
	Now       func() time.Time
}

// Run creates the demo data. Accounts that already exist are skipped along
// with the listings and bookings that depend on them, so a second run is a
// no-op.
func (s *Seeder) Run(ctx context.Context) (Report, error) {
	log := obs.LoggerFromContext(ctx)
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	var rep Report

	actors := map[string]policy.Actor{}
	for _, u := range users {
		created, err := s.Auth.Register(ctx, u.in)
		if errors.Is(err, service.ErrUserExists) {
			rep.Skipped = append(rep.Skipped, u.in.Email)
			log.Warn().Str("email", u.in.Email).Msg("seed: user exists, skipping")
			continue
		}
		if err != nil {
			return rep, err
		}
		actors[u.key] = policy.Actor{ID: created.ID, Email: created.Email, Name: created.Name, Role: created.Role}
		rep.Users++
	}

	listed := map[int]*domain.Resource{}
	for i, r := range resources {
		owner, ok := actors[r.provider]
		if !ok {
			continue
		}
		res, err := s.Resources.Create(ctx, owner, r.in)
		if err != nil {
			return rep, err
		}
		listed[i] = res
		rep.Resources++
	}

	today := now().UTC()
	for _, b := range bookings {
		farmer, ok := actors[b.farmer]
		res, listedNow := listed[b.resource]
		if !ok || !listedNow {
			continue
		}
		start := today.AddDate(0, 0, b.offset)
		qty := decimal.RequireFromString(b.qty)
		_, err := s.Bookings.Create(ctx, farmer, service.CreateBookingInput{
			ResourceID: res.ID,
			StartDate:  start.Format(time.DateOnly),
			EndDate:    start.AddDate(0, 0, b.days-1).Format(time.DateOnly),
			Quantity:   &qty,
			Notes:      b.notes,
		})
		if err != nil {
			return rep, err
		}
		rep.Bookings++
	}
	log.Info().Int("users", rep.Users).Int("resources", rep.Resources).
		Int("bookings", rep.Bookings).Msg("seed complete")
	return rep, nil
}
