package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/you/agrigo/pkg/apperr"
	"github.com/you/agrigo/pkg/events"
	"github.com/you/agrigo/pkg/obs"
	"github.com/you/agrigo/services/marketplace-api/internal/chatstore"
	"github.com/you/agrigo/services/marketplace-api/internal/domain"
	"github.com/you/agrigo/services/marketplace-api/internal/policy"
	"github.com/you/agrigo/services/marketplace-api/internal/repository"
)

type CreateBookingInput struct {
	ResourceID string           `json:"resource_id"`
	StartDate  string           `json:"start_date"`
	EndDate    string           `json:"end_date"`
	Quantity   *decimal.Decimal `json:"quantity"`
	Notes      string           `json:"notes"`
}

type BookingSvc struct {
	bookings  *repository.BookingRepo
	resources *repository.ResourceRepo
	threads   *chatstore.BoltStore
	pub       EventPublisher
}

func NewBookingSvc(bookings *repository.BookingRepo, resources *repository.ResourceRepo, threads *chatstore.BoltStore, pub EventPublisher) *BookingSvc {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &BookingSvc{bookings: bookings, resources: resources, threads: threads, pub: pub}
}

func (s *BookingSvc) Create(ctx context.Context, farmer policy.Actor, in CreateBookingInput) (*domain.Booking, error) {
	if err := policy.RequireRole(farmer, domain.RoleFarmer); err != nil {
		return nil, err
	}
	in.ResourceID = strings.TrimSpace(in.ResourceID)
	if err := required(
		field{"resource_id", in.ResourceID != ""},
		field{"start_date", in.StartDate != ""},
		field{"end_date", in.EndDate != ""},
		field{"quantity", in.Quantity != nil},
	); err != nil {
		return nil, err
	}
	start, err := domain.ParseDate(in.StartDate)
	if err != nil {
		return nil, apperr.Validationf("Invalid start_date")
	}
	end, err := domain.ParseDate(in.EndDate)
	if err != nil {
		return nil, apperr.Validationf("Invalid end_date")
	}
	if end.Before(start) {
		return nil, apperr.Validationf("end_date must not be before start_date")
	}
	qty, err := checkQuantity(*in.Quantity)
	if err != nil {
		return nil, err
	}

	res, err := s.resources.ByID(ctx, in.ResourceID)
	if err != nil {
		return nil, err
	}
	if res.Availability != domain.Available {
		return nil, apperr.Validationf("Resource is not available for booking")
	}

	b := &domain.Booking{
		FarmerID:   farmer.ID,
		ResourceID: res.ID,
		StartDate:  start,
		EndDate:    end,
		Quantity:   qty,
		TotalPrice: domain.TotalPrice(res.Price, qty, start, end).Round(2),
		Status:     domain.StatusPending,
		Notes:      in.Notes,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	b.Resource = res
	publish(ctx, s.pub, events.RKBookingCreated, b, farmer.ID)
	return b, nil
}

// Get returns the booking only to its farmer or the listing's provider.
func (s *BookingSvc) Get(ctx context.Context, id string, actor policy.Actor) (*domain.Booking, error) {
	b, err := s.bookings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanActOnBooking(actor, b, b.Resource) {
		return nil, apperr.Forbiddenf("Access forbidden")
	}
	return b, nil
}

func (s *BookingSvc) ListForFarmer(ctx context.Context, farmerID string) ([]domain.Booking, error) {
	return s.bookings.ListByFarmer(ctx, farmerID)
}

func (s *BookingSvc) ListForProvider(ctx context.Context, providerID string) ([]domain.Booking, error) {
	return s.bookings.ListByProvider(ctx, providerID)
}

// ListMine picks the farmer or provider view from the caller's role.
func (s *BookingSvc) ListMine(ctx context.Context, actor policy.Actor) ([]domain.Booking, error) {
	if err := policy.RequireRole(actor, domain.RoleFarmer, domain.RoleProvider); err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleProvider {
		return s.ListForProvider(ctx, actor.ID)
	}
	return s.ListForFarmer(ctx, actor.ID)
}

func (s *BookingSvc) UpdateStatus(ctx context.Context, id string, actor policy.Actor, status string) (*domain.Booking, error) {
	if status == "" {
		return nil, apperr.Validationf("Status is required")
	}
	to, ok := domain.ParseBookingStatus(status)
	if !ok {
		return nil, apperr.Validationf("Invalid status. Must be one of: pending, confirmed, completed, cancelled")
	}
	b, err := s.bookings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanActOnBooking(actor, b, b.Resource) {
		return nil, apperr.Forbiddenf("You do not have permission to update this booking")
	}
	return s.transition(ctx, b, to, actor)
}

// Cancel is the farmer-only path to cancelled.
func (s *BookingSvc) Cancel(ctx context.Context, id string, actor policy.Actor) (*domain.Booking, error) {
	b, err := s.bookings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanCancelBooking(actor, b) {
		return nil, apperr.Forbiddenf("You can only cancel your own bookings")
	}
	return s.transition(ctx, b, domain.StatusCancelled, actor)
}

func (s *BookingSvc) transition(ctx context.Context, b *domain.Booking, to domain.BookingStatus, actor policy.Actor) (*domain.Booking, error) {
	if !domain.CanTransition(b.Status, to) {
		return nil, apperr.Transitionf("Cannot change booking status from %s to %s", b.Status, to)
	}
	updated, err := s.bookings.CompareAndSetStatus(ctx, b.ID, b.Status, to)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.pub, events.StatusKey(string(to)), updated, actor.ID)
	return updated, nil
}

// Delete removes the ledger row and its chat thread. Administrative only.
func (s *BookingSvc) Delete(ctx context.Context, id string) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}
	if s.threads == nil {
		return nil
	}
	if err := s.threads.DeleteThread(id); err != nil {
		obs.LoggerFromContext(ctx).Warn().Err(err).Str("booking_id", id).Msg("delete chat thread")
	}
	return nil
}
