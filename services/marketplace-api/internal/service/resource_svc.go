package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/you/agrigo/pkg/apperr"
	"github.com/you/agrigo/services/marketplace-api/internal/domain"
	"github.com/you/agrigo/services/marketplace-api/internal/policy"
	"github.com/you/agrigo/services/marketplace-api/internal/repository"
)

type CreateResourceInput struct {
	Name         string              `json:"name"`
	Type         string              `json:"type"`
	Description  string              `json:"description"`
	Availability domain.Availability `json:"availability"`
	Price        *decimal.Decimal    `json:"price"`
	Location     string              `json:"location"`
}

// ResourcePatch merges only the non-nil fields.
type ResourcePatch struct {
	Name         *string              `json:"name"`
	Type         *string              `json:"type"`
	Description  *string              `json:"description"`
	Availability *domain.Availability `json:"availability"`
	Price        *decimal.Decimal     `json:"price"`
	Location     *string              `json:"location"`
}

type ResourceSvc struct {
	resources *repository.ResourceRepo
	bookings  *repository.BookingRepo
}

func NewResourceSvc(resources *repository.ResourceRepo, bookings *repository.BookingRepo) *ResourceSvc {
	return &ResourceSvc{resources: resources, bookings: bookings}
}

func (s *ResourceSvc) Create(ctx context.Context, owner policy.Actor, in CreateResourceInput) (*domain.Resource, error) {
	if err := policy.RequireRole(owner, domain.RoleProvider); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	in.Location = strings.TrimSpace(in.Location)
	if err := required(
		field{"name", in.Name != ""},
		field{"type", in.Type != ""},
		field{"price", in.Price != nil},
		field{"location", in.Location != ""},
	); err != nil {
		return nil, err
	}
	price, err := checkPrice(*in.Price)
	if err != nil {
		return nil, err
	}
	if in.Availability == "" {
		in.Availability = domain.Available
	}
	if !in.Availability.Valid() {
		return nil, invalidAvailability()
	}

	res := &domain.Resource{
		ProviderID:   owner.ID,
		Name:         in.Name,
		Type:         in.Type,
		Description:  in.Description,
		Availability: in.Availability,
		Price:        price,
		Location:     in.Location,
	}
	if err := s.resources.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func invalidAvailability() error {
	return apperr.Validationf("Invalid availability. Must be one of: %s, %s", domain.Available, domain.Unavailable)
}

func (s *ResourceSvc) List(ctx context.Context, f repository.ResourceFilter) ([]domain.Resource, error) {
	if f.Availability != "" && !f.Availability.Valid() {
		return nil, invalidAvailability()
	}
	return s.resources.List(ctx, f)
}

func (s *ResourceSvc) Get(ctx context.Context, id string) (*domain.Resource, error) {
	return s.resources.ByID(ctx, id)
}

func (s *ResourceSvc) Update(ctx context.Context, id string, actor policy.Actor, p ResourcePatch) (*domain.Resource, error) {
	cur, err := s.resources.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutateResource(actor, cur) {
		return nil, apperr.Forbiddenf("You can only update your own resources")
	}

	fields := map[string]any{}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, apperr.Validationf("name must not be empty")
		}
		fields["name"] = name
	}
	if p.Type != nil {
		typ := strings.TrimSpace(*p.Type)
		if typ == "" {
			return nil, apperr.Validationf("type must not be empty")
		}
		fields["type"] = typ
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Availability != nil {
		if !p.Availability.Valid() {
			return nil, invalidAvailability()
		}
		fields["availability"] = *p.Availability
	}
	if p.Price != nil {
		price, err := checkPrice(*p.Price)
		if err != nil {
			return nil, err
		}
		fields["price"] = price
	}
	if p.Location != nil {
		loc := strings.TrimSpace(*p.Location)
		if loc == "" {
			return nil, apperr.Validationf("location must not be empty")
		}
		fields["location"] = loc
	}
	if len(fields) == 0 {
		return nil, apperr.Validationf("No fields to update")
	}
	return s.resources.Update(ctx, id, fields)
}

// Delete is restricted while any booking still references the listing.
func (s *ResourceSvc) Delete(ctx context.Context, id string, actor policy.Actor) error {
	cur, err := s.resources.ByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanMutateResource(actor, cur) {
		return apperr.Forbiddenf("You can only delete your own resources")
	}
	n, err := s.bookings.CountByResource(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflictf("Resource has %d booking(s) and cannot be deleted", n)
	}
	return s.resources.Delete(ctx, id)
}
