package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/agrigo/pkg/apperr"
	"github.com/you/agrigo/services/marketplace-api/internal/domain"
	"github.com/you/agrigo/services/marketplace-api/internal/repository"
	"github.com/you/agrigo/services/marketplace-api/internal/service"
)

func TestResourceCreate(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	r := h.listing(t, providerP, "49.999")
	assert.Equal(t, domain.Available, r.Availability)
	assert.Equal(t, providerP.ID, r.ProviderID)
	assert.True(t, r.Price.Equal(decimal.NewFromInt(50)), r.Price.String())

	_, err := h.resSvc.Create(ctx, farmerF, service.CreateResourceInput{})
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	_, err = h.resSvc.Create(ctx, providerP, service.CreateResourceInput{Name: "Hoe"})
	require.True(t, apperr.Is(err, apperr.Validation))
	assert.Equal(t, "Missing required fields: type, price, location", apperr.As(err).Message)

	for _, price := range []string{"0", "-3", "1000000"} {
		_, err = h.resSvc.Create(ctx, providerP, service.CreateResourceInput{
			Name: "Hoe", Type: "tools", Location: "Kisumu", Price: dec(price),
		})
		assert.True(t, apperr.Is(err, apperr.Validation), price)
	}

	_, err = h.resSvc.Create(ctx, providerP, service.CreateResourceInput{
		Name: "Hoe", Type: "tools", Location: "Kisumu", Price: dec("3"), Availability: "sometimes",
	})
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestResourcePriceRoundsBeforeValidation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	r := h.listing(t, providerP, "10")

	for _, price := range []string{"0.001", "0.004"} {
		_, err := h.resSvc.Create(ctx, providerP, service.CreateResourceInput{
			Name: "Hoe", Type: "tools", Location: "Kisumu", Price: dec(price),
		})
		require.True(t, apperr.Is(err, apperr.Validation), price)
		assert.Equal(t, "price must be greater than 0", apperr.As(err).Message)

		_, err = h.resSvc.Update(ctx, r.ID, providerP, service.ResourcePatch{Price: dec(price)})
		require.True(t, apperr.Is(err, apperr.Validation), price)
	}

	got, err := h.resSvc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(10)), got.Price.String())

	cheap := h.listing(t, providerP, "0.005")
	assert.Equal(t, "0.01", cheap.Price.StringFixed(2))
}

func TestResourceUpdateOnlyByOwner(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	r := h.listing(t, providerP, "50")
	name := "Big tractor"

	for _, who := range []struct {
		actor string
		ok    bool
	}{{providerP.ID, true}, {"provider-q", false}, {farmerF.ID, false}} {
		a := actor(who.actor, domain.RoleProvider)
		_, err := h.resSvc.Update(ctx, r.ID, a, service.ResourcePatch{Name: &name})
		if who.ok {
			assert.NoError(t, err)
		} else {
			assert.True(t, apperr.Is(err, apperr.Forbidden), who.actor)
		}
	}
}

func TestResourceUpdatePatch(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	r := h.listing(t, providerP, "50")

	_, err := h.resSvc.Update(ctx, r.ID, providerP, service.ResourcePatch{})
	require.True(t, apperr.Is(err, apperr.Validation))
	assert.Equal(t, "No fields to update", apperr.As(err).Message)

	_, err = h.resSvc.Update(ctx, "missing", providerP, service.ResourcePatch{})
	assert.True(t, apperr.Is(err, apperr.NotFound))

	off := domain.Unavailable
	got, err := h.resSvc.Update(ctx, r.ID, providerP, service.ResourcePatch{Availability: &off, Price: dec("75.5")})
	require.NoError(t, err)
	assert.Equal(t, domain.Unavailable, got.Availability)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("75.5")))
	assert.Equal(t, "Tractor", got.Name)
	assert.Equal(t, "Nakuru", got.Location)

	blank := "  "
	_, err = h.resSvc.Update(ctx, r.ID, providerP, service.ResourcePatch{Location: &blank})
	assert.True(t, apperr.Is(err, apperr.Validation))
	_, err = h.resSvc.Update(ctx, r.ID, providerP, service.ResourcePatch{Price: dec("0")})
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestResourceDeleteRestrictedByBookings(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	booked := h.listing(t, providerP, "10")
	free := h.listing(t, providerP, "10")
	h.book(t, farmerF, booked.ID, "2024-03-01", "2024-03-02", "1")

	err := h.resSvc.Delete(ctx, free.ID, actor("provider-q", domain.RoleProvider))
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	err = h.resSvc.Delete(ctx, booked.ID, providerP)
	assert.True(t, apperr.Is(err, apperr.Conflict), "got %v", err)

	require.NoError(t, h.resSvc.Delete(ctx, free.ID, providerP))
	_, err = h.resSvc.Get(ctx, free.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestResourceListFilters(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.listing(t, providerP, "10")
	h.listing(t, actor("provider-q", domain.RoleProvider), "20")

	all, err := h.resSvc.List(ctx, repository.ResourceFilter{Location: "nak"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := h.resSvc.List(ctx, repository.ResourceFilter{ProviderID: providerP.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = h.resSvc.List(ctx, repository.ResourceFilter{Availability: "maybe"})
	assert.True(t, apperr.Is(err, apperr.Validation))
}
