package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/you/agrigo/pkg/apperr"
	"github.com/you/agrigo/services/marketplace-api/internal/domain"
)

var (
	farmer   = Actor{ID: "f1", Role: domain.RoleFarmer}
	provider = Actor{ID: "p1", Role: domain.RoleProvider}
	stranger = Actor{ID: "x9", Role: domain.RoleFarmer}
	res      = &domain.Resource{ID: "r1", ProviderID: "p1"}
	booking  = &domain.Booking{ID: "b1", FarmerID: "f1", ResourceID: "r1"}
)

func TestCanMutateResource(t *testing.T) {
	assert.True(t, CanMutateResource(provider, res))
	assert.False(t, CanMutateResource(farmer, res))
	assert.False(t, CanMutateResource(Actor{}, &domain.Resource{}))
}

func TestCanActOnBooking(t *testing.T) {
	assert.True(t, CanActOnBooking(farmer, booking, res))
	assert.True(t, CanActOnBooking(provider, booking, res))
	assert.False(t, CanActOnBooking(stranger, booking, res))
	// no resource snapshot: only the farmer is known to be a party
	assert.True(t, CanActOnBooking(farmer, booking, nil))
	assert.False(t, CanActOnBooking(provider, booking, nil))
}

func TestCanCancelBookingIsFarmerOnly(t *testing.T) {
	assert.True(t, CanCancelBooking(farmer, booking))
	assert.False(t, CanCancelBooking(provider, booking))
	assert.False(t, CanCancelBooking(stranger, booking))
}

func TestRequireRole(t *testing.T) {
	assert.NoError(t, RequireRole(farmer, domain.RoleFarmer))
	assert.NoError(t, RequireRole(provider, domain.RoleFarmer, domain.RoleProvider))

	err := RequireRole(farmer, domain.RoleProvider)
	assert.True(t, apperr.Is(err, apperr.Forbidden))
	assert.Equal(t, "This action requires a resource provider account", err.Error())

	err = RequireRole(Actor{}, domain.RoleFarmer)
	assert.True(t, apperr.Is(err, apperr.Unauthorized))
}
