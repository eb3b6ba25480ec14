// Package policy holds the access rules for listings and bookings.
// Everything here is a pure function of its arguments.
package policy

import (
	"github.com/you/agrigo/pkg/apperr"
	"github.com/you/agrigo/services/marketplace-api/internal/domain"
)

// Actor is the authenticated caller. The zero value is anonymous.
type Actor struct {
	ID    string
	Email string
	Name  string
	Role  domain.Role
}

func (a Actor) Anonymous() bool { return a.ID == "" }

func CanMutateResource(actor Actor, r *domain.Resource) bool {
	return !actor.Anonymous() && r != nil && actor.ID == r.ProviderID
}

// CanActOnBooking admits the booking's farmer and the provider of its resource.
func CanActOnBooking(actor Actor, b *domain.Booking, r *domain.Resource) bool {
	if actor.Anonymous() || b == nil {
		return false
	}
	if actor.ID == b.FarmerID {
		return true
	}
	return r != nil && actor.ID == r.ProviderID
}

func CanCancelBooking(actor Actor, b *domain.Booking) bool {
	return !actor.Anonymous() && b != nil && actor.ID == b.FarmerID
}

// RequireRole fails with Unauthorized for anonymous callers and Forbidden for
// callers holding none of roles.
func RequireRole(actor Actor, roles ...domain.Role) error {
	if actor.Anonymous() {
		return apperr.Unauthorizedf("Unauthorized")
	}
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}
	if len(roles) == 1 {
		switch roles[0] {
		case domain.RoleFarmer:
			return apperr.Forbiddenf("This action requires a farmer account")
		case domain.RoleProvider:
			return apperr.Forbiddenf("This action requires a resource provider account")
		}
	}
	return apperr.Forbiddenf("Access forbidden")
}
