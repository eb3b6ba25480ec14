package service

import (
	"context"
	"time"

	"github.com/you/agrigo/pkg/events"
	"github.com/you/agrigo/pkg/obs"
	"github.com/you/agrigo/services/marketplace-api/internal/domain"
)

// EventPublisher is satisfied by *mq.Publisher.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// NopPublisher drops events; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishJSON(context.Context, string, any) error { return nil }

func bookingEvent(key string, b *domain.Booking, actorID string) events.Booking {
	ev := events.Booking{Event: key, Version: 1, OccurredAt: time.Now().UTC().Format(time.RFC3339)}
	ev.Data.BookingID = b.ID
	ev.Data.FarmerID = b.FarmerID
	ev.Data.ResourceID = b.ResourceID
	if b.Resource != nil {
		ev.Data.ProviderID = b.Resource.ProviderID
	}
	ev.Data.Status = string(b.Status)
	ev.Data.TotalPrice = b.TotalPrice.StringFixed(2)
	ev.Data.StartDate = b.StartDate.Format(time.RFC3339)
	ev.Data.EndDate = b.EndDate.Format(time.RFC3339)
	ev.Data.ActorID = actorID
	return ev
}

// publish never fails the caller: the ledger row is already committed.
func publish(ctx context.Context, pub EventPublisher, key string, b *domain.Booking, actorID string) {
	if err := pub.PublishJSON(ctx, key, bookingEvent(key, b, actorID)); err != nil {
		obs.LoggerFromContext(ctx).Warn().Err(err).
			Str("routing_key", key).
			Str("booking_id", b.ID).
			Msg("publish booking event")
	}
}
