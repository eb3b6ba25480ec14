package worker

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/you/agrigo/pkg/events"
	"github.com/you/agrigo/pkg/obs"
	"github.com/you/agrigo/services/notification-service/internal/notifier"
)

// Acknowledger is the part of amqp.Delivery the worker settles through.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type Worker struct {
	notifier notifier.Notifier
}

func New(n notifier.Notifier) *Worker {
	return &Worker{notifier: n}
}

// Run settles deliveries until ctx ends or the channel closes. Undecodable
// payloads are rejected without requeue so they land in the DLQ.
func (w *Worker) Run(ctx context.Context, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.settle(ctx, d, d.RoutingKey, d.Body)
		}
	}
}

func (w *Worker) settle(ctx context.Context, ack Acknowledger, key string, body []byte) {
	logger := obs.LoggerFromContext(ctx)
	if err := w.Handle(ctx, key, body); err != nil {
		logger.Warn().Err(err).Str("routing_key", key).Msg("notify failed, dead-lettering")
		_ = ack.Nack(false, false)
		return
	}
	_ = ack.Ack(false)
}

func (w *Worker) Handle(ctx context.Context, key string, body []byte) error {
	switch key {
	case events.RKBookingCreated:
		ev, err := events.Decode[events.Booking](body)
		if err != nil {
			return err
		}
		return w.notifier.Notify(ctx, "Booking Created",
			fmt.Sprintf("Booking %s for resource %s, %s, total %s.",
				ev.Data.BookingID, ev.Data.ResourceID,
				notifier.HumanDateRange(ev.Data.StartDate, ev.Data.EndDate), ev.Data.TotalPrice))

	case events.RKBookingConfirmed, events.RKBookingCompleted, events.RKBookingCancelled:
		ev, err := events.Decode[events.Booking](body)
		if err != nil {
			return err
		}
		return w.notifier.Notify(ctx, subjects[key],
			fmt.Sprintf("Booking %s is now %s.", ev.Data.BookingID, ev.Data.Status))

	default:
		obs.LoggerFromContext(ctx).Debug().Str("routing_key", key).Msg("skip unknown key")
	}
	return nil
}

var subjects = map[string]string{
	events.RKBookingConfirmed: "Booking Confirmed",
	events.RKBookingCompleted: "Booking Completed",
	events.RKBookingCancelled: "Booking Cancelled",
}
