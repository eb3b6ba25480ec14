package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/agrigo/pkg/events"
)

type notice struct{ subject, message string }

type fakeNotifier struct {
	got []notice
	err error
}

func (f *fakeNotifier) Notify(_ context.Context, subject, message string) error {
	f.got = append(f.got, notice{subject, message})
	return f.err
}

type fakeAck struct{ acked, nacked, requeued bool }

func (a *fakeAck) Ack(bool) error {
	a.acked = true
	return nil
}

func (a *fakeAck) Nack(_, requeue bool) error {
	a.nacked, a.requeued = true, requeue
	return nil
}

func payload(t *testing.T, key, status string) []byte {
	t.Helper()
	ev := events.Booking{Event: key, Version: 1}
	ev.Data.BookingID = "b1"
	ev.Data.ResourceID = "r1"
	ev.Data.Status = status
	ev.Data.TotalPrice = "75.00"
	ev.Data.StartDate = "2024-03-01T00:00:00Z"
	ev.Data.EndDate = "2024-03-04T00:00:00Z"
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return b
}

func TestHandleBookingEvents(t *testing.T) {
	n := &fakeNotifier{}
	w := New(n)
	ctx := context.Background()

	require.NoError(t, w.Handle(ctx, events.RKBookingCreated, payload(t, events.RKBookingCreated, "pending")))
	require.NoError(t, w.Handle(ctx, events.RKBookingConfirmed, payload(t, events.RKBookingConfirmed, "confirmed")))
	require.NoError(t, w.Handle(ctx, "booking.archived", []byte("{}")))

	require.Len(t, n.got, 2)
	assert.Equal(t, "Booking Created", n.got[0].subject)
	assert.Equal(t, "Booking b1 for resource r1, 2024-03-01 to 2024-03-04, total 75.00.", n.got[0].message)
	assert.Equal(t, "Booking Confirmed", n.got[1].subject)
	assert.Equal(t, "Booking b1 is now confirmed.", n.got[1].message)
}

func TestSettle(t *testing.T) {
	ctx := context.Background()

	ok := &fakeAck{}
	New(&fakeNotifier{}).settle(ctx, ok, events.RKBookingCancelled, payload(t, events.RKBookingCancelled, "cancelled"))
	assert.True(t, ok.acked)
	assert.False(t, ok.nacked)

	bad := &fakeAck{}
	New(&fakeNotifier{}).settle(ctx, bad, events.RKBookingCreated, []byte("not json"))
	assert.True(t, bad.nacked)
	assert.False(t, bad.requeued)

	failing := &fakeAck{}
	New(&fakeNotifier{err: errors.New("smtp down")}).settle(ctx, failing, events.RKBookingCompleted, payload(t, events.RKBookingCompleted, "completed"))
	assert.True(t, failing.nacked)
}
