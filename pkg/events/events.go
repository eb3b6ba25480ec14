// Package events holds the booking event contract shared by the API and the
// notification worker.
package events

import (
	"encoding/json"
	"fmt"
)

const (
	RKBookingCreated   = "booking.created"
	RKBookingConfirmed = "booking.confirmed"
	RKBookingCompleted = "booking.completed"
	RKBookingCancelled = "booking.cancelled"

	// BookingBinding matches every booking event.
	BookingBinding = "booking.*"
)

// StatusKey is the routing key for a move into status.
func StatusKey(status string) string { return "booking." + status }

type Booking struct {
	Event      string `json:"event"`
	Version    int    `json:"version"`
	OccurredAt string `json:"occurred_at"` // RFC3339
	Data       struct {
		BookingID  string `json:"booking_id"`
		FarmerID   string `json:"farmer_id"`
		ResourceID string `json:"resource_id"`
		ProviderID string `json:"provider_id,omitempty"`
		Status     string `json:"status"`
		TotalPrice string `json:"total_price"`
		StartDate  string `json:"start_date"`
		EndDate    string `json:"end_date"`
		ActorID    string `json:"actor_id,omitempty"`
	} `json:"data"`
}

func Decode[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}
