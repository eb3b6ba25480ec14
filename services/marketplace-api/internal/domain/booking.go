package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

var BookingStatuses = []BookingStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// transitions lists every legal edge; states without an entry are terminal.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func ParseBookingStatus(s string) (BookingStatus, bool) {
	for _, st := range BookingStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func (s BookingStatus) IsTerminal() bool { return len(transitions[s]) == 0 }

func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Booking struct {
	ID         string          `gorm:"primaryKey;size:36" json:"id"`
	FarmerID   string          `gorm:"index;size:36;not null" json:"farmer_id"`
	ResourceID string          `gorm:"index;size:36;not null" json:"resource_id"`
	StartDate  time.Time       `gorm:"not null" json:"start_date"`
	EndDate    time.Time       `gorm:"not null" json:"end_date"`
	Quantity   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"quantity"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(16,2);not null" json:"total_price"`
	Status     BookingStatus   `gorm:"index;size:16;not null" json:"status"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Resource is the joined listing snapshot.
	Resource *Resource `gorm:"foreignKey:ResourceID" json:"resources,omitempty"`
}

// BookingDays rounds the range up to whole days, never below one.
func BookingDays(start, end time.Time) int64 {
	days := int64(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

func TotalPrice(price, quantity decimal.Decimal, start, end time.Time) decimal.Decimal {
	return price.Mul(quantity).Mul(decimal.NewFromInt(BookingDays(start, end)))
}

const dateLayout = "2006-01-02"

// ParseDate accepts a calendar date or an RFC3339 timestamp and returns UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
