package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Availability string

const (
	Available   Availability = "available"
	Unavailable Availability = "unavailable"
)

func (a Availability) Valid() bool { return a == Available || a == Unavailable }

// ResourceTypes is the catalogue offered by the listing form. Type is free text.
var ResourceTypes = []string{
	"machinery", "equipment", "tools", "seeds", "fertilizer",
	"pesticide", "storage", "transport", "labor", "consulting",
}

type Resource struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	ProviderID   string          `gorm:"index;size:36;not null" json:"provider_id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Type         string          `gorm:"index;size:64;not null" json:"type"`
	Description  string          `json:"description"`
	Availability Availability    `gorm:"index;size:16;not null" json:"availability"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Location     string          `gorm:"size:255;not null" json:"location"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
