package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Room is a bookable space of a studio
type Room struct {
	ID         int64
	StudioID   int64
	OwnerID    int64 // owner of the studio
	Name       string
	HourlyRate decimal.Decimal
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
