package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OccupancyStats aggregates reserved vs available time over an owner's active rooms
type OccupancyStats struct {
	OwnerID          int64
	PeriodStart      time.Time
	PeriodEnd        time.Time
	ReservedHours    decimal.Decimal
	AvailableHours   decimal.Decimal
	OccupancyRate    decimal.Decimal // percent, 2 decimals
	Revenue          decimal.Decimal
	ReservationCount int
}
