package get_occupancy_stats

import (
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// OccupancyStatsResponse HTTP response model
type OccupancyStatsResponse struct {
	OwnerID          int64  `json:"ownerId"`
	PeriodStart      string `json:"periodStart"`
	PeriodEnd        string `json:"periodEnd"`
	ReservedHours    string `json:"reservedHours"`
	AvailableHours   string `json:"availableHours"`
	OccupancyRate    string `json:"occupancyRate"`
	Revenue          string `json:"revenue"`
	ReservationCount int    `json:"reservationCount"`
}

func FromDomain(s *domain.OccupancyStats) *OccupancyStatsResponse {
	return &OccupancyStatsResponse{
		OwnerID:          s.OwnerID,
		PeriodStart:      s.PeriodStart.Format(time.RFC3339),
		PeriodEnd:        s.PeriodEnd.Format(time.RFC3339),
		ReservedHours:    s.ReservedHours.StringFixed(2),
		AvailableHours:   s.AvailableHours.StringFixed(2),
		OccupancyRate:    s.OccupancyRate.StringFixed(2),
		Revenue:          s.Revenue.StringFixed(2),
		ReservationCount: s.ReservationCount,
	}
}
