package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// TransitionResult результат перехода статуса
// Changed=false означает, что бронирование уже было в целевом состоянии либо переход не требовался
type TransitionResult struct {
	Reservation    *domain.Reservation
	PreviousStatus domain.ReservationStatus
	Changed        bool
}

// CancelResult результат отмены с расчётом возврата
type CancelResult struct {
	TransitionResult
	RefundFraction decimal.Decimal
	RefundAmount   decimal.Decimal
	PolicyMissing  bool
}

// ListByRoomRequest запрос на получение бронирований комнаты
type ListByRoomRequest struct {
	RoomID     int64
	From       *time.Time
	To         *time.Time
	ActiveOnly bool
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID          int64   `json:"id"`
	RoomID      int64   `json:"roomId"`
	StudioID    int64   `json:"studioId"`
	CustomerID  int64   `json:"customerId"`
	Start       string  `json:"start"` // RFC 3339
	End         string  `json:"end"`
	Status      string  `json:"status"`
	TotalPrice  string  `json:"totalPrice"` // "350.00"
	Notes       *string `json:"notes,omitempty"`
	ArtistName  *string `json:"artistName,omitempty"`
	Instruments *string `json:"instruments,omitempty"`
	ConfirmedBy *string `json:"confirmedBy,omitempty"`

	CancelReason *string `json:"cancelReason,omitempty"`
	CancelledAt  *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// TransitionResponse ответ на смену статуса
type TransitionResponse struct {
	Reservation    ReservationResponse `json:"reservation"`
	PreviousStatus string              `json:"previousStatus"`
	Changed        bool                `json:"changed"`
}

// CancelResponse ответ на отмену бронирования
type CancelResponse struct {
	TransitionResponse
	RefundFraction string `json:"refundFraction"`
	RefundAmount   string `json:"refundAmount"`
	PolicyMissing  bool   `json:"policyMissing"`
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:           r.ID,
		RoomID:       r.RoomID,
		StudioID:     r.StudioID,
		CustomerID:   r.CustomerID,
		Start:        r.Start.Format(time.RFC3339),
		End:          r.End.Format(time.RFC3339),
		Status:       string(r.Status),
		TotalPrice:   r.TotalPrice.StringFixed(2),
		Notes:        r.Notes,
		ArtistName:   r.ArtistName,
		Instruments:  r.Instruments,
		ConfirmedBy:  r.ConfirmedBy,
		CancelReason: r.CancelReason,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
	}
	for _, r := range list {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}
	return resp
}

// FromTransitionResult конвертирует результат перехода в DTO
func FromTransitionResult(res *TransitionResult) *TransitionResponse {
	return &TransitionResponse{
		Reservation:    *FromDomainReservation(res.Reservation),
		PreviousStatus: string(res.PreviousStatus),
		Changed:        res.Changed,
	}
}

// FromCancelResult конвертирует результат отмены в DTO
func FromCancelResult(res *CancelResult) *CancelResponse {
	return &CancelResponse{
		TransitionResponse: *FromTransitionResult(&res.TransitionResult),
		RefundFraction:     res.RefundFraction.String(),
		RefundAmount:       res.RefundAmount.StringFixed(2),
		PolicyMissing:      res.PolicyMissing,
	}
}
