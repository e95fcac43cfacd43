package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
	"github.com/m04kA/SMC-StudioReservations/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-StudioReservations/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	RoomID      int64   `json:"roomId"`
	Start       string  `json:"start"` // RFC 3339
	End         string  `json:"end"`   // RFC 3339
	Notes       *string `json:"notes,omitempty"`
	ArtistName  *string `json:"artistName,omitempty"`
	Instruments *string `json:"instruments,omitempty"`
}

// PriceSegmentResponse часть стоимости по одному тарифу
type PriceSegmentResponse struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Rate   string `json:"rate"`
	RuleID *int64 `json:"ruleId,omitempty"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	models.ReservationResponse
	Segments []PriceSegmentResponse `json:"segments"`
}

// SlotResponse свободное окно
type SlotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(customerID int64) (*createReservation.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		RoomID:      r.RoomID,
		CustomerID:  customerID,
		Start:       start,
		End:         end,
		Notes:       r.Notes,
		ArtistName:  r.ArtistName,
		Instruments: r.Instruments,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *CreateReservationResponse {
	out := &CreateReservationResponse{
		ReservationResponse: *models.FromDomainReservation(resp.Reservation),
		Segments:            make([]PriceSegmentResponse, 0, len(resp.Segments)),
	}
	for _, s := range resp.Segments {
		out.Segments = append(out.Segments, PriceSegmentResponse{
			Start:  s.Start.Format(time.RFC3339),
			End:    s.End.Format(time.RFC3339),
			Rate:   s.Rate.StringFixed(2),
			RuleID: s.RuleID,
		})
	}
	return out
}

// FromSlots конвертирует свободные окна в HTTP модель
func FromSlots(slots []domain.Interval) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{
			Start: s.Start.Format(time.RFC3339),
			End:   s.End.Format(time.RFC3339),
		})
	}
	return out
}
