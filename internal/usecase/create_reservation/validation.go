package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	if !req.Start.Before(req.End) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidInterval)
	}

	if req.End.Sub(req.Start) > domain.MaxReservationLength {
		return fmt.Errorf("%w: reservation longer than %s", ErrInvalidInput, domain.MaxReservationLength)
	}

	for name, v := range map[string]*string{"notes": req.Notes, "artistName": req.ArtistName, "instruments": req.Instruments} {
		if v != nil && len(*v) > domain.MaxNotesLength {
			return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidInput, name, domain.MaxNotesLength)
		}
	}

	return nil
}

// validateNotInPast проверяет, что бронирование начинается не раньше текущего момента
func validateNotInPast(start, now time.Time) error {
	if start.Before(now) {
		return ErrStartInPast
	}
	return nil
}
