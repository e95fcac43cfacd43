package reject_reservation

// RejectReservationRequest HTTP request model, пустая причина заменяется причиной по умолчанию
type RejectReservationRequest struct {
	Reason string `json:"reason"`
}
