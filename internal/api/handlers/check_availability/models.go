package check_availability

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	RoomID    int64 `json:"roomId"`
	Open      bool  `json:"open"`
	Conflict  bool  `json:"conflict"`
	Available bool  `json:"available"`
}
