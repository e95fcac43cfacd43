package get_price_quote

import (
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// SegmentResponse часть окна с одной ставкой
type SegmentResponse struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Rate   string `json:"rate"`
	RuleID *int64 `json:"ruleId,omitempty"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	RoomID   int64             `json:"roomId"`
	Total    string            `json:"total"`
	Segments []SegmentResponse `json:"segments"`
}

func FromQuote(roomID int64, q *domain.Quote) *QuoteResponse {
	resp := &QuoteResponse{
		RoomID:   roomID,
		Total:    q.Total.StringFixed(2),
		Segments: make([]SegmentResponse, 0, len(q.Segments)),
	}
	for _, s := range q.Segments {
		resp.Segments = append(resp.Segments, SegmentResponse{
			Start:  s.Start.Format(time.RFC3339),
			End:    s.End.Format(time.RFC3339),
			Rate:   s.Rate.StringFixed(2),
			RuleID: s.RuleID,
		})
	}
	return resp
}
