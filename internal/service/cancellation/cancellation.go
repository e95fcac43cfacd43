package cancellation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// RefundFraction picks the first threshold, in descending MinHoursBefore order,
// that the time left before start satisfies. A nil policy yields 0 with
// PolicyMissing set. A start already in the past yields 0.
func RefundFraction(policy *domain.CancellationPolicy, now, start time.Time) domain.Refund {
	if policy == nil {
		return domain.Refund{Fraction: decimal.Zero, PolicyMissing: true}
	}

	hoursUntilStart := start.Sub(now).Hours()
	if hoursUntilStart < 0 {
		return domain.Refund{Fraction: decimal.Zero}
	}

	for _, t := range policy.Thresholds {
		if float64(t.MinHoursBefore) <= hoursUntilStart {
			return domain.Refund{
				Fraction: decimal.NewFromInt(int64(t.RefundPercentage)).Div(hundred),
			}
		}
	}

	return domain.Refund{Fraction: decimal.Zero}
}

// RefundAmount applies the fraction to the paid total, rounded half-up to cents
func RefundAmount(total decimal.Decimal, refund domain.Refund) decimal.Decimal {
	return total.Mul(refund.Fraction).Round(2)
}
