package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// RefundThreshold grants RefundPercentage when the cancellation happens at
// least MinHoursBefore hours before the reservation starts
type RefundThreshold struct {
	MinHoursBefore   int
	RefundPercentage int
}

// CancellationPolicy of a studio. Thresholds are kept sorted by MinHoursBefore descending.
type CancellationPolicy struct {
	ID         int64
	StudioID   int64
	Name       string
	Thresholds []RefundThreshold
}

// NewCancellationPolicy validates and sorts thresholds
func NewCancellationPolicy(id, studioID int64, name string, thresholds []RefundThreshold) (*CancellationPolicy, error) {
	if len(thresholds) == 0 {
		return nil, fmt.Errorf("%w: at least one threshold required", ErrInvalidPolicy)
	}

	sorted := make([]RefundThreshold, len(thresholds))
	copy(sorted, thresholds)
	for _, t := range sorted {
		if t.MinHoursBefore < 0 {
			return nil, fmt.Errorf("%w: negative hours %d", ErrInvalidPolicy, t.MinHoursBefore)
		}
		if t.RefundPercentage < 0 || t.RefundPercentage > 100 {
			return nil, fmt.Errorf("%w: percentage %d out of [0,100]", ErrInvalidPolicy, t.RefundPercentage)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinHoursBefore > sorted[j].MinHoursBefore
	})

	return &CancellationPolicy{
		ID:         id,
		StudioID:   studioID,
		Name:       name,
		Thresholds: sorted,
	}, nil
}

// Snapshot returns a deep copy so later policy edits cannot affect an in-flight cancellation
func (p *CancellationPolicy) Snapshot() *CancellationPolicy {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Thresholds = append([]RefundThreshold(nil), p.Thresholds...)
	return &cp
}

// Refund is the outcome of applying a policy
type Refund struct {
	Fraction      decimal.Decimal
	PolicyMissing bool
}
