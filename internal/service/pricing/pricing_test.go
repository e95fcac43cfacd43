package pricing

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
	"github.com/m04kA/SMC-StudioReservations/pkg/logger"
	"github.com/m04kA/SMC-StudioReservations/pkg/ptr"
)

func at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func room(rate string) *domain.Room {
	return &domain.Room{ID: 1, HourlyRate: dec(rate), Active: true}
}

func rateRule(id int64, start, end time.Time, rate string) domain.SpecialPriceRule {
	return domain.SpecialPriceRule{
		ID:        id,
		RoomID:    1,
		Start:     start,
		End:       end,
		Rate:      ptr.Ptr(dec(rate)),
		Active:    true,
		CreatedAt: at(0, 0),
	}
}

func TestPrice_BaseRateOnly(t *testing.T) {
	q := Price(room("100"), nil, at(10, 0), at(12, 30))

	assert.Equal(t, "250.00", q.Total.StringFixed(2))
	require.Len(t, q.Segments, 1)
	assert.Nil(t, q.Segments[0].RuleID)
}

func TestPrice_MiddleHourSpecial(t *testing.T) {
	rules := []domain.SpecialPriceRule{rateRule(7, at(11, 0), at(12, 0), "150")}

	q := Price(room("100"), rules, at(10, 0), at(13, 0))

	assert.True(t, q.Total.Equal(dec("350.00")), "got %s", q.Total)
	require.Len(t, q.Segments, 3)
	assert.Equal(t, at(11, 0), q.Segments[1].Start)
	assert.Equal(t, int64(7), *q.Segments[1].RuleID)
	assert.True(t, q.Segments[1].Rate.Equal(dec("150")))
}

func TestPrice_ShortestRuleWins(t *testing.T) {
	rules := []domain.SpecialPriceRule{
		rateRule(1, at(8, 0), at(20, 0), "120"),
		rateRule(2, at(11, 0), at(12, 0), "200"),
	}

	q := Price(room("100"), rules, at(10, 0), at(13, 0))

	// 2h at 120 + 1h at 200
	assert.Equal(t, "440.00", q.Total.StringFixed(2))
	require.Len(t, q.Segments, 3)
}

func TestPrice_SameLengthLatestCreatedWins(t *testing.T) {
	older := rateRule(5, at(10, 0), at(11, 0), "150")
	newer := rateRule(3, at(10, 0), at(11, 0), "180")
	newer.CreatedAt = at(1, 0)

	q := Price(room("100"), []domain.SpecialPriceRule{older, newer}, at(10, 0), at(11, 0))
	assert.Equal(t, "180.00", q.Total.StringFixed(2))
}

func TestPrice_SameLengthSameCreatedHigherIDWins(t *testing.T) {
	a := rateRule(5, at(10, 0), at(11, 0), "150")
	b := rateRule(6, at(10, 0), at(11, 0), "170")

	q := Price(room("100"), []domain.SpecialPriceRule{b, a}, at(10, 0), at(11, 0))
	assert.Equal(t, "170.00", q.Total.StringFixed(2))
}

func TestPrice_MultiplierAndInactive(t *testing.T) {
	night := domain.SpecialPriceRule{
		ID:         1,
		Start:      at(12, 0),
		End:        at(14, 0),
		Multiplier: ptr.Ptr(dec("1.5")),
		Active:     true,
	}
	disabled := rateRule(2, at(10, 0), at(14, 0), "1")
	disabled.Active = false

	q := Price(room("80"), []domain.SpecialPriceRule{night, disabled}, at(11, 0), at(13, 0))

	// 1h at 80 + 1h at 120
	assert.Equal(t, "200.00", q.Total.StringFixed(2))
}

func TestPrice_RoundsOnceHalfUp(t *testing.T) {
	// 20 minutes at 10.01/h = 3.33666..
	q := Price(room("10.01"), nil, at(10, 0), at(10, 20))
	assert.Equal(t, "3.34", q.Total.StringFixed(2))

	// 3 x 20 minutes would round to 3 x 3.34 if rounded per segment
	rules := []domain.SpecialPriceRule{
		rateRule(1, at(10, 20), at(10, 40), "10.01"),
	}
	q = Price(room("10.01"), rules, at(10, 0), at(11, 0))
	assert.Equal(t, "10.01", q.Total.StringFixed(2))
}

func TestPrice_InvalidWindow(t *testing.T) {
	q := Price(room("100"), nil, at(11, 0), at(10, 0))
	assert.True(t, q.Total.IsZero())
	assert.Empty(t, q.Segments)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockCatalogRepository) GetSpecialPrices(ctx context.Context, roomID int64, from, to time.Time) ([]domain.SpecialPriceRule, error) {
	args := m.Called(ctx, roomID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SpecialPriceRule), args.Error(1)
}

func TestService_Quote(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("GetRoom", mock.Anything, int64(1)).Return(room("100"), nil)
	repo.On("GetSpecialPrices", mock.Anything, int64(1), at(10, 0), at(13, 0)).
		Return([]domain.SpecialPriceRule{rateRule(7, at(11, 0), at(12, 0), "150")}, nil)

	svc := NewService(repo, logger.NewWithWriter(io.Discard, "error"))

	q, err := svc.Quote(context.Background(), 1, at(10, 0), at(13, 0))
	require.NoError(t, err)
	assert.Equal(t, "350.00", q.Total.StringFixed(2))
	repo.AssertExpectations(t)
}

func TestService_Quote_Errors(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("GetRoom", mock.Anything, int64(404)).Return(nil, domain.ErrNotFound)
	repo.On("GetRoom", mock.Anything, int64(500)).Return(nil, errors.New("db down"))

	svc := NewService(repo, logger.NewWithWriter(io.Discard, "error"))

	_, err := svc.Quote(context.Background(), 404, at(10, 0), at(11, 0))
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = svc.Quote(context.Background(), 500, at(10, 0), at(11, 0))
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.Quote(context.Background(), 1, at(11, 0), at(10, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
