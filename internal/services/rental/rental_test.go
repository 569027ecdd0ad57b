package rental

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/locadora-backend/internal/models"
	"github.com/magabrotheeeer/locadora-backend/internal/rentalperiod"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateClient(ctx context.Context, client models.Client) error {
	return m.Called(ctx, client).Error(0)
}
func (m *RepoMock) GetClient(ctx context.Context, id string) (*models.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}
func (m *RepoMock) ListClients(ctx context.Context, limit, offset int) ([]*models.Client, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Client), args.Error(1)
}
func (m *RepoMock) CreateEquipment(ctx context.Context, equipment models.Equipment) error {
	return m.Called(ctx, equipment).Error(0)
}
func (m *RepoMock) GetEquipment(ctx context.Context, id string) (*models.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Equipment), args.Error(1)
}
func (m *RepoMock) ListEquipment(ctx context.Context, limit, offset int) ([]*models.Equipment, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Equipment), args.Error(1)
}
func (m *RepoMock) CreateRental(ctx context.Context, rental models.Rental) error {
	return m.Called(ctx, rental).Error(0)
}
func (m *RepoMock) ReadRental(ctx context.Context, id string) (*models.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rental), args.Error(1)
}
func (m *RepoMock) ListRentals(ctx context.Context, limit, offset int) ([]*models.Rental, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Rental), args.Error(1)
}
func (m *RepoMock) MarkReturned(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestService(repo *RepoMock, cache *CacheMock) *Service {
	return New(repo, cache, rentalperiod.New(time.UTC), newNoopLogger())
}

// полночь календарного дня в UTC, как отдаёт виджет выбора даты
func pickerMs(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).UnixMilli()
}

func TestService_QuoteRental(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	s := newTestService(repo, cache)

	repo.On("GetEquipment", mock.Anything, "e1").
		Return(&models.Equipment{ID: "e1", Name: "betoneira", DailyRateCents: 5000}, nil).Once()

	// понедельник 2025-01-06 — пятница 2025-01-10, выходные не оплачиваются
	quote, err := s.QuoteRental(context.Background(), models.DummyQuote{
		StartPickerMs: pickerMs(2025, time.January, 6),
		EndPickerMs:   pickerMs(2025, time.January, 10),
		Items: []models.DummyRentalItem{
			{EquipmentID: "e1", Quantity: 2},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 4, quote.ChargeableDays)
	assert.Equal(t, int64(4*2*5000), quote.TotalCents)
	repo.AssertExpectations(t)
}

func TestService_QuoteRental_ReversedRangeIsZero(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	s := newTestService(repo, cache)

	repo.On("GetEquipment", mock.Anything, "e1").
		Return(&models.Equipment{ID: "e1", DailyRateCents: 5000}, nil).Once()

	quote, err := s.QuoteRental(context.Background(), models.DummyQuote{
		StartPickerMs: pickerMs(2025, time.January, 10),
		EndPickerMs:   pickerMs(2025, time.January, 6),
		Items:         []models.DummyRentalItem{{EquipmentID: "e1", Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, quote.ChargeableDays)
	assert.Equal(t, int64(0), quote.TotalCents)
}

func TestService_CreateRental(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	s := newTestService(repo, cache)

	repo.On("GetClient", mock.Anything, "3b7e39b2-4f55-4f6e-9a5e-111111111111").
		Return(&models.Client{ID: "3b7e39b2-4f55-4f6e-9a5e-111111111111", Name: "Joao"}, nil).Once()
	repo.On("GetEquipment", mock.Anything, "e1").
		Return(&models.Equipment{ID: "e1", DailyRateCents: 5000}, nil).Once()
	repo.On("CreateRental", mock.Anything, mock.MatchedBy(func(r models.Rental) bool {
		return r.ChargeableDays == 4 && r.TotalCents == 20000 && len(r.Items) == 1
	})).Return(nil).Once()
	cache.On("Set", mock.Anything, mock.Anything, time.Hour).Return(nil).Once()

	rental, err := s.CreateRental(context.Background(), models.DummyRental{
		ClientID:      "3b7e39b2-4f55-4f6e-9a5e-111111111111",
		StartPickerMs: pickerMs(2025, time.January, 6),
		EndPickerMs:   pickerMs(2025, time.January, 10),
		Items:         []models.DummyRentalItem{{EquipmentID: "e1", Quantity: 1}},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, rental.ID)
	assert.Equal(t, 4, rental.ChargeableDays)
	assert.Equal(t, int64(20000), rental.TotalCents)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_CreateRental_UnknownClient(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	s := newTestService(repo, cache)

	repo.On("GetClient", mock.Anything, "missing").
		Return(nil, assert.AnError).Once()

	_, err := s.CreateRental(context.Background(), models.DummyRental{
		ClientID:      "missing",
		StartPickerMs: pickerMs(2025, time.January, 6),
		EndPickerMs:   pickerMs(2025, time.January, 10),
		Items:         []models.DummyRentalItem{{EquipmentID: "e1", Quantity: 1}},
	})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "CreateRental", mock.Anything, mock.Anything)
}

func TestService_ReadRental_CacheHit(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	s := newTestService(repo, cache)

	cached := &models.Rental{ID: "r1", ChargeableDays: 4}
	cache.On("Get", "rental:r1", mock.Anything).
		Run(func(args mock.Arguments) {
			ptr := args.Get(1).(**models.Rental)
			*ptr = cached
		}).
		Return(true, nil).Once()

	got, err := s.ReadRental(context.Background(), "r1")

	require.NoError(t, err)
	assert.Equal(t, cached, got)
	repo.AssertNotCalled(t, "ReadRental", mock.Anything, mock.Anything)
}

func TestService_ReturnRental_InvalidatesCache(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	s := newTestService(repo, cache)

	cache.On("Invalidate", "rental:r1").Return(nil).Once()
	repo.On("MarkReturned", mock.Anything, "r1").Return(1, nil).Once()

	count, err := s.ReturnRental(context.Background(), "r1")

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	cache.AssertExpectations(t)
	repo.AssertExpectations(t)
}
