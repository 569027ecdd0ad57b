package entitlement

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type StoreMock struct{ mock.Mock }

func (m *StoreMock) Products(ctx context.Context) ([]Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *StoreMock) Purchase(ctx context.Context, planID string) (*SubscriptionInfo, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SubscriptionInfo), args.Error(1)
}

func (m *StoreMock) Restore(ctx context.Context) (*SubscriptionInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SubscriptionInfo), args.Error(1)
}

func (m *StoreMock) Entitlement(ctx context.Context) (*SubscriptionInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SubscriptionInfo), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestReconciler_FreshStateIsNotPremium(t *testing.T) {
	store := new(StoreMock)
	r := NewReconciler(store, nil, newNoopLogger())

	assert.False(t, r.IsPremium())
	assert.Equal(t, SubscriptionInfo{}, r.Info())
}

func TestReconciler_PurchaseSuccessUpdatesStateAndStream(t *testing.T) {
	store := new(StoreMock)
	expiration := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	confirmed := &SubscriptionInfo{
		IsActive:       true,
		ProductID:      "locadora_premium_anual",
		ExpirationDate: &expiration,
		WillRenew:      true,
	}
	store.On("Purchase", mock.Anything, "anual").Return(confirmed, nil).Once()

	r := NewReconciler(store, nil, newNoopLogger())

	updates, cancel := r.Subscribe()
	defer cancel()
	// первое значение — воспроизведённое текущее состояние
	first := <-updates
	assert.False(t, first.IsActive)

	outcome := r.Purchase(context.Background(), "anual")

	require.Equal(t, OutcomeSuccess, outcome.Status)
	require.NotNil(t, outcome.Info)
	assert.True(t, outcome.Info.IsActive)
	assert.Equal(t, "locadora_premium_anual", outcome.Info.ProductID)
	assert.True(t, expiration.Equal(*outcome.Info.ExpirationDate))

	assert.True(t, r.IsPremium())
	assert.Equal(t, "locadora_premium_anual", r.Info().ProductID)

	pushed := <-updates
	assert.True(t, pushed.IsActive)
	assert.Equal(t, "locadora_premium_anual", pushed.ProductID)

	store.AssertExpectations(t)
}

func TestReconciler_PurchaseCancelledLeavesStateUntouched(t *testing.T) {
	store := new(StoreMock)
	store.On("Purchase", mock.Anything, "mensal").Return(nil, ErrCancelled).Once()

	r := NewReconciler(store, nil, newNoopLogger())
	before := r.Info()

	outcome := r.Purchase(context.Background(), "mensal")

	assert.Equal(t, OutcomeCancelled, outcome.Status)
	assert.Equal(t, before, r.Info())
	assert.False(t, r.IsPremium())
	store.AssertExpectations(t)
}

func TestReconciler_PurchaseErrorIsClassified(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode PurchaseErrorCode
	}{
		{
			name:     "typed store error keeps its code",
			err:      &StoreError{Code: CodePaymentDeclined, Message: "card rejected"},
			wantCode: CodePaymentDeclined,
		},
		{
			name:     "raw network error text",
			err:      errors.New("dial tcp: connection refused"),
			wantCode: CodeNetworkError,
		},
		{
			name:     "unclassifiable error",
			err:      errors.New("weird backend reply"),
			wantCode: CodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(StoreMock)
			store.On("Purchase", mock.Anything, "anual").Return(nil, tt.err).Once()

			r := NewReconciler(store, nil, newNoopLogger())
			outcome := r.Purchase(context.Background(), "anual")

			assert.Equal(t, OutcomeError, outcome.Status)
			assert.Equal(t, tt.wantCode, outcome.ErrorCode)
			assert.False(t, r.IsPremium())
			store.AssertExpectations(t)
		})
	}
}

func TestReconciler_ConcurrentPurchaseSharesOneFlight(t *testing.T) {
	store := new(StoreMock)
	release := make(chan struct{})
	confirmed := &SubscriptionInfo{IsActive: true, ProductID: "locadora_premium_anual"}

	store.On("Purchase", mock.Anything, "anual").
		Run(func(_ mock.Arguments) { <-release }).
		Return(confirmed, nil).
		Once()

	r := NewReconciler(store, nil, newNoopLogger())

	const callers = 5
	var wg sync.WaitGroup
	outcomes := make([]PurchaseOutcome, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = r.Purchase(context.Background(), "anual")
		}()
	}

	// даём всем вызовам встать в очередь на общий полёт
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := range callers {
		assert.Equal(t, OutcomeSuccess, outcomes[i].Status, "caller %d", i)
	}
	// магазин получил ровно одну транзакцию
	store.AssertNumberOfCalls(t, "Purchase", 1)
}

func TestReconciler_RestoreNoPurchases(t *testing.T) {
	store := new(StoreMock)
	store.On("Restore", mock.Anything).Return(nil, ErrNoPurchases).Once()

	r := NewReconciler(store, nil, newNoopLogger())
	before := r.Info()

	outcome := r.Restore(context.Background())

	assert.Equal(t, OutcomeNoPurchases, outcome.Status)
	assert.Equal(t, before, r.Info())
	store.AssertExpectations(t)
}

func TestReconciler_RestoreSuccessReplacesState(t *testing.T) {
	store := new(StoreMock)
	restored := &SubscriptionInfo{IsActive: true, ProductID: "locadora_premium_mensal"}
	store.On("Restore", mock.Anything).Return(restored, nil).Once()

	r := NewReconciler(store, nil, newNoopLogger())
	outcome := r.Restore(context.Background())

	require.Equal(t, OutcomeSuccess, outcome.Status)
	assert.True(t, r.IsPremium())
	assert.Equal(t, "locadora_premium_mensal", r.Info().ProductID)
	store.AssertExpectations(t)
}

func TestReconciler_SyncFailureKeepsKnownGoodState(t *testing.T) {
	store := new(StoreMock)
	confirmed := &SubscriptionInfo{IsActive: true, ProductID: "locadora_premium_anual"}
	store.On("Purchase", mock.Anything, "anual").Return(confirmed, nil).Once()
	store.On("Entitlement", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	r := NewReconciler(store, nil, newNoopLogger())
	require.Equal(t, OutcomeSuccess, r.Purchase(context.Background(), "anual").Status)

	err := r.Sync(context.Background())

	assert.Error(t, err)
	assert.True(t, r.IsPremium())
	assert.Equal(t, "locadora_premium_anual", r.Info().ProductID)
	store.AssertExpectations(t)
}

func TestReconciler_SyncSuccessReplacesState(t *testing.T) {
	store := new(StoreMock)
	authoritative := &SubscriptionInfo{IsActive: false, ProductID: "locadora_premium_anual"}
	store.On("Entitlement", mock.Anything).Return(authoritative, nil).Once()

	r := NewReconciler(store, nil, newNoopLogger())
	require.NoError(t, r.Sync(context.Background()))

	assert.False(t, r.IsPremium())
	assert.Equal(t, "locadora_premium_anual", r.Info().ProductID)
	store.AssertExpectations(t)
}

func TestReconciler_TrialCountsAsPremium(t *testing.T) {
	store := new(StoreMock)
	trialEnd := time.Now().AddDate(0, 0, 7)
	store.On("Entitlement", mock.Anything).
		Return(&SubscriptionInfo{IsInTrial: true, TrialEndDate: &trialEnd}, nil).Once()

	r := NewReconciler(store, nil, newNoopLogger())
	require.NoError(t, r.Sync(context.Background()))

	assert.True(t, r.IsPremium())
}

func TestReconciler_ApplyRemoteNotifiesSubscribers(t *testing.T) {
	store := new(StoreMock)
	r := NewReconciler(store, nil, newNoopLogger())

	updates, cancel := r.Subscribe()
	defer cancel()
	<-updates // текущее значение при подписке

	r.ApplyRemote(SubscriptionInfo{IsActive: true, ProductID: "locadora_premium_mensal"})

	got := <-updates
	assert.True(t, got.IsActive)
	assert.Equal(t, "locadora_premium_mensal", got.ProductID)
	assert.True(t, r.IsPremium())
}

func TestReconciler_SubscriberSeesOnlyLatestValue(t *testing.T) {
	store := new(StoreMock)
	r := NewReconciler(store, nil, newNoopLogger())

	updates, cancel := r.Subscribe()
	defer cancel()
	<-updates

	r.ApplyRemote(SubscriptionInfo{IsActive: true, ProductID: "first"})
	r.ApplyRemote(SubscriptionInfo{IsActive: true, ProductID: "second"})

	got := <-updates
	assert.Equal(t, "second", got.ProductID)
}

func TestReconciler_ProductsCachedPerSession(t *testing.T) {
	store := new(StoreMock)
	catalog := []Product{
		{ID: "locadora_premium_mensal", DisplayPrice: "R$ 9,90", PriceMicros: 9_900_000, CurrencyCode: "BRL"},
		{ID: "locadora_premium_anual", DisplayPrice: "R$ 99,90", PriceMicros: 99_900_000, CurrencyCode: "BRL", HasFreeTrial: true, FreeTrialPeriod: "P7D"},
	}
	store.On("Products", mock.Anything).Return(catalog, nil).Once()

	r := NewReconciler(store, nil, newNoopLogger())

	first, err := r.Products(context.Background())
	require.NoError(t, err)
	second, err := r.Products(context.Background())
	require.NoError(t, err)

	assert.Equal(t, catalog, first)
	assert.Equal(t, catalog, second)
	store.AssertNumberOfCalls(t, "Products", 1)
}

func TestReconciler_ProductsError(t *testing.T) {
	store := new(StoreMock)
	store.On("Products", mock.Anything).
		Return(nil, &StoreError{Code: CodeNetworkError, Message: "connection reset"}).Once()

	r := NewReconciler(store, nil, newNoopLogger())
	_, err := r.Products(context.Background())

	require.Error(t, err)
	assert.Equal(t, CodeNetworkError, Classify(err))
}
