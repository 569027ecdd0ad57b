package events

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/locadora-backend/internal/entitlement"
)

type applierStub struct {
	applied []entitlement.SubscriptionInfo
}

func (a *applierStub) ApplyRemote(info entitlement.SubscriptionInfo) {
	a.applied = append(a.applied, info)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestConsumer_HandleMessage(t *testing.T) {
	applier := &applierStub{}
	c := NewConsumer(applier, newNoopLogger())

	body := []byte(`{
		"event_type": "subscription_updated",
		"is_active": true,
		"product_id": "locadora_premium_anual",
		"expiration_date": "2026-01-01T00:00:00Z",
		"will_renew": true
	}`)

	require.NoError(t, c.HandleMessage(body))
	require.Len(t, applier.applied, 1)

	got := applier.applied[0]
	assert.True(t, got.IsActive)
	assert.Equal(t, "locadora_premium_anual", got.ProductID)
	require.NotNil(t, got.ExpirationDate)
	assert.True(t, got.ExpirationDate.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestConsumer_HandleMessageBadPayload(t *testing.T) {
	applier := &applierStub{}
	c := NewConsumer(applier, newNoopLogger())

	err := c.HandleMessage([]byte("not json"))

	assert.Error(t, err)
	assert.Empty(t, applier.applied)
}
