package mware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/locadora-backend/internal/http-server/auth"
)

type premiumStub struct{ premium bool }

func (p premiumStub) IsPremium() bool { return p.premium }

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTMiddleware(t *testing.T) {
	maker := auth.NewJWTMaker("testsecret", time.Hour)
	handler := JWTMiddleware(maker, newNoopLogger())(okHandler())

	t.Run("valid token passes", func(t *testing.T) {
		token, err := maker.GenerateToken("operador")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestPremiumGate(t *testing.T) {
	t.Run("premium passes", func(t *testing.T) {
		handler := PremiumGate(premiumStub{premium: true}, newNoopLogger())(okHandler())
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/receipts", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("free account degraded, not crashed", func(t *testing.T) {
		handler := PremiumGate(premiumStub{premium: false}, newNoopLogger())(okHandler())
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/receipts", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "premium subscription required")
	})
}
