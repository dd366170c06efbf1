package redeem_token

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
	"github.com/m04kA/SMC-CanteenBooking/internal/infra/storage/token"
	"github.com/m04kA/SMC-CanteenBooking/internal/service/tokens"
	"github.com/m04kA/SMC-CanteenBooking/pkg/logger"
)

func TestHandle_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := token.NewMemoryStore()
	now := time.Now()
	require.NoError(t, store.Issue(ctx, &domain.Booking{Token: "tok-1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}))

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/tokens/{token}/redeem",
		NewHandler(tokens.NewService(store, logger.NewNop()), logger.NewNop()).Handle).Methods(http.MethodPost)

	for _, tok := range []string{"tok-1", "tok-1", "unknown"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/tokens/"+tok+"/redeem", nil))
		assert.Equal(t, http.StatusNoContent, w.Code, tok)
	}

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, got.Consumed)
}
