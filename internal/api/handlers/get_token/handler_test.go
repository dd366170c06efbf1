package get_token

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CanteenBooking/internal/service/tokens"
	"github.com/m04kA/SMC-CanteenBooking/internal/service/tokens/models"
	"github.com/m04kA/SMC-CanteenBooking/pkg/logger"
)

type stubService struct{}

func (stubService) Get(_ context.Context, token string) (*models.BookingResponse, error) {
	if token != "tok-1" {
		return nil, tokens.ErrTokenNotFound
	}
	return &models.BookingResponse{Token: token, Consumed: true}, nil
}

func serve(url string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/tokens/{token}", NewHandler(stubService{}, logger.NewNop()).Handle)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestHandle(t *testing.T) {
	w := serve("/api/v1/tokens/tok-1")
	require.Equal(t, http.StatusOK, w.Code)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Consumed)

	assert.Equal(t, http.StatusNotFound, serve("/api/v1/tokens/unknown").Code)
}
