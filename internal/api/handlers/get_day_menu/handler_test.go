package get_day_menu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getDayMenu "github.com/m04kA/SMC-CanteenBooking/internal/usecase/get_day_menu"
	"github.com/m04kA/SMC-CanteenBooking/pkg/logger"
	"github.com/m04kA/SMC-CanteenBooking/pkg/ptr"
)

type stubUseCase struct {
	got  *getDayMenu.Request
	resp *getDayMenu.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getDayMenu.Request) (*getDayMenu.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc *stubUseCase, url string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/menu/{date}", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestHandle(t *testing.T) {
	open := time.Date(2026, 10, 16, 7, 45, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &getDayMenu.Response{
		Date:           "2026-10-16",
		Day:            "Friday",
		Published:      true,
		AvailableDates: []string{"2026-10-16"},
		Sections: []getDayMenu.Section{{
			Name:        "Afternoon",
			Time:        "11:45 – 12:15",
			WindowOpen:  open,
			WindowClose: open.Add(10 * time.Hour),
			Bookable:    true,
			Items: []getDayMenu.Item{{
				Title:      "VEG COMBO",
				Price:      75,
				Menu:       "Paneer",
				PortionKey: ptr.Ptr("PORTION-VC"),
				Remaining:  ptr.Ptr(2),
				CanBook:    true,
			}},
		}},
	}}

	w := serve(uc, "/api/v1/menu/2026-10-16?block=WB-II&floor=3rd%20Floor")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "WB-II", uc.got.Block)
	assert.Equal(t, "3rd Floor", uc.got.Floor)

	var body DayMenuResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Sections, 1)
	assert.Equal(t, "2026-10-16T07:45:00Z", body.Sections[0].WindowOpen)
	assert.True(t, body.Sections[0].Items[0].CanBook)
}

func TestHandle_NotPublished(t *testing.T) {
	uc := &stubUseCase{resp: &getDayMenu.Response{Date: "2026-10-20", Sections: []getDayMenu.Section{}}}

	w := serve(uc, "/api/v1/menu/2026-10-20")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"date":"2026-10-20","published":false,"availableDates":[],"sections":[]}`, w.Body.String())
}

func TestHandle_InvalidDate(t *testing.T) {
	w := serve(&stubUseCase{err: getDayMenu.ErrInvalidInput}, "/api/v1/menu/today")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
