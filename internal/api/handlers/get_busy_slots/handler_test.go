package get_busy_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getBusySlots "github.com/m04kA/SMC-TurfBooking/internal/usecase/get_busy_slots"
	"github.com/m04kA/SMC-TurfBooking/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getBusySlots.Request) (*getBusySlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getBusySlots.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *mockUseCase, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/turfs/{turfId}/busy-slots", NewHandler(uc, nopLogger{}).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle_WithFromDate(t *testing.T) {
	day := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getBusySlots.Request) bool {
		return req.TurfID == 1 && req.FromDate != nil && req.FromDate.Equal(day)
	})).Return(&getBusySlots.Response{
		TurfID:   1,
		FromDate: day,
		Slots: []getBusySlots.Slot{
			{Date: day, StartTime: types.TimeString("10:00"), EndTime: types.TimeString("12:00")},
		},
	}, nil)

	rec := serve(uc, "/turfs/1/busy-slots?from=2025-10-15")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BusySlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-10-15", resp.FromDate)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, SlotResponse{Date: "2025-10-15", StartTime: "10:00", EndTime: "12:00"}, resp.Slots[0])
}

func TestHandle_DefaultsFromDateInUseCase(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &getBusySlots.Request{TurfID: 2}).
		Return(&getBusySlots.Response{TurfID: 2, FromDate: time.Now()}, nil)

	rec := serve(uc, "/turfs/2/busy-slots")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
}

func TestHandle_Errors(t *testing.T) {
	t.Run("bad date", func(t *testing.T) {
		uc := &mockUseCase{}
		assert.Equal(t, http.StatusBadRequest, serve(uc, "/turfs/1/busy-slots?from=15.10.2025").Code)
		uc.AssertNotCalled(t, "Execute")
	})

	t.Run("unknown turf", func(t *testing.T) {
		uc := &mockUseCase{}
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, getBusySlots.ErrTurfNotFound)
		assert.Equal(t, http.StatusNotFound, serve(uc, "/turfs/9/busy-slots").Code)
	})

	t.Run("internal", func(t *testing.T) {
		uc := &mockUseCase{}
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, getBusySlots.ErrInternal)
		assert.Equal(t, http.StatusInternalServerError, serve(uc, "/turfs/9/busy-slots").Code)
	})
}
