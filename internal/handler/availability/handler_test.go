package availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaly/booking-api/internal/config"
	availabilitysvc "github.com/agendaly/booking-api/internal/service/availability"
	apperrors "github.com/agendaly/booking-api/pkg/errors"
)

type fakeAvailability struct {
	lastReq *availabilitysvc.SlotsRequest
	slots   []string
	err     error
}

func (f *fakeAvailability) GetAvailableSlots(ctx context.Context, req *availabilitysvc.SlotsRequest) ([]string, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}

func defaults() config.BookingConfig {
	return config.BookingConfig{StepMinutes: 15, LeadMinutes: 120}
}

func setupRouter(svc *fakeAvailability) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc, defaults()).RegisterPublicRoutes(r.Group("/public/stores/:slug"))
	return r
}

func TestGetAvailability(t *testing.T) {
	svc := &fakeAvailability{slots: []string{"10:00", "10:15"}}
	r := setupRouter(svc)

	staffID := uuid.New()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/public/stores/corte-e-cor/availability?staff_id="+staffID.String()+"&date=2026-06-15&service_minutes=30", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Date  string   `json:"date"`
			Slots []string `json:"slots"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "2026-06-15", body.Data.Date)
	assert.Equal(t, []string{"10:00", "10:15"}, body.Data.Slots)

	// server defaults applied, slug taken from the path
	require.NotNil(t, svc.lastReq)
	assert.Equal(t, "corte-e-cor", svc.lastReq.StoreSlug)
	assert.Equal(t, staffID, svc.lastReq.StaffID)
	assert.Equal(t, 15, svc.lastReq.StepMinutes)
	assert.Equal(t, 120, svc.lastReq.LeadMinutes)
}

func TestGetAvailabilityQueryOverrides(t *testing.T) {
	svc := &fakeAvailability{slots: []string{}}
	r := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/public/stores/corte-e-cor/availability?staff_id="+uuid.NewString()+"&date=2026-06-15&service_minutes=30&step_minutes=30&buffer_after=10", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30, svc.lastReq.StepMinutes)
	assert.Equal(t, 10, svc.lastReq.BufferMinutes)
}

func TestGetAvailabilityBadStaffID(t *testing.T) {
	r := setupRouter(&fakeAvailability{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/public/stores/corte-e-cor/availability?staff_id=junk&date=2026-06-15&service_minutes=30", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAvailabilityUnknownStore(t *testing.T) {
	r := setupRouter(&fakeAvailability{err: apperrors.NotFound("store")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/public/stores/ghost/availability?staff_id="+uuid.NewString()+"&date=2026-06-15&service_minutes=30", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
