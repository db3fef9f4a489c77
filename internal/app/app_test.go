package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabz8/Nextcare/internal/config"
	"github.com/kabz8/Nextcare/internal/model"
	"github.com/kabz8/Nextcare/internal/repository/memory"
	"github.com/kabz8/Nextcare/internal/seed"
	"github.com/kabz8/Nextcare/pkg/httputil"
	"github.com/kabz8/Nextcare/pkg/messaging"
)

const monday = "2025-04-07"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           8080,
			Mode:           gin.TestMode,
			RequestTimeout: 5 * time.Second,
			MaxBodyBytes:   1 << 20,
		},
		Database:     config.DatabaseConfig{Driver: config.DriverMemory},
		Redis:        config.RedisConfig{Channel: "nextcare.appointments"},
		Cache:        config.CacheConfig{TTL: time.Minute, CleanupInterval: time.Minute, HTTPMaxAge: 60},
		Metrics:      config.MetricsConfig{Namespace: "nextcare"},
		CORS:         config.CORSConfig{AllowOrigins: []string{"*"}},
		Notification: config.NotificationConfig{Enabled: true, From: "appointments@nextcaredental.com", ClinicName: "Nextcare Dental Studio"},
	}
}

type testServer struct {
	engine http.Handler
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	store := memory.NewStore()
	_, err := seed.Run(context.Background(), store, seed.Options{HorizonDays: -1})
	require.NoError(t, err)

	a, err := NewWithDeps(cfg, Deps{
		Store:    store,
		Broker:   messaging.NewLogBroker(),
		Registry: prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	return &testServer{engine: a.Router.Engine()}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func bookingBody(date, time string) map[string]interface{} {
	return map[string]interface{}{
		"serviceId":             1,
		"patientName":           "Jane",
		"patientLastName":       "Doe",
		"patientDob":            "1990-05-14",
		"email":                 "jane@example.com",
		"phone":                 "555-0100",
		"appointmentDate":       date,
		"appointmentTime":       time,
		"patientType":           "new",
		"paymentMethod":         "cash",
		"bookingForSomeoneElse": false,
	}
}

func TestTimeSlots(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := s.do(t, http.MethodGet, "/api/time-slots?date="+monday, nil)
	require.Equal(t, http.StatusOK, w.Code)

	slots := decode[[]model.TimeSlot](t, w)
	require.Len(t, slots, 16)
	assert.Equal(t, "9:00 AM", slots[0].Time)
	assert.Equal(t, "5:30 PM", slots[15].Time)

	again := decode[[]model.TimeSlot](t, s.do(t, http.MethodGet, "/api/time-slots?date="+monday, nil))
	assert.Equal(t, slots, again)

	w = s.do(t, http.MethodGet, "/api/time-slots?date=2025-04-05", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestTimeSlots_BadRequests(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := s.do(t, http.MethodGet, "/api/time-slots", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "date parameter is required", decode[httputil.ErrorResponse](t, w).Message)

	w = s.do(t, http.MethodGet, "/api/time-slots?date=04/07/2025", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", decode[httputil.ErrorResponse](t, w).Status)
}

func TestBookAppointment(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := s.do(t, http.MethodPost, "/api/appointments", bookingBody(monday, "9:00 AM"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	apt := decode[model.Appointment](t, w)
	assert.True(t, apt.Confirmed)
	assert.Nil(t, apt.InsuranceProvider)

	slots := decode[[]model.TimeSlot](t, s.do(t, http.MethodGet, "/api/time-slots?date="+monday, nil))
	assert.Len(t, slots, 15)
	for _, slot := range slots {
		assert.NotEqual(t, "9:00 AM", slot.Time)
	}

	w = s.do(t, http.MethodPost, "/api/appointments", bookingBody(monday, "9:00 AM"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "time slot is no longer available", decode[httputil.ErrorResponse](t, w).Message)

	w = s.do(t, http.MethodGet, "/api/appointments/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, apt.ID, decode[model.Appointment](t, w).ID)

	list := decode[[]model.Appointment](t, s.do(t, http.MethodGet, "/api/appointments", nil))
	assert.Len(t, list, 1)
}

func TestBookAppointment_Validation(t *testing.T) {
	s := newTestServer(t, testConfig())

	body := bookingBody(monday, "9:00 AM")
	delete(body, "email")
	w := s.do(t, http.MethodPost, "/api/appointments", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email is required", decode[httputil.ErrorResponse](t, w).Message)

	body = bookingBody(monday, "9:00 AM")
	body["paymentMethod"] = "insurance"
	w = s.do(t, http.MethodPost, "/api/appointments", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "insuranceProvider is required when paymentMethod is insurance", decode[httputil.ErrorResponse](t, w).Message)

	body["insuranceProvider"] = "Delta Dental"
	w = s.do(t, http.MethodPost, "/api/appointments", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	apt := decode[model.Appointment](t, w)
	require.NotNil(t, apt.InsuranceProvider)
	assert.Equal(t, "Delta Dental", *apt.InsuranceProvider)

	w = s.do(t, http.MethodGet, "/api/appointments/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/appointments/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookAppointment_Concurrent(t *testing.T) {
	s := newTestServer(t, testConfig())

	const clients = 8
	codes := make([]int, clients)
	var wg sync.WaitGroup
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = s.do(t, http.MethodPost, "/api/appointments", bookingBody(monday, "3:30 PM")).Code
		}(i)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, clients-1, conflicts)
}

func TestCatalog(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := s.do(t, http.MethodGet, "/api/services", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=60", w.Header().Get("Cache-Control"))
	services := decode[[]model.Service](t, w)
	require.Len(t, services, 12)
	assert.Equal(t, "Teeth Whitening", services[0].Name)

	w = s.do(t, http.MethodGet, "/api/services/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Dental Implants", decode[model.Service](t, w).Name)

	w = s.do(t, http.MethodGet, "/api/services/404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	w = s.do(t, http.MethodPost, "/api/testimonials", map[string]interface{}{
		"name": "Lee K.", "content": "Painless cleaning.", "rating": 4, "patientSince": "2023",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	testimonials := decode[[]model.Testimonial](t, s.do(t, http.MethodGet, "/api/testimonials", nil))
	assert.Len(t, testimonials, 4)

	w = s.do(t, http.MethodPost, "/api/testimonials", map[string]interface{}{
		"name": "Lee K.", "content": "Painless cleaning.", "rating": 9, "patientSince": "2023",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProducts(t *testing.T) {
	s := newTestServer(t, testConfig())

	all := decode[[]model.Product](t, s.do(t, http.MethodGet, "/api/products", nil))
	assert.Len(t, all, 8)

	featured := decode[[]model.Product](t, s.do(t, http.MethodGet, "/api/products?featured=true", nil))
	assert.Len(t, featured, 4)

	ortho := decode[[]model.Product](t, s.do(t, http.MethodGet, "/api/products?category=orthodontics", nil))
	assert.Len(t, ortho, 2)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/products?featured=maybe", nil).Code)

	body := map[string]interface{}{
		"name": "Tongue Scraper", "description": "Stainless steel", "price": "4.50",
		"imageUrl": "/assets/products/scraper.jpg", "category": "dental-care", "stock": 30,
	}
	w := s.do(t, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[model.Product](t, w)

	body["stock"] = 0
	w = s.do(t, http.MethodPut, "/api/products/9", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 0, decode[model.Product](t, w).Stock)

	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/products/9", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/products/9", nil).Code)
	assert.Equal(t, int64(9), created.ID)
}

func TestUsers(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := s.do(t, http.MethodPost, "/api/users", map[string]string{"username": "frontdesk", "password": "correct-horse"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "correct-horse")

	w = s.do(t, http.MethodPost, "/api/users", map[string]string{"username": "frontdesk", "password": "another-pass"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/api/users/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "frontdesk", decode[model.User](t, w).Username)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, testConfig())

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health/ready", nil).Code)

	s.do(t, http.MethodGet, "/api/time-slots?date="+monday, nil)

	w := s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "nextcare_booking_slots_generated_total 16"), body)
	assert.Contains(t, body, "nextcare_http_requests_total")
}

func TestMiddlewareHeaders(t *testing.T) {
	s := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/services", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	req.Header.Set("Origin", "https://nextcaredental.com")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	req = httptest.NewRequest(http.MethodOptions, "/api/appointments", nil)
	req.Header.Set("Origin", "https://nextcaredental.com")
	w = httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2}
	s := newTestServer(t, cfg)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(t, http.MethodGet, "/health/live", nil).Code)
}

func TestNotificationsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Notification.Enabled = false
	s := newTestServer(t, cfg)

	w := s.do(t, http.MethodPost, "/api/appointments", bookingBody(monday, "10:30 AM"))
	assert.Equal(t, http.StatusCreated, w.Code)
}
