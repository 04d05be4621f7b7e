package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mission-ingestion-service/internal/domain/entity"
	"mission-ingestion-service/internal/usecase"
	"mission-ingestion-service/pkg/logger"
	"mission-ingestion-service/pkg/metrics"
)

// =============================================================================
// Test Helpers
// =============================================================================

const validMission = `{"mission_id":"MISS-2024-001","vehicle_type":"drone","latitude":45.0,"longitude":9.0,"altitude_m":120,"pilot_id":"P-77"}`

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type testServer struct {
	router   http.Handler
	registry *prometheus.Registry
}

func newTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics("test", reg)
	log := logger.NewNopLogger()
	intake := usecase.NewMissionIntake(m, log).WithClock(func() time.Time { return fixedNow })
	if opts.MetricsHandler == nil {
		opts.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}
	return &testServer{
		router:   NewHandler(intake, m, log, opts).Routes(),
		registry: reg,
	}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func decodeViolations(t *testing.T, rec *httptest.ResponseRecorder) []violationDetail {
	t.Helper()
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	var out validationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Detail
}

func missionWith(t *testing.T, field string, value interface{}) string {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(validMission), &m))
	if value == nil {
		delete(m, field)
	} else {
		m[field] = value
	}
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return string(b)
}

// =============================================================================
// Health
// =============================================================================

func TestHealth(t *testing.T) {
	s := newTestServer(t, Options{})

	// prior traffic must not influence health
	s.do(http.MethodPost, "/mission", `{"latitude": 500}`)
	s.do(http.MethodPost, "/mission", validMission)

	rec := s.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeMap(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "2024-06-01T12:00:00Z", body["timestamp"])
}

// =============================================================================
// Mission
// =============================================================================

func TestCreateMission_Success(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := s.do(http.MethodPost, "/mission", validMission)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeMap(t, rec)
	assert.Equal(t, "Mission received successfully", body["message"])
	assert.Equal(t, "2024-06-01T12:00:00Z", body["received_at"])

	var input map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(validMission), &input))
	assert.Equal(t, input, body["mission"])
}

func TestCreateMission_UnknownFieldsNotEchoed(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := s.do(http.MethodPost, "/mission", missionWith(t, "weather", "clear"))
	require.Equal(t, http.StatusOK, rec.Code)

	mission := decodeMap(t, rec)["mission"].(map[string]interface{})
	assert.Len(t, mission, 6)
	assert.NotContains(t, mission, "weather")
}

func TestCreateMission_BlankPilotEchoedVerbatim(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := s.do(http.MethodPost, "/mission", missionWith(t, "pilot_id", " "))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	mission := decodeMap(t, rec)["mission"].(map[string]interface{})
	assert.Equal(t, " ", mission["pilot_id"])
}

func TestCreateMission_LatitudeOutOfRange(t *testing.T) {
	s := newTestServer(t, Options{})

	detail := decodeViolations(t, s.do(http.MethodPost, "/mission", missionWith(t, "latitude", 95.0)))
	require.Len(t, detail, 1)
	assert.Equal(t, violationDetail{
		Loc:     []string{"body", "latitude"},
		Field:   "latitude",
		Kind:    entity.ViolationOutOfRange,
		Message: "latitude must be between -90 and 90 degrees",
	}, detail[0])
}

func TestCreateMission_InvalidVehicleType(t *testing.T) {
	s := newTestServer(t, Options{})

	detail := decodeViolations(t, s.do(http.MethodPost, "/mission", missionWith(t, "vehicle_type", "car")))
	require.Len(t, detail, 1)
	assert.Equal(t, "vehicle_type", detail[0].Field)
	assert.Equal(t, entity.ViolationInvalidEnum, detail[0].Kind)
	for _, allowed := range []string{"drone", "helicopter", "ultralight"} {
		assert.Contains(t, detail[0].Message, allowed)
	}
}

func TestCreateMission_MissingPilot(t *testing.T) {
	s := newTestServer(t, Options{})

	detail := decodeViolations(t, s.do(http.MethodPost, "/mission", missionWith(t, "pilot_id", nil)))
	require.Len(t, detail, 1)
	assert.Equal(t, "pilot_id", detail[0].Field)
	assert.Equal(t, entity.ViolationMissing, detail[0].Kind)
	assert.Equal(t, "field required", detail[0].Message)
}

func TestCreateMission_ReportsEveryInvalidField(t *testing.T) {
	s := newTestServer(t, Options{})

	body := `{"mission_id":"M","vehicle_type":"Drone","latitude":-91,"longitude":181,"altitude_m":0}`
	detail := decodeViolations(t, s.do(http.MethodPost, "/mission", body))

	fields := make([]string, 0, len(detail))
	for _, d := range detail {
		fields = append(fields, d.Field)
	}
	assert.Equal(t, []string{"vehicle_type", "latitude", "longitude", "altitude_m", "pilot_id"}, fields)
}

func TestCreateMission_NonObjectBody(t *testing.T) {
	s := newTestServer(t, Options{})

	for _, body := range []string{`[]`, `"mission"`, `42`, `null`} {
		t.Run(body, func(t *testing.T) {
			detail := decodeViolations(t, s.do(http.MethodPost, "/mission", body))
			require.Len(t, detail, 1)
			assert.Equal(t, "body", detail[0].Field)
			assert.Equal(t, entity.ViolationWrongType, detail[0].Kind)
		})
	}
}

func TestCreateMission_MalformedBody(t *testing.T) {
	s := newTestServer(t, Options{})

	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"truncated", `{"mission_id":`},
		{"trailing value", validMission + `{}`},
		{"not json", `mission=1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/mission", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeMap(t, rec), "error")
		})
	}
}

func TestCreateMission_BodyTooLarge(t *testing.T) {
	s := newTestServer(t, Options{MaxBodyBytes: 64})

	rec := s.do(http.MethodPost, "/mission", missionWith(t, "notes", strings.Repeat("x", 256)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCreateMission_ReceiverFailure(t *testing.T) {
	m := metrics.NewMetrics("test", nil)
	router := NewHandler(failingReceiver{}, m, logger.NewNopLogger(), Options{}).Routes()

	req := httptest.NewRequest(http.MethodPost, "/mission", strings.NewReader(validMission))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type failingReceiver struct{}

func (failingReceiver) Receive(map[string]interface{}) (*entity.MissionReceipt, error) {
	return nil, errors.New("boom")
}

func (failingReceiver) Health() entity.HealthStatus {
	return entity.HealthStatus{Status: entity.HealthOK}
}

// =============================================================================
// Routing
// =============================================================================

func TestRouting(t *testing.T) {
	s := newTestServer(t, Options{})

	assert.Equal(t, http.StatusMethodNotAllowed, s.do(http.MethodGet, "/mission", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, s.do(http.MethodPost, "/health", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/missions", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, Options{})

	s.do(http.MethodPost, "/mission", validMission)
	s.do(http.MethodPost, "/mission", missionWith(t, "altitude_m", -1))

	rec := s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	out := rec.Body.String()
	assert.Contains(t, out, `test_missions_received_total{outcome="accepted"} 1`)
	assert.Contains(t, out, `test_missions_received_total{outcome="rejected"} 1`)
	assert.Contains(t, out, `test_validation_violations_total{field="altitude_m",kind="out_of_range"} 1`)
	assert.Contains(t, out, `route="/mission"`)
}
