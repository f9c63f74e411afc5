package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skincare/internal/bookings/confirmation"
	"skincare/internal/bookings/form"
	"skincare/internal/bookings/service"
	"skincare/internal/bookings/session"
	"skincare/internal/bookings/validator"
	"skincare/internal/bookings/wizard"
	"skincare/internal/doctors/repository"
	doctorservice "skincare/internal/doctors/service"
	"skincare/internal/integration/provider"
	integration "skincare/internal/integration/service"
	"skincare/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope[T any] struct {
	Data T `json:"data"`
}

type errorBody struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details"`
}

func newRouter(t *testing.T, failureRate float64) *httprouter.Router {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	log := logger.Discard()

	repo, err := repository.NewInMemoryDoctorRepository(repository.DefaultDoctors())
	require.NoError(t, err)
	store := session.NewInMemoryStore(session.Config{TTL: time.Hour})
	t.Cleanup(store.Stop)

	p := provider.NewSimulatedProvider(provider.SimulatedConfig{
		Location:    loc,
		FailureRate: failureRate,
	}, log)
	opts := form.Options{
		Integration:     integration.NewIntegrationService(p, nil, log),
		Validator:       validator.NewAppointmentValidator(loc, log),
		ErrorResetDelay: time.Second,
		Now:             func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, loc) },
		Log:             log,
	}
	svc := service.NewBookingService(doctorservice.NewDoctorService(repo, log), store, opts, nil, log)

	router := httprouter.New()
	NewBookingHandler(svc, log).RegisterRoutes(router)
	return router
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createSession(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	sess := decode[envelope[service.SessionView]](t, rec).Data
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, wizard.StepSelection, sess.Step)
	return sess.ID
}

const appointmentBody = `{
	"patient_name": "Jane Doe",
	"patient_email": "jane@example.com",
	"patient_phone": "555-0100",
	"date": "2025-07-01",
	"time": "09:00",
	"service": "General Consultation",
	"video_call": %s
}`

func appointment(video bool) string {
	v := "false"
	if video {
		v = "true"
	}
	return strings.Replace(appointmentBody, "%s", v, 1)
}

func TestBookingScenario_WithVideo(t *testing.T) {
	router := newRouter(t, 0)
	id := createSession(t, router)
	base := "/api/v1/sessions/id/" + id

	rec := do(t, router, http.MethodPost, base+"/doctor", `{"doctor_id":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sess := decode[envelope[service.SessionView]](t, rec).Data
	assert.Equal(t, wizard.StepForm, sess.Step)
	assert.Equal(t, "Dr. Sarah Johnson", sess.Doctor.Name)

	rec = do(t, router, http.MethodPost, base+"/appointment", appointment(true))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sess = decode[envelope[service.SessionView]](t, rec).Data
	assert.Equal(t, wizard.StepConfirmation, sess.Step)
	require.NotNil(t, sess.Appointment)
	a := sess.Appointment
	assert.Equal(t, "Jane Doe", a.PatientName)
	assert.Equal(t, "jane@example.com", a.PatientEmail)
	assert.Equal(t, "555-0100", a.PatientPhone)
	assert.Equal(t, "2025-07-01", a.Date)
	assert.Equal(t, "09:00", a.Time)
	assert.Equal(t, "General Consultation", a.Service)
	assert.True(t, strings.HasPrefix(a.MeetingURL, provider.MeetingBaseURL))
	assert.NotEmpty(t, a.MeetingCode)
	assert.True(t, strings.HasPrefix(a.GoogleCalendarEventID, "evt_"))

	rec = do(t, router, http.MethodGet, base+"/confirmation", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[envelope[confirmation.View]](t, rec).Data
	require.NotNil(t, view.Meeting)
	assert.Equal(t, a.MeetingURL, view.Meeting.URL)
	assert.Equal(t, confirmation.Title, view.Title)

	rec = do(t, router, http.MethodPost, base+"/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, wizard.StepSelection, decode[envelope[service.SessionView]](t, rec).Data.Step)
}

func TestBookingScenario_WithoutVideo(t *testing.T) {
	router := newRouter(t, 0)
	id := createSession(t, router)
	base := "/api/v1/sessions/id/" + id

	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, base+"/doctor", `{"doctor_id":"1"}`).Code)
	rec := do(t, router, http.MethodPost, base+"/appointment", appointment(false))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	a := decode[envelope[service.SessionView]](t, rec).Data.Appointment
	require.NotNil(t, a)
	assert.Empty(t, a.MeetingURL)
	assert.Empty(t, a.MeetingCode)

	rec = do(t, router, http.MethodGet, base+"/confirmation", "")
	assert.Nil(t, decode[envelope[confirmation.View]](t, rec).Data.Meeting)
}

func TestSubmitAppointment_IntegrationFailure(t *testing.T) {
	router := newRouter(t, 1)
	id := createSession(t, router)
	base := "/api/v1/sessions/id/" + id
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, base+"/doctor", `{"doctor_id":"1"}`).Code)

	rec := do(t, router, http.MethodPost, base+"/appointment", appointment(true))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decode[errorBody](t, rec)
	assert.Equal(t, "INTEGRATION_FAILED", body.Code)
	assert.Equal(t, form.ErrorMessage, body.Error)

	rec = do(t, router, http.MethodGet, base, "")
	sess := decode[envelope[service.SessionView]](t, rec).Data
	require.NotNil(t, sess.Form)
	assert.Equal(t, form.StatusError, sess.Form.Status)
	assert.Equal(t, "Jane Doe", sess.Form.Fields.PatientName)
	assert.Nil(t, sess.Appointment)
}

func TestSubmitAppointment_Validation(t *testing.T) {
	router := newRouter(t, 0)
	id := createSession(t, router)
	base := "/api/v1/sessions/id/" + id
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, base+"/doctor", `{"doctor_id":"1"}`).Code)

	body := strings.Replace(appointment(false), `"09:00"`, `"11:00"`, 1)
	rec := do(t, router, http.MethodPost, base+"/appointment", body)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errBody := decode[errorBody](t, rec)
	assert.Equal(t, "VALIDATION_ERROR", errBody.Code)
	assert.Contains(t, errBody.Details, "time")
}

func TestBookingHandler_Errors(t *testing.T) {
	router := newRouter(t, 0)
	id := createSession(t, router)
	base := "/api/v1/sessions/id/" + id

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"unknown session", http.MethodGet, "/api/v1/sessions/id/6f1c1f4e-2a0b-4f43-9d49-3b7c2e0e2f11", "", http.StatusNotFound},
		{"malformed session id", http.MethodGet, "/api/v1/sessions/id/abc", "", http.StatusBadRequest},
		{"unknown doctor", http.MethodPost, base + "/doctor", `{"doctor_id":"42"}`, http.StatusNotFound},
		{"empty body", http.MethodPost, base + "/doctor", "", http.StatusBadRequest},
		{"unknown field", http.MethodPost, base + "/doctor", `{"doctor":"1"}`, http.StatusBadRequest},
		{"back from selection", http.MethodPost, base + "/back", "", http.StatusConflict},
		{"submit from selection", http.MethodPost, base + "/appointment", appointment(false), http.StatusConflict},
		{"confirmation too early", http.MethodGet, base + "/confirmation", "", http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestDeleteSession(t *testing.T) {
	router := newRouter(t, 0)
	id := createSession(t, router)

	rec := do(t, router, http.MethodDelete, "/api/v1/sessions/id/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/sessions/id/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGoBack(t *testing.T) {
	router := newRouter(t, 0)
	id := createSession(t, router)
	base := "/api/v1/sessions/id/" + id
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, base+"/doctor", `{"doctor_id":"4"}`).Code)

	rec := do(t, router, http.MethodPost, base+"/back", "")
	require.Equal(t, http.StatusOK, rec.Code)
	sess := decode[envelope[service.SessionView]](t, rec).Data
	assert.Equal(t, wizard.StepSelection, sess.Step)
	assert.Nil(t, sess.Doctor)
}
