package httpapi

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leganyst/clinic-desk/internal/auth"
	"github.com/Leganyst/clinic-desk/internal/calendar"
	"github.com/Leganyst/clinic-desk/internal/config"
	"github.com/Leganyst/clinic-desk/internal/db/dbtest"
	"github.com/Leganyst/clinic-desk/internal/metrics"
	"github.com/Leganyst/clinic-desk/internal/repository"
	"github.com/Leganyst/clinic-desk/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router *gin.Engine
	tokens *auth.Tokens
}

func newTestAPI(t *testing.T, withAuth bool) *testAPI {
	t.Helper()

	gdb := dbtest.Seeded(t)
	repos := repository.NewSet(gdb)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()

	svc := service.New(
		service.DepsFromSet(repos),
		service.WithClock(func() time.Time { return time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC) }),
		service.WithRecorder(m),
		service.WithLogger(logger),
	)

	api := &testAPI{}
	if withAuth {
		tokens, err := auth.NewTokens(config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour})
		require.NoError(t, err)
		api.tokens = tokens
	}
	api.router = NewRouter(Options{
		Service:   svc,
		Tokens:    api.tokens,
		Operators: repos.Staff,
		Metrics:   m.Handler(),
		Logger:    logger,
	})
	return api
}

func (a *testAPI) do(t *testing.T, method, path string, body any, token string) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var resp Response
	if rec.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func (a *testAPI) token(t *testing.T, staffID int64, role calendar.OperatorRole) string {
	t.Helper()
	tok, _, err := a.tokens.Issue(staffID, role)
	require.NoError(t, err)
	return tok
}

func TestRouter_AppointmentToSettlement(t *testing.T) {
	api := newTestAPI(t, false)

	rec, resp := api.do(t, http.MethodPost, "/api/v1/appointments", map[string]any{
		"patientName": "Li Wei",
		"phone":       "13800000001",
		"deptId":      1,
		"apptDate":    "2024-06-01",
		"eta":         "09:30",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	apptID := int64(resp.Data.(map[string]any)["apptId"].(float64))

	rec, resp = api.do(t, http.MethodPost, "/api/v1/appointments/"+itoa(apptID)+"/verify", map[string]any{
		"idCard":   "110101199001011234",
		"gender":   "M",
		"doctorId": 1,
		"roomNo":   "101",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	visitID := int64(resp.Data.(map[string]any)["visitId"].(float64))

	rec, _ = api.do(t, http.MethodPost, "/api/v1/appointments/"+itoa(apptID)+"/verify", map[string]any{
		"idCard":   "110101199001011234",
		"gender":   "M",
		"doctorId": 1,
		"roomNo":   "101",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, resp = api.do(t, http.MethodPost, "/api/v1/visits/"+itoa(visitID)+"/settle", map[string]any{
		"fee":           50.0,
		"paymentMethod": "Cash",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Finished", resp.Data.(map[string]any)["status"])

	rec, _ = api.do(t, http.MethodPost, "/api/v1/visits/"+itoa(visitID)+"/settle", map[string]any{"fee": 60.0}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = api.do(t, http.MethodPost, "/api/v1/visits/999/settle", map[string]any{"fee": 60.0}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ValidationErrors(t *testing.T) {
	api := newTestAPI(t, false)

	// Не проходит binding-теги.
	rec, resp := api.do(t, http.MethodPost, "/api/v1/appointments", map[string]any{"phone": "1"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, resp.Error)

	// Проходит binding, но отклонено сервисом.
	rec, resp = api.do(t, http.MethodPost, "/api/v1/appointments", map[string]any{
		"patientName": "Li Wei",
		"phone":       "13800000001",
		"deptId":      1,
		"apptDate":    "2020-01-01",
		"eta":         "09:30",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "appt_date", resp.Field)

	rec, _ = api.do(t, http.MethodGet, "/api/v1/staff/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_ScheduleConflict(t *testing.T) {
	api := newTestAPI(t, false)

	body := map[string]any{"deptId": 1, "doctorId": 1, "roomNo": "101", "shiftDate": "2024-06-01", "shiftTime": "Morning"}
	rec, _ := api.do(t, http.MethodPost, "/api/v1/schedules", body, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body["doctorId"] = 2
	rec, resp := api.do(t, http.MethodPost, "/api/v1/schedules", body, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, resp.Error, "room is already assigned")

	rec, _ = api.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "clinic_schedule_conflicts_total 1")
}

func TestRouter_RevenueXLSX(t *testing.T) {
	api := newTestAPI(t, false)

	rec, _ := api.do(t, http.MethodGet, "/api/v1/reports/revenue.xlsx?from=2024-05-01&to=2024-05-20&by=doctor", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "revenue_doctor_2024-05-01_2024-05-20.xlsx")
	assert.NotZero(t, rec.Body.Len())

	rec, _ = api.do(t, http.MethodGet, "/api/v1/reports/revenue?by=room", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_StaffLifecycle(t *testing.T) {
	api := newTestAPI(t, false)

	rec, _ := api.do(t, http.MethodPost, "/api/v1/staff/1/terminate", map[string]any{"confirmed": false}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = api.do(t, http.MethodPost, "/api/v1/staff/1/terminate", map[string]any{"confirmed": true}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp := api.do(t, http.MethodGet, "/api/v1/doctors?deptId=1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Data, 1)

	rec, resp = api.do(t, http.MethodPut, "/api/v1/staff/4", map[string]any{
		"phone": "13700000000",
		"title": "Charge Nurse",
		"role":  "Nurse",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Charge Nurse", resp.Data.(map[string]any)["title"])

	rec, _ = api.do(t, http.MethodGet, "/api/v1/staff/404", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Auth(t *testing.T) {
	api := newTestAPI(t, true)

	rec, _ := api.do(t, http.MethodGet, "/api/v1/departments", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code, "public route")

	rec, _ = api.do(t, http.MethodGet, "/api/v1/visits/unpaid", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Кассир (staff 5): касса доступна, отчёты нет.
	cashier := api.token(t, 5, calendar.OperatorRoleCashier)
	rec, _ = api.do(t, http.MethodGet, "/api/v1/visits/unpaid", nil, cashier)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = api.do(t, http.MethodGet, "/api/v1/reports/revenue", nil, cashier)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Роль в токене не важна: берётся из staff.
	forged := api.token(t, 5, calendar.OperatorRoleAdmin)
	rec, _ = api.do(t, http.MethodGet, "/api/v1/reports/revenue", nil, forged)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := api.token(t, 6, calendar.OperatorRoleAdmin)
	rec, _ = api.do(t, http.MethodGet, "/api/v1/reports/revenue", nil, admin)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Уволенный сотрудник теряет доступ сразу.
	rec, _ = api.do(t, http.MethodPost, "/api/v1/staff/5/terminate", map[string]any{"confirmed": true}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = api.do(t, http.MethodGet, "/api/v1/visits/unpaid", nil, cashier)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = api.do(t, http.MethodGet, "/api/v1/visits/unpaid", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Healthz(t *testing.T) {
	api := newTestAPI(t, false)

	rec, resp := api.do(t, http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "UP", resp.Message)
	assert.NotEmpty(t, rec.Header().Get(headerRequestID))
}

func TestRouter_GzipResponses(t *testing.T) {
	api := newTestAPI(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	var resp struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(zr).Decode(&resp))
	assert.Len(t, resp.Data, 4)
}
