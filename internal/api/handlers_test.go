package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/zapponejosh/helgdagar/holidays"
	"github.com/zapponejosh/helgdagar/internal/config"
	"github.com/zapponejosh/helgdagar/internal/database"
)

// =============================================================================
// TEST SETUP HELPERS
// =============================================================================

type testEnv struct {
	db       *database.DB
	cfg      *config.Config
	handlers *Handlers
	router   http.Handler
	adminKey string
}

// setupTest creates a fresh test environment backed by an in-memory database.
func setupTest(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError, // Quiet during tests
	}))

	db, err := database.Open(database.Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}, logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	adminKey := "admin-test-key"
	cfg := &config.Config{
		Port:            8080,
		Env:             config.EnvStaging,
		ShutdownTimeout: time.Second,
		DatabasePath:    ":memory:",
		APIKey:          adminKey,
		HolidayCache:    true,
		LogLevel:        "error",
		LogFormat:       "text",
	}

	handlers := NewHandlers(db, holidays.NewCache(), logger)

	return &testEnv{
		db:       db,
		cfg:      cfg,
		handlers: handlers,
		router:   SetupRoutes(handlers, cfg, logger),
		adminKey: adminKey,
	}
}

func (env *testEnv) do(t *testing.T, method, path, apiKey string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

// testResponse mirrors Response with a raw data payload.
type testResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorInfo      `json:"error"`
}

func parseResponse(t *testing.T, rr *httptest.ResponseRecorder, data any) testResponse {
	t.Helper()
	var resp testResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if data != nil && resp.Data != nil {
		if err := json.Unmarshal(resp.Data, data); err != nil {
			t.Fatalf("decode data: %v, data: %s", err, resp.Data)
		}
	}
	return resp
}

type dayData struct {
	Date        string `json:"date"`
	Weekday     int    `json:"weekday"`
	WeekdayName string `json:"weekday_name"`
	IsWeekend   bool   `json:"is_weekend"`
	IsHoliday   bool   `json:"is_holiday"`
	Holiday     string `json:"holiday"`
	Kind        string `json:"kind"`
}

type holidayData struct {
	Date string `json:"date"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// =============================================================================
// DAY TESTS
// =============================================================================

func TestGetDay_Holiday(t *testing.T) {
	env := setupTest(t)

	rr := env.do(t, http.MethodGet, "/api/v1/days/2024-06-22", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
	}

	var day dayData
	resp := parseResponse(t, rr, &day)
	if !resp.Success {
		t.Fatal("success = false")
	}
	if day.Date != "2024-06-22" || day.WeekdayName != "lördag" || !day.IsWeekend {
		t.Errorf("day = %+v", day)
	}
	if !day.IsHoliday || day.Holiday != "midsommardagen" || day.Kind != "public" {
		t.Errorf("holiday = %v %q %q", day.IsHoliday, day.Holiday, day.Kind)
	}
}

func TestGetDay_Weekday(t *testing.T) {
	env := setupTest(t)

	rr := env.do(t, http.MethodGet, "/api/v1/days/2026-02-05", "")
	var day dayData
	parseResponse(t, rr, &day)

	if day.IsWeekend || day.IsHoliday || day.WeekdayName != "torsdag" || day.Holiday != "" {
		t.Errorf("day = %+v", day)
	}
}

func TestGetDay_InvalidDate(t *testing.T) {
	env := setupTest(t)

	for _, path := range []string{"/api/v1/days/2024-02-30", "/api/v1/days/tomorrow", "/api/v1/days/2024-6-1"} {
		rr := env.do(t, http.MethodGet, path, "")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, rr.Code)
			continue
		}
		resp := parseResponse(t, rr, nil)
		if resp.Success || resp.Error == nil || resp.Error.Code != "BAD_REQUEST" {
			t.Errorf("GET %s error = %+v", path, resp.Error)
		}
	}
}

func TestGetToday(t *testing.T) {
	env := setupTest(t)
	env.handlers.now = func() time.Time {
		return time.Date(2025, time.December, 24, 15, 0, 0, 0, time.UTC)
	}

	rr := env.do(t, http.MethodGet, "/api/v1/days/today", "")
	var day dayData
	parseResponse(t, rr, &day)

	if day.Date != "2025-12-24" || day.Holiday != "julafton" || day.Kind != "eve" {
		t.Errorf("today = %+v", day)
	}
}

// =============================================================================
// HOLIDAY TESTS
// =============================================================================

func TestGetYearHolidays_ComputesThenServesFromStore(t *testing.T) {
	env := setupTest(t)

	var first struct {
		Year     int           `json:"year"`
		Source   string        `json:"source"`
		Holidays []holidayData `json:"holidays"`
	}
	rr := env.do(t, http.MethodGet, "/api/v1/holidays/2024", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rr.Code, rr.Body.String())
	}
	parseResponse(t, rr, &first)

	if first.Year != 2024 || first.Source != "computed" || len(first.Holidays) != 16 {
		t.Fatalf("first response = %d %q %d holidays", first.Year, first.Source, len(first.Holidays))
	}
	if first.Holidays[2] != (holidayData{"2024-03-29", "långfredagen", "public"}) {
		t.Errorf("third holiday = %+v", first.Holidays[2])
	}

	var second struct {
		Source   string        `json:"source"`
		Holidays []holidayData `json:"holidays"`
	}
	parseResponse(t, env.do(t, http.MethodGet, "/api/v1/holidays/2024", ""), &second)

	if second.Source != "store" {
		t.Errorf("second source = %q, want store", second.Source)
	}
	if len(second.Holidays) != len(first.Holidays) {
		t.Fatalf("second response has %d holidays", len(second.Holidays))
	}
	for i := range first.Holidays {
		if first.Holidays[i] != second.Holidays[i] {
			t.Errorf("holiday %d: computed %+v, stored %+v", i, first.Holidays[i], second.Holidays[i])
		}
	}
}

func TestGetYearHolidays_InvalidYear(t *testing.T) {
	env := setupTest(t)

	for _, year := range []string{"abc", "1500", "10000", "-2024"} {
		rr := env.do(t, http.MethodGet, "/api/v1/holidays/"+year, "")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("GET /holidays/%s status = %d, want 400", year, rr.Code)
		}
	}
}

func TestGetRangeHolidays(t *testing.T) {
	env := setupTest(t)

	var data struct {
		Count    int           `json:"count"`
		Holidays []holidayData `json:"holidays"`
	}
	rr := env.do(t, http.MethodGet, "/api/v1/holidays/range?start=2024-12-20&end=2025-01-10", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rr.Code, rr.Body.String())
	}
	parseResponse(t, rr, &data)

	want := []string{"2024-12-24", "2024-12-25", "2024-12-26", "2024-12-31", "2025-01-01", "2025-01-06"}
	if data.Count != len(want) || len(data.Holidays) != len(want) {
		t.Fatalf("count = %d, holidays = %d, want %d", data.Count, len(data.Holidays), len(want))
	}
	for i, d := range want {
		if data.Holidays[i].Date != d {
			t.Errorf("holidays[%d] = %s, want %s", i, data.Holidays[i].Date, d)
		}
	}
}

func TestGetRangeHolidays_SpanLimit(t *testing.T) {
	env := setupTest(t)

	if rr := env.do(t, http.MethodGet, "/api/v1/holidays/range?start=2024-01-01&end=2025-01-01", ""); rr.Code != http.StatusOK {
		t.Errorf("366-day span: status = %d, want 200", rr.Code)
	}
	if rr := env.do(t, http.MethodGet, "/api/v1/holidays/range?start=2023-01-01&end=2024-01-03", ""); rr.Code != http.StatusBadRequest {
		t.Errorf("367-day span: status = %d, want 400", rr.Code)
	}
	if rr := env.do(t, http.MethodGet, "/api/v1/workdays?start=1753-01-01&end=9999-12-31", ""); rr.Code != http.StatusBadRequest {
		t.Errorf("full calendar span: status = %d, want 400", rr.Code)
	}
}

func TestGetRangeHolidays_BadRequests(t *testing.T) {
	env := setupTest(t)

	paths := []string{
		"/api/v1/holidays/range",
		"/api/v1/holidays/range?start=2024-01-01",
		"/api/v1/holidays/range?start=2024-01-01&end=2024-13-01",
		"/api/v1/holidays/range?start=2024-02-01&end=2024-01-01",
		"/api/v1/holidays/range?start=2024-01-01&end=2025-06-01",
	}
	for _, path := range paths {
		if rr := env.do(t, http.MethodGet, path, ""); rr.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, rr.Code)
		}
	}
}

func TestGetEaster(t *testing.T) {
	env := setupTest(t)

	var data map[string]any
	parseResponse(t, env.do(t, http.MethodGet, "/api/v1/easter/2025", ""), &data)

	want := map[string]string{
		"easter_sunday": "2025-04-20",
		"good_friday":   "2025-04-18",
		"easter_monday": "2025-04-21",
		"ascension_day": "2025-05-29",
		"whit_sunday":   "2025-06-08",
	}
	for key, date := range want {
		if data[key] != date {
			t.Errorf("%s = %v, want %s", key, data[key], date)
		}
	}
	if data["exact"] != true {
		t.Errorf("exact = %v, want true", data["exact"])
	}
	if _, ok := data["note"]; ok {
		t.Errorf("unexpected note for 2025: %v", data["note"])
	}
}

func TestGetEaster_OutsideExactRange(t *testing.T) {
	env := setupTest(t)

	for _, year := range []string{"1800", "2100", "9999"} {
		var data map[string]any
		rr := env.do(t, http.MethodGet, "/api/v1/easter/"+year, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("GET /easter/%s status = %d", year, rr.Code)
		}
		parseResponse(t, rr, &data)

		if data["exact"] != false {
			t.Errorf("%s: exact = %v, want false", year, data["exact"])
		}
		note, _ := data["note"].(string)
		if !strings.Contains(note, "1900-2099") {
			t.Errorf("%s: note = %q, want the exact range", year, note)
		}
	}
}

// =============================================================================
// WORKDAY TESTS
// =============================================================================

func TestCountWorkdays(t *testing.T) {
	env := setupTest(t)

	var data struct {
		Workdays int `json:"workdays"`
	}
	rr := env.do(t, http.MethodGet, "/api/v1/workdays?start=2024-12-01&end=2024-12-31", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rr.Code, rr.Body.String())
	}
	parseResponse(t, rr, &data)

	if data.Workdays != 18 {
		t.Errorf("workdays = %d, want 18", data.Workdays)
	}

	if rr := env.do(t, http.MethodGet, "/api/v1/workdays?start=2024-12-31", ""); rr.Code != http.StatusBadRequest {
		t.Errorf("missing end: status = %d, want 400", rr.Code)
	}
}

func TestAddWorkdays(t *testing.T) {
	env := setupTest(t)

	var data struct {
		Date   string `json:"date"`
		N      int    `json:"n"`
		Result string `json:"result"`
	}
	rr := env.do(t, http.MethodGet, "/api/v1/workdays/add?date=2024-12-23&n=1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rr.Code, rr.Body.String())
	}
	parseResponse(t, rr, &data)

	if data.Date != "2024-12-23" || data.N != 1 || data.Result != "2024-12-27" {
		t.Errorf("data = %+v", data)
	}

	for _, query := range []string{"date=2024-12-23", "date=2024-12-23&n=x", "date=2024-12-23&n=5000", "n=1"} {
		if rr := env.do(t, http.MethodGet, "/api/v1/workdays/add?"+query, ""); rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", query, rr.Code)
		}
	}
}

// =============================================================================
// ADMIN TESTS
// =============================================================================

func TestAdmin_RequiresKey(t *testing.T) {
	env := setupTest(t)

	if rr := env.do(t, http.MethodPost, "/api/v1/admin/years/2030", ""); rr.Code != http.StatusUnauthorized {
		t.Errorf("no key: status = %d, want 401", rr.Code)
	}
	if rr := env.do(t, http.MethodPost, "/api/v1/admin/years/2030", "wrong"); rr.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: status = %d, want 401", rr.Code)
	}
}

func TestAdmin_OpenInDevelopmentWithoutKey(t *testing.T) {
	env := setupTest(t)
	env.cfg.Env = config.EnvDevelopment
	env.cfg.APIKey = ""

	if rr := env.do(t, http.MethodGet, "/api/v1/admin/years", ""); rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestAdmin_PublishListDelete(t *testing.T) {
	env := setupTest(t)

	rr := env.do(t, http.MethodPost, "/api/v1/admin/years/2030", env.adminKey)
	if rr.Code != http.StatusOK {
		t.Fatalf("publish status = %d; body: %s", rr.Code, rr.Body.String())
	}

	var list struct {
		Years []database.PublishedYear `json:"years"`
	}
	parseResponse(t, env.do(t, http.MethodGet, "/api/v1/admin/years", env.adminKey), &list)
	if len(list.Years) != 1 || list.Years[0].Year != 2030 || list.Years[0].HolidayCount != 16 {
		t.Fatalf("published years = %+v", list.Years)
	}

	if rr := env.do(t, http.MethodDelete, "/api/v1/admin/years/2030", env.adminKey); rr.Code != http.StatusOK {
		t.Errorf("delete status = %d", rr.Code)
	}
	if rr := env.do(t, http.MethodDelete, "/api/v1/admin/years/2030", env.adminKey); rr.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rr.Code)
	}
}

// =============================================================================
// ROUTER TESTS
// =============================================================================

func TestHealthCheck(t *testing.T) {
	env := setupTest(t)

	rr := env.do(t, http.MethodGet, "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS header missing")
	}
}

func TestHealthCheck_ClosedDatabase(t *testing.T) {
	env := setupTest(t)
	env.db.DB.Close()

	if rr := env.do(t, http.MethodGet, "/health", ""); rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rr.Code)
	}
}

func TestHandlerLogs_CarryRequestID(t *testing.T) {
	env := setupTest(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	handlers := NewHandlers(env.db, nil, logger)
	router := SetupRoutes(handlers, env.cfg, logger)

	env.db.DB.Close()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/holidays/2024", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-2024")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}

	var errorLine string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "failed to read published year") {
			errorLine = line
		}
	}
	if errorLine == "" {
		t.Fatalf("no handler error logged:\n%s", buf.String())
	}
	if !strings.Contains(errorLine, "request_id=req-2024") {
		t.Errorf("handler error log lacks request_id: %s", errorLine)
	}
	if !strings.Contains(buf.String(), `msg="http request" request_id=req-2024`) {
		t.Errorf("access log lacks request_id:\n%s", buf.String())
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	env := setupTest(t)

	if rr := env.do(t, http.MethodGet, "/api/v1/nothing", ""); rr.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want 404", rr.Code)
	}
	if rr := env.do(t, http.MethodPost, "/api/v1/days/2024-01-01", ""); rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST day status = %d, want 405", rr.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 4}))
	handler := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
}
