// Command apitest runs smoke checks against a running holiday API.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// DayResponse is the response for /days/{date} and /days/today
type DayResponse struct {
	Date        string `json:"date"`
	WeekdayName string `json:"weekday_name"`
	IsWeekend   bool   `json:"is_weekend"`
	IsHoliday   bool   `json:"is_holiday"`
	Holiday     string `json:"holiday"`
	Kind        string `json:"kind"`
}

// Holiday is one entry of a holiday list.
type Holiday struct {
	Date string `json:"date"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// YearResponse is the response for /holidays/{year}
type YearResponse struct {
	Year     int       `json:"year"`
	Source   string    `json:"source"`
	Holidays []Holiday `json:"holidays"`
}

// EasterResponse is the response for /easter/{year}
type EasterResponse struct {
	EasterSunday string `json:"easter_sunday"`
	GoodFriday   string `json:"good_friday"`
	EasterMonday string `json:"easter_monday"`
	AscensionDay string `json:"ascension_day"`
	WhitSunday   string `json:"whit_sunday"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status string `json:"status"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	out          io.Writer
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, out io.Writer, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		out:     out,
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintln(tr.out, "Holiday API Test Suite")
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintf(tr.out, "Base URL: %s\n", tr.baseURL)

	tr.testHealth()
	tr.testDays()
	tr.testYears()
	tr.testEaster()
	tr.testWorkdays()
	tr.testEdgeCases()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health HealthResponse
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testDays() {
	tr.printSection("Day Lookups")

	testCases := []struct {
		date        string
		weekday     string
		weekend     bool
		holiday     string
		description string
	}{
		{"2026-02-01", "söndag", true, "", "Plain Sunday"},
		{"2026-02-05", "torsdag", false, "", "Plain Thursday"},
		{"2024-08-10", "lördag", true, "", "Plain Saturday"},
		{"2024-03-29", "fredag", false, "långfredagen", "Good Friday 2024"},
		{"2024-06-21", "fredag", false, "midsommarafton", "Midsummer Eve 2024"},
		{"2024-06-22", "lördag", true, "midsommardagen", "Midsummer Day 2024"},
		{"2024-11-02", "lördag", true, "alla helgons dag", "All Saints 2024"},
		{"2008-05-01", "torsdag", false, "första maj", "Ascension on May 1"},
	}

	for _, tc := range testCases {
		var day DayResponse
		if err := tr.getData("/api/v1/days/"+tc.date, &day); err != nil {
			tr.recordError(tc.description, err.Error())
			continue
		}

		switch {
		case day.WeekdayName != tc.weekday:
			tr.recordError(tc.description, fmt.Sprintf("weekday %q, want %q", day.WeekdayName, tc.weekday))
		case day.IsWeekend != tc.weekend:
			tr.recordError(tc.description, fmt.Sprintf("weekend %v, want %v", day.IsWeekend, tc.weekend))
		case day.Holiday != tc.holiday:
			tr.recordError(tc.description, fmt.Sprintf("holiday %q, want %q", day.Holiday, tc.holiday))
		default:
			tr.recordSuccess(fmt.Sprintf("%s (%s)", tc.description, tc.date))
		}
	}

	var today DayResponse
	if err := tr.getData("/api/v1/days/today", &today); err != nil {
		tr.recordError("Today", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Today is %s, %s", today.Date, today.WeekdayName))
}

func (tr *TestRunner) testYears() {
	tr.printSection("Holiday Years")

	for _, year := range []int{2024, 2025, 2026} {
		var data YearResponse
		if err := tr.getData(fmt.Sprintf("/api/v1/holidays/%d", year), &data); err != nil {
			tr.recordError(fmt.Sprintf("Year %d", year), err.Error())
			continue
		}
		if len(data.Holidays) != 16 {
			tr.recordError(fmt.Sprintf("Year %d", year), fmt.Sprintf("%d holidays, want 16", len(data.Holidays)))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("Year %d: %d holidays (%s)", year, len(data.Holidays), data.Source))

		if tr.verbose {
			for _, h := range data.Holidays {
				fmt.Fprintf(tr.out, "      %s  %-24s %s\n", h.Date, h.Name, h.Kind)
			}
		}
	}
}

func (tr *TestRunner) testEaster() {
	tr.printSection("Easter")

	expected := map[int]string{2024: "2024-03-31", 2025: "2025-04-20", 1981: "1981-04-19", 1954: "1954-04-18"}
	for year, want := range expected {
		var data EasterResponse
		if err := tr.getData(fmt.Sprintf("/api/v1/easter/%d", year), &data); err != nil {
			tr.recordError(fmt.Sprintf("Easter %d", year), err.Error())
			continue
		}
		if data.EasterSunday != want {
			tr.recordError(fmt.Sprintf("Easter %d", year), fmt.Sprintf("got %s, want %s", data.EasterSunday, want))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("Easter %d is %s", year, want))
	}
}

func (tr *TestRunner) testWorkdays() {
	tr.printSection("Workdays")

	var count struct {
		Workdays int `json:"workdays"`
	}
	if err := tr.getData("/api/v1/workdays?start=2024-12-01&end=2024-12-31", &count); err != nil {
		tr.recordError("Workdays December 2024", err.Error())
	} else if count.Workdays != 18 {
		tr.recordError("Workdays December 2024", fmt.Sprintf("got %d, want 18", count.Workdays))
	} else {
		tr.recordSuccess("December 2024 has 18 workdays")
	}

	var added struct {
		Result string `json:"result"`
	}
	if err := tr.getData("/api/v1/workdays/add?date=2024-12-23&n=1", &added); err != nil {
		tr.recordError("Add workday", err.Error())
	} else if added.Result != "2024-12-27" {
		tr.recordError("Add workday", fmt.Sprintf("got %s, want 2024-12-27", added.Result))
	} else {
		tr.recordSuccess("First workday after 2024-12-23 is 2024-12-27")
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	badPaths := []string{
		"/api/v1/days/2024-02-30",
		"/api/v1/days/2024-13-01",
		"/api/v1/days/not-a-date",
		"/api/v1/holidays/1500",
		"/api/v1/holidays/range?start=2025-01-01&end=2024-01-01",
	}

	for _, path := range badPaths {
		resp, err := tr.client.Get(tr.baseURL + path)
		if err != nil {
			tr.recordError(path, err.Error())
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusBadRequest {
			tr.recordSuccess(fmt.Sprintf("%s rejected", path))
		} else {
			tr.recordError(path, fmt.Sprintf("HTTP %d, want 400", resp.StatusCode))
		}
	}
}

// =============================================================================
// Helpers
// =============================================================================

func (tr *TestRunner) getData(path string, target any) error {
	resp, err := tr.client.Get(tr.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("parse response (HTTP %d): %w", resp.StatusCode, err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return fmt.Errorf("API error: %s", errMsg)
	}

	return json.Unmarshal(apiResp.Data, target)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Fprintln(tr.out)
	fmt.Fprintf(tr.out, "--- %s ---\n", name)
	fmt.Fprintln(tr.out)
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Fprintf(tr.out, "  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Fprintf(tr.out, "  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Fprintln(tr.out)
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintln(tr.out, "Summary")
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintf(tr.out, "  Passed: %d\n", tr.successCount)
	fmt.Fprintf(tr.out, "  Failed: %d\n", tr.errorCount)
	fmt.Fprintln(tr.out)

	if tr.errorCount > 0 {
		fmt.Fprintln(tr.out, "Failures:")
		for _, err := range tr.errors {
			fmt.Fprintf(tr.out, "  • %s\n", err)
		}
		fmt.Fprintln(tr.out)
		fmt.Fprintf(tr.out, "Tests completed with %d failure(s)\n", tr.errorCount)
		return
	}

	fmt.Fprintln(tr.out, "All tests passed! ✓")
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output (list holidays per year)")
	flag.Parse()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, os.Stdout, *verbose)
	runner.Run()

	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
