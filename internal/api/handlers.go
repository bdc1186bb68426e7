package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/helgdagar/calendar"
	"github.com/zapponejosh/helgdagar/holidays"
	"github.com/zapponejosh/helgdagar/internal/database"
	"github.com/zapponejosh/helgdagar/internal/logger"
	"github.com/zapponejosh/helgdagar/workdays"
)

// Year bounds accepted on the wire.
const (
	MinYear = 1753
	MaxYear = 9999
)

// maxRangeDays caps /holidays/range and /workdays.
const maxRangeDays = 366

// maxWorkdayOffset caps n in /workdays/add.
const maxWorkdayOffset = 1000

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db     *database.DB
	sets   holidays.Provider
	cal    *holidays.Calendar
	work   *workdays.Calendar
	logger *slog.Logger
	now    func() time.Time
}

// NewHandlers creates a new Handlers instance. sets may be nil, in which case
// holiday sets are rebuilt on every request.
func NewHandlers(db *database.DB, sets holidays.Provider, logger *slog.Logger) *Handlers {
	if sets == nil {
		sets = holidays.ProviderFunc(holidays.ForYear)
	}
	return &Handlers{
		db:     db,
		sets:   sets,
		cal:    holidays.New(sets),
		work:   workdays.New(),
		logger: logger,
		now:    time.Now,
	}
}

// log returns the handler logger tagged with the request ID.
func (h *Handlers) log(r *http.Request) *slog.Logger {
	return logger.FromContext(r.Context(), h.logger)
}

// holidayJSON is a holiday as served by the API.
type holidayJSON struct {
	Date calendar.Date `json:"date"`
	Name holidays.Name `json:"name"`
	Kind holidays.Kind `json:"kind"`
}

func toHolidayJSON(list []holidays.Holiday) []holidayJSON {
	out := make([]holidayJSON, len(list))
	for i, h := range list {
		out[i] = holidayJSON{Date: h.Date, Name: h.Name, Kind: h.Kind()}
	}
	return out
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Health(r.Context()); err != nil {
		h.log(r).Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// GetToday handles GET /api/v1/days/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	h.writeDay(w, r, calendar.FromTime(h.now()))
}

// GetDay handles GET /api/v1/days/{YYYY-MM-DD}
func (h *Handlers) GetDay(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")

	date, err := calendar.Parse(dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	h.writeDay(w, r, date)
}

func (h *Handlers) writeDay(w http.ResponseWriter, r *http.Request, date calendar.Date) {
	info, err := h.cal.DayOf(date)
	if err != nil {
		h.log(r).Error("failed to describe date",
			slog.String("date", date.String()),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to describe date")
		return
	}

	WriteSuccess(w, info)
}

// GetYearHolidays handles GET /api/v1/holidays/{year}
//
// Published years are read from the store. Other years are computed and
// published on the way out.
func (h *Handlers) GetYearHolidays(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	source := "store"
	list, err := h.db.GetYear(ctx, year)
	if err != nil {
		if !database.IsNotFound(err) {
			h.log(r).Error("failed to read published year",
				slog.Int("year", year),
				slog.Any("error", err))
			WriteInternalError(w, "Failed to retrieve holidays")
			return
		}

		set := h.sets.ForYear(year)
		list = set.Holidays()
		source = "computed"

		if err := h.db.PublishYear(ctx, set); err != nil {
			// The computed answer is still correct; only the store missed it.
			h.log(r).Warn("failed to publish computed year",
				slog.Int("year", year),
				slog.Any("error", err))
		}
	}

	WriteSuccess(w, map[string]any{
		"year":     year,
		"source":   source,
		"holidays": toHolidayJSON(list),
	})
}

// GetRangeHolidays handles GET /api/v1/holidays/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) GetRangeHolidays(w http.ResponseWriter, r *http.Request) {
	start, end, ok := rangeParams(w, r)
	if !ok {
		return
	}

	list := h.cal.HolidaysBetween(start, end)

	WriteSuccess(w, map[string]any{
		"start":    start,
		"end":      end,
		"count":    len(list),
		"holidays": toHolidayJSON(list),
	})
}

// CountWorkdays handles GET /api/v1/workdays?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) CountWorkdays(w http.ResponseWriter, r *http.Request) {
	start, end, ok := rangeParams(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, map[string]any{
		"start":    start,
		"end":      end,
		"workdays": h.work.Count(start, end),
	})
}

// AddWorkdays handles GET /api/v1/workdays/add?date=YYYY-MM-DD&n=N
func (h *Handlers) AddWorkdays(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	date, err := calendar.Parse(dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	nStr := r.URL.Query().Get("n")
	n, err := strconv.Atoi(nStr)
	if err != nil || n < -maxWorkdayOffset || n > maxWorkdayOffset {
		WriteBadRequest(w, fmt.Sprintf("Invalid n: %q. Use an integer between %d and %d", nStr, -maxWorkdayOffset, maxWorkdayOffset))
		return
	}

	result := h.work.Add(date, n)

	WriteSuccess(w, map[string]any{
		"date":   date,
		"n":      n,
		"result": result,
	})
}

// rangeParams reads the start and end query parameters, writing a 400 when
// either is malformed, they are reversed, or they span more than
// maxRangeDays.
func rangeParams(w http.ResponseWriter, r *http.Request) (start, end calendar.Date, ok bool) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return start, end, false
	}

	start, err := calendar.Parse(startStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid start date format: %s. Use YYYY-MM-DD", startStr))
		return start, end, false
	}

	end, err = calendar.Parse(endStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid end date format: %s. Use YYYY-MM-DD", endStr))
		return start, end, false
	}

	if start.After(end) {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return start, end, false
	}

	if start.DaysUntil(end) > maxRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", maxRangeDays))
		return start, end, false
	}

	return start, end, true
}

// GetEaster handles GET /api/v1/easter/{year}
//
// The computus constants only hold for 1900-2099. Other years in
// [MinYear, MaxYear] are answered with "exact": false and a note, since the
// dates may not fall on their nominal weekdays.
func (h *Handlers) GetEaster(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	resp := map[string]any{
		"year":          year,
		"exact":         calendar.EasterExact(year),
		"easter_sunday": holidays.Easter(year),
		"good_friday":   holidays.GoodFriday(year),
		"easter_monday": holidays.EasterMonday(year),
		"ascension_day": holidays.AscensionDay(year),
		"whit_sunday":   holidays.WhitSunday(year),
	}
	if !calendar.EasterExact(year) {
		resp["note"] = fmt.Sprintf("Easter is only exact for %d-%d; this date may not be a Sunday",
			calendar.EasterExactFrom, calendar.EasterExactThrough)
	}

	WriteSuccess(w, resp)
}

// ListPublishedYears handles GET /api/v1/admin/years
func (h *Handlers) ListPublishedYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.db.ListYears(r.Context())
	if err != nil {
		h.log(r).Error("failed to list published years", slog.Any("error", err))
		WriteInternalError(w, "Failed to list published years")
		return
	}
	if years == nil {
		years = []database.PublishedYear{}
	}

	WriteSuccess(w, map[string]any{
		"years": years,
	})
}

// PublishYear handles POST /api/v1/admin/years/{year}
func (h *Handlers) PublishYear(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	set := h.sets.ForYear(year)
	if err := h.db.PublishYear(r.Context(), set); err != nil {
		h.log(r).Error("failed to publish year",
			slog.Int("year", year),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to publish year")
		return
	}

	h.log(r).Info("published holiday year", slog.Int("year", year))

	WriteSuccess(w, map[string]any{
		"year":     year,
		"holidays": toHolidayJSON(set.Holidays()),
	})
}

// DeleteYear handles DELETE /api/v1/admin/years/{year}
func (h *Handlers) DeleteYear(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	if err := h.db.DeleteYear(r.Context(), year); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			WriteNotFound(w, fmt.Sprintf("Year %d is not published", year))
			return
		}
		h.log(r).Error("failed to delete year",
			slog.Int("year", year),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to delete year")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Year deleted"})
}

// yearParam reads the {year} URL parameter, writing a 400 when it is not an
// integer in [MinYear, MaxYear].
func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "year")

	year, err := strconv.Atoi(raw)
	if err != nil || year < MinYear || year > MaxYear {
		WriteBadRequest(w, fmt.Sprintf("Invalid year: %q. Use a year between %d and %d", raw, MinYear, MaxYear))
		return 0, false
	}
	return year, true
}
