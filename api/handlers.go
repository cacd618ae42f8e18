/*
handlers.go - HTTP API handlers for the region calendar engine

PURPOSE:
  Exposes the calendar engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the calendar and profile packages.

ENDPOINTS:
  Dates:
    GET    /api/components?at=          Fields of an instant
    POST   /api/compose                 Instant from fields
    POST   /api/add                     Calendar arithmetic

  Units:
    GET    /api/units/{unit}/start?at=  Start of the unit containing at
    GET    /api/units/{unit}/end?at=    End of the unit containing at
    GET    /api/units/{unit}/range?at=  Both

  Weekends:
    GET    /api/weekends/{which}?at=    this, next or previous weekend

  Profiles:
    GET    /api/profiles                List profiles
    POST   /api/profiles                Create profile
    GET    /api/profiles/{name}         Get profile
    DELETE /api/profiles/{name}         Delete profile

REGION SELECTION:
  Query endpoints take ?profile= or any of ?calendar= ?tz= ?locale=; body
  endpoints take "profile" or "region". Missing identifiers come from the
  default region; with nothing given the default profile is used if set.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input, invalid components, unsupported unit
  - 404: Unknown profile
  - 409: Duplicate profile
  - 422: Unknown calendar, time zone or locale
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/warp/region-engine/calendar"
	"github.com/warp/region-engine/factory"
	"github.com/warp/region-engine/profile"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine   *calendar.Engine
	Profiles *profile.Service
	Factory  *factory.RegionFactory

	// DefaultProfile is used when a request selects no region.
	DefaultProfile string
	Calendars      []calendar.CalendarID
	Database       Pinger

	Logger  *slog.Logger
	Metrics *Metrics
	Now     func() time.Time
}

// NewHandler creates a handler with a discarding logger and fresh metrics.
func NewHandler(engine *calendar.Engine, profiles *profile.Service, f *factory.RegionFactory) *Handler {
	return &Handler{
		Engine:   engine,
		Profiles: profiles,
		Factory:  f,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:  NewMetrics(),
		Now:      time.Now,
	}
}

// =============================================================================
// REGION RESOLUTION
// =============================================================================

func (h *Handler) resolveRegion(ctx context.Context, ref RegionRef) (calendar.Region, error) {
	if ref.Profile != "" {
		return h.Profiles.Region(ctx, ref.Profile)
	}
	if ref.Region != nil {
		return h.Factory.Region(*ref.Region), nil
	}
	if h.DefaultProfile != "" {
		return h.Profiles.Region(ctx, h.DefaultProfile)
	}
	return h.Factory.Defaults(), nil
}

func (h *Handler) queryRegion(r *http.Request) (calendar.Region, error) {
	q := r.URL.Query()
	ref := RegionRef{Profile: q.Get("profile")}
	if q.Has("calendar") || q.Has("tz") || q.Has("locale") {
		ref.Region = &factory.RegionJSON{
			Calendar: q.Get("calendar"),
			TimeZone: q.Get("tz"),
			Locale:   q.Get("locale"),
		}
	}
	return h.resolveRegion(r.Context(), ref)
}

// queryDate reads ?at= and the region selection.
func (h *Handler) queryDate(r *http.Request) (calendar.RegionalDate, error) {
	region, err := h.queryRegion(r)
	if err != nil {
		return calendar.RegionalDate{}, err
	}
	at, err := factory.ParseInstant(r.URL.Query().Get("at"), h.Now)
	if err != nil {
		return calendar.RegionalDate{}, err
	}
	return h.Engine.In(at, region), nil
}

// =============================================================================
// DATE ENDPOINTS
// =============================================================================

// GetComponents returns every field of ?at= in the region.
func (h *Handler) GetComponents(w http.ResponseWriter, r *http.Request) {
	d, err := h.queryDate(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeDate(w, r, http.StatusOK, d)
}

// Compose builds an instant from a partial field set.
func (h *Handler) Compose(w http.ResponseWriter, r *http.Request) {
	var req ComposeRequest
	if !h.decode(w, r, &req) {
		return
	}
	region, err := h.resolveRegion(r.Context(), req.RegionRef)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var d calendar.RegionalDate
	if req.Base == "" {
		d, err = h.Engine.Compose(req.Components, region)
	} else {
		var base time.Time
		base, err = factory.ParseInstant(req.Base, h.Now)
		if err == nil {
			d, err = h.Engine.In(base, region).Compose(req.Components)
		}
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeDate(w, r, http.StatusOK, d)
}

// Add moves an instant by a field set, or back when subtract is set.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if !h.decode(w, r, &req) {
		return
	}
	region, err := h.resolveRegion(r.Context(), req.RegionRef)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	at, err := factory.ParseInstant(req.At, h.Now)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	d := h.Engine.In(at, region)
	var moved calendar.RegionalDate
	if req.Subtract {
		moved, err = d.Subtract(req.Components)
	} else {
		moved, err = d.Add(req.Components)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeDate(w, r, http.StatusOK, moved)
}

// =============================================================================
// UNIT ENDPOINTS
// =============================================================================

func (h *Handler) unitDate(w http.ResponseWriter, r *http.Request) (calendar.Unit, calendar.RegionalDate, bool) {
	unit, err := calendar.ParseUnit(chi.URLParam(r, "unit"))
	if err != nil {
		h.fail(w, r, err)
		return 0, calendar.RegionalDate{}, false
	}
	d, err := h.queryDate(r)
	if err != nil {
		h.fail(w, r, err)
		return 0, calendar.RegionalDate{}, false
	}
	return unit, d, true
}

// StartOfUnit returns the first instant of the unit containing ?at=.
func (h *Handler) StartOfUnit(w http.ResponseWriter, r *http.Request) {
	unit, d, ok := h.unitDate(w, r)
	if !ok {
		return
	}
	start, err := d.StartOf(unit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeDate(w, r, http.StatusOK, start)
}

// EndOfUnit returns the last instant of the unit containing ?at=.
func (h *Handler) EndOfUnit(w http.ResponseWriter, r *http.Request) {
	unit, d, ok := h.unitDate(w, r)
	if !ok {
		return
	}
	end, err := d.EndOf(unit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeDate(w, r, http.StatusOK, end)
}

// UnitRange returns both boundaries.
func (h *Handler) UnitRange(w http.ResponseWriter, r *http.Request) {
	unit, d, ok := h.unitDate(w, r)
	if !ok {
		return
	}
	rng, err := d.UnitRange(unit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, NewRangeDTO(rng))
}

// =============================================================================
// WEEKEND ENDPOINTS
// =============================================================================

// GetWeekend answers this, next and previous weekend queries. "No weekend"
// is a 200 with a null weekend.
func (h *Handler) GetWeekend(w http.ResponseWriter, r *http.Request) {
	d, err := h.queryDate(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var query func() (calendar.Range, bool, error)
	switch which := chi.URLParam(r, "which"); which {
	case "this":
		query = d.ThisWeekend
	case "next":
		query = d.NextWeekend
	case "previous":
		query = d.PreviousWeekend
	default:
		writeError(w, http.StatusBadRequest, "unknown weekend query", errors.New(which+": expected this, next or previous"))
		return
	}

	rng, ok, err := query()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	resp := WeekendDTO{Region: d.Region()}
	if ok {
		dto := NewRangeDTO(rng)
		resp.Weekend = &dto
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// PROFILE ENDPOINTS
// =============================================================================

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.Profiles.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if profiles == nil {
		profiles = []profile.Profile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req factory.ProfileJSON
	if !h.decode(w, r, &req) {
		return
	}
	p, err := h.Profiles.Create(r.Context(), req.Name, h.Factory.Region(req.Region))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Metrics.ProfilesSaved.Inc()
	h.Logger.Info("profile created", "name", p.Name, "region", p.Region.String(), "request_id", middleware.GetReqID(r.Context()))
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.Profiles.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.Profiles.Delete(r.Context(), name); err != nil {
		h.fail(w, r, err)
		return
	}
	h.Logger.Info("profile deleted", "name", name, "request_id", middleware.GetReqID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SERVICE ENDPOINTS
// =============================================================================

func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Calendars)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthDTO{Status: "ok", Calendars: h.Calendars}
	if h.Database != nil {
		resp.Database = "ok"
		if err := h.Database.Ping(r.Context()); err != nil {
			resp.Status, resp.Database = "degraded", err.Error()
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %w", factory.ErrInvalidDocument, err))
		return false
	}
	return true
}

func (h *Handler) writeDate(w http.ResponseWriter, r *http.Request, status int, d calendar.RegionalDate) {
	dto, err := NewDateDTO(d)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, status, dto)
}

// fail maps err to a status, counts it and writes the error body.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := statusFor(err)
	h.Metrics.EngineErrors.WithLabelValues(kind).Inc()
	if status >= http.StatusInternalServerError {
		h.Logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", middleware.GetReqID(r.Context()))
	} else {
		h.Logger.Debug("request rejected", "path", r.URL.Path, "kind", kind, "err", err)
	}
	writeError(w, status, http.StatusText(status), err)
}

// statusFor maps err to an HTTP status and the error kind it is counted
// under. Every handler failure goes through it.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, profile.ErrProfileNotFound):
		return http.StatusNotFound, "profile"
	case errors.Is(err, profile.ErrDuplicateProfile):
		return http.StatusConflict, "profile"
	case errors.Is(err, profile.ErrInvalidProfile):
		return http.StatusBadRequest, "profile"
	case calendar.IsRegionError(err):
		return http.StatusUnprocessableEntity, "region"
	case errors.Is(err, calendar.ErrInvalidComponents):
		return http.StatusBadRequest, "components"
	case errors.Is(err, calendar.ErrUnsupportedUnit), errors.Is(err, calendar.ErrUnknownUnit):
		return http.StatusBadRequest, "unit"
	case errors.Is(err, factory.ErrInvalidDocument):
		return http.StatusBadRequest, "document"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
