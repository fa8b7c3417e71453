package restserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/chrissnell/climateapi/internal/climate"
	"github.com/chrissnell/climateapi/internal/log"
	"github.com/chrissnell/climateapi/pkg/responseformat"
	"github.com/gorilla/mux"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

var indexRoutes = []string{
	APIPrefix + "/precipitation",
	APIPrefix + "/stations",
	APIPrefix + "/tobs",
	APIPrefix + "/MM-DD",
	APIPrefix + "/YYYY-MM-DD/YYYY-MM-DD",
	APIPrefix + "/since/YYYY-MM-DD",
}

// ServeIndex lists the available routes as plain text
func (h *Handlers) ServeIndex(w http.ResponseWriter, req *http.Request) {
	var b strings.Builder
	b.WriteString("Welcome to the Climate App API!\n")
	b.WriteString("Available Routes:\n")
	for _, r := range indexRoutes {
		b.WriteString(r)
		b.WriteString("\n")
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(b.String())); err != nil {
		log.Error("error writing index:", err)
	}
}

// GetHealth reports whether the observation store is reachable
func (h *Handlers) GetHealth(w http.ResponseWriter, req *http.Request) {
	if err := h.controller.Engine.Ping(req.Context()); err != nil {
		log.Errorf("health check failed: %v", err)
		h.write(w, req, http.StatusServiceUnavailable, HealthStatus{Status: "unavailable", Error: err.Error()})
		return
	}
	h.write(w, req, http.StatusOK, HealthStatus{Status: "ok"})
}

// GetPrecipitation lists date and temperature for every observation in the window
func (h *Handlers) GetPrecipitation(w http.ResponseWriter, req *http.Request) {
	obs, err := h.controller.Engine.ObservationsInWindow(req.Context(), h.controller.Window)
	if err != nil {
		h.serverError(w, req, err)
		return
	}
	h.write(w, req, http.StatusOK, transformPrecipitation(obs))
}

// GetTOBS lists the temperature of every observation in the window
func (h *Handlers) GetTOBS(w http.ResponseWriter, req *http.Request) {
	obs, err := h.controller.Engine.ObservationsInWindow(req.Context(), h.controller.Window)
	if err != nil {
		h.serverError(w, req, err)
		return
	}
	h.write(w, req, http.StatusOK, transformTOBS(obs))
}

// GetStations lists every station identifier
func (h *Handlers) GetStations(w http.ResponseWriter, req *http.Request) {
	ids, err := h.controller.Engine.ListStations(req.Context())
	if err != nil {
		h.serverError(w, req, err)
		return
	}
	h.write(w, req, http.StatusOK, transformStations(ids))
}

// GetDailyNormals returns the historical min/avg/max for the MM-DD key in {start}
func (h *Handlers) GetDailyNormals(w http.ResponseWriter, req *http.Request) {
	raw := mux.Vars(req)["start"]
	key, err := climate.ParseMonthDay(raw)
	if err != nil {
		h.badRequest(w, req, err, "start must be a month-day in MM-DD form")
		return
	}

	stats, err := h.controller.Engine.DailyNormals(req.Context(), key)
	if err != nil {
		h.serverError(w, req, err)
		return
	}
	h.write(w, req, http.StatusOK, transformStats(stats))
}

// GetRangeStats returns min/avg/max over the inclusive range {start}..{end}
func (h *Handlers) GetRangeStats(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	start, err := climate.ParseDate(vars["start"])
	if err != nil {
		h.badRequest(w, req, err, "start must be a date in YYYY-MM-DD form")
		return
	}
	end, err := climate.ParseDate(vars["end"])
	if err != nil {
		h.badRequest(w, req, err, "end must be a date in YYYY-MM-DD form")
		return
	}

	stats, err := h.controller.Engine.RangeStats(req.Context(), start, end)
	if err != nil {
		h.serverError(w, req, err)
		return
	}
	h.write(w, req, http.StatusOK, transformStats(stats))
}

// GetStatsSince returns min/avg/max over every observation on or after {start}
func (h *Handlers) GetStatsSince(w http.ResponseWriter, req *http.Request) {
	start, err := climate.ParseDate(mux.Vars(req)["start"])
	if err != nil {
		h.badRequest(w, req, err, "start must be a date in YYYY-MM-DD form")
		return
	}

	stats, err := h.controller.Engine.StatsSince(req.Context(), start)
	if err != nil {
		h.serverError(w, req, err)
		return
	}
	h.write(w, req, http.StatusOK, transformStats(stats))
}

func (h *Handlers) write(w http.ResponseWriter, req *http.Request, status int, data any) {
	if err := h.formatter.WriteStatus(w, req, status, data, nil); err != nil {
		log.Errorf("error encoding response for %s: %v", req.URL.Path, err)
	}
}

func (h *Handlers) badRequest(w http.ResponseWriter, req *http.Request, err error, message string) {
	if !errors.Is(err, climate.ErrInvalidDate) && !errors.Is(err, climate.ErrInvalidMonthDay) {
		h.serverError(w, req, err)
		return
	}
	log.Debugf("invalid request %s: %v", req.URL.Path, err)
	if encErr := h.formatter.WriteError(w, req, http.StatusBadRequest, fmt.Sprintf("%s: %v", message, err)); encErr != nil {
		log.Errorf("error encoding error response: %v", encErr)
	}
}

func (h *Handlers) serverError(w http.ResponseWriter, req *http.Request, err error) {
	log.Errorf("error serving %s: %v", req.URL.Path, err)
	if encErr := h.formatter.WriteError(w, req, http.StatusInternalServerError, "error querying climate data"); encErr != nil {
		log.Errorf("error encoding error response: %v", encErr)
	}
}
