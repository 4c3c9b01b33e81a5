// Package handlers provides HTTP request handlers for the isotope API endpoints.
// This file implements the HTTPHandler interface with dependency injection.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/stemerlini/fusion-plots/binding"
	"github.com/stemerlini/fusion-plots/interfaces"
	"github.com/stemerlini/fusion-plots/logging"
	"github.com/stemerlini/fusion-plots/nistparser"
	"github.com/stemerlini/fusion-plots/nistparser/entities"
)

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	parser    interfaces.Parser
	validator interfaces.DataValidator
	health    interfaces.HealthChecker
	source    interfaces.Source
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(parser interfaces.Parser, validator interfaces.DataValidator, health interfaces.HealthChecker, source interfaces.Source) interfaces.HTTPHandler {
	return &HTTPHandlerImpl{
		parser:    parser,
		validator: validator,
		health:    health,
		source:    source,
	}
}

// NuclidesResponse is the body of GET /nuclides
type NuclidesResponse struct {
	Count    int                `json:"count"`
	Warnings int                `json:"warnings"`
	Nuclides []entities.Nuclide `json:"nuclides"`
}

// BindingEnergyResponse is the body of GET /binding-energy
type BindingEnergyResponse struct {
	Normalized bool            `json:"normalized"`
	Count      int             `json:"count"`
	Warnings   int             `json:"warnings"`
	Peak       *binding.Point  `json:"peak,omitempty"`
	Points     []binding.Point `json:"points"`
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// load parses the configured sources into a fresh table. Any failure has
// already been answered when it returns false.
func (h *HTTPHandlerImpl) load(ctx context.Context, w http.ResponseWriter) (*entities.NuclideTable, int, bool) {
	table, warnings, err := h.parser.Load(ctx, h.source)
	h.health.RecordLoad(table.Len(), err)
	logging.AddRequestAttrs(ctx, "records", table.Len(), "warnings", warnings)
	if err != nil {
		h.respondWithLoadError(w, err)
		return nil, warnings, false
	}
	return table, warnings, true
}

// respondWithLoadError maps source and calculation errors to status codes
func (h *HTTPHandlerImpl) respondWithLoadError(w http.ResponseWriter, err error) {
	var shape *binding.ShapeMismatchError

	switch {
	case errors.Is(err, nistparser.ErrTransport):
		logging.Warn("NIST source unavailable", "error", err)
		h.RespondWithError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, nistparser.ErrMalformedRecord), errors.Is(err, entities.ErrRaggedTable), errors.As(err, &shape):
		logging.Warn("NIST data rejected", "error", err)
		h.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.RespondWithError(w, http.StatusGatewayTimeout, "Loading NIST data timed out")
	default:
		logging.Error("Failed to load NIST data", "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Failed to load NIST data")
	}
}

// symbolFilter reads and validates the optional symbol query parameter
func (h *HTTPHandlerImpl) symbolFilter(w http.ResponseWriter, r *http.Request) (string, bool) {
	symbol := strings.TrimSpace(r.URL.Query().Get("symbol"))
	if symbol == "" {
		return "", true
	}
	if err := h.validator.ValidateSymbol(symbol); err != nil {
		logging.Warn("Unusual user input", "symbol", symbol, "error", err)
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return symbol, true
}

// selectSymbol restricts table to one element when symbol is set
func selectSymbol(table *entities.NuclideTable, symbol string) (*entities.NuclideTable, error) {
	if symbol == "" {
		return table, nil
	}
	return table.BySymbol(symbol)
}

// ServeNuclides returns the parsed table, optionally restricted to one element
func (h *HTTPHandlerImpl) ServeNuclides(w http.ResponseWriter, r *http.Request) {
	symbol, ok := h.symbolFilter(w, r)
	if !ok {
		return
	}

	table, warnings, ok := h.load(r.Context(), w)
	if !ok {
		return
	}

	table, err := selectSymbol(table, symbol)
	if err != nil {
		h.respondWithLoadError(w, err)
		return
	}
	nuclides, err := table.Nuclides()
	if err != nil {
		h.respondWithLoadError(w, err)
		return
	}

	h.RespondWithJSON(w, http.StatusOK, NuclidesResponse{
		Count:    len(nuclides),
		Warnings: warnings,
		Nuclides: nuclides,
	})
}

// ServeBindingEnergy returns the binding energy of every isotope, per
// nucleon unless normalize=false
func (h *HTTPHandlerImpl) ServeBindingEnergy(w http.ResponseWriter, r *http.Request) {
	normalize := true
	if raw := r.URL.Query().Get("normalize"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			logging.Warn("Unusual user input", "normalize", raw)
			h.RespondWithError(w, http.StatusBadRequest, "normalize must be true or false")
			return
		}
		normalize = parsed
	}

	symbol, ok := h.symbolFilter(w, r)
	if !ok {
		return
	}

	table, warnings, ok := h.load(r.Context(), w)
	if !ok {
		return
	}

	table, err := selectSymbol(table, symbol)
	if err != nil {
		h.respondWithLoadError(w, err)
		return
	}
	points, err := binding.Curve(table, normalize)
	if err != nil {
		h.respondWithLoadError(w, err)
		return
	}

	response := BindingEnergyResponse{
		Normalized: normalize,
		Count:      len(points),
		Warnings:   warnings,
		Points:     points,
	}
	if peak, found := binding.Peak(points); found {
		response.Peak = &peak
	}

	h.RespondWithJSON(w, http.StatusOK, response)
}

// ServeQuality returns the data quality report of the configured sources
func (h *HTTPHandlerImpl) ServeQuality(w http.ResponseWriter, r *http.Request) {
	table, _, ok := h.load(r.Context(), w)
	if !ok {
		return
	}

	h.RespondWithJSON(w, http.StatusOK, h.validator.ReportDataQuality(table))
}

// HealthCheck reports the outcome of the latest loads without fetching
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, data, httpStatus := h.health.HealthCheck()

	h.RespondWithJSON(w, httpStatus, map[string]any{
		"status": status,
		"source": h.source,
		"data":   data,
	})
}
