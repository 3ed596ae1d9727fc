package valuation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"property_valuation/pkg/core/calc"
	"property_valuation/pkg/core/comparables"
	"property_valuation/pkg/core/export"
	"property_valuation/pkg/core/report"
	"property_valuation/pkg/core/store"
	"property_valuation/pkg/core/valuation"
	"property_valuation/pkg/models"
)

const maxBodyBytes = 10 << 20

// PlotLoader loads a plot by ID.
type PlotLoader interface {
	Load(ctx context.Context, id uuid.UUID) (*models.Plot, error)
}

// ResultSaver persists computed results.
type ResultSaver interface {
	Save(ctx context.Context, rec store.ValuationRecord) error
}

// Handler holds dependencies for valuation endpoints. Plots and Results may
// be nil when no database or cache is configured.
type Handler struct {
	Plots    PlotLoader
	Results  ResultSaver
	Selector *comparables.Selector
	Criteria comparables.Criteria
	Options  valuation.Options
	Workers  int
	Logger   *zap.Logger
}

// NewHandler creates a valuation handler with default options.
func NewHandler(logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Logger: logger, Selector: comparables.NewSelector(nil, logger)}
}

// Register mounts every endpoint on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/valuation/compute", h.HandleCompute)
	mux.HandleFunc("/api/valuation/report", h.HandleReport)
	mux.HandleFunc("/api/valuation/export", h.HandleExport)
	mux.HandleFunc("/api/comparables/select", h.HandleSelectComparables)
}

// PlotRequest names a plot inline or by ID.
type PlotRequest struct {
	Plot        *models.Plot `json:"plot"`
	PlotID      *uuid.UUID   `json:"plot_id"`
	RentalBasis string       `json:"rental_basis"` // "as_reported" or "market_rate"
}

type ComputeResponse struct {
	PlotID  uuid.UUID                     `json:"plot_id"`
	Result  valuation.Result              `json:"result"`
	Summary []valuation.ValuationLineItem `json:"summary"`
}

type ReportRequest struct {
	PlotRequest
	Template string `json:"template" validate:"required"`
	Format   string `json:"format"` // "html" (default) or "markdown"
	Mode     string `json:"mode"`   // "preview" (default) or "export"
}

type ReportResponse struct {
	HTML       string            `json:"html"`
	Unresolved []string          `json:"unresolved"`
	Values     map[string]string `json:"values"`
}

type ExportRequest struct {
	Plots       []*models.Plot `json:"plots" validate:"required,min=1"`
	RentalBasis string         `json:"rental_basis"`
}

type SelectRequest struct {
	Subject  *models.Plot            `json:"subject" validate:"required"`
	Pool     []models.ComparablePlot `json:"pool"`
	Criteria *comparables.Criteria   `json:"criteria"`
	AsOf     *time.Time              `json:"as_of"`
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// preflight writes CORS headers and reports whether the request is finished.
func preflight(w http.ResponseWriter, r *http.Request) bool {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return true
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return true
	}
	return false
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	if err := models.Validator().Struct(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeJSON encodes v before the status is committed. Encoding failures
// answer 500.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		h.Logger.Error("response encoding failed", zap.Error(err))
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		h.Logger.Warn("response write failed", zap.Error(err))
	}
}

func (h *Handler) options(rentalBasis string) (valuation.Options, error) {
	opts := h.Options
	if rentalBasis == "" {
		return opts, nil
	}
	basis, err := calc.ParseRentalBasis(rentalBasis)
	if err != nil {
		return opts, err
	}
	opts.RentalBasis = basis
	return opts, nil
}

// resolvePlot returns the inline plot or loads it. It writes the error
// response itself and returns nil on failure.
func (h *Handler) resolvePlot(w http.ResponseWriter, r *http.Request, req PlotRequest) *models.Plot {
	plot := req.Plot
	if plot == nil && req.PlotID != nil {
		if h.Plots == nil {
			http.Error(w, "Plot lookup unavailable: no database configured", http.StatusServiceUnavailable)
			return nil
		}
		loaded, err := h.Plots.Load(r.Context(), *req.PlotID)
		if errors.Is(err, store.ErrPlotNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return nil
		}
		if err != nil {
			h.Logger.Error("plot load failed", zap.String("plot_id", req.PlotID.String()), zap.Error(err))
			http.Error(w, "Failed to load plot", http.StatusInternalServerError)
			return nil
		}
		plot = loaded
	}
	if plot == nil {
		http.Error(w, "Either plot or plot_id is required", http.StatusBadRequest)
		return nil
	}
	if err := plot.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}
	return plot
}

func (h *Handler) value(w http.ResponseWriter, r *http.Request, req PlotRequest) (*models.Plot, *valuation.Result) {
	opts, err := h.options(req.RentalBasis)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, nil
	}
	plot := h.resolvePlot(w, r, req)
	if plot == nil {
		return nil, nil
	}
	res, err := valuation.Value(plot, opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return nil, nil
	}
	return plot, &res
}

// HandleCompute values one plot.
func (h *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r) {
		return
	}
	var req PlotRequest
	if !h.decode(w, r, &req) {
		return
	}
	plot, res := h.value(w, r, req)
	if res == nil {
		return
	}

	h.Logger.Info("plot valued",
		zap.String("plot_id", plot.ID.String()),
		zap.String("classification", string(plot.Classification)),
		zap.Float64("market_value", res.MarketValue))

	if h.Results != nil {
		rec := store.ValuationRecord{PlotID: plot.ID, PlotName: plot.Name, Result: *res}
		if err := h.Results.Save(r.Context(), rec); err != nil {
			h.Logger.Warn("result not persisted", zap.String("plot_id", plot.ID.String()), zap.Error(err))
		}
	}

	h.writeJSON(w, http.StatusOK, ComputeResponse{
		PlotID:  plot.ID,
		Result:  *res,
		Summary: valuation.Summarize(*res),
	})
}

// HandleReport substitutes a plot's figures into a report template.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r) {
		return
	}
	var req ReportRequest
	if !h.decode(w, r, &req) {
		return
	}
	mode, err := report.ParseMode(req.Mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	format, err := report.ParseFormat(req.Format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	plot, res := h.value(w, r, req.PlotRequest)
	if res == nil {
		return
	}

	table, err := report.Resolve(report.ReportInput{Plot: plot, Result: *res}, mode)
	if errors.Is(err, report.ErrAmountTooLarge) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rendered, err := report.Render(report.Template{Name: plot.Name, Body: req.Template, Format: format}, table)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(rendered.Unresolved) > 0 {
		h.Logger.Debug("report placeholders unresolved", zap.Strings("keys", rendered.Unresolved))
	}
	h.writeJSON(w, http.StatusOK, ReportResponse{
		HTML:       rendered.HTML,
		Unresolved: rendered.Unresolved,
		Values:     table,
	})
}

// HandleExport values a batch of plots and returns an xlsx workbook.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r) {
		return
	}
	var req ExportRequest
	if !h.decode(w, r, &req) {
		return
	}
	opts, err := h.options(req.RentalBasis)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := export.Compute(r.Context(), req.Plots, opts, h.Workers, h.Logger)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	data, err := export.Workbook(rows)
	if err != nil {
		h.Logger.Error("workbook build failed", zap.Error(err))
		http.Error(w, "Failed to build workbook", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("valuations_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// HandleSelectComparables shortlists comparables for a subject plot.
func (h *Handler) HandleSelectComparables(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r) {
		return
	}
	var req SelectRequest
	if !h.decode(w, r, &req) {
		return
	}
	criteria := h.Criteria
	if req.Criteria != nil {
		criteria = *req.Criteria
	}
	asOf := req.Subject.AnalysisDate
	if req.AsOf != nil {
		asOf = *req.AsOf
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}
	pool := req.Pool
	if pool == nil {
		pool = req.Subject.Comparables
	}

	selector := h.Selector
	if selector == nil {
		selector = comparables.NewSelector(nil, h.Logger)
	}
	sel, err := selector.Select(r.Context(), req.Subject, pool, criteria, asOf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	h.writeJSON(w, http.StatusOK, sel)
}
