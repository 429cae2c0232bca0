package server

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/iwvelando/plantainpro/internal/content"
	"github.com/iwvelando/plantainpro/internal/dashboard"
	"github.com/iwvelando/plantainpro/internal/metrics"
	"github.com/iwvelando/plantainpro/internal/session"
	"github.com/iwvelando/plantainpro/pkg/constants"
	"github.com/iwvelando/plantainpro/pkg/validation"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

//go:embed templates/*.html
var templateFiles embed.FS

const maxRequestBodyBytes = 64 << 10

type tab struct {
	ID    string
	Label string
	Path  string
}

var tabs = []tab{
	{ID: "dashboard", Label: "Business Analysis", Path: "/"},
	{ID: "research", Label: "Research Proposal", Path: "/research"},
	{ID: "factory", Label: "Factory Design", Path: "/factory"},
	{ID: "references", Label: "References", Path: "/references"},
}

type pageData struct {
	Title         string
	Active        string
	Tabs          []tab
	Version       string
	Dashboard     *dashboard.View
	Research      template.HTML
	Factory       content.Factory
	References    []content.Reference
	Resources     []content.ResourceGroup
	CitationStyle []string
}

type handler struct {
	logger  *zap.Logger
	store   *session.Store
	version string
	pages   map[string]*template.Template
}

// NewHandler constructs the HTTP handler that serves the dashboard pages and
// the metrics API. Every visitor gets a session-scoped metrics model from store.
func NewHandler(logger *zap.Logger, store *session.Store, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if store == nil {
		store = session.NewStore(logger, metrics.DefaultAssumptions(), 0)
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:  logger,
		store:   store,
		version: trimmedVersion,
		pages:   make(map[string]*template.Template),
	}
	for _, t := range tabs {
		tmpl, err := template.ParseFS(templateFiles, "templates/layout.html", "templates/"+t.ID+".html")
		if err != nil {
			panic(fmt.Sprintf("failed to parse embedded templates: %v", err))
		}
		h.pages[t.ID] = tmpl
	}

	mux := http.NewServeMux()

	// Views
	mux.HandleFunc("/", h.handleDashboard)
	mux.HandleFunc("/research", h.handleResearch)
	mux.HandleFunc("/factory", h.handleFactory)
	mux.HandleFunc("/references", h.handleReferences)
	mux.HandleFunc("/references/bibtex", h.handleBibTeX)

	// Form submission from the dashboard calculator
	mux.HandleFunc("/assumptions", h.handleAssumptionsForm)

	// JSON API
	mux.HandleFunc("/api/metrics", h.handleMetrics)
	mux.HandleFunc("/api/assumptions", h.handleAssumptions)
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(sub))))

	return requestLogger(logger, mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestLogger(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Debug("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", r.RemoteAddr),
		)
	})
}

// session resolves the visitor's session from the cookie, issuing a new
// cookie when a session had to be created.
func (h *handler) session(w http.ResponseWriter, r *http.Request) *session.Session {
	id := ""
	if cookie, err := r.Cookie(constants.SessionCookieName); err == nil {
		id = cookie.Value
	}

	sess, created := h.store.Get(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     constants.SessionCookieName,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

func (h *handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	view := dashboard.Build(h.session(w, r).Model.Snapshot())
	h.render(w, "dashboard", "Business Analysis", pageData{Dashboard: &view})
}

func (h *handler) handleResearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	research, err := content.ResearchHTML()
	if err != nil {
		h.logger.Error("failed to render research proposal",
			zap.String("op", "server.handleResearch"),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.render(w, "research", "Research Proposal", pageData{Research: research})
}

func (h *handler) handleFactory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.render(w, "factory", "Factory Design", pageData{Factory: content.FactoryDesign()})
}

func (h *handler) handleReferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.render(w, "references", "References", pageData{
		References:    content.References(),
		Resources:     content.AdditionalResources(),
		CitationStyle: content.CitationStyle,
	})
}

func (h *handler) handleBibTeX(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/x-bibtex; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="plantainpro-references.bib"`)
	if _, err := w.Write([]byte(content.BibTeX(content.References()))); err != nil {
		h.logger.Warn("failed to write bibliography",
			zap.String("op", "server.handleBibTeX"),
			zap.Error(err),
		)
	}
}

func (h *handler) handleAssumptionsForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.respondTextError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err), "server.handleAssumptionsForm")
		return
	}

	update, err := parseFormUpdate(r)
	if err != nil {
		h.respondTextError(w, http.StatusBadRequest, err.Error(), "server.handleAssumptionsForm")
		return
	}

	h.session(w, r).Model.Apply(update)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

type metricsResponse struct {
	Session     string                      `json:"session"`
	Assumptions metrics.BusinessAssumptions `json:"assumptions"`
	Derived     derivedPayload              `json:"derived"`
	View        dashboard.View              `json:"view"`
}

// derivedPayload mirrors metrics.DerivedMetrics with non-finite values
// encoded as null.
type derivedPayload struct {
	StaffCount     int      `json:"staffCount"`
	InitialCapital *float64 `json:"initialCapital"`
	DailyRevenue   *float64 `json:"dailyRevenue"`
	MonthlyRevenue *float64 `json:"monthlyRevenue"`
	YearlyRevenue  *float64 `json:"yearlyRevenue"`
	ProfitMargin   *float64 `json:"profitMargin"`
	BreakEvenPoint *float64 `json:"breakEvenPoint"`
}

func (h *handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	sess := h.session(w, r)
	h.writeJSON(w, http.StatusOK, buildMetricsResponse(sess.ID, sess.Model.Snapshot()))
}

func (h *handler) handleAssumptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var update metrics.AssumptionUpdate
	if err := decoder.Decode(&update); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", maxRequestBodyBytes), "server.handleAssumptions")
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode assumptions: %v", err), "server.handleAssumptions")
		return
	}
	if err := validateUpdate(update); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleAssumptions")
		return
	}

	sess := h.session(w, r)
	snapshot := sess.Model.Apply(update)
	h.writeJSON(w, http.StatusOK, buildMetricsResponse(sess.ID, snapshot))
}

func buildMetricsResponse(id string, s metrics.Snapshot) metricsResponse {
	d := s.Derived
	return metricsResponse{
		Session:     id,
		Assumptions: s.Assumptions,
		Derived: derivedPayload{
			StaffCount:     d.StaffCount,
			InitialCapital: finite(d.InitialCapital),
			DailyRevenue:   finite(d.DailyRevenue),
			MonthlyRevenue: finite(d.MonthlyRevenue),
			YearlyRevenue:  finite(d.YearlyRevenue),
			ProfitMargin:   finite(d.ProfitMargin),
			BreakEvenPoint: finite(d.BreakEvenPoint),
		},
		View: dashboard.Build(s),
	}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// parseFormUpdate reads the assumption fields present in a submitted form.
// Blank fields are left unchanged.
func parseFormUpdate(r *http.Request) (metrics.AssumptionUpdate, error) {
	var update metrics.AssumptionUpdate
	for _, hint := range validation.AssumptionHints {
		raw := strings.TrimSpace(r.PostFormValue(hint.Field))
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return metrics.AssumptionUpdate{}, fmt.Errorf("%s: %q is not a number", hint.Field, raw)
		}
		if err := setField(&update, hint.Field, value); err != nil {
			return metrics.AssumptionUpdate{}, err
		}
	}
	return update, validateUpdate(update)
}

func setField(update *metrics.AssumptionUpdate, field string, value float64) error {
	switch field {
	case "dailyCapacity":
		update.DailyCapacity = &value
	case "sellingPrice":
		update.SellingPrice = &value
	case "currencyDepreciationFactor":
		update.CurrencyDepreciationFactor = &value
	default:
		return fmt.Errorf("unknown assumption field %q", field)
	}
	return nil
}

func validateUpdate(update metrics.AssumptionUpdate) error {
	fields := []struct {
		name  string
		value *float64
	}{
		{"dailyCapacity", update.DailyCapacity},
		{"sellingPrice", update.SellingPrice},
		{"currencyDepreciationFactor", update.CurrencyDepreciationFactor},
	}
	for _, f := range fields {
		if f.value != nil && (math.IsNaN(*f.value) || math.IsInf(*f.value, 0)) {
			return fmt.Errorf("%s must be a finite number", f.name)
		}
	}
	return nil
}

func (h *handler) render(w http.ResponseWriter, page, title string, data pageData) {
	data.Title = title
	data.Active = page
	data.Tabs = tabs
	data.Version = h.version

	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.Error("failed to render page",
			zap.String("op", "server.render"),
			zap.String("page", page),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to write page",
			zap.String("op", "server.render"),
			zap.String("page", page),
			zap.Error(err),
		)
	}
}

func (h *handler) respondTextError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Warn("request rejected",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	http.Error(w, msg, status)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Warn("request rejected",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
