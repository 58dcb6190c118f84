package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"trade-journal-go/internal/filter"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"
	"trade-journal-go/internal/pricing"
	"trade-journal-go/internal/storage"
	"trade-journal-go/internal/validator"
)

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log     *zap.Logger
	journal *journal.Journal
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, j *journal.Journal) *APIHandler {
	return &APIHandler{log: log, journal: j}
}

// Routes registers every endpoint on a new mux.
func (h *APIHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/trades", h.ListTradesHandler)
	mux.HandleFunc("POST /api/trades", h.CreateTradeHandler)
	mux.HandleFunc("DELETE /api/trades", h.DeleteAllTradesHandler)
	mux.HandleFunc("GET /api/trades/{id}", h.GetTradeHandler)
	mux.HandleFunc("PUT /api/trades/{id}", h.UpdateTradeHandler)
	mux.HandleFunc("DELETE /api/trades/{id}", h.DeleteTradeHandler)
	mux.HandleFunc("POST /api/trades/{id}/close", h.CloseTradeHandler)

	mux.HandleFunc("GET /api/statistics", h.StatisticsHandler)
	mux.HandleFunc("GET /api/equity", h.EquityHandler)
	mux.HandleFunc("GET /api/monthly", h.MonthlyHandler)
	mux.HandleFunc("GET /api/recent", h.RecentHandler)
	mux.HandleFunc("GET /api/symbols", h.SymbolsHandler)
	mux.HandleFunc("POST /api/position-size", h.PositionSizeHandler)

	mux.HandleFunc("GET /api/settings", h.GetSettingsHandler)
	mux.HandleFunc("PUT /api/settings", h.SaveSettingsHandler)
	mux.HandleFunc("GET /api/user", h.GetUserHandler)
	mux.HandleFunc("POST /api/user", h.LoginHandler)
	mux.HandleFunc("DELETE /api/user", h.LogoutHandler)
	mux.HandleFunc("GET /api/drafts", h.ListDraftsHandler)
	mux.HandleFunc("POST /api/drafts", h.SaveDraftHandler)
	mux.HandleFunc("DELETE /api/drafts/{id}", h.DeleteDraftHandler)
	mux.HandleFunc("GET /api/templates", h.ListTemplatesHandler)
	mux.HandleFunc("POST /api/templates", h.SaveTemplateHandler)
	mux.HandleFunc("DELETE /api/templates/{id}", h.DeleteTemplateHandler)

	mux.HandleFunc("GET /api/export.csv", h.ExportCSVHandler)
	mux.HandleFunc("GET /api/export.json", h.ExportJSONHandler)
	mux.HandleFunc("POST /api/import", h.ImportHandler)

	return mux
}

// ListTradesHandler returns one page of filtered, sorted trades.
func (h *APIHandler) ListTradesHandler(w http.ResponseWriter, r *http.Request) {
	spec, err := specFromQuery(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	q := r.URL.Query()
	page := intParam(q.Get("page"), 1)
	pageSize := intParam(q.Get("pageSize"), 0)

	result, err := h.journal.ListTrades(r.Context(), spec, page, pageSize)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// CreateTradeHandler submits a new trade.
func (h *APIHandler) CreateTradeHandler(w http.ResponseWriter, r *http.Request) {
	var trade models.Trade
	if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
		http.Error(w, "Invalid trade payload", http.StatusBadRequest)
		return
	}
	created, err := h.journal.SubmitTrade(r.Context(), trade)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

// GetTradeHandler returns one trade.
func (h *APIHandler) GetTradeHandler(w http.ResponseWriter, r *http.Request) {
	trade, err := h.journal.GetTrade(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, trade)
}

// UpdateTradeHandler merges a partial trade into an existing one.
func (h *APIHandler) UpdateTradeHandler(w http.ResponseWriter, r *http.Request) {
	var patch models.TradePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid trade payload", http.StatusBadRequest)
		return
	}
	updated, err := h.journal.EditTrade(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

// CloseTradeHandler records the exit price of an open trade.
func (h *APIHandler) CloseTradeHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ExitPrice float64 `json:"exitPrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid close payload", http.StatusBadRequest)
		return
	}
	closed, err := h.journal.CloseTrade(r.Context(), r.PathValue("id"), body.ExitPrice)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, closed)
}

// DeleteTradeHandler removes one trade.
func (h *APIHandler) DeleteTradeHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.journal.DeleteTrade(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllTradesHandler wipes the trade history. The caller must pass confirm=true.
func (h *APIHandler) DeleteAllTradesHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		http.Error(w, "Deleting all trades requires confirm=true", http.StatusBadRequest)
		return
	}
	if err := h.journal.DeleteAllTrades(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StatisticsHandler returns the summary statistics of the filtered trades.
func (h *APIHandler) StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	spec, err := specFromQuery(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	summary, err := h.journal.Statistics(r.Context(), spec)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// EquityHandler returns the equity curve.
func (h *APIHandler) EquityHandler(w http.ResponseWriter, r *http.Request) {
	curve, err := h.journal.EquityCurve(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, curve)
}

// MonthlyHandler returns the monthly profit series.
func (h *APIHandler) MonthlyHandler(w http.ResponseWriter, r *http.Request) {
	months, err := h.journal.MonthlySeries(r.Context(), r.URL.Query().Get("timeframe"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, months)
}

// RecentHandler returns the latest trades for the dashboard.
func (h *APIHandler) RecentHandler(w http.ResponseWriter, r *http.Request) {
	trades, err := h.journal.RecentTrades(r.Context(), intParam(r.URL.Query().Get("limit"), 5))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, trades)
}

// SymbolsHandler returns the distinct traded symbols.
func (h *APIHandler) SymbolsHandler(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.journal.Symbols(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, symbols)
}

// PositionSizeHandler runs the risk calculator.
func (h *APIHandler) PositionSizeHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Balance      float64 `json:"balance"`
		RiskPercent  float64 `json:"riskPercent"`
		StopLossPips float64 `json:"stopLossPips"`
		Symbol       string  `json:"symbol"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid sizing payload", http.StatusBadRequest)
		return
	}
	sizing, err := h.journal.PositionSize(r.Context(), pricing.SizingInput{
		Balance:      body.Balance,
		RiskPercent:  body.RiskPercent,
		StopLossPips: body.StopLossPips,
		Symbol:       body.Symbol,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sizing)
}

// GetSettingsHandler returns the saved settings or the configured defaults.
func (h *APIHandler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := h.journal.GetSettings(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, settings)
}

// SaveSettingsHandler validates and replaces the settings.
func (h *APIHandler) SaveSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "Invalid settings payload", http.StatusBadRequest)
		return
	}
	saved, err := h.journal.SaveSettings(r.Context(), settings)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

// GetUserHandler returns the logged-in profile without its PIN.
func (h *APIHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	profile, ok, err := h.journal.GetUser(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !ok {
		http.Error(w, "No user logged in", http.StatusNotFound)
		return
	}
	profile.PIN = ""
	h.writeJSON(w, http.StatusOK, profile)
}

// LoginHandler records a login with a username and a 4-digit PIN.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		PIN      string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid login payload", http.StatusBadRequest)
		return
	}
	profile, err := h.journal.SetUser(r.Context(), body.Username, body.PIN)
	if err != nil {
		h.writeError(w, err)
		return
	}
	profile.PIN = ""
	h.writeJSON(w, http.StatusOK, profile)
}

// LogoutHandler clears the logged-in profile.
func (h *APIHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.journal.ClearUser(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDraftsHandler returns the drafts, newest first.
func (h *APIHandler) ListDraftsHandler(w http.ResponseWriter, r *http.Request) {
	drafts, err := h.journal.ListDrafts(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, drafts)
}

// SaveDraftHandler stores a partial trade as a draft.
func (h *APIHandler) SaveDraftHandler(w http.ResponseWriter, r *http.Request) {
	var patch models.TradePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid draft payload", http.StatusBadRequest)
		return
	}
	draft, err := h.journal.SaveDraft(r.Context(), patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, draft)
}

// DeleteDraftHandler removes one draft.
func (h *APIHandler) DeleteDraftHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.journal.DeleteDraft(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTemplatesHandler returns the saved templates.
func (h *APIHandler) ListTemplatesHandler(w http.ResponseWriter, r *http.Request) {
	templates, err := h.journal.ListTemplates(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, templates)
}

// SaveTemplateHandler stores a reusable set of trade parameters.
func (h *APIHandler) SaveTemplateHandler(w http.ResponseWriter, r *http.Request) {
	var tpl models.Template
	if err := json.NewDecoder(r.Body).Decode(&tpl); err != nil {
		http.Error(w, "Invalid template payload", http.StatusBadRequest)
		return
	}
	saved, err := h.journal.SaveTemplate(r.Context(), tpl)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, saved)
}

// DeleteTemplateHandler removes one template.
func (h *APIHandler) DeleteTemplateHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.journal.DeleteTemplate(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportCSVHandler downloads every trade as CSV.
func (h *APIHandler) ExportCSVHandler(w http.ResponseWriter, r *http.Request) {
	out, err := h.journal.ExportCSV(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trades-`+time.Now().Format("2006-01-02")+`.csv"`)
	w.Write([]byte(out))
}

// ExportJSONHandler downloads the whole journal as a JSON snapshot.
func (h *APIHandler) ExportJSONHandler(w http.ResponseWriter, r *http.Request) {
	data, err := h.journal.ExportJSON(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="journal-`+time.Now().Format("2006-01-02")+`.json"`)
	w.Write(data)
}

// ImportHandler restores a JSON snapshot.
func (h *APIHandler) ImportHandler(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "Invalid snapshot", http.StatusBadRequest)
		return
	}
	if err := h.journal.ImportJSON(r.Context(), raw); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps domain errors to status codes: 400 for rejected input, 404 for
// unknown ids, 500 for storage failures and anything unexpected.
func (h *APIHandler) writeError(w http.ResponseWriter, err error) {
	var verr *validator.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, filter.ErrInvalidSpec),
		errors.Is(err, journal.ErrDuplicateID),
		errors.Is(err, journal.ErrInvalidProfile),
		errors.Is(err, journal.ErrInvalidSettings),
		errors.Is(err, journal.ErrUnsupportedImport),
		errors.Is(err, pricing.ErrInvalidSizingInput),
		errors.Is(err, pricing.ErrRiskTooHigh):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, journal.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, storage.ErrStorage):
		h.log.Error("Storage failure", zap.Error(err))
		http.Error(w, "Storage unavailable", http.StatusInternalServerError)
	default:
		h.log.Error("Request failed", zap.Error(err))
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

// specFromQuery reads symbol, direction, timeframe, result, date and sort parameters.
func specFromQuery(r *http.Request) (filter.Spec, error) {
	q := r.URL.Query()
	return filter.NewSpec(filter.Params{
		Symbol:    q.Get("symbol"),
		Direction: q.Get("direction"),
		Timeframe: q.Get("timeframe"),
		Result:    q.Get("result"),
		Date:      q.Get("date"),
		Sort:      q.Get("sort"),
	})
}

func intParam(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
