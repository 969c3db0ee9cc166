package handler

import (
	"net/http"
	"strconv"
	"time"

	historyDomain "github.com/mewroo/market-history-service/internal/domain/history"
	v1 "github.com/mewroo/market-history-service/internal/domain/history/v1"
	"github.com/mewroo/market-history-service/pkg/config"
	"github.com/mewroo/market-history-service/pkg/errors"
	"github.com/mewroo/market-history-service/pkg/logger"
)

// HistoryHandler serves the chart-facing read endpoints.
type HistoryHandler struct {
	usecase historyDomain.Usecase
	logger  logger.Interface
	config  config.ChartConfig
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(usecase historyDomain.Usecase, logger logger.Interface, config config.ChartConfig) *HistoryHandler {
	return &HistoryHandler{
		usecase: usecase,
		logger:  logger,
		config:  config,
	}
}

type symbolsResponse struct {
	Data []string `json:"data"`
}

// Symbols handles GET /api/finance/symbols.
func (h *HistoryHandler) Symbols(w http.ResponseWriter, r *http.Request) {
	limit := h.config.SymbolLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, errors.NewErrorDetails("limit must be a positive integer", string(errors.GeneralBadRequestError), "limit"))
			return
		}
		limit = parsed
	}

	symbols, err := h.usecase.ListSymbols(r.Context(), limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), err)
		writeError(w, err)
		return
	}

	if symbols == nil {
		symbols = []string{}
	}
	writeJSON(w, http.StatusOK, symbolsResponse{Data: symbols})
}

type metaResponse struct {
	Symbol  string  `json:"symbol"`
	MinDate *string `json:"min_date"`
	MaxDate *string `json:"max_date"`
}

// Meta handles GET /api/finance/meta.
func (h *HistoryHandler) Meta(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		writeError(w, errors.NewErrorDetails("symbol is required", string(errors.GeneralBadRequestError), "symbol"))
		return
	}

	meta, err := h.usecase.GetMeta(r.Context(), symbol)
	if err != nil {
		h.logger.ErrorContext(r.Context(), err, logger.Field{Key: "symbol", Value: symbol})
		writeError(w, err)
		return
	}

	res := metaResponse{Symbol: symbol}
	if meta.MinTimestamp != nil {
		res.MinDate = formatDate(*meta.MinTimestamp)
	}
	if meta.MaxTimestamp != nil {
		res.MaxDate = formatDate(*meta.MaxTimestamp)
	}
	writeJSON(w, http.StatusOK, res)
}

type historyPoint struct {
	TS    string  `json:"ts"`
	Close float64 `json:"close"`
}

type historyResponse struct {
	Data        []historyPoint `json:"data"`
	Provisional bool           `json:"provisional,omitempty"`
}

// History handles GET /api/finance/history.
func (h *HistoryHandler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	symbol := q.Get("symbol")
	if symbol == "" {
		writeError(w, errors.NewErrorDetails("symbol is required", string(errors.GeneralBadRequestError), "symbol"))
		return
	}

	gran := q.Get("granularity")
	if gran == "" {
		gran = "day"
	}

	query := v1.Query{
		Ticker:      symbol,
		Interval:    q.Get("interval"),
		Preset:      q.Get("preset"),
		Granularity: gran,
	}

	if raw := q.Get("start"); raw != "" {
		start, err := parseDate(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		query.Start = &start
	}
	if raw := q.Get("end"); raw != "" {
		end, err := parseDate(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		query.End = &end
	}

	if (query.Start == nil) != (query.End == nil) {
		writeError(w, errors.NewErrorDetails(
			"start and end must be supplied together",
			string(errors.GeneralBadRequestError), "range"))
		return
	}
	if query.Preset == "" && query.Start == nil {
		query.Preset = h.config.DefaultPreset
	}

	series, err := h.usecase.GetHistory(r.Context(), query)
	if err != nil {
		h.logger.ErrorContext(r.Context(), err, logger.Field{Key: "symbol", Value: symbol})
		writeError(w, err)
		return
	}

	res := historyResponse{Data: make([]historyPoint, len(series.Points)), Provisional: series.Provisional}
	for i, p := range series.Points {
		res.Data[i] = historyPoint{TS: p.Timestamp.Format(time.RFC3339), Close: p.Close}
	}
	writeJSON(w, http.StatusOK, res)
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewErrorDetails(
		"dates must be YYYY-MM-DD or RFC 3339: "+raw,
		string(errors.GeneralBadRequestError), "date")
}

func formatDate(t time.Time) *string {
	s := t.Format("2006-01-02")
	return &s
}
