package handler

import (
	"encoding/json"
	"net/http"
	"time"

	marketcapDomain "github.com/mewroo/market-history-service/internal/domain/marketcap"
	v1 "github.com/mewroo/market-history-service/internal/domain/marketcap/v1"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/marketcap"
	"github.com/mewroo/market-history-service/pkg/errors"
	"github.com/mewroo/market-history-service/pkg/logger"
)

// MarketCapHandler serves market capitalization snapshot endpoints.
type MarketCapHandler struct {
	usecase marketcapDomain.Usecase
	logger  logger.Interface
}

// NewMarketCapHandler creates a new MarketCapHandler.
func NewMarketCapHandler(usecase marketcapDomain.Usecase, logger logger.Interface) *MarketCapHandler {
	return &MarketCapHandler{
		usecase: usecase,
		logger:  logger,
	}
}

type capPayload struct {
	Ticker    string  `json:"ticker"`
	MarketCap float64 `json:"market_cap"`
	Currency  string  `json:"currency,omitempty"`
}

type capBatchRequest struct {
	AsOf      string       `json:"asof_date"`
	Source    string       `json:"source"`
	Force     bool         `json:"force"`
	Snapshots []capPayload `json:"snapshots"`
}

// IngestBatch handles POST /api/finance/marketcap.
func (h *MarketCapHandler) IngestBatch(w http.ResponseWriter, r *http.Request) {
	var req capBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewErrorDetails("invalid request body: "+err.Error(), string(errors.GeneralBadRequestError), "body"))
		return
	}

	asOf, err := time.Parse("2006-01-02", req.AsOf)
	if err != nil {
		writeError(w, errors.NewErrorDetails("asof_date must be YYYY-MM-DD", string(errors.GeneralBadRequestError), "asof_date"))
		return
	}

	batch := v1.Batch{
		AsOf:      asOf,
		Source:    req.Source,
		Force:     req.Force,
		Snapshots: make([]*marketcap.Snapshot, len(req.Snapshots)),
	}
	for i, s := range req.Snapshots {
		batch.Snapshots[i] = &marketcap.Snapshot{
			AsOfDate:  asOf,
			Ticker:    s.Ticker,
			MarketCap: s.MarketCap,
			Currency:  s.Currency,
			Source:    req.Source,
		}
	}

	result, err := h.usecase.IngestBatch(r.Context(), batch)
	if err != nil {
		h.logger.ErrorContext(r.Context(), err, logger.Field{Key: "asof_date", Value: req.AsOf})
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"written": result.Written, "skipped": result.Skipped})
}

type capsResponse struct {
	AsOf string       `json:"asof_date"`
	Data []capPayload `json:"data"`
}

// Latest handles GET /api/finance/marketcap.
func (h *MarketCapHandler) Latest(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.usecase.ListLatest(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), err)
		writeError(w, err)
		return
	}

	res := capsResponse{Data: make([]capPayload, len(snapshots))}
	for i, s := range snapshots {
		res.Data[i] = capPayload{
			Ticker:    s.Ticker,
			MarketCap: s.MarketCap,
			Currency:  s.Currency,
		}
	}
	if len(snapshots) > 0 {
		res.AsOf = snapshots[0].AsOfDate.Format("2006-01-02")
	}
	writeJSON(w, http.StatusOK, res)
}
