package handler

import (
	"encoding/json"
	"net/http"
	"time"

	ingestDomain "github.com/mewroo/market-history-service/internal/domain/ingest"
	v1 "github.com/mewroo/market-history-service/internal/domain/ingest/v1"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/ingeststate"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/price"
	"github.com/mewroo/market-history-service/pkg/errors"
	"github.com/mewroo/market-history-service/pkg/logger"
)

// IngestHandler serves ingestion and watermark management endpoints.
type IngestHandler struct {
	usecase ingestDomain.Usecase
	logger  logger.Interface
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(usecase ingestDomain.Usecase, logger logger.Interface) *IngestHandler {
	return &IngestHandler{
		usecase: usecase,
		logger:  logger,
	}
}

type ingestRow struct {
	Timestamp time.Time `json:"ts"`
	Ticker    string    `json:"ticker"`
	Interval  string    `json:"interval"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	AdjClose  *float64  `json:"adj_close"`
	Volume    int64     `json:"volume"`
}

type ingestRequest struct {
	Source string      `json:"source"`
	Target string      `json:"target"`
	Key    string      `json:"key"`
	Force  bool        `json:"force"`
	Rows   []ingestRow `json:"rows"`
}

type rejectionResponse struct {
	Ticker string    `json:"ticker"`
	TS     time.Time `json:"ts"`
	Reason string    `json:"reason"`
}

type ingestResponse struct {
	Written  int                 `json:"written"`
	Skipped  int                 `json:"skipped"`
	Rejected []rejectionResponse `json:"rejected"`
}

// Ingest handles POST /api/finance/ingest.
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewErrorDetails("invalid request body: "+err.Error(), string(errors.GeneralBadRequestError), "body"))
		return
	}
	if req.Source == "" || req.Target == "" || req.Key == "" {
		writeError(w, errors.NewErrorDetails("source, target and key are required", string(errors.GeneralBadRequestError), "identity"))
		return
	}

	batch := v1.Batch{
		Source: req.Source,
		Target: req.Target,
		Key:    req.Key,
		Force:  req.Force,
		Rows:   make([]*price.PriceTick, len(req.Rows)),
	}
	for i, row := range req.Rows {
		adjClose := row.Close
		if row.AdjClose != nil {
			adjClose = *row.AdjClose
		}
		batch.Rows[i] = &price.PriceTick{
			Timestamp: row.Timestamp,
			Ticker:    row.Ticker,
			Interval:  row.Interval,
			Open:      row.Open,
			High:      row.High,
			Low:       row.Low,
			Close:     row.Close,
			AdjClose:  adjClose,
			Volume:    row.Volume,
		}
	}

	result, err := h.usecase.IngestBatch(r.Context(), batch)
	if err != nil {
		h.logger.ErrorContext(r.Context(), err,
			logger.Field{Key: "source", Value: req.Source},
			logger.Field{Key: "key", Value: req.Key},
		)
		writeError(w, err)
		return
	}

	res := ingestResponse{
		Written:  result.Written,
		Skipped:  result.Skipped,
		Rejected: make([]rejectionResponse, len(result.Rejected)),
	}
	for i, rej := range result.Rejected {
		res.Rejected[i] = rejectionResponse{
			Ticker: rej.Row.Ticker,
			TS:     rej.Row.Timestamp,
			Reason: rej.Reason.Error(),
		}
	}
	writeJSON(w, http.StatusOK, res)
}

type watermarkResponse struct {
	Source        string     `json:"source"`
	Target        string     `json:"target"`
	Key           string     `json:"key"`
	LastTimestamp *time.Time `json:"last_ts"`
	LastAsOf      *time.Time `json:"last_asof_date"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Watermark handles GET /api/finance/watermark.
func (h *IngestHandler) Watermark(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	source, target, key := q.Get("source"), q.Get("target"), q.Get("key")
	if source == "" || target == "" || key == "" {
		writeError(w, errors.NewErrorDetails("source, target and key are required", string(errors.GeneralBadRequestError), "identity"))
		return
	}

	wm, err := h.usecase.GetWatermark(r.Context(), ingeststate.Identity{Source: source, Target: target, Key: key})
	if err != nil {
		h.logger.ErrorContext(r.Context(), err)
		writeError(w, err)
		return
	}
	if wm == nil {
		writeError(w, errors.NewErrorDetails("no watermark for identity", string(errors.GeneralNotFoundError), "identity"))
		return
	}

	writeJSON(w, http.StatusOK, watermarkResponse{
		Source:        wm.Identity.Source,
		Target:        wm.Identity.Target,
		Key:           wm.Identity.Key,
		LastTimestamp: wm.LastTimestamp,
		LastAsOf:      wm.LastAsOf,
		UpdatedAt:     wm.UpdatedAt,
	})
}

type resetRequest struct {
	Source        string     `json:"source"`
	Target        string     `json:"target"`
	Key           string     `json:"key"`
	LastTimestamp *time.Time `json:"last_ts"`
	LastAsOf      *time.Time `json:"last_asof_date"`
}

// ResetWatermark handles POST /api/finance/watermark/reset.
func (h *IngestHandler) ResetWatermark(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewErrorDetails("invalid request body: "+err.Error(), string(errors.GeneralBadRequestError), "body"))
		return
	}
	if req.Source == "" || req.Target == "" || req.Key == "" {
		writeError(w, errors.NewErrorDetails("source, target and key are required", string(errors.GeneralBadRequestError), "identity"))
		return
	}

	id := ingeststate.Identity{Source: req.Source, Target: req.Target, Key: req.Key}
	wm, err := h.usecase.ResetWatermark(r.Context(), id, req.LastTimestamp, req.LastAsOf)
	if err != nil {
		h.logger.ErrorContext(r.Context(), err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, watermarkResponse{
		Source:        wm.Identity.Source,
		Target:        wm.Identity.Target,
		Key:           wm.Identity.Key,
		LastTimestamp: wm.LastTimestamp,
		LastAsOf:      wm.LastAsOf,
		UpdatedAt:     wm.UpdatedAt,
	})
}
