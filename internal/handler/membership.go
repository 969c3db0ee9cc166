package handler

import (
	"encoding/json"
	"net/http"
	"time"

	membershipDomain "github.com/mewroo/market-history-service/internal/domain/membership"
	v1 "github.com/mewroo/market-history-service/internal/domain/membership/v1"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/membership"
	"github.com/mewroo/market-history-service/pkg/errors"
	"github.com/mewroo/market-history-service/pkg/logger"
)

// MembershipHandler serves industry membership snapshot endpoints.
type MembershipHandler struct {
	usecase membershipDomain.Usecase
	logger  logger.Interface
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(usecase membershipDomain.Usecase, logger logger.Interface) *MembershipHandler {
	return &MembershipHandler{
		usecase: usecase,
		logger:  logger,
	}
}

type memberPayload struct {
	Ticker     string `json:"ticker"`
	TickerName string `json:"ticker_name,omitempty"`
	Sector     string `json:"sector_key"`
	Industry   string `json:"industry_key"`
}

type snapshotRequest struct {
	AsOf    string          `json:"asof_date"`
	Source  string          `json:"source"`
	Force   bool            `json:"force"`
	Members []memberPayload `json:"members"`
}

// IngestSnapshot handles POST /api/finance/membership.
func (h *MembershipHandler) IngestSnapshot(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewErrorDetails("invalid request body: "+err.Error(), string(errors.GeneralBadRequestError), "body"))
		return
	}

	asOf, err := time.Parse("2006-01-02", req.AsOf)
	if err != nil {
		writeError(w, errors.NewErrorDetails("asof_date must be YYYY-MM-DD", string(errors.GeneralBadRequestError), "asof_date"))
		return
	}

	snapshot := v1.Snapshot{
		AsOf:    asOf,
		Source:  req.Source,
		Force:   req.Force,
		Members: make([]*membership.Member, len(req.Members)),
	}
	for i, m := range req.Members {
		snapshot.Members[i] = &membership.Member{
			AsOfDate:    asOf,
			SectorKey:   m.Sector,
			IndustryKey: m.Industry,
			Ticker:      m.Ticker,
			TickerName:  m.TickerName,
			Source:      req.Source,
		}
	}

	written, err := h.usecase.IngestSnapshot(r.Context(), snapshot)
	if err != nil {
		h.logger.ErrorContext(r.Context(), err, logger.Field{Key: "asof_date", Value: req.AsOf})
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"written": written})
}

type membersResponse struct {
	Data []memberPayload `json:"data"`
}

// Latest handles GET /api/finance/membership.
func (h *MembershipHandler) Latest(w http.ResponseWriter, r *http.Request) {
	members, err := h.usecase.ListLatest(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), err)
		writeError(w, err)
		return
	}

	res := membersResponse{Data: make([]memberPayload, len(members))}
	for i, m := range members {
		res.Data[i] = memberPayload{
			Ticker:     m.Ticker,
			TickerName: m.TickerName,
			Sector:     m.SectorKey,
			Industry:   m.IndustryKey,
		}
	}
	writeJSON(w, http.StatusOK, res)
}

type sectorsResponse struct {
	Data []string `json:"data"`
}

// Sectors handles GET /api/finance/sectors.
func (h *MembershipHandler) Sectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.usecase.ListSectors(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), err)
		writeError(w, err)
		return
	}

	if sectors == nil {
		sectors = []string{}
	}
	writeJSON(w, http.StatusOK, sectorsResponse{Data: sectors})
}
