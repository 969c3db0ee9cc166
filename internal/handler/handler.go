package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mewroo/market-history-service/pkg/logger"
	"github.com/mewroo/market-history-service/pkg/questdb"
	"github.com/mewroo/market-history-service/pkg/util"
)

// Handler owns the HTTP routing tree for the service.
type Handler struct {
	history    *HistoryHandler
	ingest     *IngestHandler
	membership *MembershipHandler
	marketCap  *MarketCapHandler
	db         questdb.QuestDBClient
	logger     logger.Interface
}

// NewHandler creates a new Handler.
func NewHandler(
	history *HistoryHandler,
	ingest *IngestHandler,
	membership *MembershipHandler,
	marketCap *MarketCapHandler,
	db questdb.QuestDBClient,
	logger logger.Interface,
) *Handler {
	return &Handler{
		history:    history,
		ingest:     ingest,
		membership: membership,
		marketCap:  marketCap,
		db:         db,
		logger:     logger,
	}
}

// Router builds the chi routing tree.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(h.requestID)
	r.Use(h.requestLogger)

	r.Get("/api/health", h.health)

	r.Route("/api/finance", func(r chi.Router) {
		r.Get("/symbols", h.history.Symbols)
		r.Get("/meta", h.history.Meta)
		r.Get("/history", h.history.History)

		r.Post("/ingest", h.ingest.Ingest)
		r.Get("/watermark", h.ingest.Watermark)
		r.Post("/watermark/reset", h.ingest.ResetWatermark)

		r.Get("/membership", h.membership.Latest)
		r.Post("/membership", h.membership.IngestSnapshot)
		r.Get("/sectors", h.membership.Sectors)

		r.Get("/marketcap", h.marketCap.Latest)
		r.Post("/marketcap", h.marketCap.IngestBatch)
	})

	return r
}

// requestID stamps every request context so log lines can be correlated.
func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := util.WithRequestID(r.Context(), r.Header.Get("X-Request-Id"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		h.logger.InfoContext(r.Context(), "request handled",
			logger.Field{Key: "method", Value: r.Method},
			logger.Field{Key: "path", Value: r.URL.Path},
			logger.Field{Key: "status", Value: ww.Status()},
			logger.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
		)
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
