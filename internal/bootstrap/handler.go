package bootstrap

import (
	"github.com/mewroo/market-history-service/internal/handler"
)

// Handler holds the service's HTTP handlers.
type Handler struct {
	HTTP *handler.Handler
}

// registerHandler registers the HTTP handlers.
func (b *Bootstrap) registerHandler() {
	historyHandler := handler.NewHistoryHandler(b.Usecase.HistoryUsecase, b.Logger, b.Config.Chart)
	ingestHandler := handler.NewIngestHandler(b.Usecase.IngestUsecase, b.Logger)
	membershipHandler := handler.NewMembershipHandler(b.Usecase.MembershipUsecase, b.Logger)
	marketCapHandler := handler.NewMarketCapHandler(b.Usecase.MarketCapUsecase, b.Logger)

	b.Handler.HTTP = handler.NewHandler(historyHandler, ingestHandler, membershipHandler, marketCapHandler, b.QuestDB, b.Logger)
}
