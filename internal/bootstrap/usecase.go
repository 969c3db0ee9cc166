package bootstrap

import (
	historyUc "github.com/mewroo/market-history-service/internal/usecase/history"
	ingestUc "github.com/mewroo/market-history-service/internal/usecase/ingest"
	marketcapUc "github.com/mewroo/market-history-service/internal/usecase/marketcap"
	membershipUc "github.com/mewroo/market-history-service/internal/usecase/membership"

	historyDomain "github.com/mewroo/market-history-service/internal/domain/history"
	ingestDomain "github.com/mewroo/market-history-service/internal/domain/ingest"
	marketcapDomain "github.com/mewroo/market-history-service/internal/domain/marketcap"
	membershipDomain "github.com/mewroo/market-history-service/internal/domain/membership"
)

// Usecase holds the service's usecases.
type Usecase struct {
	IngestUsecase     ingestDomain.Usecase
	HistoryUsecase    historyDomain.Usecase
	MembershipUsecase membershipDomain.Usecase
	MarketCapUsecase  marketcapDomain.Usecase
}

// registerUsecase registers the usecase.
func (b *Bootstrap) registerUsecase() {
	b.Usecase.IngestUsecase = ingestUc.NewUsecase(b.Repository.PriceRepository, b.Repository.StateRepository, b.DBTx, b.Logger)
	b.Usecase.HistoryUsecase = historyUc.NewUsecase(b.Repository.PriceRepository, b.Logger)
	b.Usecase.MembershipUsecase = membershipUc.NewUsecase(b.Repository.MembershipRepository, b.Repository.StateRepository, b.Logger)
	b.Usecase.MarketCapUsecase = marketcapUc.NewUsecase(b.Repository.MarketCapRepository, b.Repository.StateRepository, b.Logger)
}
