package bootstrap

import (
	ingeststateInfra "github.com/mewroo/market-history-service/internal/infrastructure/questdb/ingeststate"
	marketcapInfra "github.com/mewroo/market-history-service/internal/infrastructure/questdb/marketcap"
	membershipInfra "github.com/mewroo/market-history-service/internal/infrastructure/questdb/membership"
	priceInfra "github.com/mewroo/market-history-service/internal/infrastructure/questdb/price"
)

// Repository holds the service's repositories.
type Repository struct {
	PriceRepository      priceInfra.PriceRepository
	StateRepository      ingeststateInfra.StateRepository
	MembershipRepository membershipInfra.MembershipRepository
	MarketCapRepository  marketcapInfra.MarketCapRepository
}

// registerRepository registers the repository.
func (b *Bootstrap) registerRepository() {
	b.Repository.PriceRepository = priceInfra.NewRepository(b.QuestDB)
	b.Repository.StateRepository = ingeststateInfra.NewRepository(b.QuestDB)
	b.Repository.MembershipRepository = membershipInfra.NewRepository(b.QuestDB)
	b.Repository.MarketCapRepository = marketcapInfra.NewRepository(b.QuestDB)
}
