package bootstrap

import (
	"github.com/mewroo/market-history-service/pkg/config"
	"github.com/mewroo/market-history-service/pkg/logger"
	"github.com/mewroo/market-history-service/pkg/questdb"
)

// Bootstrap wires the service's repositories, usecases and handlers.
type Bootstrap struct {
	Usecase    Usecase
	Repository Repository
	Handler    Handler
	Logger     logger.Interface
	Config     *config.Config

	QuestDB questdb.QuestDBClient
	DBTx    questdb.TX
}

// BootstrapConfig is the config for the bootstrap.
type BootstrapConfig struct {
	QuestDB questdb.QuestDBClient
	Logger  logger.Interface
	Config  *config.Config
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(config BootstrapConfig) Bootstrap {
	b.QuestDB = config.QuestDB
	b.Logger = config.Logger
	b.Config = config.Config
	b.DBTx = questdb.NewTransaction(b.QuestDB)

	b.registerRepository()
	b.registerUsecase()
	b.registerHandler()

	return *b
}
