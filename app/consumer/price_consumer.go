package consumer

import (
	"context"
	"time"

	"github.com/mewroo/market-history-service/internal/bootstrap"
	"github.com/mewroo/market-history-service/internal/consumer"
	"github.com/mewroo/market-history-service/pkg/config"
	"github.com/mewroo/market-history-service/pkg/logger"
	"github.com/mewroo/market-history-service/pkg/questdb"
)

// PriceConsumer wires the price batch consumer with its dependencies.
type PriceConsumer struct {
	Consumer  *consumer.PriceConsumer
	Config    *config.Config
	logger    logger.Interface
	bootstrap bootstrap.Bootstrap
	db        questdb.QuestDBClient
}

// InitPriceConsumer creates a new PriceConsumer.
func InitPriceConsumer(ctx context.Context, cfg *config.Config) (*PriceConsumer, error) {
	log, err := logger.NewLogger()
	if err != nil {
		return nil, err
	}

	priceConsumer := &PriceConsumer{
		Config: cfg,
		logger: log,
	}

	if err := priceConsumer.initDB(ctx); err != nil {
		return nil, err
	}

	b := bootstrap.Bootstrap{}
	priceConsumer.bootstrap = b.Init(bootstrap.BootstrapConfig{
		QuestDB: priceConsumer.db,
		Logger:  log,
		Config:  cfg,
	})

	priceConsumer.Consumer = consumer.NewPriceConsumer(
		cfg.PriceKafka,
		log,
		priceConsumer.bootstrap.Usecase.IngestUsecase,
	)

	return priceConsumer, nil
}

// Close releases the consumer's database pool.
func (c *PriceConsumer) Close() {
	c.db.Close()
}

func (c *PriceConsumer) initDB(ctx context.Context) error {
	questdbClient, err := questdb.WaitReady(ctx, c.Config.QuestDB, 10, time.Second)
	if err != nil {
		return err
	}
	c.db = questdbClient
	return nil
}
