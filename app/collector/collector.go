package collector

import (
	"context"
	"time"

	"github.com/mewroo/market-history-service/internal/bootstrap"
	"github.com/mewroo/market-history-service/internal/collector"
	"github.com/mewroo/market-history-service/pkg/config"
	"github.com/mewroo/market-history-service/pkg/logger"
	"github.com/mewroo/market-history-service/pkg/questdb"
)

// App wires the scheduled chart-feed collector with its dependencies.
type App struct {
	Collector *collector.Collector
	Scheduler *collector.Scheduler
	Config    *config.Config
	logger    logger.Interface
	bootstrap bootstrap.Bootstrap
	db        questdb.QuestDBClient
}

// InitCollector creates a new collector App.
func InitCollector(ctx context.Context, cfg *config.Config) (*App, error) {
	log, err := logger.NewLogger()
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		logger: log,
	}

	if err := app.initDB(ctx); err != nil {
		return nil, err
	}

	b := bootstrap.Bootstrap{}
	app.bootstrap = b.Init(bootstrap.BootstrapConfig{
		QuestDB: app.db,
		Logger:  log,
		Config:  cfg,
	})

	fetcher := collector.NewYahooFetcher(
		cfg.Collector.FeedURL,
		time.Duration(cfg.Collector.Timeout)*time.Second,
	)
	app.Collector = collector.NewCollector(fetcher, app.bootstrap.Usecase.IngestUsecase, cfg.Collector, log)
	app.Scheduler = collector.NewScheduler(ctx, app.Collector, log)

	if err := app.Scheduler.Register(cfg.Collector.CronSpec); err != nil {
		return nil, err
	}

	return app, nil
}

// Close stops the scheduler and releases the database pool.
func (a *App) Close() {
	a.Scheduler.Stop()
	a.db.Close()
}

func (a *App) initDB(ctx context.Context) error {
	questdbClient, err := questdb.WaitReady(ctx, a.Config.QuestDB, 10, time.Second)
	if err != nil {
		return err
	}
	a.db = questdbClient
	return nil
}
