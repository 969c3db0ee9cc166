package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mewroo/market-history-service/pkg/questdb"
)

// Config represents the application configuration.
type Config struct {
	App        AppConfig        `envPrefix:"APP_"`
	QuestDB    questdb.Config   `envPrefix:"QUESTDB_"`
	PriceKafka PriceKafkaConfig `envPrefix:"PRICE_KAFKA_"`
	Collector  CollectorConfig  `envPrefix:"COLLECTOR_"`
	Chart      ChartConfig      `envPrefix:"CHART_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"market-history-service"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// PriceKafkaConfig represents the Kafka configuration for the price batch topic.
type PriceKafkaConfig struct {
	Brokers         []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic           string   `env:"TOPIC" envDefault:"price-batches"`
	ConsumerGroup   string   `env:"CONSUMER_GROUP" envDefault:"market-history-service"`
	ConsumerTimeout int      `env:"CONSUMER_TIMEOUT" envDefault:"5"`
	MaxRetries      int      `env:"MAX_RETRIES" envDefault:"3"`
}

// CollectorConfig represents the scheduled chart-feed collector configuration.
type CollectorConfig struct {
	FeedURL      string   `env:"FEED_URL" envDefault:"https://query1.finance.yahoo.com/v8/finance/chart"`
	Tickers      []string `env:"TICKERS" envSeparator:"," envDefault:""`
	Interval     string   `env:"INTERVAL" envDefault:"1d"`
	CronSpec     string   `env:"CRON_SPEC" envDefault:"0 0 22 * * 1-5"`
	OverlapDays  int      `env:"OVERLAP_DAYS" envDefault:"5"`
	LookbackDays int      `env:"LOOKBACK_DAYS" envDefault:"370"`
	Timeout      int      `env:"TIMEOUT_SECONDS" envDefault:"30"`
	Source       string   `env:"SOURCE" envDefault:"yahoo"`
}

// ChartConfig represents the query-side configuration.
type ChartConfig struct {
	SymbolLimit   int    `env:"SYMBOL_LIMIT" envDefault:"5000"`
	DefaultPreset string `env:"DEFAULT_PRESET" envDefault:"1Y"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
