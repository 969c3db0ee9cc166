package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	ingestDomain "github.com/mewroo/market-history-service/internal/domain/ingest"
	v1 "github.com/mewroo/market-history-service/internal/domain/ingest/v1"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/price"
	"github.com/mewroo/market-history-service/pkg/config"
	"github.com/mewroo/market-history-service/pkg/logger"
)

// RawPriceBatch is the wire shape of a price batch event.
type RawPriceBatch struct {
	Source string        `json:"source"`
	Target string        `json:"target"`
	Key    string        `json:"key"`
	Force  bool          `json:"force"`
	Rows   []RawPriceRow `json:"rows"`
}

// RawPriceRow is one OHLCV row inside a batch event.
type RawPriceRow struct {
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

// PriceConsumer is the consumer for the price batch topic.
type PriceConsumer struct {
	kafkaReader *kafka.Reader
	logger      logger.Interface

	ingestUsecase ingestDomain.Usecase
	msgChan       chan kafka.Message
}

// NewPriceConsumer creates a new PriceConsumer.
func NewPriceConsumer(config config.PriceKafkaConfig, logger logger.Interface, ingestUsecase ingestDomain.Usecase) *PriceConsumer {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     config.Brokers,
		Topic:       config.Topic,
		GroupID:     config.ConsumerGroup,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})
	return &PriceConsumer{
		kafkaReader:   kafkaReader,
		logger:        logger,
		ingestUsecase: ingestUsecase,
		msgChan:       make(chan kafka.Message),
	}
}

// Start starts the PriceConsumer.
func (c *PriceConsumer) Start(ctx context.Context) {
	c.logger.InfoContext(ctx, "starting price consumer", logger.Field{
		Key:   "action",
		Value: "price_consumer_start",
	})

	for {
		select {
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "context done", logger.Field{
				Key:   "action",
				Value: "price_consumer_stop",
			})
			return
		default:
			msg, err := c.kafkaReader.ReadMessage(ctx)
			if err != nil {
				c.logger.ErrorContext(ctx, err, logger.Field{
					Key:   "action",
					Value: "read_message",
				})
				continue
			}

			c.msgChan <- msg
		}
	}
}

// Stop stops the PriceConsumer.
func (c *PriceConsumer) Stop() error {
	c.logger.InfoContext(context.Background(), "stopping price consumer", logger.Field{
		Key:   "action",
		Value: "price_consumer_stop",
	})
	return c.kafkaReader.Close()
}

// Subscribe subscribes to the PriceConsumer.
func (c *PriceConsumer) Subscribe(ctx context.Context) {
	c.logger.InfoContext(ctx, "subscribing to price consumer", logger.Field{
		Key:   "action",
		Value: "price_consumer_subscribe",
	})

	for msg := range c.msgChan {
		var batch RawPriceBatch
		if err := json.Unmarshal(msg.Value, &batch); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "unmarshal_batch",
			})
		}

		if err := c.handleBatch(ctx, &batch); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "handle_batch",
			})
		}

		if err := c.kafkaReader.CommitMessages(ctx, msg); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "commit_message",
			})
		}
	}
}

func (c *PriceConsumer) handleBatch(ctx context.Context, raw *RawPriceBatch) error {
	batch := v1.Batch{
		Source: raw.Source,
		Target: raw.Target,
		Key:    raw.Key,
		Force:  raw.Force,
		Rows:   make([]*price.PriceTick, len(raw.Rows)),
	}
	for i, row := range raw.Rows {
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

	result, err := c.ingestUsecase.IngestBatch(ctx, batch)
	if err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "price batch absorbed",
		logger.Field{Key: "action", Value: "ingest_batch"},
		logger.Field{Key: "source", Value: raw.Source},
		logger.Field{Key: "key", Value: raw.Key},
		logger.Field{Key: "written", Value: result.Written},
		logger.Field{Key: "skipped", Value: result.Skipped},
		logger.Field{Key: "rejected", Value: len(result.Rejected)},
	)
	return nil
}
