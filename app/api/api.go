package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mewroo/market-history-service/internal/bootstrap"
	"github.com/mewroo/market-history-service/pkg/config"
	"github.com/mewroo/market-history-service/pkg/logger"
	"github.com/mewroo/market-history-service/pkg/questdb"
)

// Server is the HTTP API server.
type Server struct {
	Server    *http.Server
	Config    *config.Config
	logger    logger.Interface
	bootstrap bootstrap.Bootstrap
	db        questdb.QuestDBClient
}

// NewServer creates a new API server.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	log, err := logger.NewLogger()
	if err != nil {
		return nil, err
	}

	server := &Server{
		Config: cfg,
		logger: log,
	}

	if err := server.initDB(ctx); err != nil {
		return nil, err
	}

	b := bootstrap.Bootstrap{}
	server.bootstrap = b.Init(bootstrap.BootstrapConfig{
		QuestDB: server.db,
		Logger:  log,
		Config:  cfg,
	})

	server.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           server.bootstrap.Handler.HTTP.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server, nil
}

// Start starts serving HTTP.
func (s *Server) Start() error {
	s.logger.Info("api server listening",
		logger.Field{Key: "addr", Value: s.Server.Addr},
	)
	if err := s.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains in-flight requests and closes the database pool.
func (s *Server) Stop(ctx context.Context) error {
	err := s.Server.Shutdown(ctx)
	s.db.Close()
	return err
}

func (s *Server) initDB(ctx context.Context) error {
	questdbClient, err := questdb.WaitReady(ctx, s.Config.QuestDB, 10, time.Second)
	if err != nil {
		return err
	}
	s.db = questdbClient
	return nil
}
