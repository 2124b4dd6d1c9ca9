package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-sync/infrastructure/repository"
	"github.com/vfg2006/campaign-sync/internal/api/handler"
	"github.com/vfg2006/campaign-sync/internal/api/handler/router"
	"github.com/vfg2006/campaign-sync/internal/config"
	"github.com/vfg2006/campaign-sync/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	syncJob handler.SyncJob,
	campaignRepo repository.CampaignRepository,
) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, syncJob, campaignRepo),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}
}

// NewHandler monta as rotas administrativas com a cadeia de middlewares
func NewHandler(
	config *config.Config,
	syncJob handler.SyncJob,
	campaignRepo repository.CampaignRepository,
) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Sync(syncJob)...),
		router.WithRoutes(handler.Campaigns(campaignRepo)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.AdminTokenMiddleware(config.Server.AdminToken),
	}

	return alice.New(middlewares...).Then(rt)
}

// Run atende requisições até o contexto ser cancelado e então desliga o servidor
func (s Server) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("http: admin server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logrus.WithError(err).Error("http: admin server failed")
			return err
		}
		return nil
	case <-ctx.Done():
		logrus.Info("http: context canceled, shutting down admin server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("http: error during admin server shutdown")
		return err
	}

	logrus.Info("http: admin server stopped")
	return nil
}
