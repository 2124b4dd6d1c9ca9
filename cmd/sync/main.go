package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-sync/infrastructure/integrator/adplatform/adplatformclient"
	"github.com/vfg2006/campaign-sync/infrastructure/repository"
	"github.com/vfg2006/campaign-sync/internal/api"
	"github.com/vfg2006/campaign-sync/internal/config"
	"github.com/vfg2006/campaign-sync/internal/scheduler"
	"github.com/vfg2006/campaign-sync/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-sync/internal/usecases/syncing"
	"github.com/vfg2006/campaign-sync/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Nível e formato de log vindos da configuração
	if err := log.Configure(cfg.App.LogLevel, cfg.App.LogFormat, os.Stdout); err != nil {
		logrus.WithError(err).Warnf("log: invalid log level %q, using info", cfg.App.LogLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := adplatformclient.NewClient(cfg)
	campaignRepo := repository.NewCampaignRepository()

	authenticator := authenticating.NewService(client, cfg)
	syncService := syncing.NewService(authenticator, client, campaignRepo, cfg)

	if _, err := syncService.SyncAllCampaigns(ctx); err != nil {
		handleFatal(cfg, err)
	}

	// Execução única: sem agendamento nem servidor administrativo o processo termina aqui
	if !cfg.Sync.CronEnabled && !cfg.Server.Enabled {
		return
	}

	campaignSyncService := scheduler.NewCampaignSyncService(syncService, cfg)
	if err := campaignSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("scheduler: could not start campaign sync scheduler")
		handleFatal(cfg, err)
		return
	}

	if cfg.Server.Enabled {
		if err := api.New(cfg, campaignSyncService, campaignRepo).Run(ctx); err != nil {
			handleFatal(cfg, err)
		}
	} else {
		<-ctx.Done()
	}

	logrus.WithField("stored_campaigns", len(campaignRepo.ListAll())).Info("sync: shutting down")
}

// handleFatal encerra com código 1 apenas quando SYNC_EXIT_ON_FAILURE está habilitado
func handleFatal(cfg *config.Config, err error) {
	if cfg.Sync.ExitOnFailure {
		logrus.WithError(err).Fatal("sync: job failed")
	}

	logrus.WithError(err).Error("sync: job failed")
}
