package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-sync/internal/config"
	"github.com/vfg2006/campaign-sync/internal/domain"
	"github.com/vfg2006/campaign-sync/internal/usecases/syncing"
)

// CampaignSyncConfig representa a configuração do agendador de sincronização de campanhas
type CampaignSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// CampaignSyncService executa o job de sincronização de campanhas de forma recorrente
type CampaignSyncService struct {
	scheduler           *gocron.Scheduler
	ctx                 context.Context
	config              CampaignSyncConfig
	syncer              syncing.Syncer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          *domain.SyncResult
	lastError           error
}

func NewCampaignSyncService(syncer syncing.Syncer, appConfig *config.Config) *CampaignSyncService {
	syncConfig := CampaignSyncConfig{
		CronSchedule: appConfig.Sync.CronSchedule,
		SyncEnabled:  appConfig.Sync.CronEnabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Debug("scheduler: campaign sync configuration loaded")

	return &CampaignSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		ctx:       context.Background(),
		config:    syncConfig,
		syncer:    syncer,
	}
}

// Start agenda o job. Com o agendamento desabilitado só guarda o contexto
// usado pelas execuções manuais.
func (s *CampaignSyncService) Start(ctx context.Context) error {
	s.syncMutex.Lock()
	s.ctx = ctx
	s.syncMutex.Unlock()

	if !s.config.SyncEnabled {
		logrus.Info("scheduler: recurring campaign sync disabled")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("scheduler: starting campaign sync scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllCampaigns(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduler: invalid cron schedule %q: %w", s.config.CronSchedule, err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: stopping campaign sync scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllCampaigns roda uma execução completa; execuções sobrepostas são ignoradas
func (s *CampaignSyncService) syncAllCampaigns(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("scheduler: campaign sync already running, skipping")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	var (
		result *domain.SyncResult
		err    error
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("campaign sync panicked: %v", r)
			logrus.WithField("panic_error", r).Error("scheduler: campaign sync panicked")
		}

		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.lastResult = result
		s.lastError = err
		s.syncMutex.Unlock()
	}()

	result, err = s.syncer.SyncAllCampaigns(ctx)
	if err != nil {
		logrus.WithError(err).Error("scheduler: campaign sync aborted")
	}
}

// TriggerManualSync dispara uma execução fora do agendamento.
// Retorna false quando já existe uma execução em andamento.
func (s *CampaignSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("scheduler: campaign sync already running, ignoring manual trigger")
		return false
	}
	ctx := s.ctx
	s.syncMutex.Unlock()

	logrus.Info("scheduler: starting manual campaign sync")
	go s.syncAllCampaigns(ctx)
	return true
}

// GetStatus retorna o status atual do agendador
func (s *CampaignSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}

	if s.lastResult != nil {
		status["last_run_id"] = s.lastResult.RunID
		status["last_synced"] = s.lastResult.Synced
		status["last_stop_reason"] = string(s.lastResult.StopReason)
	}
	if s.lastError != nil {
		status["last_error"] = s.lastError.Error()
	}

	return status
}
