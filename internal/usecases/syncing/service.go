package syncing

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/campaign-sync/infrastructure/integrator/adplatform/adplatformclient"
	adplatformdomain "github.com/vfg2006/campaign-sync/infrastructure/integrator/adplatform/domain"
	"github.com/vfg2006/campaign-sync/infrastructure/repository"
	"github.com/vfg2006/campaign-sync/internal/config"
	"github.com/vfg2006/campaign-sync/internal/domain"
	"github.com/vfg2006/campaign-sync/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-sync/pkg/log"
	"github.com/vfg2006/campaign-sync/pkg/utils"
)

type Syncer interface {
	SyncAllCampaigns(ctx context.Context) (*domain.SyncResult, error)
}

type Service struct {
	authenticator   authenticating.Authenticator
	client          adplatformclient.Client
	campaignRepo    repository.CampaignRepository
	pageSize        int
	campaignTimeout time.Duration
}

func NewService(
	authenticator authenticating.Authenticator,
	client adplatformclient.Client,
	campaignRepo repository.CampaignRepository,
	cfg *config.Config,
) Syncer {
	return &Service{
		authenticator:   authenticator,
		client:          client,
		campaignRepo:    campaignRepo,
		pageSize:        cfg.Sync.PageSize,
		campaignTimeout: cfg.Sync.CampaignTimeout,
	}
}

// SyncAllCampaigns autentica, percorre todas as páginas de campanhas e sincroniza
// cada campanha válida, uma por vez. Só retorna erro para credenciais ausentes ou
// falha de autenticação; os demais problemas são registrados em log e a execução segue.
func (s *Service) SyncAllCampaigns(ctx context.Context) (*domain.SyncResult, error) {
	ctx, _ = log.WithCorrelationID(ctx)

	runID, err := utils.GenerateRunID()
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("sync: could not generate run id")
	}

	logger := log.ForContext(ctx).WithField("run_id", runID)
	result := &domain.SyncResult{
		RunID:     runID,
		StartedAt: time.Now(),
	}

	logger.Info("sync: starting campaign sync job")

	accessToken, err := s.authenticator.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info("sync: fetching campaigns")

	page := 1
	hasMore := true
	for hasMore {
		if ctx.Err() != nil {
			result.StopReason = domain.SyncStopCanceled
			break
		}

		campaignPage, err := s.client.ListCampaigns(ctx, accessToken, page, s.pageSize)
		if err != nil {
			result.StopReason = s.handleFetchError(ctx, logger, newFetchError(page, err))
			break
		}

		result.Pages++
		hasMore = campaignPage.HasMore

		logger.WithFields(log.Fields{
			"page":     page,
			"records":  len(campaignPage.Data),
			"has_more": hasMore,
		}).Debug("sync: campaigns page fetched")

		for i, raw := range campaignPage.Data {
			if ctx.Err() != nil {
				result.StopReason = domain.SyncStopCanceled
				break
			}
			s.syncCampaign(ctx, logger, accessToken, page, i, raw, result)
		}
		if result.StopReason == domain.SyncStopCanceled {
			logger.WithField("page", page).Warn("sync: canceled while syncing campaigns")
			break
		}

		page++
	}

	if result.StopReason == "" {
		result.StopReason = domain.SyncStopCompleted
	}
	result.FinishedAt = time.Now()

	logger.WithFields(log.Fields{
		"pages":       result.Pages,
		"synced":      result.Synced,
		"skipped":     result.Skipped,
		"failed":      result.Failed,
		"stop_reason": result.StopReason,
		"duration":    result.Duration().String(),
	}).Infof("sync: total campaigns synced: %d", result.Synced)

	return result, nil
}

// handleFetchError registra a falha da página e devolve o motivo da parada
func (s *Service) handleFetchError(ctx context.Context, logger log.Logger, fetchErr *FetchError) domain.SyncStopReason {
	switch {
	case fetchErr.RateLimited():
		logger.WithField("page", fetchErr.Page).
			Warnf("sync: rate limited while fetching campaigns (page %d). Stopping sync gracefully", fetchErr.Page)
		return domain.SyncStopRateLimited
	case ctx.Err() != nil:
		logger.WithField("page", fetchErr.Page).Warn("sync: canceled while fetching campaigns")
		return domain.SyncStopCanceled
	default:
		logger.WithError(fetchErr).WithField("page", fetchErr.Page).Error("sync: " + fetchErr.Error())
		return domain.SyncStopFetchFailed
	}
}

// syncCampaign valida o registro, chama a sincronização remota com timeout e grava em caso de sucesso
func (s *Service) syncCampaign(
	ctx context.Context,
	logger log.Logger,
	accessToken string,
	page, index int,
	raw jsoniter.RawMessage,
	result *domain.SyncResult,
) {
	campaign, err := adplatformdomain.ToCampaign(raw)
	if err != nil {
		validationErr := &ValidationError{Page: page, Index: index, Err: err}
		logger.WithError(validationErr).Warn("sync: skipping invalid campaign record")
		result.Skipped++
		return
	}

	campaignLogger := logger.WithField("campaign_id", campaign.ID)
	campaignLogger.Info("sync: syncing campaign")

	syncCtx, cancel := context.WithTimeout(ctx, s.campaignTimeout)
	err = s.client.SyncCampaign(syncCtx, accessToken, campaign.ID)
	cancel()
	if err != nil {
		syncErr := &SyncError{CampaignID: campaign.ID, Err: err}
		campaignLogger.WithFields(log.Fields{
			"error":     err.Error(),
			"timed_out": syncErr.TimedOut(),
		}).Errorf("sync: failed to sync campaign %s", campaign.ID)
		result.Failed++
		return
	}

	if err := s.campaignRepo.Upsert(campaign); err != nil {
		campaignLogger.WithError(err).Errorf("sync: failed to save campaign %s", campaign.ID)
		result.Failed++
		return
	}

	campaignLogger.Debug("sync: campaign saved")
	result.Synced++
}
