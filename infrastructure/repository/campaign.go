package repository

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-sync/internal/domain"
)

type CampaignRepository interface {
	Upsert(campaign *domain.Campaign) error
	ListAll() []*domain.Campaign
}

// campaignRepository guarda as campanhas em memória, indexadas pelo id.
// Nada sobrevive ao fim do processo.
type campaignRepository struct {
	mu        sync.RWMutex
	campaigns map[string]*domain.Campaign
	now       func() time.Time
}

func NewCampaignRepository() CampaignRepository {
	return NewCampaignRepositoryWithClock(time.Now)
}

// NewCampaignRepositoryWithClock permite fixar o relógio usado em synced_at
func NewCampaignRepositoryWithClock(now func() time.Time) CampaignRepository {
	return &campaignRepository{
		campaigns: make(map[string]*domain.Campaign),
		now:       now,
	}
}

// Upsert insere ou substitui a campanha pelo id, definindo synced_at no momento da gravação
func (r *campaignRepository) Upsert(campaign *domain.Campaign) error {
	stored := campaign.Clone()
	stored.Stamp(r.now())

	r.mu.Lock()
	r.campaigns[stored.ID] = stored
	r.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"campaign_id": stored.ID,
		"synced_at":   stored.SyncedAt,
	}).Debug("repository: campaign saved")

	return nil
}

// ListAll devolve cópias de todas as campanhas, ordenadas pelo id
func (r *campaignRepository) ListAll() []*domain.Campaign {
	r.mu.RLock()
	campaigns := make([]*domain.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		campaigns = append(campaigns, c.Clone())
	}
	r.mu.RUnlock()

	domain.SortCampaignsByID(campaigns)

	return campaigns
}
