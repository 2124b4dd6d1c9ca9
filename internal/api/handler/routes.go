package handler

import (
	"net/http"

	"github.com/vfg2006/campaign-sync/infrastructure/repository"
	"github.com/vfg2006/campaign-sync/internal/api/handler/router"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Sync(job SyncJob) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sync/run",
			Method:  http.MethodPost,
			Handler: RunSync(job),
		},
		{
			Path:    "/v1/sync/status",
			Method:  http.MethodGet,
			Handler: GetSyncStatus(job),
		},
	}
}

func Campaigns(campaignRepo repository.CampaignRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/campaigns",
			Method:  http.MethodGet,
			Handler: ListCampaigns(campaignRepo),
		},
	}
}
