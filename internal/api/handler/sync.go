package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-sync/infrastructure/repository"
	"github.com/vfg2006/campaign-sync/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SyncJob é o agendador do job de sincronização visto pelos handlers
type SyncJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// RunSync dispara manualmente uma execução do job
func RunSync(job SyncJob) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Debug("http: run sync requested")

		if !job.TriggerManualSync() {
			apiErrors.WriteError(w, apiErrors.ErrSyncRunning, "campaign sync already running", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "campaign sync started",
		})
	}
}

// GetSyncStatus retorna o status do agendador e da última execução
func GetSyncStatus(job SyncJob) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, job.GetStatus())
	}
}

// ListCampaigns retorna as campanhas gravadas pelo job, ordenadas por id
func ListCampaigns(campaignRepo repository.CampaignRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaigns := campaignRepo.ListAll()

		writeJSON(w, http.StatusOK, map[string]any{
			"data":  campaigns,
			"total": len(campaigns),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Warn("http: could not encode response")
	}
}
