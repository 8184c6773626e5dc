package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/mwumpini/WIP-HMS-sub001/internal/scheduler"
	"github.com/mwumpini/WIP-HMS-sub001/internal/usecases/posting"
	"github.com/mwumpini/WIP-HMS-sub001/pkg/apiErrors"
)

// CronJobType selects the job for a manual run.
const (
	CronJobTypeBackup  = "backup"
	CronJobTypeReplay  = "replay"
	CronJobTypeRollups = "rollups"
)

// CronJobServices carries the background services reachable from the cron
// endpoints.
type CronJobServices struct {
	BackupSyncService *scheduler.BackupSyncService
	Integrator        posting.Integrator
}

// RunCronJob triggers one maintenance job outside its schedule.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "cron job type not specified", nil)
			return
		}

		response := map[string]any{"type": cronType}

		switch cronType {
		case CronJobTypeBackup:
			if services.BackupSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "backup service not available", nil)
				return
			}
			services.BackupSyncService.TriggerManualBackup()
			response["message"] = "backup started"

		case CronJobTypeReplay:
			applied := services.Integrator.ReplayPending()
			response["message"] = "replay finished"
			response["applied"] = applied

		case CronJobTypeRollups:
			customers, suppliers := services.Integrator.RebuildRollups()
			response["message"] = "rollups rebuilt"
			response["customers"] = customers
			response["suppliers"] = suppliers

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid cron job type. Accepted values: backup, replay, rollups", nil)
			return
		}

		writeJSON(w, response)
	}
}

// GetCronStatus reports scheduler state.
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{
			"backup": services.BackupSyncService.GetStatus(),
		}
		writeJSON(w, status)
	}
}
