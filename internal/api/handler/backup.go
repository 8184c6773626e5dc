package handler

import (
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mwumpini/WIP-HMS-sub001/internal/usecases/archiving"
	"github.com/mwumpini/WIP-HMS-sub001/pkg/apiErrors"
)

// maxSnapshotBytes caps how much a restore request may upload.
const maxSnapshotBytes = 32 << 20

// ExportBackup creates a snapshot and returns it as a download.
func ExportBackup(archiver archiving.Archiver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := archiver.CreateBackup()
		if raw == nil {
			apiErrors.WriteError(w, apiErrors.ErrBackupOperation, "backup could not be created", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="hms-backup.json"`)
		if _, err := w.Write(raw); err != nil {
			logrus.WithError(err).Warn("error streaming backup")
		}
	}
}

// RestoreBackup applies an uploaded snapshot. A malformed snapshot is rejected
// before any state changes.
func RestoreBackup(archiver archiving.Archiver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotBytes))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "could not read snapshot body", nil)
			return
		}

		if !archiver.RestoreFromBackup(raw) {
			apiErrors.WriteError(w, apiErrors.ErrBackupOperation, "snapshot rejected or partially restored", nil)
			return
		}

		writeJSON(w, map[string]any{"restored": true})
	}
}
