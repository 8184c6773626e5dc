// Package scheduler contains the background jobs of the back office.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/mwumpini/WIP-HMS-sub001/internal/config"
	"github.com/mwumpini/WIP-HMS-sub001/internal/usecases/archiving"
)

type BackupSyncConfig struct {
	IntervalMinutes int
	Enabled         bool
}

// BackupSyncService snapshots the whole state on a fixed interval. The job is
// advisory: a tick that overlaps a running backup is ignored, and a failed
// backup only logs.
type BackupSyncService struct {
	scheduler *gocron.Scheduler
	archiver  archiving.Archiver
	config    BackupSyncConfig

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewBackupSyncService(archiver archiving.Archiver, cfg *config.Config) *BackupSyncService {
	backupConfig := BackupSyncConfig{
		IntervalMinutes: cfg.Backup.IntervalMinutes,
		Enabled:         cfg.Backup.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"interval_minutes": backupConfig.IntervalMinutes,
		"enabled":          backupConfig.Enabled,
	}).Info("backup scheduler configuration loaded")

	return &BackupSyncService{
		scheduler: scheduler,
		archiver:  archiver,
		config:    backupConfig,
	}
}

func (s *BackupSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("periodic backup disabled by configuration")
		return nil
	}

	logrus.WithField("interval_minutes", s.config.IntervalMinutes).Info("starting periodic backup job")

	_, err := s.scheduler.Every(s.config.IntervalMinutes).Minutes().Do(func() {
		s.RunBackup()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("stopping periodic backup job")
		s.scheduler.Stop()
	}()

	return nil
}

// RunBackup performs one backup cycle. A cycle already in flight suppresses
// the new one.
func (s *BackupSyncService) RunBackup() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("backup already running, tick ignored")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	if raw := s.archiver.CreateBackup(); raw == nil {
		logrus.Error("periodic backup failed")
	}
}

// TriggerManualBackup starts a backup outside the schedule.
func (s *BackupSyncService) TriggerManualBackup() {
	logrus.Info("manual backup triggered")
	go s.RunBackup()
}

// GetStatus reports the scheduler state for the cron status endpoint.
func (s *BackupSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"backup_enabled":          s.config.Enabled,
		"backup_interval_minutes": s.config.IntervalMinutes,
		"last_backup_started_at":  s.lastSyncStartedAt,
		"last_backup_finished_at": s.lastSyncCompletedAt,
		"running":                 s.syncRunning,
	}
	if at, ok := s.archiver.LastBackupAt(); ok {
		status["last_backup_timestamp"] = at
	}
	return status
}
