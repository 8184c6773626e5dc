package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/migration"
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/queue"
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/repository"
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/api"
	"github.com/mwumpini/WIP-HMS-sub001/internal/config"
	"github.com/mwumpini/WIP-HMS-sub001/internal/scheduler"
	"github.com/mwumpini/WIP-HMS-sub001/internal/usecases/archiving"
	"github.com/mwumpini/WIP-HMS-sub001/internal/usecases/posting"
	"github.com/mwumpini/WIP-HMS-sub001/internal/usecases/reporting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("invalid log level: %s, using 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("log level set to: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore := openStore(cfg.Storage)
	defer closeStore()

	migration.Run(store, cfg.App.Version)

	sales := repository.NewSales(store)
	expenses := repository.NewExpenses(store)
	staff := repository.NewStaff(store)
	inventory := repository.NewInventory(store)
	users := repository.NewUsers(store)
	profiles := repository.NewProfiles(store)

	eventQueue := queue.New(store)
	integrator := posting.NewService(store, eventQueue)

	// Apply whatever a previous run left behind before serving traffic, then
	// bound the log.
	integrator.ReplayPending()
	eventQueue.Compact(time.Duration(cfg.Events.RetentionDays) * 24 * time.Hour)

	reporter := reporting.NewService(sales, expenses, staff, inventory, store)
	archiver := archiving.NewService(store, profiles, sales, expenses, staff, users)

	backupSyncService := scheduler.NewBackupSyncService(archiver, cfg)
	if err := backupSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("error starting periodic backup scheduler")
	} else {
		logrus.Info("periodic backup scheduler started")
	}

	server, err := api.New(cfg, api.Dependencies{
		Store:      store,
		Sales:      sales,
		Expenses:   expenses,
		Staff:      staff,
		Inventory:  inventory,
		Users:      users,
		Profiles:   profiles,
		Integrator: integrator,
		Reporter:   reporter,
		Archiver:   archiver,
		BackupSync: backupSyncService,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// openStore opens the bbolt file backing all state. If the file cannot be
// opened the process falls back to an in-memory store so the UI still works,
// losing only durability.
func openStore(storageConfig config.Storage) (*storage.Adapter, func()) {
	bolt, err := storage.OpenBolt(storageConfig.Path)
	if err != nil {
		logrus.WithError(err).Warn("could not open storage file, running in-memory")
		return storage.NewAdapter(storage.NewMemoryBackend()), func() {}
	}

	logrus.WithField("path", storageConfig.Path).Info("storage file opened")
	return storage.NewAdapter(bolt), func() {
		if err := bolt.Close(); err != nil {
			logrus.WithError(err).Warn("error closing storage file")
		}
	}
}
