package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/repository"
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/api/handler"
	"github.com/mwumpini/WIP-HMS-sub001/internal/api/handler/router"
	"github.com/mwumpini/WIP-HMS-sub001/internal/config"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/internal/scheduler"
	"github.com/mwumpini/WIP-HMS-sub001/internal/usecases/archiving"
	"github.com/mwumpini/WIP-HMS-sub001/internal/usecases/posting"
	"github.com/mwumpini/WIP-HMS-sub001/internal/usecases/reporting"
	"github.com/mwumpini/WIP-HMS-sub001/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Dependencies groups everything the route tables need.
type Dependencies struct {
	Store      *storage.Adapter
	Sales      *repository.Collection[*domain.Sale]
	Expenses   *repository.Collection[*domain.Expense]
	Staff      *repository.Collection[*domain.Staff]
	Inventory  *repository.Collection[*domain.InventoryItem]
	Users      *repository.Users
	Profiles   *repository.Profiles
	Integrator posting.Integrator
	Reporter   reporting.Reporter
	Archiver   archiving.Archiver
	BackupSync *scheduler.BackupSyncService
}

func New(config *config.Config, deps Dependencies) (*Server, error) {
	cronServices := handler.CronJobServices{
		BackupSyncService: deps.BackupSync,
		Integrator:        deps.Integrator,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Sales(deps.Sales, deps.Integrator)...),
		router.WithRoutes(handler.Expenses(deps.Expenses, deps.Integrator)...),
		router.WithRoutes(handler.Staff(deps.Staff, deps.Integrator)...),
		router.WithRoutes(handler.Inventory(deps.Inventory, deps.Integrator, deps.Store)...),
		router.WithRoutes(handler.Users(deps.Users)...),
		router.WithRoutes(handler.Profiles(deps.Profiles)...),
		router.WithRoutes(handler.Reports(deps.Reporter, deps.Store)...),
		router.WithRoutes(handler.Backup(deps.Archiver)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
	}

	chained := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           chained,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("error running server")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("interrupt signal received")
	case <-ctx.Done():
		logrus.Info("application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("starting graceful shutdown")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("error during server shutdown")
		return err
	}

	logrus.Info("server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("HTTP server stopped")
	return nil
}
