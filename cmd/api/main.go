package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/lbastos/worklane/internal/config"
	"github.com/lbastos/worklane/internal/database"
	"github.com/lbastos/worklane/internal/delivery"
	deliveryStore "github.com/lbastos/worklane/internal/delivery/store"
	"github.com/lbastos/worklane/internal/export"
	wlHttp "github.com/lbastos/worklane/internal/http"
	deliveryHandler "github.com/lbastos/worklane/internal/http/delivery"
	exportHandler "github.com/lbastos/worklane/internal/http/export"
	importHandler "github.com/lbastos/worklane/internal/http/importcsv"
	milestoneHandler "github.com/lbastos/worklane/internal/http/milestone"
	phaseHandler "github.com/lbastos/worklane/internal/http/phase"
	projectHandler "github.com/lbastos/worklane/internal/http/project"
	"github.com/lbastos/worklane/internal/importer"
	"github.com/lbastos/worklane/internal/importer/plancsv"
	"github.com/lbastos/worklane/internal/milestone"
	milestoneStore "github.com/lbastos/worklane/internal/milestone/store"
	"github.com/lbastos/worklane/internal/notify"
	"github.com/lbastos/worklane/internal/phase"
	phaseStore "github.com/lbastos/worklane/internal/phase/store"
	"github.com/lbastos/worklane/internal/project"
	projectStore "github.com/lbastos/worklane/internal/project/store"
	"github.com/lbastos/worklane/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		guard    = workflow.NewGuard()
		notifier = notify.Log{}
	)

	var (
		milestoneService = milestone.NewService(milestoneStore.New(db), guard, notifier)
		phaseService     = phase.NewService(phaseStore.New(db), guard, notifier)
		deliveryService  = delivery.NewService(deliveryStore.New(db), guard, notifier)
		projectService   = project.NewService(projectStore.New(db), milestoneService)
		importService    = importer.NewService(plancsv.NewParser())
		exportService    = export.NewService(deliveryService, cfg.Storage.Token)
	)

	var (
		projectH   = projectHandler.NewHandler(projectService)
		milestoneH = milestoneHandler.NewHandler(milestoneService)
		phaseH     = phaseHandler.NewHandler(phaseService)
		deliveryH  = deliveryHandler.NewHandler(deliveryService)
		exportH    = exportHandler.NewHandler(exportService)
		importH    = importHandler.NewHandler(importService, milestoneService, phaseService)
	)

	router := wlHttp.New(projectH, milestoneH, phaseH, deliveryH, exportH, importH, cfg.Auth.Secret)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
