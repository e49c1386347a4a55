package app

import (
	"github.com/finanzapp/finanzapp/internal/config"
	"github.com/finanzapp/finanzapp/internal/database"
	"github.com/finanzapp/finanzapp/internal/event_bus"
	"github.com/finanzapp/finanzapp/internal/utils"
	"github.com/finanzapp/finanzapp/pkg/export"
	"github.com/finanzapp/finanzapp/pkg/gateway"
	"github.com/finanzapp/finanzapp/pkg/stats"
	"github.com/finanzapp/finanzapp/pkg/view"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus
	Metrics  *Metrics

	Gateway *gateway.Gateway

	StatsService *stats.StatsServiceImpl
	StatsHandler *stats.StatsHandler

	Exporter *export.CsvTransactionExporterImpl

	Presenter   *view.SnapshotPresenter
	Controller  *view.Controller
	ViewHandler *view.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *database.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()
	deps.Metrics = NewMetrics()
	deps.Metrics.CountDataChanges(deps.EventBus)

	deps.Gateway = gateway.NewSQLGateway(db)

	deps.StatsService = stats.NewStatsServiceImpl(deps.Gateway.Transactions, deps.Gateway.Budgets, deps.Clock)
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService)

	deps.Exporter = export.NewCsvTransactionExporter()

	deps.Presenter = view.NewSnapshotPresenter()
	deps.Controller = view.NewController(
		deps.Gateway,
		deps.Presenter,
		deps.EventBus,
		deps.Clock,
		deps.Exporter,
		view.WithSampleData(cfg.Seed.SampleData),
	)
	deps.ViewHandler = view.NewHandler(deps.Controller, deps.Presenter)

	return deps
}
