package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/finanzapp/finanzapp/internal/event_bus"
	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/finanzapp/finanzapp/internal/utils"
	"github.com/finanzapp/finanzapp/pkg/export"
	"github.com/finanzapp/finanzapp/pkg/gateway"
	"github.com/finanzapp/finanzapp/pkg/stats"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Option func(*Controller)

// WithSampleData makes Init insert the sample transactions and budgets into
// an empty store.
func WithSampleData(enabled bool) Option {
	return func(c *Controller) {
		c.sampleData = enabled
	}
}

// Controller owns the application state. It validates writes, hands them to
// the gateway and re-renders the current view once storage confirmed them.
type Controller struct {
	gateway     *gateway.Gateway
	presenter   Presenter
	bus         *event_bus.EventBus
	clock       utils.Clock
	exporter    export.TransactionExporter
	state       *State
	sampleData  bool
	unsubscribe func()
}

func NewController(
	g *gateway.Gateway,
	presenter Presenter,
	bus *event_bus.EventBus,
	clock utils.Clock,
	exporter export.TransactionExporter,
	opts ...Option,
) *Controller {
	c := &Controller{
		gateway:   g,
		presenter: presenter,
		bus:       bus,
		clock:     clock,
		exporter:  exporter,
		state:     NewState(utils.CurrentPeriod(clock)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.unsubscribe = event_bus.SubscribeTyped(bus, event_bus.DataChangedType, c.onDataChanged)
	return c
}

// Close detaches the controller from the event bus.
func (c *Controller) Close() {
	c.unsubscribe()
}

func (c *Controller) State() *State {
	return c.state
}

// Init seeds the store, loads the snapshot and renders the current view.
func (c *Controller) Init(ctx context.Context) error {
	now := c.clock.Now()
	if _, err := c.gateway.SeedDefaults(ctx, now); err != nil {
		log.Errorf("Failed to seed default categories: %v", err)
		return err
	}
	if c.sampleData {
		if _, err := c.gateway.SeedSampleData(ctx, now); err != nil {
			log.Errorf("Failed to seed sample data: %v", err)
			return err
		}
	}
	if err := c.Reload(ctx); err != nil {
		return err
	}
	c.Render()
	return nil
}

// Reload fetches the three collections concurrently. The snapshot is only
// replaced when every load succeeded.
func (c *Controller) Reload(ctx context.Context) error {
	var next Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories, err := c.gateway.Categories.GetAll(gctx)
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		next.Categories = categories
		return nil
	})
	g.Go(func() error {
		transactions, err := c.gateway.Transactions.GetAll(gctx)
		if err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		next.Transactions = transactions
		return nil
	})
	g.Go(func() error {
		budgets, err := c.gateway.Budgets.GetAll(gctx)
		if err != nil {
			return fmt.Errorf("load budgets: %w", err)
		}
		next.Budgets = budgets
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Errorf("Reload failed, keeping the previous snapshot: %v", err)
		return err
	}

	next.LoadedAt = c.clock.Now()
	c.state.replaceSnapshot(next)
	log.Debugf("Loaded %d categories, %d transactions, %d budgets",
		len(next.Categories), len(next.Transactions), len(next.Budgets))
	return nil
}

// Navigate switches to the view named by token and renders it.
func (c *Controller) Navigate(token string) (View, any) {
	v := ParseView(token)
	c.state.setView(v)
	return v, c.render(v)
}

// Render re-renders the current view and returns its model.
func (c *Controller) Render() any {
	return c.render(c.state.View())
}

func (c *Controller) render(v View) any {
	snapshot := c.state.Snapshot()
	switch v {
	case Transactions:
		model := buildTransactions(snapshot, c.state.Filter())
		c.presenter.RenderTransactions(model)
		return model
	case Categories:
		model := buildCategories(snapshot)
		c.presenter.RenderCategories(model)
		return model
	case Budgets:
		model := buildBudgets(snapshot, c.state.BudgetPeriod(), c.clock.Now().Year())
		c.presenter.RenderBudgets(model)
		return model
	default:
		model := buildDashboard(snapshot, utils.CurrentPeriod(c.clock))
		c.presenter.RenderDashboard(model)
		return model
	}
}

// SetTransactionFilter stores the filter and shows the transactions view.
func (c *Controller) SetTransactionFilter(f stats.TransactionFilter) TransactionsModel {
	c.state.setFilter(f)
	c.state.setView(Transactions)
	return c.render(Transactions).(TransactionsModel)
}

// SetBudgetPeriod selects the month shown by the budgets view and shows it.
func (c *Controller) SetBudgetPeriod(p types.Period) BudgetsModel {
	c.state.setBudgetPeriod(p)
	c.state.setView(Budgets)
	return c.render(Budgets).(BudgetsModel)
}

// Export renders every stored transaction as CSV.
func (c *Controller) Export() (fileName string, content string, err error) {
	content, err = c.exporter.RenderTransactions(c.state.Snapshot().Transactions)
	if err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			log.Warnf("Export skipped: %v", err)
			c.notify(LevelWarning, "There are no transactions to export")
			return "", "", err
		}
		log.Errorf("Export failed: %v", err)
		c.notify(LevelError, "Could not export the transactions. Please try again.")
		return "", "", err
	}
	c.notify(LevelSuccess, "Transactions exported")
	return export.FileName(c.clock.Now()), content, nil
}

func (c *Controller) onDataChanged(e event_bus.EventT[event_bus.DataChanged]) error {
	log.Debugf("%s %s (id %d), reloading", e.Data.Collection, e.Data.Op, e.Data.ID)
	if err := c.Reload(e.Context()); err != nil {
		c.notify(LevelError, "Your changes were saved but the data could not be refreshed")
		return err
	}
	c.Render()
	return nil
}

func (c *Controller) notify(level Level, message string) {
	c.presenter.Notify(Notification{Level: level, Message: message, Time: c.clock.Now()})
}
