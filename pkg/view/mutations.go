package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/finanzapp/finanzapp/internal/database"
	"github.com/finanzapp/finanzapp/internal/event_bus"
	"github.com/finanzapp/finanzapp/pkg/budget"
	"github.com/finanzapp/finanzapp/pkg/category"
	log "github.com/sirupsen/logrus"
)

// SaveTransaction creates the transaction when in.ID is 0 and updates it
// otherwise. An update of a missing transaction does nothing.
func (c *Controller) SaveTransaction(ctx context.Context, in TransactionInput) (int, error) {
	t, err := validateTransaction(in, c.state.Snapshot().Categories)
	if err != nil {
		return 0, c.rejected(err)
	}

	now := c.clock.Now()
	t.UpdatedAt = now
	if t.ID == 0 {
		t.CreatedAt = now
		id, err := c.gateway.Transactions.Store(ctx, t)
		if err != nil {
			return 0, c.failed("save the transaction", err)
		}
		c.changed(ctx, event_bus.DataChanged{Collection: event_bus.Transactions, Op: event_bus.Created, ID: id}, "Transaction saved")
		return id, nil
	}

	updated, err := c.gateway.Transactions.Update(ctx, t)
	if err != nil {
		return 0, c.failed("update the transaction", err)
	}
	if !updated {
		log.Warnf("Transaction %d not found, nothing updated", t.ID)
		return t.ID, nil
	}
	c.changed(ctx, event_bus.DataChanged{Collection: event_bus.Transactions, Op: event_bus.Updated, ID: t.ID}, "Transaction updated")
	return t.ID, nil
}

func (c *Controller) DeleteTransaction(ctx context.Context, id int) error {
	deleted, err := c.gateway.Transactions.Delete(ctx, id)
	if err != nil {
		return c.failed("delete the transaction", err)
	}
	if !deleted {
		log.Warnf("Transaction %d not found, nothing deleted", id)
		return nil
	}
	c.changed(ctx, event_bus.DataChanged{Collection: event_bus.Transactions, Op: event_bus.Deleted, ID: id}, "Transaction deleted")
	return nil
}

// SaveCategory creates or edits a category. Renaming does not touch the
// transactions and budgets referring to the old name.
func (c *Controller) SaveCategory(ctx context.Context, in CategoryInput) (int, error) {
	categories := c.state.Snapshot().Categories
	var existing *category.Category
	if in.ID != 0 {
		found, ok := findCategory(categories, in.ID)
		if !ok {
			log.Warnf("Category %d not found, nothing updated", in.ID)
			return in.ID, nil
		}
		existing = &found
	}

	cat, err := validateCategory(in, existing, categories)
	if err != nil {
		return 0, c.rejected(err)
	}

	now := c.clock.Now()
	if existing == nil {
		id, err := c.gateway.Categories.Store(ctx, cat.WithDefaults(now))
		if err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				return 0, c.rejected(&ValidationError{Problems: []string{"a category named " + cat.Name + " already exists"}})
			}
			return 0, c.failed("save the category", err)
		}
		c.changed(ctx, event_bus.DataChanged{Collection: event_bus.Categories, Op: event_bus.Created, ID: id}, "Category saved")
		return id, nil
	}

	cat.UpdatedAt = now
	cat = cat.WithDefaults(now)
	updated, err := c.gateway.Categories.Update(ctx, cat)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return 0, c.rejected(&ValidationError{Problems: []string{"a category named " + cat.Name + " already exists"}})
		}
		return 0, c.failed("update the category", err)
	}
	if !updated {
		log.Warnf("Category %d not found, nothing updated", cat.ID)
		return cat.ID, nil
	}
	c.changed(ctx, event_bus.DataChanged{Collection: event_bus.Categories, Op: event_bus.Updated, ID: cat.ID}, "Category updated")
	return cat.ID, nil
}

// DeleteCategory removes the category together with every transaction
// filed under it. The two steps are separate writes: when the second one
// fails the transactions are already gone.
func (c *Controller) DeleteCategory(ctx context.Context, id int) (int, error) {
	existing, ok := findCategory(c.state.Snapshot().Categories, id)
	if !ok {
		log.Warnf("Category %d not found, nothing deleted", id)
		return 0, nil
	}
	if category.IsReserved(existing.Name) {
		return 0, c.rejected(&ValidationError{Problems: []string{"the " + category.ReservedName + " category cannot be deleted"}})
	}

	removed, err := c.gateway.Transactions.DeleteByCategory(ctx, existing.Name)
	if err != nil {
		return 0, c.failed("delete the category", err)
	}

	deleted, err := c.gateway.Categories.Delete(ctx, id)
	if err != nil {
		log.Errorf("Removed %d transactions of %s but the category itself could not be deleted", removed, existing.Name)
		if removed > 0 {
			c.publish(ctx, event_bus.DataChanged{Collection: event_bus.Transactions, Op: event_bus.Deleted, Cascaded: removed})
		}
		return removed, c.failed("delete the category", err)
	}
	if !deleted {
		log.Warnf("Category %d disappeared before it could be deleted", id)
	}

	message := "Category deleted"
	if removed > 0 {
		message = fmt.Sprintf("Category deleted along with %d transactions", removed)
	}
	c.changed(ctx, event_bus.DataChanged{Collection: event_bus.Categories, Op: event_bus.Deleted, ID: id, Cascaded: removed}, message)
	return removed, nil
}

// SaveBudget creates or edits a budget. A second budget for the same
// category and month is rejected, whether the snapshot or the store spots it.
func (c *Controller) SaveBudget(ctx context.Context, in BudgetInput) (int, error) {
	snapshot := c.state.Snapshot()
	b, err := validateBudget(in, snapshot.Categories, snapshot.Budgets)
	if err != nil {
		return 0, c.rejected(err)
	}

	stored, found, err := c.gateway.Budgets.FindByCategoryAndPeriod(ctx, b.Category, b.Period())
	if err != nil {
		return 0, c.failed("save the budget", err)
	}
	if found && b.Collides(stored) {
		return 0, c.rejected(&ValidationError{Problems: []string{duplicateBudgetProblem(b)}})
	}

	now := c.clock.Now()
	b.UpdatedAt = now
	if b.ID == 0 {
		b.CreatedAt = now
		id, err := c.gateway.Budgets.Store(ctx, b)
		if err != nil {
			return 0, c.budgetWriteFailed(b, err)
		}
		c.changed(ctx, event_bus.DataChanged{Collection: event_bus.Budgets, Op: event_bus.Created, ID: id}, "Budget saved")
		return id, nil
	}

	updated, err := c.gateway.Budgets.Update(ctx, b)
	if err != nil {
		return 0, c.budgetWriteFailed(b, err)
	}
	if !updated {
		log.Warnf("Budget %d not found, nothing updated", b.ID)
		return b.ID, nil
	}
	c.changed(ctx, event_bus.DataChanged{Collection: event_bus.Budgets, Op: event_bus.Updated, ID: b.ID}, "Budget updated")
	return b.ID, nil
}

func (c *Controller) budgetWriteFailed(b budget.Budget, err error) error {
	if errors.Is(err, database.ErrDuplicate) {
		return c.rejected(&ValidationError{Problems: []string{duplicateBudgetProblem(b)}})
	}
	return c.failed("save the budget", err)
}

func (c *Controller) DeleteBudget(ctx context.Context, id int) error {
	deleted, err := c.gateway.Budgets.Delete(ctx, id)
	if err != nil {
		return c.failed("delete the budget", err)
	}
	if !deleted {
		log.Warnf("Budget %d not found, nothing deleted", id)
		return nil
	}
	c.changed(ctx, event_bus.DataChanged{Collection: event_bus.Budgets, Op: event_bus.Deleted, ID: id}, "Budget deleted")
	return nil
}

func findCategory(categories []category.Category, id int) (category.Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return category.Category{}, false
}

func (c *Controller) rejected(err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		log.Debugf("Rejected input: %v", ve)
		c.notify(LevelError, joinProblems(ve.Problems))
	}
	return err
}

func (c *Controller) failed(action string, err error) error {
	log.Errorf("Could not %s: %v", action, err)
	c.notify(LevelError, "Could not "+action+". Please try again.")
	return fmt.Errorf("%s: %w", action, err)
}

// changed announces a confirmed write. The reload and re-render happen in
// the bus subscriber before the success notification is queued.
func (c *Controller) changed(ctx context.Context, change event_bus.DataChanged, message string) {
	c.publish(ctx, change)
	c.notify(LevelSuccess, message)
}

func (c *Controller) publish(ctx context.Context, change event_bus.DataChanged) {
	if err := c.bus.Publish(event_bus.NewEvent(ctx, event_bus.DataChangedType, change)); err != nil {
		log.Warnf("Handling %s %s: %v", change.Collection, change.Op, err)
	}
}

func joinProblems(problems []string) string {
	message := ""
	for i, p := range problems {
		if i > 0 {
			message += ". "
		}
		message += capitalize(p)
	}
	return message
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
