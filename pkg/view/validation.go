package view

import (
	"errors"
	"regexp"
	"strings"

	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/finanzapp/finanzapp/pkg/budget"
	"github.com/finanzapp/finanzapp/pkg/category"
	"github.com/finanzapp/finanzapp/pkg/transaction"
	"github.com/shopspring/decimal"
)

// ValidationError lists every problem found in a submitted form. Nothing is
// written when it is returned.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) add(problem string) {
	e.Problems = append(e.Problems, problem)
}

func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// TransactionInput carries the raw form values. ID 0 creates a new transaction.
type TransactionInput struct {
	ID          int
	Kind        string
	Amount      string
	Date        string
	Category    string
	Description string
}

type CategoryInput struct {
	ID    int
	Name  string
	Color string
	Icon  string
}

// BudgetInput uses a zero-based month. Nil fields are reported as missing.
type BudgetInput struct {
	ID       int
	Category string
	Amount   string
	Month    *int
	Year     *int
}

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

const (
	minYear = 1900
	maxYear = 9999
)

func parseAmount(raw string, ve *ValidationError) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		ve.add("amount is required")
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		ve.add("amount must be a number")
		return decimal.Zero
	}
	if !amount.IsPositive() {
		ve.add("amount must be greater than zero")
	}
	return amount
}

func requireCategory(name string, categories []category.Category, ve *ValidationError) {
	if name == "" {
		ve.add("category is required")
		return
	}
	for _, c := range categories {
		if c.Name == name {
			return
		}
	}
	ve.add("category " + name + " does not exist")
}

func validateTransaction(in TransactionInput, categories []category.Category) (transaction.Transaction, error) {
	ve := &ValidationError{}
	t := transaction.Transaction{
		ID:          in.ID,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
	}

	kind, err := transaction.ParseKind(strings.TrimSpace(in.Kind))
	if err != nil {
		ve.add("type must be income or expense")
	}
	t.Kind = kind
	t.Amount = parseAmount(in.Amount, ve)

	if strings.TrimSpace(in.Date) == "" {
		ve.add("date is required")
	} else if date, err := types.ParseDate(strings.TrimSpace(in.Date)); err != nil {
		ve.add("date must be formatted as YYYY-MM-DD")
	} else {
		t.Date = date
	}

	requireCategory(t.Category, categories, ve)
	return t.SyncPeriod(), ve.orNil()
}

// validateCategory checks a new or edited category against the others.
// existing is the stored version when editing.
func validateCategory(in CategoryInput, existing *category.Category, categories []category.Category) (category.Category, error) {
	ve := &ValidationError{}
	c := category.Category{
		ID:    in.ID,
		Name:  strings.TrimSpace(in.Name),
		Color: strings.TrimSpace(in.Color),
		Icon:  strings.TrimSpace(in.Icon),
	}

	if c.Name == "" {
		ve.add("name is required")
	}
	if other, found := category.FindByName(othersThan(c.ID, categories), c.Name); found {
		ve.add("a category named " + other.Name + " already exists")
	}
	if existing != nil && category.IsReserved(existing.Name) && c.Name != existing.Name {
		ve.add("the " + category.ReservedName + " category cannot be renamed")
	}
	if c.Color != "" && !colorPattern.MatchString(c.Color) {
		ve.add("color must be formatted as #RRGGBB")
	}
	if existing != nil {
		c.IsDefault = existing.IsDefault
		c.CreatedAt = existing.CreatedAt
	}
	return c, ve.orNil()
}

func othersThan(id int, categories []category.Category) []category.Category {
	others := make([]category.Category, 0, len(categories))
	for _, c := range categories {
		if c.ID != id {
			others = append(others, c)
		}
	}
	return others
}

func validateBudget(in BudgetInput, categories []category.Category, budgets []budget.Budget) (budget.Budget, error) {
	ve := &ValidationError{}
	b := budget.Budget{
		ID:       in.ID,
		Category: strings.TrimSpace(in.Category),
	}

	requireCategory(b.Category, categories, ve)
	b.Amount = parseAmount(in.Amount, ve)

	switch {
	case in.Month == nil:
		ve.add("month is required")
	case *in.Month < 0 || *in.Month > 11:
		ve.add("month must be between 0 and 11")
	default:
		b.Month = *in.Month
	}
	switch {
	case in.Year == nil:
		ve.add("year is required")
	case *in.Year < minYear || *in.Year > maxYear:
		ve.add("year is out of range")
	default:
		b.Year = *in.Year
	}

	if len(ve.Problems) == 0 {
		for _, other := range budgets {
			if b.Collides(other) {
				ve.add(duplicateBudgetProblem(b))
				break
			}
		}
	}
	return b, ve.orNil()
}

func duplicateBudgetProblem(b budget.Budget) string {
	return "a budget for " + b.Category + " already exists in " + b.Period().Label()
}
