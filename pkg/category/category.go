package category

import (
	"strings"
	"time"
)

const (
	// ReservedName is the catch-all category that can never be deleted or renamed.
	ReservedName = "Other"

	DefaultColor = "#6B7280"
	DefaultIcon  = "fa-tag"
)

type Category struct {
	ID        int
	Name      string
	Color     string
	Icon      string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Appearance is what the presentation needs to draw a category reference.
type Appearance struct {
	Color string
	Icon  string
}

// WithDefaults fills the fields a partially built category may miss.
// Nothing is validated here.
func (c Category) WithDefaults(now time.Time) Category {
	if c.Color == "" {
		c.Color = DefaultColor
	}
	if c.Icon == "" {
		c.Icon = DefaultIcon
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
	return c
}

func (c Category) Appearance() Appearance {
	return Appearance{Color: c.Color, Icon: c.Icon}
}

func IsReserved(name string) bool {
	return name == ReservedName
}

var defaults = []Category{
	{Name: "Food", Icon: "fa-shopping-cart", Color: "#10B981"},
	{Name: "Transport", Icon: "fa-car", Color: "#3B82F6"},
	{Name: "Leisure", Icon: "fa-film", Color: "#8B5CF6"},
	{Name: "Utilities", Icon: "fa-bolt", Color: "#F59E0B"},
	{Name: "Health", Icon: "fa-heart", Color: "#EF4444"},
	{Name: "Education", Icon: "fa-graduation-cap", Color: "#06B6D4"},
	{Name: "Salary", Icon: "fa-money-bill-wave", Color: "#10B981"},
	{Name: "Side Work", Icon: "fa-laptop-code", Color: "#8B5CF6"},
	{Name: ReservedName, Icon: "fa-ellipsis-h", Color: DefaultColor},
}

// DefaultCategories returns the fixed set seeded on first run, in display order.
func DefaultCategories() []Category {
	result := make([]Category, len(defaults))
	for i, c := range defaults {
		c.IsDefault = true
		result[i] = c
	}
	return result
}

// DefaultPosition reports where name sits in the default set.
func DefaultPosition(name string) (int, bool) {
	for i, c := range defaults {
		if c.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Lookup resolves the appearance of a category referenced by name. Dangling
// references get the neutral fallback.
func Lookup(categories []Category, name string) Appearance {
	for _, c := range categories {
		if c.Name == name {
			return c.Appearance()
		}
	}
	return Appearance{Color: DefaultColor, Icon: DefaultIcon}
}

// FindByName matches case-insensitively, the rule used for duplicate detection.
func FindByName(categories []Category, name string) (Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

func Names(categories []Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}
