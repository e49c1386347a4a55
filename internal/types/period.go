package types

import (
	"fmt"
	"time"
)

// Period is a (month, year) scope. Month is a zero-based index, 0 is January.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()) - 1, Year: t.Year()}
}

func (p Period) Previous() Period {
	return p.AddMonths(-1)
}

func (p Period) AddMonths(n int) Period {
	total := p.Year*12 + p.Month + n
	year := total / 12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	return Period{Month: month, Year: year}
}

func (p Period) Matches(month, year int) bool {
	return p.Month == month && p.Year == year
}

// Start is the first day of the period.
func (p Period) Start() Date {
	return NewDate(p.Year, time.Month(p.Month+1), 1)
}

// Label renders the period as "January 2025".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month+1), p.Year)
}

// String renders the period as YYYY-MM with a one-based month.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month+1)
}

func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: %w", s, err)
	}
	return PeriodOf(t), nil
}
