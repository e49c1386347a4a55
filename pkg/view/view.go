package view

import "strings"

type View string

const (
	Dashboard    View = "dashboard"
	Transactions View = "transactions"
	Categories   View = "categories"
	Budgets      View = "budgets"
)

var Views = []View{Dashboard, Transactions, Categories, Budgets}

// ParseView maps a navigation token, such as a URL fragment, to a view.
// Anything unknown lands on the dashboard.
func ParseView(token string) View {
	token = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(token), "#"))
	for _, v := range Views {
		if string(v) == token {
			return v
		}
	}
	return Dashboard
}
