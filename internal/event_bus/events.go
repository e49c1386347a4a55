package event_bus

// DataChangedType is published after every successful write.
const DataChangedType EventType = "data.changed"

type Collection string

const (
	Categories   Collection = "categories"
	Transactions Collection = "transactions"
	Budgets      Collection = "budgets"
)

type Operation string

const (
	Created Operation = "created"
	Updated Operation = "updated"
	Deleted Operation = "deleted"
	Seeded  Operation = "seeded"
)

type DataChanged struct {
	Collection Collection
	Op         Operation
	ID         int
	// Cascaded counts records removed from other collections by the same action.
	Cascaded int
}
