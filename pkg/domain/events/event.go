// Package events defines the domain events published after ledger commits.
package events

// Event is a domain event routed by its type name.
type Event interface {
	Type() string
}

// Event type names.
const (
	EventTypeTransactionsAppended = "Transactions.Appended"
	EventTypeTransactionsRemoved  = "Transactions.Removed"
	EventTypeBalanceChanged       = "Category.BalanceChanged"
	EventTypeCategoriesChanged    = "Category.FlagsChanged"
	EventTypeCategoriesRemoved    = "Category.Removed"
	EventTypeNotification         = "Notification"
)
