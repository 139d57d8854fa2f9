package events

import (
	"time"

	"github.com/amirasaad/opsledger/pkg/domain/history"
	"github.com/amirasaad/opsledger/pkg/money"
	"github.com/google/uuid"
)

// TransactionsAppended is emitted after a transfer commits its history records.
type TransactionsAppended struct {
	TransferID   uuid.UUID
	Transactions []history.Transaction
	OccurredAt   time.Time
}

// TransactionsRemoved is emitted after history records are deleted.
type TransactionsRemoved struct {
	Removed    []history.Ref
	OccurredAt time.Time
}

// BalanceChange is the committed balance of one category.
type BalanceChange struct {
	CategoryID uuid.UUID
	Balance    money.Amount
	Version    int64
}

// BalanceChanged is emitted after a transfer updates account balances.
type BalanceChanged struct {
	TransferID uuid.UUID
	Changes    []BalanceChange
	OccurredAt time.Time
}

func (e TransactionsAppended) Type() string { return EventTypeTransactionsAppended }
func (e TransactionsRemoved) Type() string  { return EventTypeTransactionsRemoved }
func (e BalanceChanged) Type() string       { return EventTypeBalanceChanged }

// Touches reports whether the event carries a record for categoryID.
func (e TransactionsAppended) Touches(categoryID string) bool {
	for _, tx := range e.Transactions {
		if tx.CategoryID == categoryID {
			return true
		}
	}
	return false
}

// Touches reports whether the removal covers categoryID.
func (e TransactionsRemoved) Touches(categoryID string) bool {
	for _, ref := range e.Removed {
		if ref.CategoryID == categoryID {
			return true
		}
	}
	return false
}
