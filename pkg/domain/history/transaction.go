// Package history defines the append-only records of balance-affecting events.
package history

import (
	"strings"
	"time"

	"github.com/amirasaad/opsledger/pkg/domain"
	"github.com/amirasaad/opsledger/pkg/money"
	"github.com/google/uuid"
)

const (
	// SystemBalanceID is the category id of the auxiliary ledger that aggregates every
	// amount taken from a person account.
	SystemBalanceID = "system_balance"
	// SystemUser is the counterparty name written on system balance records.
	SystemUser = "system"
	// systemDescriptionPrefix marks descriptions of system balance records.
	systemDescriptionPrefix = "system: "
)

var (
	// ErrAmountMustBePositive is returned when a transfer amount is zero, negative or not finite.
	ErrAmountMustBePositive = domain.NewError(domain.ErrValidation, "transfer amount must be greater than zero")
	// ErrDescriptionRequired is returned when a transfer has no description.
	ErrDescriptionRequired = domain.NewError(domain.ErrValidation, "transfer description is required")
)

// Type tells whether a record credits or debits its account.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Transaction is one immutable, timestamped signed amount recorded against one account.
// A positive Amount credits the account; a negative one debits it.
type Transaction struct {
	ID          uuid.UUID
	TransferID  uuid.UUID // groups the records written by one transfer
	CategoryID  string    // account id, or SystemBalanceID
	FromUser    string
	ToUser      string
	Amount      money.Amount
	Description string
	Type        Type
	Date        time.Time // assigned by the store at commit
}

// Ref identifies a record and the account it belongs to.
type Ref struct {
	ID         uuid.UUID
	CategoryID string
}

// NewDebit creates the expense record written on the source account of a transfer.
func NewDebit(transferID uuid.UUID, categoryID, from, to string, amount money.Amount, description string) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		TransferID:  transferID,
		CategoryID:  categoryID,
		FromUser:    from,
		ToUser:      to,
		Amount:      -amount,
		Description: description,
		Type:        TypeExpense,
	}
}

// NewCredit creates the income record written on the target account of a transfer.
func NewCredit(transferID uuid.UUID, categoryID, from, to string, amount money.Amount, description string) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		TransferID:  transferID,
		CategoryID:  categoryID,
		FromUser:    from,
		ToUser:      to,
		Amount:      amount,
		Description: description,
		Type:        TypeIncome,
	}
}

// NewSystemCredit creates the system balance record for money taken from a person account.
func NewSystemCredit(transferID uuid.UUID, from string, amount money.Amount, description string) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		TransferID:  transferID,
		CategoryID:  SystemBalanceID,
		FromUser:    from,
		ToUser:      SystemUser,
		Amount:      amount,
		Description: systemDescriptionPrefix + description,
		Type:        TypeIncome,
	}
}

// IsSystem reports whether the record belongs to the system balance ledger.
func (t *Transaction) IsSystem() bool {
	return t.CategoryID == SystemBalanceID
}

// ValidateTransfer checks the caller-supplied part of a transfer before anything is read or written.
func ValidateTransfer(amount money.Amount, description string) error {
	if !amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	if strings.TrimSpace(description) == "" {
		return ErrDescriptionRequired
	}
	return nil
}

// Sum adds up the amounts of the given records.
func Sum(txs []*Transaction) money.Amount {
	var total money.Amount
	for _, tx := range txs {
		total += tx.Amount
	}
	return total
}
