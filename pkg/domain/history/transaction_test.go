package history_test

import (
	"testing"

	"github.com/amirasaad/opsledger/pkg/domain"
	"github.com/amirasaad/opsledger/pkg/domain/history"
	"github.com/amirasaad/opsledger/pkg/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferRecordsCancelOut(t *testing.T) {
	transferID := uuid.New()
	amount := money.FromMajor(25000)

	debit := history.NewDebit(transferID, "a", "Client A", "Project B", amount, "advance payment")
	credit := history.NewCredit(transferID, "b", "Client A", "Project B", amount, "advance payment")
	system := history.NewSystemCredit(transferID, "Client A", amount, "advance payment")

	assert.Equal(t, history.TypeExpense, debit.Type)
	assert.Equal(t, -amount, debit.Amount)
	assert.Equal(t, history.TypeIncome, credit.Type)
	assert.Equal(t, amount, credit.Amount)
	assert.Equal(t, money.Amount(0), history.Sum([]*history.Transaction{debit, credit}))

	assert.True(t, system.IsSystem())
	assert.Equal(t, history.SystemUser, system.ToUser)
	assert.Equal(t, "system: advance payment", system.Description)
	assert.Equal(t, amount, system.Amount)
	assert.NotEqual(t, debit.ID, credit.ID)
}

func TestValidateTransfer(t *testing.T) {
	require.NoError(t, history.ValidateTransfer(1, "ok"))

	err := history.ValidateTransfer(0, "ok")
	require.ErrorIs(t, err, history.ErrAmountMustBePositive)
	require.ErrorIs(t, err, domain.ErrValidation)

	require.ErrorIs(t, history.ValidateTransfer(-5, "ok"), history.ErrAmountMustBePositive)
	require.ErrorIs(t, history.ValidateTransfer(5, "   "), history.ErrDescriptionRequired)
}
