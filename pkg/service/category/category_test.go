package category

import (
	"context"
	"testing"

	"github.com/amirasaad/opsledger/internal/fixtures/mocks"
	"github.com/amirasaad/opsledger/pkg/config"
	"github.com/amirasaad/opsledger/pkg/domain"
	"github.com/amirasaad/opsledger/pkg/domain/category"
	"github.com/amirasaad/opsledger/pkg/domain/common"
	"github.com/amirasaad/opsledger/pkg/money"
	"github.com/amirasaad/opsledger/pkg/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()
	uow, _ := testutils.NewUoW(t)
	return NewService(config.Deps{Uow: uow, Logger: testutils.Logger()})
}

func TestCreate(t *testing.T) {
	svc := newService(t)

	employee, err := svc.Create(context.Background(), CreateCommand{Title: "Foreman", Row: category.RowEmployee, Status: common.StatusBuilt})
	require.NoError(t, err)
	assert.Empty(t, employee.Status)
	assert.Equal(t, category.DefaultIcon, employee.Icon)
	assert.True(t, employee.IsVisible)

	person, err := svc.Create(context.Background(), CreateCommand{Title: "Walk-in", Row: category.RowPerson, Icon: "User"})
	require.NoError(t, err)
	assert.Equal(t, common.StatusDeposit, person.Status)

	stored, err := svc.Get(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.Equal(t, "Foreman", stored.Title)
	assert.Equal(t, money.Amount(0), stored.Balance)

	all, err := svc.List(context.Background(), 0, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, category.RowPerson, all[0].Row)

	employees, err := svc.List(context.Background(), category.RowEmployee, true)
	require.NoError(t, err)
	assert.Len(t, employees, 1)
}

func TestCreate_ValidationSkipsStorage(t *testing.T) {
	uow := mocks.NewMockUnitOfWork(t)
	svc := NewService(config.Deps{Uow: uow, Logger: testutils.Logger()})

	_, err := svc.Create(context.Background(), CreateCommand{Title: " ", Row: category.RowEmployee})
	require.ErrorIs(t, err, category.ErrTitleRequired)

	_, err = svc.Create(context.Background(), CreateCommand{Title: "X", Row: category.Row(7)})
	require.ErrorIs(t, err, category.ErrInvalidRow)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(context.Background(), CreateCommand{Title: "X", Row: category.RowProject, Status: "paused"})
	require.ErrorIs(t, err, common.ErrInvalidStatus)

	uow.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
}

func TestListAndGet_Errors(t *testing.T) {
	svc := newService(t)

	_, err := svc.List(context.Background(), category.Row(9), false)
	assert.ErrorIs(t, err, category.ErrInvalidRow)

	_, err = svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
