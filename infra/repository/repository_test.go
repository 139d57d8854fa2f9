package repository_test

import (
	"context"
	"testing"
	"time"

	infrarepo "github.com/amirasaad/opsledger/infra/repository"
	"github.com/amirasaad/opsledger/pkg/domain"
	"github.com/amirasaad/opsledger/pkg/domain/category"
	"github.com/amirasaad/opsledger/pkg/domain/client"
	"github.com/amirasaad/opsledger/pkg/domain/common"
	"github.com/amirasaad/opsledger/pkg/domain/history"
	"github.com/amirasaad/opsledger/pkg/money"
	"github.com/amirasaad/opsledger/pkg/repository"
	"github.com/amirasaad/opsledger/pkg/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RepositorySuite struct {
	suite.Suite
	ctx context.Context
	uow *infrarepo.UoW
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.uow, _ = testutils.NewUoW(s.T())
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) categories() repository.CategoryRepository {
	repo, err := s.uow.CategoryRepository()
	s.Require().NoError(err)
	return repo
}

func (s *RepositorySuite) transactions() repository.TransactionRepository {
	repo, err := s.uow.TransactionRepository()
	s.Require().NoError(err)
	return repo
}

func (s *RepositorySuite) clients() repository.ClientRepository {
	repo, err := s.uow.ClientRepository()
	s.Require().NoError(err)
	return repo
}

func (s *RepositorySuite) TestCategory_RoundTrip() {
	clientID := uuid.New()
	cat := testutils.SeedCategory(s.T(), s.uow, "Ivanov Petr", category.RowPerson, money.FromMajor(100), testutils.WithClient(clientID))

	got, err := s.categories().Get(s.ctx, cat.ID)
	s.Require().NoError(err)
	s.Equal(cat.Title, got.Title)
	s.Equal(money.FromMajor(100), got.Balance)
	s.Equal(category.RowPerson, got.Row)
	s.Equal(common.StatusDeposit, got.Status)
	s.True(got.IsVisible)
	s.True(got.BelongsTo(clientID))

	balance, err := s.categories().GetBalance(s.ctx, cat.ID)
	s.Require().NoError(err)
	s.Equal(money.FromMajor(100), balance)
}

func (s *RepositorySuite) TestCategory_NotFound() {
	_, err := s.categories().Get(s.ctx, uuid.New())
	s.ErrorIs(err, category.ErrCategoryNotFound)
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = s.categories().GetBalance(s.ctx, uuid.New())
	s.ErrorIs(err, category.ErrCategoryNotFound)
}

func (s *RepositorySuite) TestCategory_HiddenAccountPersistsFalse() {
	cat := testutils.SeedCategory(s.T(), s.uow, "Warehouse", category.RowWarehouse, 0, func(b *category.Builder) {
		b.WithVisible(false)
	})
	got, err := s.categories().Get(s.ctx, cat.ID)
	s.Require().NoError(err)
	s.False(got.IsVisible)
}

func (s *RepositorySuite) TestCategory_SetBalanceDetectsStaleVersion() {
	cat := testutils.SeedCategory(s.T(), s.uow, "Site", category.RowProject, 0)

	first, err := s.categories().Get(s.ctx, cat.ID)
	s.Require().NoError(err)
	stale, err := s.categories().Get(s.ctx, cat.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.categories().SetBalance(s.ctx, first, money.FromMajor(5)))
	err = s.categories().SetBalance(s.ctx, stale, money.FromMajor(7))
	s.ErrorIs(err, domain.ErrVersionConflict)
	s.ErrorIs(err, domain.ErrConflict)

	balance, err := s.categories().GetBalance(s.ctx, cat.ID)
	s.Require().NoError(err)
	s.Equal(money.FromMajor(5), balance)
}

func (s *RepositorySuite) TestCategory_FindLinked() {
	clientID := uuid.New()
	linked := testutils.SeedCategory(s.T(), s.uow, "Ivanov Petr", category.RowPerson, 0, testutils.WithClient(clientID))
	legacy := testutils.SeedCategory(s.T(), s.uow, "Ivanov Petr", category.RowProject, 0)
	other := testutils.SeedCategory(s.T(), s.uow, "Ivanov Petr", category.RowProject, 0, testutils.WithClient(uuid.New()))
	testutils.SeedCategory(s.T(), s.uow, "Sidorov Ivan", category.RowPerson, 0)

	byID, err := s.categories().FindLinked(s.ctx, repository.LinkQuery{ClientID: clientID, Title: "Ivanov Petr", Mode: repository.MatchClientID})
	s.Require().NoError(err)
	s.ElementsMatch([]uuid.UUID{linked.ID, legacy.ID}, ids(byID))

	byTitle, err := s.categories().FindLinked(s.ctx, repository.LinkQuery{Title: "Ivanov Petr", Mode: repository.MatchTitle})
	s.Require().NoError(err)
	s.ElementsMatch([]uuid.UUID{linked.ID, legacy.ID, other.ID}, ids(byTitle))

	onlyID, err := s.categories().FindLinked(s.ctx, repository.LinkQuery{ClientID: clientID, Mode: repository.MatchClientID})
	s.Require().NoError(err)
	s.ElementsMatch([]uuid.UUID{linked.ID}, ids(onlyID))
}

func (s *RepositorySuite) TestCategory_UpdateFlagsAndDelete() {
	a := testutils.SeedCategory(s.T(), s.uow, "A", category.RowPerson, 0)
	b := testutils.SeedCategory(s.T(), s.uow, "A", category.RowProject, 0)

	built := common.StatusBuilt
	hidden := false
	s.Require().NoError(s.categories().UpdateFlags(s.ctx, []uuid.UUID{a.ID, b.ID}, repository.CategoryFlags{Status: &built, IsVisible: &hidden}))
	for _, id := range []uuid.UUID{a.ID, b.ID} {
		got, err := s.categories().Get(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(common.StatusBuilt, got.Status)
		s.False(got.IsVisible)
	}

	visible, err := s.categories().List(s.ctx, repository.CategoryFilter{VisibleOnly: true})
	s.Require().NoError(err)
	s.Empty(visible)

	s.Require().NoError(s.categories().DeleteByIDs(s.ctx, []uuid.UUID{a.ID}))
	_, err = s.categories().Get(s.ctx, a.ID)
	s.ErrorIs(err, category.ErrCategoryNotFound)
	s.NoError(s.categories().DeleteByIDs(s.ctx, nil))
}

func (s *RepositorySuite) TestTransactions_OrderSumAndPaging() {
	repo := s.transactions()
	catID := uuid.NewString()
	transfer := uuid.New()

	first := history.NewCredit(transfer, catID, "a", "b", money.FromMajor(100), "first")
	s.Require().NoError(repo.Append(s.ctx, first))
	time.Sleep(5 * time.Millisecond)
	second := history.NewDebit(transfer, catID, "b", "a", money.FromMajor(30), "second")
	s.Require().NoError(repo.Append(s.ctx, second))

	s.False(first.Date.IsZero(), "date is assigned on append")

	list, err := repo.ListByCategory(s.ctx, catID, repository.Page{})
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(second.ID, list[0].ID, "newest first")
	s.Equal(first.ID, list[1].ID)
	s.Equal(money.FromMajor(-30), list[0].Amount)
	s.Equal(history.TypeExpense, list[0].Type)

	page, err := repo.ListByCategory(s.ctx, catID, repository.Page{Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(first.ID, page[0].ID)

	sum, err := repo.SumByCategory(s.ctx, catID)
	s.Require().NoError(err)
	s.Equal(money.FromMajor(70), sum)

	empty, err := repo.SumByCategory(s.ctx, uuid.NewString())
	s.Require().NoError(err)
	s.Zero(empty)
}

func (s *RepositorySuite) TestTransactions_DeleteInBatches() {
	repo := s.transactions()
	var categoryIDs []string
	for i := 0; i < 5; i++ {
		id := uuid.NewString()
		categoryIDs = append(categoryIDs, id)
		s.Require().NoError(repo.Append(s.ctx,
			history.NewCredit(uuid.New(), id, "x", "y", money.FromMajor(1), "a"),
			history.NewCredit(uuid.New(), id, "x", "y", money.FromMajor(2), "b"),
		))
	}
	keep := uuid.NewString()
	s.Require().NoError(repo.Append(s.ctx, history.NewCredit(uuid.New(), keep, "x", "y", 1, "keep")))

	var removed []history.Ref
	err := s.uow.Do(s.ctx, func(tx repository.UnitOfWork) error {
		txRepo, err := tx.TransactionRepository()
		if err != nil {
			return err
		}
		removed, err = txRepo.DeleteByCategoryIDs(s.ctx, categoryIDs, 2)
		return err
	})
	s.Require().NoError(err)
	s.Len(removed, 10)
	for _, ref := range removed {
		s.Contains(categoryIDs, ref.CategoryID)
	}

	for _, id := range categoryIDs {
		list, err := repo.ListByCategory(s.ctx, id, repository.Page{})
		s.Require().NoError(err)
		s.Empty(list)
	}
	list, err := repo.ListByCategory(s.ctx, keep, repository.Page{})
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *RepositorySuite) TestClients() {
	repo := s.clients()
	created := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	c, err := client.New(client.Details{
		LastName: "Ivanov", FirstName: "Petr", ConstructionDays: 30,
		TotalAmount: money.FromMajor(1000), Deposit: money.FromMajor(100), Year: 2025,
	}, "2025-001", created)
	s.Require().NoError(err)
	s.Require().NoError(repo.Create(s.ctx, c))

	got, err := repo.Get(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Ivanov Petr", got.FullName())
	s.Equal(money.FromMajor(100), got.Deposit)
	s.Equal("2025-001", got.ClientNumber)

	numbers, err := repo.Numbers(s.ctx, common.StatusDeposit, 2025)
	s.Require().NoError(err)
	s.Equal([]string{"2025-001"}, numbers)

	building := common.StatusBuilding
	s.Require().NoError(repo.Update(s.ctx, c.ID, repository.ClientUpdate{Status: &building}))

	overdue, err := repo.ListOverdue(s.ctx, created.AddDate(0, 0, 31))
	s.Require().NoError(err)
	s.Require().Len(overdue, 1)
	s.Equal(c.ID, overdue[0].ID)

	notYet, err := repo.ListOverdue(s.ctx, created.AddDate(0, 0, 29))
	s.Require().NoError(err)
	s.Empty(notYet)

	list, err := repo.List(s.ctx, repository.ClientFilter{Status: common.StatusBuilding, Year: 2025})
	s.Require().NoError(err)
	s.Len(list, 1)

	s.Require().NoError(repo.Delete(s.ctx, c.ID))
	s.ErrorIs(repo.Delete(s.ctx, c.ID), client.ErrClientNotFound)
	_, err = repo.Get(s.ctx, c.ID)
	s.ErrorIs(err, client.ErrClientNotFound)
}

func TestUoW_RollbackLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	uow, _ := testutils.NewUoW(t)
	cat := testutils.SeedCategory(t, uow, "A", category.RowEmployee, 0)

	err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
		repo, err := tx.CategoryRepository()
		require.NoError(t, err)
		require.NoError(t, repo.SetBalance(ctx, cat, money.FromMajor(9)))
		return domain.ErrVersionConflict
	})
	require.ErrorIs(t, err, domain.ErrVersionConflict)

	repo, err := uow.CategoryRepository()
	require.NoError(t, err)
	balance, err := repo.GetBalance(ctx, cat.ID)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func ids(cats []*category.Category) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.ID)
	}
	return out
}

func (s *RepositorySuite) TestClients_Search() {
	repo := s.clients()
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	seed := func(number string, d client.Details) {
		d.Year = 2025
		c, err := client.New(d, number, now)
		s.Require().NoError(err)
		s.Require().NoError(repo.Create(s.ctx, c))
	}
	seed("2025-001", client.Details{LastName: "Ivanov", FirstName: "Petr", ConstructionAddress: "Almaty, Abay 10", ObjectName: "Cottage"})
	seed("2025-002", client.Details{LastName: "Сидоров", FirstName: "Алексей", Phone: "+7 701 555 00 11"})
	seed("2025-003", client.Details{LastName: "Ivanova", FirstName: "Anna", Email: "anna@example.com"})

	search := func(q string) []string {
		list, err := repo.List(s.ctx, repository.ClientFilter{Query: q})
		s.Require().NoError(err)
		numbers := make([]string, len(list))
		for i, c := range list {
			numbers[i] = c.ClientNumber
		}
		return numbers
	}

	s.Equal([]string{"2025-001", "2025-002", "2025-003"}, search("  "))
	s.Equal([]string{"2025-001", "2025-003"}, search("ivanov"))
	s.Equal([]string{"2025-001"}, search("IVANOV abay"))
	s.Equal([]string{"2025-002"}, search("сидоров 555"))
	s.Equal([]string{"2025-003"}, search("2025-003"))
	s.Empty(search("ivanov сидоров"))
}

func (s *RepositorySuite) TestClientHistory() {
	repo, err := s.uow.ClientHistoryRepository()
	s.Require().NoError(err)
	clientID := uuid.New()
	base := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	created := client.NewChange(clientID, client.ActionCreated, map[string]client.FieldChange{"clientNumber": {To: "2025-001"}}, "foreman", base)
	updated := client.NewChange(clientID, client.ActionUpdated, map[string]client.FieldChange{"phone": {From: "", To: "+7 701"}}, "foreman", base.Add(time.Hour))
	other := client.NewChange(uuid.New(), client.ActionCreated, nil, "system", base)
	s.Require().NoError(repo.Append(s.ctx, created, updated, other))
	s.Require().NoError(repo.Append(s.ctx))

	list, err := repo.ListByClient(s.ctx, clientID, repository.Page{})
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(client.ActionUpdated, list[0].Action)
	s.Equal(client.FieldChange{To: "+7 701"}, list[0].Changes["phone"])
	s.Equal("foreman", list[0].Operator)
	s.True(base.Add(time.Hour).Equal(list[0].Timestamp))
	s.Equal(client.ActionCreated, list[1].Action)

	page, err := repo.ListByClient(s.ctx, clientID, repository.Page{Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(created.ID, page[0].ID)

	none, err := repo.ListByClient(s.ctx, uuid.New(), repository.Page{})
	s.Require().NoError(err)
	s.Empty(none)
}
