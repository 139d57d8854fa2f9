package repository

import (
	"context"
	"time"

	"github.com/amirasaad/opsledger/pkg/domain/category"
	"github.com/amirasaad/opsledger/pkg/domain/client"
	"github.com/amirasaad/opsledger/pkg/domain/common"
	"github.com/amirasaad/opsledger/pkg/domain/history"
	"github.com/amirasaad/opsledger/pkg/money"
	"github.com/google/uuid"
)

// MatchMode selects how a client's accounts are found.
type MatchMode string

const (
	// MatchClientID finds accounts by their client reference and falls back to an exact
	// title match for accounts that carry no client reference.
	MatchClientID MatchMode = "client_id"
	// MatchTitle finds accounts by exact title only.
	MatchTitle MatchMode = "title"
)

// Valid reports whether m is a known mode.
func (m MatchMode) Valid() bool {
	return m == MatchClientID || m == MatchTitle
}

// LinkQuery identifies the accounts owned by one client.
type LinkQuery struct {
	ClientID uuid.UUID
	Title    string
	Mode     MatchMode
}

// CategoryFilter narrows List results. Zero values mean "any".
type CategoryFilter struct {
	Row         category.Row
	VisibleOnly bool
}

// CategoryFlags carries the synchronized attributes of an account. Nil fields are left unchanged.
type CategoryFlags struct {
	Status    *common.Status
	IsVisible *bool
}

// Page bounds a history query. Limit <= 0 returns every record.
type Page struct {
	Limit  int
	Offset int
}

// CategoryRepository is the ledger store: accounts and their balances.
type CategoryRepository interface {
	Create(ctx context.Context, c *category.Category) error
	Get(ctx context.Context, id uuid.UUID) (*category.Category, error)
	GetBalance(ctx context.Context, id uuid.UUID) (money.Amount, error)
	// SetBalance writes balance if the stored version still equals c.Version and returns
	// domain.ErrVersionConflict otherwise. On success c.Balance and c.Version are updated.
	SetBalance(ctx context.Context, c *category.Category, balance money.Amount) error
	List(ctx context.Context, filter CategoryFilter) ([]*category.Category, error)
	FindLinked(ctx context.Context, q LinkQuery) ([]*category.Category, error)
	UpdateFlags(ctx context.Context, ids []uuid.UUID, flags CategoryFlags) error
	UpdateTitle(ctx context.Context, ids []uuid.UUID, title string) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
}

// TransactionRepository is the append-only history log.
type TransactionRepository interface {
	// Append stores the records and stamps each with the commit time.
	Append(ctx context.Context, txs ...*history.Transaction) error
	// ListByCategory returns the records of one account, newest first.
	ListByCategory(ctx context.Context, categoryID string, page Page) ([]*history.Transaction, error)
	SumByCategory(ctx context.Context, categoryID string) (money.Amount, error)
	// DeleteByCategoryIDs removes every record of the given accounts, issuing one statement
	// per batchSize ids, and returns references to the removed records.
	DeleteByCategoryIDs(ctx context.Context, categoryIDs []string, batchSize int) ([]history.Ref, error)
}

// ClientFilter narrows client listings. Zero values mean "any".
type ClientFilter struct {
	Year        int
	Status      common.Status
	VisibleOnly bool
	// Query keeps clients matching every whitespace-separated term, see client.Matches.
	Query string
}

// ClientUpdate carries changes to a client. Nil fields are left unchanged.
type ClientUpdate struct {
	Details   *client.Details
	Status    *common.Status
	IsVisible *bool
}

// ClientRepository stores clients.
type ClientRepository interface {
	Create(ctx context.Context, c *client.Client) error
	Get(ctx context.Context, id uuid.UUID) (*client.Client, error)
	List(ctx context.Context, filter ClientFilter) ([]*client.Client, error)
	// Numbers returns the client numbers issued for the given status and year.
	Numbers(ctx context.Context, status common.Status, year int) ([]string, error)
	ListOverdue(ctx context.Context, now time.Time) ([]*client.Client, error)
	Update(ctx context.Context, id uuid.UUID, update ClientUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClientHistoryRepository stores the change history of clients. Entries outlive the
// client they describe.
type ClientHistoryRepository interface {
	Append(ctx context.Context, changes ...*client.Change) error
	// ListByClient returns the changes of one client, newest first.
	ListByClient(ctx context.Context, clientID uuid.UUID, page Page) ([]*client.Change, error)
}
