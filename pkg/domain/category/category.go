// Package category defines the bookkeeping account ("category") aggregate.
package category

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/opsledger/pkg/domain"
	"github.com/amirasaad/opsledger/pkg/domain/common"
	"github.com/amirasaad/opsledger/pkg/money"
	"github.com/google/uuid"
)

var (
	// ErrCategoryNotFound is returned when an account cannot be found.
	ErrCategoryNotFound = domain.NewError(domain.ErrNotFound, "category not found")
	// ErrInvalidRow is returned for a row outside 1..4.
	ErrInvalidRow = domain.NewError(domain.ErrValidation, "invalid category row")
	// ErrTitleRequired is returned when an account is built without a title.
	ErrTitleRequired = domain.NewError(domain.ErrValidation, "category title is required")
)

// Row classifies an account and decides which cascades apply to it.
type Row int

const (
	RowPerson    Row = 1
	RowEmployee  Row = 2
	RowProject   Row = 3
	RowWarehouse Row = 4
)

// Valid reports whether r is a known row.
func (r Row) Valid() bool {
	return r >= RowPerson && r <= RowWarehouse
}

// TracksStatus reports whether accounts of this row mirror their client's status.
func (r Row) TracksStatus() bool {
	return r == RowPerson || r == RowProject
}

func (r Row) String() string {
	switch r {
	case RowPerson:
		return "person"
	case RowEmployee:
		return "employee"
	case RowProject:
		return "project"
	case RowWarehouse:
		return "warehouse"
	default:
		return fmt.Sprintf("row(%d)", int(r))
	}
}

// Icons and colors assigned to the accounts of a new client.
const (
	PersonIcon   = "User"
	PersonColor  = "bg-amber-400"
	ProjectIcon  = "Building2"
	ProjectColor = "bg-blue-500"
	DefaultIcon  = "Home"
	DefaultColor = "bg-emerald-500"
)

// Category is a named bookkeeping bucket with a balance.
//
// Invariants:
//   - Row never changes after creation.
//   - Balance equals the sum of the history entries recorded against the account.
//   - Status and IsVisible are changed only by the client synchronizer.
//   - Version increases on every balance write and guards concurrent updates.
type Category struct {
	ID        uuid.UUID
	ClientID  *uuid.UUID // owning client, nil for standalone accounts
	Title     string
	Balance   money.Amount
	Icon      string
	Color     string
	Row       Row
	Status    common.Status
	IsVisible bool
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BelongsTo reports whether the account is linked to the given client.
func (c *Category) BelongsTo(clientID uuid.UUID) bool {
	return c.ClientID != nil && *c.ClientID == clientID
}

// DisplayBalance formats the balance with the given codec.
func (c *Category) DisplayBalance(codec money.Codec) string {
	return codec.Format(c.Balance)
}

// Builder provides a fluent API for constructing Category instances.
type Builder struct {
	id        uuid.UUID
	clientID  *uuid.UUID
	title     string
	balance   money.Amount
	icon      string
	color     string
	row       Row
	status    common.Status
	isVisible bool
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// New creates a new Builder with a fresh id and a visible, zero-balance account.
func New() *Builder {
	now := time.Now().UTC()
	return &Builder{
		id:        uuid.New(),
		icon:      DefaultIcon,
		color:     DefaultColor,
		isVisible: true,
		createdAt: now,
		updatedAt: now,
	}
}

func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithClientID links the account to its owning client.
func (b *Builder) WithClientID(id uuid.UUID) *Builder {
	b.clientID = &id
	return b
}

func (b *Builder) WithTitle(title string) *Builder {
	b.title = title
	return b
}

// WithBalance sets the balance. Only used when hydrating from storage or in tests.
func (b *Builder) WithBalance(balance money.Amount) *Builder {
	b.balance = balance
	return b
}

func (b *Builder) WithIcon(icon string) *Builder {
	if icon != "" {
		b.icon = icon
	}
	return b
}

func (b *Builder) WithColor(color string) *Builder {
	if color != "" {
		b.color = color
	}
	return b
}

func (b *Builder) WithRow(row Row) *Builder {
	b.row = row
	return b
}

func (b *Builder) WithStatus(status common.Status) *Builder {
	b.status = status
	return b
}

func (b *Builder) WithVisible(visible bool) *Builder {
	b.isVisible = visible
	return b
}

func (b *Builder) WithVersion(version int64) *Builder {
	b.version = version
	return b
}

func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates the account and returns it.
func (b *Builder) Build() (*Category, error) {
	title := strings.TrimSpace(b.title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if !b.row.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRow, int(b.row))
	}
	if b.status != "" && !b.status.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidStatus, b.status)
	}
	return &Category{
		ID:        b.id,
		ClientID:  b.clientID,
		Title:     title,
		Balance:   b.balance,
		Icon:      b.icon,
		Color:     b.color,
		Row:       b.row,
		Status:    b.status,
		IsVisible: b.isVisible,
		Version:   b.version,
		CreatedAt: b.createdAt,
		UpdatedAt: b.updatedAt,
	}, nil
}
