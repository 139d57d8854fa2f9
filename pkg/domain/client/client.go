// Package client defines the business entity that owns a person and a project account.
package client

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amirasaad/opsledger/pkg/domain"
	"github.com/amirasaad/opsledger/pkg/domain/common"
	"github.com/amirasaad/opsledger/pkg/money"
	"github.com/google/uuid"
)

var (
	// ErrClientNotFound is returned when a client cannot be found.
	ErrClientNotFound = domain.NewError(domain.ErrNotFound, "client not found")
	// ErrNameRequired is returned when a client has no last or first name.
	ErrNameRequired = domain.NewError(domain.ErrValidation, "client last name and first name are required")
	// ErrNegativeAmount is returned when a contract amount is negative.
	ErrNegativeAmount = domain.NewError(domain.ErrValidation, "contract amounts must not be negative")
	// ErrInvalidConstructionDays is returned for a negative construction period.
	ErrInvalidConstructionDays = domain.NewError(domain.ErrValidation, "construction days must not be negative")
	// ErrInvalidYear is returned for a missing contract year.
	ErrInvalidYear = domain.NewError(domain.ErrValidation, "contract year is required")
)

// Details holds the editable attributes of a client.
type Details struct {
	LastName            string
	FirstName           string
	MiddleName          string
	Phone               string
	Email               string
	IIN                 string
	ConstructionAddress string
	LivingAddress       string
	ObjectName          string
	ConstructionDays    int
	TotalAmount         money.Amount
	Deposit             money.Amount
	FirstPayment        money.Amount
	SecondPayment       money.Amount
	ThirdPayment        money.Amount
	FourthPayment       money.Amount
	Year                int
	Status              common.Status
}

// FullName is the title shared by the client's accounts.
func (d Details) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(d.LastName) + " " + strings.TrimSpace(d.FirstName))
}

// Validate checks the client attributes.
func (d Details) Validate() error {
	if strings.TrimSpace(d.LastName) == "" || strings.TrimSpace(d.FirstName) == "" {
		return ErrNameRequired
	}
	if !d.Status.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidStatus, d.Status)
	}
	if d.ConstructionDays < 0 {
		return ErrInvalidConstructionDays
	}
	if d.Year <= 0 {
		return ErrInvalidYear
	}
	for _, a := range d.schedule() {
		if a < 0 {
			return ErrNegativeAmount
		}
	}
	if d.TotalAmount < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func (d Details) schedule() []money.Amount {
	return []money.Amount{d.Deposit, d.FirstPayment, d.SecondPayment, d.ThirdPayment, d.FourthPayment}
}

// Client is the owning business entity of a person account and a project account.
type Client struct {
	Details
	ID           uuid.UUID
	ClientNumber string
	IsVisible    bool
	CreatedAt    time.Time
}

// New validates the details and returns a visible client with a fresh id.
func New(d Details, number string, now time.Time) (*Client, error) {
	if d.Status == "" {
		d.Status = common.StatusDeposit
	}
	if d.Year == 0 {
		d.Year = now.Year()
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		Details:      d,
		ID:           uuid.New(),
		ClientNumber: number,
		IsVisible:    true,
		CreatedAt:    now,
	}, nil
}

// DeadlineAt is the planned end of construction.
func (c *Client) DeadlineAt() time.Time {
	return c.CreatedAt.AddDate(0, 0, c.ConstructionDays)
}

// IsOverdue reports whether construction is still in progress after its deadline.
func (c *Client) IsOverdue(now time.Time) bool {
	return c.Status == common.StatusBuilding && now.After(c.DeadlineAt())
}

// NextNumber returns the next "<year>-<NNN>" client number given the numbers already
// issued for the same status and year. Malformed numbers are ignored.
func NextNumber(year int, existing []string) string {
	maxNumber := 0
	for _, n := range existing {
		_, seq, ok := strings.Cut(n, "-")
		if !ok {
			continue
		}
		v, err := strconv.Atoi(seq)
		if err != nil {
			continue
		}
		if v > maxNumber {
			maxNumber = v
		}
	}
	return fmt.Sprintf("%d-%03d", year, maxNumber+1)
}
