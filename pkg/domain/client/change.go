package client

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Action names the kind of change recorded in a client's history.
type Action string

const (
	ActionCreated           Action = "created"
	ActionUpdated           Action = "updated"
	ActionStatusChanged     Action = "status_changed"
	ActionVisibilityChanged Action = "visibility_changed"
	ActionDeleted           Action = "deleted"
)

// FieldChange is the old and new value of one attribute.
type FieldChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Change is one entry of a client's change history.
type Change struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	Action    Action
	Changes   map[string]FieldChange
	Operator  string
	Timestamp time.Time
}

// NewChange returns a history entry with a fresh id.
func NewChange(clientID uuid.UUID, action Action, changes map[string]FieldChange, operator string, now time.Time) *Change {
	if changes == nil {
		changes = map[string]FieldChange{}
	}
	return &Change{
		ID:        uuid.New(),
		ClientID:  clientID,
		Action:    action,
		Changes:   changes,
		Operator:  operator,
		Timestamp: now,
	}
}

// Diff lists the attributes that differ between two versions of a client's details,
// keyed by their API field names.
func Diff(before, after Details) map[string]FieldChange {
	out := map[string]FieldChange{}
	add := func(field, from, to string) {
		if from != to {
			out[field] = FieldChange{From: from, To: to}
		}
	}
	add("lastName", before.LastName, after.LastName)
	add("firstName", before.FirstName, after.FirstName)
	add("middleName", before.MiddleName, after.MiddleName)
	add("phone", before.Phone, after.Phone)
	add("email", before.Email, after.Email)
	add("iin", before.IIN, after.IIN)
	add("constructionAddress", before.ConstructionAddress, after.ConstructionAddress)
	add("livingAddress", before.LivingAddress, after.LivingAddress)
	add("objectName", before.ObjectName, after.ObjectName)
	add("constructionDays", strconv.Itoa(before.ConstructionDays), strconv.Itoa(after.ConstructionDays))
	add("totalAmount", before.TotalAmount.String(), after.TotalAmount.String())
	add("deposit", before.Deposit.String(), after.Deposit.String())
	add("firstPayment", before.FirstPayment.String(), after.FirstPayment.String())
	add("secondPayment", before.SecondPayment.String(), after.SecondPayment.String())
	add("thirdPayment", before.ThirdPayment.String(), after.ThirdPayment.String())
	add("fourthPayment", before.FourthPayment.String(), after.FourthPayment.String())
	add("year", strconv.Itoa(before.Year), strconv.Itoa(after.Year))
	add("status", string(before.Status), string(after.Status))
	return out
}

// SearchTerms splits a search query into lower-case terms.
func SearchTerms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Matches reports whether every term occurs in the client's names, number, address,
// phone, email or object name. No terms match every client.
func (c *Client) Matches(terms []string) bool {
	text := strings.ToLower(strings.Join([]string{
		c.LastName,
		c.FirstName,
		c.MiddleName,
		c.ClientNumber,
		c.ConstructionAddress,
		c.Phone,
		c.Email,
		c.ObjectName,
	}, " "))
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}
