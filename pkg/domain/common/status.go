package common

import (
	"fmt"

	"github.com/amirasaad/opsledger/pkg/domain"
)

// Status is the construction stage of a client, mirrored onto its person and project accounts.
type Status string

const (
	StatusDeposit  Status = "deposit"
	StatusBuilding Status = "building"
	StatusBuilt    Status = "built"
)

// ErrInvalidStatus is returned for a status outside the three-valued domain.
var ErrInvalidStatus = domain.NewError(domain.ErrValidation, "invalid status")

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDeposit, StatusBuilding, StatusBuilt:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// ParseStatus converts a string into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}
