package money

import "github.com/amirasaad/opsledger/pkg/domain"

var (
	// ErrInvalidAmount is returned when a string or float cannot be read as an amount.
	ErrInvalidAmount = domain.NewError(domain.ErrValidation, "invalid amount")

	// ErrAmountOutOfRange is returned when a value does not fit into an Amount.
	ErrAmountOutOfRange = domain.NewError(domain.ErrValidation, "amount out of range")

	// ErrTooPrecise is returned by the exact conversions for values finer than the minor unit.
	ErrTooPrecise = domain.NewError(domain.ErrValidation, "amount finer than the minor unit")
)
