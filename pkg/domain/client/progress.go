package client

import "github.com/amirasaad/opsledger/pkg/money"

// Stage is one installment of the payment schedule.
type Stage struct {
	Name   string
	Amount money.Amount
	Paid   bool
}

// Progress summarizes how much of the contract the payment schedule covers.
type Progress struct {
	TotalPaid money.Amount
	Percent   float64
	Stages    []Stage
	FullyPaid bool
}

var stageNames = []string{"deposit", "first payment", "second payment", "third payment", "fourth payment"}

// PaymentProgress computes the schedule progress of a client's contract.
// A stage counts as paid once the cumulative schedule reaches it; the last stage
// is paid only when the whole contract amount is covered.
func (d Details) PaymentProgress() Progress {
	schedule := d.schedule()
	var total money.Amount
	for _, a := range schedule {
		total += a
	}

	stages := make([]Stage, len(schedule))
	var cumulative money.Amount
	for i, a := range schedule {
		cumulative += a
		paid := total >= cumulative
		if i == len(schedule)-1 {
			paid = total >= d.TotalAmount
		}
		stages[i] = Stage{Name: stageNames[i], Amount: a, Paid: paid}
	}

	var percent float64
	if d.TotalAmount > 0 {
		percent = total.Float64() / d.TotalAmount.Float64() * 100
	}
	return Progress{
		TotalPaid: total,
		Percent:   percent,
		Stages:    stages,
		FullyPaid: total >= d.TotalAmount,
	}
}
