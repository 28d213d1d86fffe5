package simulation

import "math"

// Installment is one month of a constant-amortization (SAC) mortgage.
type Installment struct {
	Month     int     `json:"month"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Payment   float64 `json:"payment"`
	Balance   float64 `json:"balance"` // remaining debt after this payment
}

// sac steps a SAC loan: the principal share is fixed, interest accrues on the
// balance before the payment and the balance never goes below zero.
type sac struct {
	principal float64
	rate      float64
}

func newSAC(financed float64, months int, annualRate float64) sac {
	if months <= 0 {
		return sac{rate: monthlyRate(annualRate)}
	}
	return sac{principal: financed / float64(months), rate: monthlyRate(annualRate)}
}

func (l sac) step(balance float64) (interest, payment, remaining float64) {
	interest = balance * l.rate
	payment = l.principal + interest
	remaining = math.Max(0, balance-l.principal)
	return interest, payment, remaining
}

// AmortizationSchedule lists every installment of a SAC loan of the given
// amount over months payments at an annual percentage rate.
func AmortizationSchedule(financed float64, months int, annualRate float64) []Installment {
	if months <= 0 {
		return []Installment{}
	}
	loan := newSAC(financed, months, annualRate)
	schedule := make([]Installment, 0, months)
	balance := financed
	for m := 1; m <= months; m++ {
		interest, payment, remaining := loan.step(balance)
		schedule = append(schedule, Installment{
			Month:     m,
			Principal: loan.principal,
			Interest:  interest,
			Payment:   payment,
			Balance:   remaining,
		})
		balance = remaining
	}
	return schedule
}
