package simulation

import "math"

// Loan is one active amortization schedule: the open balance, the fixed
// annual payment and the annual interest rate. A path may carry several
// loans when purchase events add properties; recorded mortgage balance is
// their sum.
type Loan struct {
	Balance float64
	Payment float64
	Rate    float64
}

// AnnualPayment computes the fixed yearly payment for a principal borrowed
// over termYears at the given annual rate: the standard monthly annuity
// formula P·r(1+r)^n / ((1+r)^n − 1) with r = rate/12 and n = termYears·12,
// times twelve. A zero rate amortizes linearly.
func AnnualPayment(principal, annualRate float64, termYears int) float64 {
	if principal <= 0 || termYears <= 0 {
		return 0
	}
	months := float64(termYears * 12)
	monthlyRate := annualRate / 12
	if monthlyRate == 0 {
		return principal / months * 12
	}
	pow := math.Pow(1+monthlyRate, months)
	monthly := principal * monthlyRate * pow / (pow - 1)
	return monthly * 12
}

// NewLoan opens a schedule for the given principal and terms.
func NewLoan(principal, annualRate float64, termYears int) Loan {
	return Loan{
		Balance: principal,
		Payment: AnnualPayment(principal, annualRate, termYears),
		Rate:    annualRate,
	}
}

// amortizeYear advances the loan one year and returns the cash actually
// paid. Interest accrues on the open balance; the principal portion is
// capped at the remaining balance so the balance never goes negative, and
// a repaid loan charges no interest and takes no further payments.
func (l *Loan) amortizeYear() (paid float64) {
	if l.Balance <= 0 {
		l.Balance = 0
		return 0
	}
	interest := l.Balance * l.Rate
	paid = l.Payment
	if paid > interest+l.Balance {
		paid = interest + l.Balance
	}
	principal := paid - interest
	if principal < 0 {
		principal = 0
	}
	l.Balance -= principal
	if l.Balance < 0 {
		l.Balance = 0
	}
	return paid
}

// totalBalance sums the outstanding balances of a path's loans.
func totalBalance(loans []Loan) float64 {
	var total float64
	for i := range loans {
		total += loans[i].Balance
	}
	return total
}

// appreciate applies one year of property appreciation.
func appreciate(value, rate float64) float64 {
	if value <= 0 {
		return value
	}
	return value * (1 + rate)
}
