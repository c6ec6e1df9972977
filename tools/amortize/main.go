package main

import (
	"flag"
	"fmt"

	"github.com/nwgo/networth-simulator/internal/simulation"
)

// amortize prints the yearly schedule the mortgage model produces for a
// principal, rate and term. Handy when checking a scenario's mortgage cash
// flows against a lender's quote.
func main() {
	principal := flag.Float64("principal", 180000, "loan principal")
	rate := flag.Float64("rate", 0.04, "annual interest rate")
	term := flag.Int("term", 25, "term in years")
	flag.Parse()

	payment := simulation.AnnualPayment(*principal, *rate, *term)
	fmt.Printf("principal %.2f at %.2f%% over %d years: annual payment %.2f\n\n",
		*principal, *rate*100, *term, payment)
	fmt.Printf("%4s %14s %12s %12s %14s\n", "year", "balance", "interest", "principal", "new balance")

	balance := *principal
	for year := 1; balance > 0 && year <= *term+1; year++ {
		interest := balance * *rate
		repaid := payment - interest
		if repaid > balance {
			repaid = balance
		}
		next := balance - repaid
		fmt.Printf("%4d %14.2f %12.2f %12.2f %14.2f\n", year, balance, interest, repaid, next)
		balance = next
	}
}
