package simulation

import (
	"fmt"
	"sort"

	"github.com/nwgo/networth-simulator/internal/domain"
)

// eventSchedule indexes the scenario's events by simulation year, each
// year's events ordered by kind priority so purchases land before sales and
// recurring adjustments before one-off cash movements.
type eventSchedule struct {
	byYear map[int][]domain.Event
}

func compileEvents(events []domain.Event) eventSchedule {
	byYear := make(map[int][]domain.Event)
	for _, ev := range events {
		byYear[ev.Year] = append(byYear[ev.Year], ev)
	}
	for year := range byYear {
		evs := byYear[year]
		sort.SliceStable(evs, func(i, j int) bool {
			return evs[i].Kind.Priority() < evs[j].Kind.Priority()
		})
	}
	return eventSchedule{byYear: byYear}
}

func (s eventSchedule) at(year int) []domain.Event {
	return s.byYear[year]
}

// eventEffect is the resolved state change of a single event. Recurring
// deltas accumulate into the path's trackers and take effect the following
// year; everything else applies immediately.
type eventEffect struct {
	liquid           float64
	propertyValue    float64
	recurringIncome  float64
	recurringExpense float64
	newLoan          *Loan
	clearsProperty   bool
}

// resolveEvent turns an event into its effect on a path. mortgageBalance is
// the path's total outstanding balance going into the event; a sale settles
// it out of the proceeds and flags negative equity when the net sale price
// does not cover it.
func resolveEvent(ev domain.Event, path int, mortgageBalance float64) (eventEffect, *domain.Message) {
	var eff eventEffect

	switch ev.Kind {
	case domain.EventPropertyPurchase:
		price := ev.Price.InexactFloat64()
		down := ev.DownPayment.InexactFloat64()
		eff.liquid = -down
		eff.propertyValue = price
		if principal := price - down; principal > 0 {
			loan := NewLoan(principal, ev.InterestRate, ev.TermYears)
			eff.newLoan = &loan
		}

	case domain.EventPropertySale:
		netPrice := ev.SalePrice.InexactFloat64() - ev.SellingCosts.InexactFloat64()
		eff.liquid = netPrice - mortgageBalance
		eff.clearsProperty = true
		if netPrice < mortgageBalance {
			msg := &domain.Message{
				Path:  path,
				Year:  ev.Year,
				Level: domain.LevelWarning,
				Code:  domain.CodeNegativeEquity,
				Text: fmt.Sprintf("property sale in year %d: net proceeds %.2f do not cover outstanding mortgage %.2f",
					ev.Year, netPrice, mortgageBalance),
			}
			return eff, msg
		}

	case domain.EventOneTimeExpense:
		eff.liquid = -ev.Amount.InexactFloat64()

	case domain.EventWindfall:
		eff.liquid = ev.Amount.InexactFloat64()

	case domain.EventExpenseChange:
		eff.recurringExpense = ev.MonthlyAmount.InexactFloat64() * 12

	case domain.EventRentalIncome:
		eff.recurringIncome = ev.MonthlyAmount.InexactFloat64() * 12
	}

	return eff, nil
}
