package simulation

import (
	"math"

	"github.com/nwgo/networth-simulator/internal/domain"
	"github.com/nwgo/networth-simulator/pkg/timeline"
)

// invariantTolerance is the reconciliation slack between the component sum
// liquid + pension + property − mortgage and the net worth tracked
// independently through each transition, relative to the gross magnitude
// of the components. Covers float drift over a long horizon, nothing more.
const invariantTolerance = 1e-8

// compiledScenario is a scenario reduced to the plain numbers the yearly
// loop works with. Compilation happens once per run; the compiled form is
// read-only afterwards and shared by all workers.
type compiledScenario struct {
	horizon       int
	startingAge   int
	retirementAge int
	drawdownRate  float64
	appreciation  float64

	insolvencyFloor *float64

	liquid0   float64
	pension0  float64
	property0 float64
	loan0     *Loan

	plan     *householdPlan
	schedule eventSchedule
}

func compileScenario(sc *domain.ScenarioConfig) *compiledScenario {
	cs := &compiledScenario{
		horizon:         sc.HorizonYears(),
		startingAge:     sc.StartingAge,
		retirementAge:   sc.RetirementAge,
		drawdownRate:    sc.Pension.DrawdownRate,
		appreciation:    sc.Assumptions.PropertyAppreciationRate,
		insolvencyFloor: sc.InsolvencyFloor,
		liquid0:         sc.StartingLiquidWealth.InexactFloat64(),
		pension0:        sc.StartingPensionWealth.InexactFloat64(),
		plan:            compileHousehold(sc),
		schedule:        compileEvents(sc.Events),
	}
	if p := sc.Property; p != nil {
		cs.property0 = p.Value.InexactFloat64()
		if balance := p.MortgageBalance.InexactFloat64(); balance > 0 {
			loan := NewLoan(balance, p.InterestRate, p.TermYears)
			cs.loan0 = &loan
		}
	}
	return cs
}

// pathState is the mutable per-path state advanced one year at a time.
// The recurring trackers hold nominal annual amounts accumulated from
// events; they are indexed by the path's inflation when the flow happens.
type pathState struct {
	liquid        float64
	pension       float64
	propertyValue float64
	loans         []Loan
	cumInflation  float64

	recurringIncome  float64
	recurringExpense float64

	// net is the household's net worth tracked double-entry style: every
	// step adds the wealth it creates or destroys (cash flows, growth,
	// interest, appreciation), never a component total. Reconciling it
	// against the component sum at record time is what catches a step
	// that moves one balance without the matching entry.
	net float64
}

// runPath integrates one path from the year-0 snapshot to the horizon and
// writes its rows into rs. It reads only the compiled scenario and the
// path's own draws, so paths may run concurrently in any order. Returned
// messages carry the path's non-fatal diagnostics; err is the first
// accounting identity violation, which also appears among the messages at
// critical level. The path keeps integrating after a violation so the
// remaining rows stay inspectable.
func (cs *compiledScenario) runPath(path int, draws PathDraws, rs *domain.ResultSet) (msgs []domain.Message, err error) {
	st := pathState{
		liquid:        cs.liquid0,
		pension:       cs.pension0,
		propertyValue: cs.property0,
		cumInflation:  1,
	}
	if cs.loan0 != nil {
		st.loans = append(st.loans, *cs.loan0)
	}
	st.net = st.liquid + st.pension + st.propertyValue - totalBalance(st.loans)

	record := func(year int, inflationDraw float64) {
		if v := cs.record(rs, path, year, &st, inflationDraw); v != nil {
			msgs = append(msgs, violationMessage(v))
			if err == nil {
				err = v
			}
		}
	}

	// Events scheduled at year 0 adjust the opening snapshot before it is
	// recorded; no growth or flows apply to year 0.
	cs.applyEvents(0, path, &st, &msgs)
	record(0, 0)

	for year := 1; year <= cs.horizon; year++ {
		// 1. Recurring flows: salary, expenses, passive income and the
		// deltas accumulated from earlier events, indexed by inflation
		// through the previous year.
		flow, contribution := cs.plan.cashFlow(year, st.cumInflation)
		flow += (st.recurringIncome - st.recurringExpense) * st.cumInflation
		st.liquid += flow
		st.net += flow

		// 2. This year's events, against the post-flow balances. Assets
		// and debts acquired here start compounding next year: a loan
		// opened now keeps its full principal in this year's row, and a
		// property bought now does not appreciate until next year.
		carried := len(st.loans)
		carriedProperty := st.propertyValue
		cs.applyEvents(year, path, &st, &msgs)
		if carried > len(st.loans) {
			carried = len(st.loans)
		}
		acquired := st.propertyValue - carriedProperty
		if acquired < 0 {
			acquired = 0
		}

		// 3. Market growth on the post-event liquid balance.
		invested := st.liquid
		st.liquid *= 1 + draws.MarketReturns[year-1]
		st.net += invested * draws.MarketReturns[year-1]

		// 4. Mortgage amortization and property appreciation. Payments
		// come out of liquid wealth; only the interest share leaves the
		// household, principal repayment just shifts between components.
		for i := 0; i < carried; i++ {
			balance := st.loans[i].Balance
			paid := st.loans[i].amortizeYear()
			st.liquid -= paid
			st.net -= paid - (balance - st.loans[i].Balance)
		}
		base := st.propertyValue - acquired
		st.propertyValue = appreciate(base, cs.appreciation) + acquired
		st.net += base * cs.appreciation

		// 5. Pension accrual, or drawdown paid into liquid wealth. The
		// contribution entering the pot is new money from gross salary.
		retired := timeline.IsRetiredAt(cs.startingAge, cs.retirementAge, year)
		pot, income := pensionStep(st.pension, contribution, draws.PensionReturns[year-1], cs.drawdownRate, retired)
		st.net += pot - st.pension + income
		st.pension = pot
		st.liquid += income

		if cs.insolvencyFloor != nil && st.liquid < *cs.insolvencyFloor {
			st.net += *cs.insolvencyFloor - st.liquid
			st.liquid = *cs.insolvencyFloor
		}

		// 6. Cumulative inflation picks up this year's draw.
		st.cumInflation *= 1 + draws.InflationRates[year-1]

		// 7. Record the year.
		record(year, draws.InflationRates[year-1])
	}

	return msgs, err
}

// applyEvents resolves and applies the year's events in priority order,
// posting each effect to the net-worth tracker double-entry: a purchase is
// net-neutral (cash and principal against the asset), a sale realizes the
// gap between net proceeds and book value.
func (cs *compiledScenario) applyEvents(year, path int, st *pathState, msgs *[]domain.Message) {
	for _, ev := range cs.schedule.at(year) {
		mortgage := totalBalance(st.loans)
		eff, msg := resolveEvent(ev, path, mortgage)
		if msg != nil {
			*msgs = append(*msgs, *msg)
		}
		st.liquid += eff.liquid
		st.propertyValue += eff.propertyValue
		st.net += eff.liquid + eff.propertyValue
		if eff.clearsProperty {
			st.net += mortgage - st.propertyValue
			st.propertyValue = 0
			st.loans = st.loans[:0]
		}
		if eff.newLoan != nil {
			st.loans = append(st.loans, *eff.newLoan)
			st.net -= eff.newLoan.Balance
		}
		st.recurringIncome += eff.recurringIncome
		st.recurringExpense += eff.recurringExpense
	}
}

// record writes the year's row and reconciles the component sum against
// the independently tracked net worth. A non-finite or drifting net worth
// comes back as a violation; the row is recorded either way.
func (cs *compiledScenario) record(rs *domain.ResultSet, path, year int, st *pathState, inflationDraw float64) *InvariantViolationError {
	mortgage := totalBalance(st.loans)
	net := st.liquid + st.pension + st.propertyValue - mortgage

	rs.LiquidWealth[path][year] = st.liquid
	rs.PensionWealth[path][year] = st.pension
	rs.PropertyValue[path][year] = st.propertyValue
	rs.MortgageBalance[path][year] = mortgage
	rs.NetWorth[path][year] = net
	rs.InflationRates[path][year] = inflationDraw
	rs.CumulativeInflation[path][year] = st.cumInflation

	gross := math.Abs(st.liquid) + math.Abs(st.pension) + math.Abs(st.propertyValue) + mortgage
	if !finite(net) || math.Abs(net-st.net) > invariantTolerance*math.Max(1, gross) {
		return &InvariantViolationError{Path: path, Year: year, Expected: st.net, Actual: net}
	}
	return nil
}

func violationMessage(v *InvariantViolationError) domain.Message {
	return domain.Message{
		Path:  v.Path,
		Year:  v.Year,
		Level: domain.LevelCritical,
		Code:  domain.CodeInvariantViolation,
		Text:  v.Error(),
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
