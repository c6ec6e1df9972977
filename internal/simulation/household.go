package simulation

import (
	"math"

	"github.com/nwgo/networth-simulator/internal/domain"
	"github.com/nwgo/networth-simulator/pkg/timeline"
)

// householdPlan is the scenario's recurring cash flow compiled to plain
// float64 schedules. Salaries and pension contributions are deterministic
// per year so they are precomputed; expenses and passive income depend on
// the path's cumulative inflation and are scaled at flow time.
type householdPlan struct {
	netSalary      []float64 // net employment income by year, 1..horizon
	pensionContrib []float64 // payroll pension contribution by year
	expenses       float64   // annual baseline expenses, inflation-indexed
	passive        []passiveStream
}

type passiveStream struct {
	annual float64 // monthly amount × 12 at the start year
	start  int
	end    int
	growth float64
	netOf  float64 // 1 − tax rate for taxable streams, otherwise 1
}

// compileHousehold flattens the household budget, spouse and income streams
// into per-year schedules. Salary grows at the salary growth rate and stops
// the year a member passes their retirement age. While the household is
// contributing, each working member's take-home deducts both tax and the
// pension contribution rate; once the primary earner enters drawdown,
// contributions cease for the whole household and a still-working spouse
// deducts tax only. A scenario without a budget compiles to a zero-flow
// plan.
func compileHousehold(sc *domain.ScenarioConfig) *householdPlan {
	horizon := sc.HorizonYears()
	p := &householdPlan{
		netSalary:      make([]float64, horizon+1),
		pensionContrib: make([]float64, horizon+1),
	}

	growth := sc.Assumptions.SalaryGrowthRate
	contribRate := sc.Pension.ContributionRate
	fixedContrib := sc.Pension.AnnualContribution.InexactFloat64()

	hb := sc.Household
	if hb != nil {
		gross := hb.GrossAnnualIncome.InexactFloat64()
		tax := hb.EffectiveTaxRate
		p.expenses = hb.MonthlyExpenses.InexactFloat64() * 12

		for y := 1; y <= horizon; y++ {
			mult := math.Pow(1+growth, float64(y))
			rate := contribRate
			if timeline.IsRetiredAt(sc.StartingAge, sc.RetirementAge, y) {
				rate = 0
			} else {
				primaryGross := gross * mult
				p.netSalary[y] += primaryGross * (1 - tax - rate)
				p.pensionContrib[y] += primaryGross * rate
			}
			if hb.Spouse != nil && !timeline.IsRetiredAt(hb.Spouse.Age, hb.Spouse.RetirementAge, y) {
				spouseGross := hb.Spouse.AnnualIncome.InexactFloat64() * mult
				p.netSalary[y] += spouseGross * (1 - tax - rate)
				p.pensionContrib[y] += spouseGross * rate
			}
		}

		for _, s := range hb.IncomeStreams {
			end := horizon
			if s.EndYear != nil {
				end = *s.EndYear
			}
			netOf := 1.0
			if s.Taxable {
				rate := tax
				if s.TaxRate != nil {
					rate = *s.TaxRate
				}
				netOf = 1 - rate
			}
			p.passive = append(p.passive, passiveStream{
				annual: s.MonthlyAmount.InexactFloat64() * 12,
				start:  s.StartYear,
				end:    end,
				growth: s.AnnualGrowthRate,
				netOf:  netOf,
			})
		}
	}

	if fixedContrib > 0 {
		for y := 1; y <= horizon; y++ {
			if timeline.IsRetiredAt(sc.StartingAge, sc.RetirementAge, y) {
				break
			}
			p.pensionContrib[y] += fixedContrib * math.Pow(1+growth, float64(y))
		}
	}

	return p
}

// cashFlow returns the year's recurring net cash flow into liquid wealth
// and the pension contribution. cumInflation is the path's cumulative
// inflation factor as of the end of the previous year: baseline expenses
// and passive income are indexed by it, salaries are not.
func (p *householdPlan) cashFlow(year int, cumInflation float64) (net, pensionContribution float64) {
	net = p.netSalary[year] - p.expenses*cumInflation
	for _, s := range p.passive {
		if year < s.start || year > s.end {
			continue
		}
		amt := s.annual * math.Pow(1+s.growth, float64(year-s.start)) * cumInflation
		net += amt * s.netOf
	}
	return net, p.pensionContrib[year]
}
