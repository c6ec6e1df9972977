package simulation

import (
	"math"
	"testing"

	"github.com/nwgo/networth-simulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestCompileHouseholdSalarySchedule tests the primary earner's take-home
// and pension contribution across the working years and past retirement.
func TestCompileHouseholdSalarySchedule(t *testing.T) {
	sc := &domain.ScenarioConfig{
		StartingAge:   30,
		RetirementAge: 65,
		EndAge:        85,
		Assumptions:   domain.Assumptions{SalaryGrowthRate: 0.03},
		Pension:       domain.PensionPlan{ContributionRate: 0.10},
		Household: &domain.HouseholdBudget{
			GrossAnnualIncome: decimal.NewFromInt(80000),
			EffectiveTaxRate:  0.20,
			MonthlyExpenses:   decimal.NewFromInt(2000),
		},
	}
	plan := compileHousehold(sc)

	// Year 1: 80,000 × 1.03 gross, 70% take-home after 20% tax and 10%
	// pension, 10% into the pot.
	net, contrib := plan.cashFlow(1, 1.0)
	assert.InDelta(t, 80000*1.03*0.70-24000, net, 1e-9)
	assert.InDelta(t, 80000*1.03*0.10, contrib, 1e-9)

	// Expenses are indexed by cumulative inflation; salary is not.
	net, _ = plan.cashFlow(1, 1.5)
	assert.InDelta(t, 80000*1.03*0.70-24000*1.5, net, 1e-9)

	// Age 65 is still a working year.
	net, contrib = plan.cashFlow(35, 1.0)
	mult := math.Pow(1.03, 35)
	assert.InDelta(t, 80000*mult*0.70-24000, net, 1e-6)
	assert.InDelta(t, 80000*mult*0.10, contrib, 1e-6)

	// Age 66: salary and contributions stop, expenses continue.
	net, contrib = plan.cashFlow(36, 1.0)
	assert.InDelta(t, -24000.0, net, 1e-9)
	assert.Equal(t, 0.0, contrib)
}

// TestCompileHouseholdSpouse tests a two-earner household where the primary
// retires first: the spouse keeps earning but household contributions stop.
func TestCompileHouseholdSpouse(t *testing.T) {
	sc := &domain.ScenarioConfig{
		StartingAge:   30,
		RetirementAge: 55,
		EndAge:        85,
		Assumptions:   domain.Assumptions{SalaryGrowthRate: 0.03},
		Pension:       domain.PensionPlan{ContributionRate: 0.10},
		Household: &domain.HouseholdBudget{
			GrossAnnualIncome: decimal.NewFromInt(80000),
			EffectiveTaxRate:  0.20,
			Spouse: &domain.Spouse{
				Age:           28,
				RetirementAge: 65,
				AnnualIncome:  decimal.NewFromInt(40000),
			},
		},
	}
	plan := compileHousehold(sc)

	// Both working: combined gross 120,000 × growth.
	net, contrib := plan.cashFlow(1, 1.0)
	assert.InDelta(t, 120000*1.03*0.70, net, 1e-9)
	assert.InDelta(t, 120000*1.03*0.10, contrib, 1e-9)

	// Year 26: primary is 56 and retired, spouse is 54 and working. The
	// spouse deducts tax only, and nothing goes into the pot.
	net, contrib = plan.cashFlow(26, 1.0)
	assert.InDelta(t, 40000*math.Pow(1.03, 26)*0.80, net, 1e-6)
	assert.Equal(t, 0.0, contrib)

	// Year 38: spouse is 66 and retired too.
	net, _ = plan.cashFlow(38, 1.0)
	assert.Equal(t, 0.0, net)
}

// TestCompileHouseholdFixedContribution tests the budget-less configuration
// where a fixed annual pension contribution grows with salary growth.
func TestCompileHouseholdFixedContribution(t *testing.T) {
	sc := &domain.ScenarioConfig{
		StartingAge:   30,
		RetirementAge: 65,
		EndAge:        70,
		Assumptions:   domain.Assumptions{SalaryGrowthRate: 0.03},
		Pension: domain.PensionPlan{
			AnnualContribution: decimal.NewFromInt(5000),
		},
	}
	plan := compileHousehold(sc)

	_, contrib := plan.cashFlow(1, 1.0)
	assert.InDelta(t, 5000*1.03, contrib, 1e-9)
	_, contrib = plan.cashFlow(2, 1.0)
	assert.InDelta(t, 5000*1.03*1.03, contrib, 1e-9)

	net, _ := plan.cashFlow(10, 1.0)
	assert.Equal(t, 0.0, net, "a fixed contribution is payroll-side, not a liquid outflow")

	// Contributions stop at retirement, year 36 here.
	_, contrib = plan.cashFlow(35, 1.0)
	assert.Greater(t, contrib, 0.0)
	_, contrib = plan.cashFlow(36, 1.0)
	assert.Equal(t, 0.0, contrib)
}

// TestHouseholdCashFlowStreams tests passive income streams: activity
// window, own growth rate, tax treatment and inflation indexing.
func TestHouseholdCashFlowStreams(t *testing.T) {
	end := 4
	sc := &domain.ScenarioConfig{
		StartingAge:   30,
		RetirementAge: 65,
		EndAge:        85,
		Household: &domain.HouseholdBudget{
			EffectiveTaxRate: 0.25,
			IncomeStreams: []domain.IncomeStream{
				{
					Name:             "dividends",
					MonthlyAmount:    decimal.NewFromInt(1000),
					StartYear:        2,
					EndYear:          &end,
					AnnualGrowthRate: 0.10,
					Taxable:          true,
				},
				{
					Name:          "allowance",
					MonthlyAmount: decimal.NewFromInt(500),
				},
			},
		},
	}
	plan := compileHousehold(sc)

	// Year 1: only the untaxed open-ended stream is active.
	net, _ := plan.cashFlow(1, 1.0)
	assert.InDelta(t, 6000.0, net, 1e-9)

	// Year 2: the taxable stream starts at 12,000, netting 75% under the
	// household rate.
	net, _ = plan.cashFlow(2, 1.0)
	assert.InDelta(t, 6000+12000*0.75, net, 1e-9)

	// Year 3 with 20% cumulative inflation: one year of 10% stream
	// growth, then inflation indexing on both streams.
	net, _ = plan.cashFlow(3, 1.2)
	assert.InDelta(t, 6000*1.2+12000*1.1*1.2*0.75, net, 1e-9)

	// Year 5: the dividend stream ended after year 4.
	net, _ = plan.cashFlow(5, 1.0)
	assert.InDelta(t, 6000.0, net, 1e-9)
}

// TestCompileHouseholdAbsent tests that no budget compiles to a zero plan.
func TestCompileHouseholdAbsent(t *testing.T) {
	sc := &domain.ScenarioConfig{StartingAge: 30, RetirementAge: 65, EndAge: 85}
	plan := compileHousehold(sc)

	for year := 1; year <= 55; year++ {
		net, contrib := plan.cashFlow(year, 1.8)
		assert.Equal(t, 0.0, net)
		assert.Equal(t, 0.0, contrib)
	}
}
