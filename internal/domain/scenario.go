// Package domain defines the core types shared across the simulator: the
// scenario configuration consumed by the engine, the life events applied to
// it, and the result set handed back to callers.
package domain

import (
	"github.com/shopspring/decimal"
)

// DistributionKind selects the distribution family used when sampling draws.
type DistributionKind string

const (
	// DistributionNormal samples mean + volatility·z with z standard normal.
	DistributionNormal DistributionKind = "normal"
	// DistributionLogNormal interprets the configured mean and volatility in
	// log space: draw = exp(mean + volatility·z) − 1.
	DistributionLogNormal DistributionKind = "lognormal"
)

// IsValid reports whether the kind names a supported distribution family.
// An empty kind is valid and means normal.
func (d DistributionKind) IsValid() bool {
	switch d {
	case "", DistributionNormal, DistributionLogNormal:
		return true
	}
	return false
}

// OrDefault resolves the empty kind to the normal family.
func (d DistributionKind) OrDefault() DistributionKind {
	if d == "" {
		return DistributionNormal
	}
	return d
}

// Assumptions holds the economic assumption set for a scenario. Rates are
// decimals (0.05 = 5%).
type Assumptions struct {
	ExpectedReturn           float64          `yaml:"expected_return" json:"expected_return"`
	ReturnVolatility         float64          `yaml:"return_volatility" json:"return_volatility"`
	InflationMean            float64          `yaml:"inflation_mean" json:"inflation_mean"`
	InflationVolatility      float64          `yaml:"inflation_volatility" json:"inflation_volatility"`
	SalaryGrowthRate         float64          `yaml:"salary_growth_rate" json:"salary_growth_rate"`
	PropertyAppreciationRate float64          `yaml:"property_appreciation_rate" json:"property_appreciation_rate"`
	ReturnDistribution       DistributionKind `yaml:"return_distribution,omitempty" json:"return_distribution,omitempty"`
	InflationDistribution    DistributionKind `yaml:"inflation_distribution,omitempty" json:"inflation_distribution,omitempty"`

	// Optional separate pension return stream; when nil the pension pot
	// follows the market return assumptions.
	PensionReturn     *float64 `yaml:"pension_return,omitempty" json:"pension_return,omitempty"`
	PensionVolatility *float64 `yaml:"pension_volatility,omitempty" json:"pension_volatility,omitempty"`
}

// PropertyState describes a property owned at the start of the run.
type PropertyState struct {
	Value           decimal.Decimal `yaml:"value" json:"value"`
	MortgageBalance decimal.Decimal `yaml:"mortgage_balance" json:"mortgage_balance"`
	InterestRate    float64         `yaml:"interest_rate" json:"interest_rate"`
	TermYears       int             `yaml:"term_years" json:"term_years"`
}

// PensionPlan configures accrual before retirement and drawdown after it.
type PensionPlan struct {
	// ContributionRate is the share of gross salary paid into the pot each
	// working year. Ignored when no household budget provides a salary.
	ContributionRate float64 `yaml:"contribution_rate" json:"contribution_rate"`
	// AnnualContribution is a fixed yearly contribution, grown at the salary
	// growth rate. Usable without a household budget; added on top of any
	// rate-based contribution.
	AnnualContribution decimal.Decimal `yaml:"annual_contribution,omitempty" json:"annual_contribution,omitempty"`
	// DrawdownRate is the share of the pot withdrawn each retired year and
	// credited to liquid wealth.
	DrawdownRate float64 `yaml:"drawdown_rate" json:"drawdown_rate"`
}

// Spouse describes a second earner in the household budget.
type Spouse struct {
	Age           int             `yaml:"age" json:"age"`
	RetirementAge int             `yaml:"retirement_age" json:"retirement_age"`
	AnnualIncome  decimal.Decimal `yaml:"annual_income" json:"annual_income"`
}

// IncomeStream is a recurring income source outside salary, active between
// StartYear and EndYear (inclusive; nil EndYear runs to the horizon).
type IncomeStream struct {
	Name             string          `yaml:"name,omitempty" json:"name,omitempty"`
	MonthlyAmount    decimal.Decimal `yaml:"monthly_amount" json:"monthly_amount"`
	StartYear        int             `yaml:"start_year" json:"start_year"`
	EndYear          *int            `yaml:"end_year,omitempty" json:"end_year,omitempty"`
	AnnualGrowthRate float64         `yaml:"annual_growth_rate" json:"annual_growth_rate"`
	Taxable          bool            `yaml:"taxable" json:"taxable"`
	// TaxRate overrides the household effective tax rate for this stream.
	TaxRate *float64 `yaml:"tax_rate,omitempty" json:"tax_rate,omitempty"`
}

// HouseholdBudget adds salary, taxes and living expenses to a scenario. When
// absent the engine simulates balances and events only: no income, no
// expenses.
type HouseholdBudget struct {
	GrossAnnualIncome decimal.Decimal `yaml:"gross_annual_income" json:"gross_annual_income"`
	EffectiveTaxRate  float64         `yaml:"effective_tax_rate" json:"effective_tax_rate"`
	MonthlyExpenses   decimal.Decimal `yaml:"monthly_expenses" json:"monthly_expenses"`
	Spouse            *Spouse         `yaml:"spouse,omitempty" json:"spouse,omitempty"`
	IncomeStreams     []IncomeStream  `yaml:"income_streams,omitempty" json:"income_streams,omitempty"`
}

// ScenarioConfig is the immutable description of one simulation run: the
// household's starting state, assumptions and scheduled life events. The
// engine never mutates it.
type ScenarioConfig struct {
	StartingAge   int `yaml:"starting_age" json:"starting_age"`
	RetirementAge int `yaml:"retirement_age" json:"retirement_age"`
	EndAge        int `yaml:"end_age" json:"end_age"`

	StartingLiquidWealth  decimal.Decimal `yaml:"starting_liquid_wealth" json:"starting_liquid_wealth"`
	StartingPensionWealth decimal.Decimal `yaml:"starting_pension_wealth" json:"starting_pension_wealth"`

	Property *PropertyState `yaml:"property,omitempty" json:"property,omitempty"`

	Assumptions Assumptions      `yaml:"assumptions" json:"assumptions"`
	Pension     PensionPlan      `yaml:"pension" json:"pension"`
	Household   *HouseholdBudget `yaml:"household,omitempty" json:"household,omitempty"`

	Events []Event `yaml:"events,omitempty" json:"events,omitempty"`

	NumSimulations int    `yaml:"n_simulations" json:"n_simulations"`
	RandomSeed     *int64 `yaml:"random_seed,omitempty" json:"random_seed,omitempty"`
	Currency       string `yaml:"currency,omitempty" json:"currency,omitempty"`

	// InsolvencyFloor clamps liquid wealth at the given minimum after each
	// yearly transition. Nil means no clamping: negative liquid wealth is a
	// valid, reportable outcome.
	InsolvencyFloor *float64 `yaml:"insolvency_floor,omitempty" json:"insolvency_floor,omitempty"`
}

// HorizonYears is the number of simulated years, EndAge − StartingAge.
func (sc *ScenarioConfig) HorizonYears() int {
	return sc.EndAge - sc.StartingAge
}

// HasProperty reports whether the scenario starts with property state.
func (sc *ScenarioConfig) HasProperty() bool {
	return sc.Property != nil && (sc.Property.Value.IsPositive() || sc.Property.MortgageBalance.IsPositive())
}
