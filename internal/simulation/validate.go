package simulation

import (
	"github.com/nwgo/networth-simulator/internal/domain"
)

// ValidateScenario checks a scenario against the engine's input contract.
// It returns an *InvalidConfigurationError describing the first problem
// found, before any simulation work begins. Distribution parameters are
// checked separately by NewDrawGenerator so degenerate distributions
// surface as DistributionError, not configuration errors.
func ValidateScenario(sc *domain.ScenarioConfig) error {
	if sc == nil {
		return &InvalidConfigurationError{Reason: "scenario is nil"}
	}

	if sc.StartingAge <= 0 {
		return invalidConfigf("starting_age", "must be positive, got %d", sc.StartingAge)
	}
	if sc.StartingAge >= sc.RetirementAge {
		return invalidConfigf("retirement_age", "must be greater than starting_age (%d >= %d)", sc.StartingAge, sc.RetirementAge)
	}
	if sc.RetirementAge > sc.EndAge {
		return invalidConfigf("end_age", "must be at least retirement_age (%d > %d)", sc.RetirementAge, sc.EndAge)
	}
	if sc.NumSimulations < 1 {
		return invalidConfigf("n_simulations", "must be at least 1, got %d", sc.NumSimulations)
	}

	if sc.StartingLiquidWealth.IsNegative() {
		return invalidConfigf("starting_liquid_wealth", "must be non-negative, got %s", sc.StartingLiquidWealth)
	}
	if sc.StartingPensionWealth.IsNegative() {
		return invalidConfigf("starting_pension_wealth", "must be non-negative, got %s", sc.StartingPensionWealth)
	}

	if err := validateProperty(sc.Property); err != nil {
		return err
	}
	if err := validatePension(&sc.Pension); err != nil {
		return err
	}
	if err := validateHousehold(sc.Household, sc.HorizonYears()); err != nil {
		return err
	}
	if sc.Household != nil && sc.Household.EffectiveTaxRate+sc.Pension.ContributionRate > 1 {
		return invalidConfigf("household.effective_tax_rate",
			"combined tax and pension contribution rates exceed 100%% (%g + %g)",
			sc.Household.EffectiveTaxRate, sc.Pension.ContributionRate)
	}

	for i := range sc.Events {
		if err := validateEvent(i, &sc.Events[i], sc.HorizonYears()); err != nil {
			return err
		}
	}

	return nil
}

func validateProperty(p *domain.PropertyState) error {
	if p == nil {
		return nil
	}
	if p.Value.IsNegative() {
		return invalidConfigf("property.value", "must be non-negative, got %s", p.Value)
	}
	if p.MortgageBalance.IsNegative() {
		return invalidConfigf("property.mortgage_balance", "must be non-negative, got %s", p.MortgageBalance)
	}
	if p.MortgageBalance.IsPositive() {
		if p.InterestRate < 0 {
			return invalidConfigf("property.interest_rate", "must be non-negative, got %g", p.InterestRate)
		}
		if p.TermYears < 1 {
			return invalidConfigf("property.term_years", "must be at least 1 for an open mortgage, got %d", p.TermYears)
		}
	}
	return nil
}

func validatePension(p *domain.PensionPlan) error {
	if p.ContributionRate < 0 || p.ContributionRate > 1 {
		return invalidConfigf("pension.contribution_rate", "must be in [0, 1], got %g", p.ContributionRate)
	}
	if p.DrawdownRate < 0 || p.DrawdownRate > 1 {
		return invalidConfigf("pension.drawdown_rate", "must be in [0, 1], got %g", p.DrawdownRate)
	}
	if p.AnnualContribution.IsNegative() {
		return invalidConfigf("pension.annual_contribution", "must be non-negative, got %s", p.AnnualContribution)
	}
	return nil
}

func validateHousehold(h *domain.HouseholdBudget, horizon int) error {
	if h == nil {
		return nil
	}
	if h.GrossAnnualIncome.IsNegative() {
		return invalidConfigf("household.gross_annual_income", "must be non-negative, got %s", h.GrossAnnualIncome)
	}
	if h.EffectiveTaxRate < 0 || h.EffectiveTaxRate >= 1 {
		return invalidConfigf("household.effective_tax_rate", "must be in [0, 1), got %g", h.EffectiveTaxRate)
	}
	if h.MonthlyExpenses.IsNegative() {
		return invalidConfigf("household.monthly_expenses", "must be non-negative, got %s", h.MonthlyExpenses)
	}
	if s := h.Spouse; s != nil {
		if s.Age <= 0 {
			return invalidConfigf("household.spouse.age", "must be positive, got %d", s.Age)
		}
		if s.RetirementAge < s.Age {
			return invalidConfigf("household.spouse.retirement_age", "must be at least the spouse's current age (%d < %d)", s.RetirementAge, s.Age)
		}
		if s.AnnualIncome.IsNegative() {
			return invalidConfigf("household.spouse.annual_income", "must be non-negative, got %s", s.AnnualIncome)
		}
	}
	for i, stream := range h.IncomeStreams {
		if stream.MonthlyAmount.IsNegative() {
			return invalidConfigf("household.income_streams", "stream %d: monthly_amount must be non-negative, got %s", i, stream.MonthlyAmount)
		}
		if stream.StartYear < 0 || stream.StartYear > horizon {
			return invalidConfigf("household.income_streams", "stream %d: start_year %d outside [0, %d]", i, stream.StartYear, horizon)
		}
		if stream.EndYear != nil && *stream.EndYear < stream.StartYear {
			return invalidConfigf("household.income_streams", "stream %d: end_year %d before start_year %d", i, *stream.EndYear, stream.StartYear)
		}
		if stream.TaxRate != nil && (*stream.TaxRate < 0 || *stream.TaxRate > 1) {
			return invalidConfigf("household.income_streams", "stream %d: tax_rate must be in [0, 1], got %g", i, *stream.TaxRate)
		}
	}
	return nil
}

func validateEvent(i int, ev *domain.Event, horizon int) error {
	if !ev.Kind.IsValid() {
		return invalidConfigf("events", "event %d: unknown kind %q", i, ev.Kind)
	}
	if ev.Year < 0 || ev.Year > horizon {
		return invalidConfigf("events", "event %d (%s): year %d outside [0, %d]", i, ev.Kind, ev.Year, horizon)
	}

	switch ev.Kind {
	case domain.EventPropertyPurchase:
		if !ev.Price.IsPositive() {
			return invalidConfigf("events", "event %d (property_purchase): price must be positive, got %s", i, ev.Price)
		}
		if ev.DownPayment.IsNegative() || ev.DownPayment.GreaterThan(ev.Price) {
			return invalidConfigf("events", "event %d (property_purchase): down_payment must be in [0, price], got %s", i, ev.DownPayment)
		}
		if ev.InterestRate < 0 {
			return invalidConfigf("events", "event %d (property_purchase): interest_rate must be non-negative, got %g", i, ev.InterestRate)
		}
		if ev.DownPayment.LessThan(ev.Price) && ev.TermYears < 1 {
			return invalidConfigf("events", "event %d (property_purchase): term_years must be at least 1 when a mortgage is taken, got %d", i, ev.TermYears)
		}
	case domain.EventPropertySale:
		if ev.SalePrice.IsNegative() {
			return invalidConfigf("events", "event %d (property_sale): sale_price must be non-negative, got %s", i, ev.SalePrice)
		}
		if ev.SellingCosts.IsNegative() {
			return invalidConfigf("events", "event %d (property_sale): selling_costs must be non-negative, got %s", i, ev.SellingCosts)
		}
	case domain.EventOneTimeExpense, domain.EventWindfall:
		if !ev.Amount.IsPositive() {
			return invalidConfigf("events", "event %d (%s): amount must be positive, got %s", i, ev.Kind, ev.Amount)
		}
	case domain.EventExpenseChange, domain.EventRentalIncome:
		if ev.MonthlyAmount.IsZero() {
			return invalidConfigf("events", "event %d (%s): monthly_amount must be non-zero", i, ev.Kind)
		}
	}
	return nil
}
