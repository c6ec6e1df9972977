package config

import (
	"fmt"
	"os"

	"github.com/nwgo/networth-simulator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ExampleScenario builds a fully populated scenario: a two-earner
// household with a mortgaged home, salary-linked pension accrual, a rental
// purchase mid-career and a downsize in retirement. It doubles as living
// documentation of the file format.
func ExampleScenario() *domain.ScenarioConfig {
	seed := int64(20240901)
	rentalTax := 0.25
	streamEnd := 20

	return &domain.ScenarioConfig{
		StartingAge:   35,
		RetirementAge: 67,
		EndAge:        90,

		StartingLiquidWealth:  decimal.NewFromInt(85000),
		StartingPensionWealth: decimal.NewFromInt(120000),

		Property: &domain.PropertyState{
			Value:           decimal.NewFromInt(420000),
			MortgageBalance: decimal.NewFromInt(290000),
			InterestRate:    0.036,
			TermYears:       22,
		},

		Assumptions: domain.Assumptions{
			ExpectedReturn:           0.055,
			ReturnVolatility:         0.16,
			InflationMean:            0.022,
			InflationVolatility:      0.012,
			SalaryGrowthRate:         0.028,
			PropertyAppreciationRate: 0.03,
		},

		Pension: domain.PensionPlan{
			ContributionRate: 0.12,
			DrawdownRate:     0.04,
		},

		Household: &domain.HouseholdBudget{
			GrossAnnualIncome: decimal.NewFromInt(92000),
			EffectiveTaxRate:  0.31,
			MonthlyExpenses:   decimal.NewFromInt(3400),
			Spouse: &domain.Spouse{
				Age:           33,
				RetirementAge: 67,
				AnnualIncome:  decimal.NewFromInt(58000),
			},
			IncomeStreams: []domain.IncomeStream{
				{
					Name:             "consulting",
					MonthlyAmount:    decimal.NewFromInt(900),
					StartYear:        3,
					EndYear:          &streamEnd,
					AnnualGrowthRate: 0.02,
					Taxable:          true,
					TaxRate:          &rentalTax,
				},
			},
		},

		Events: []domain.Event{
			{
				Year:         8,
				Kind:         domain.EventPropertyPurchase,
				Name:         "buy-to-let flat",
				Price:        decimal.NewFromInt(210000),
				DownPayment:  decimal.NewFromInt(52500),
				InterestRate: 0.042,
				TermYears:    20,
			},
			{
				Year:          9,
				Kind:          domain.EventRentalIncome,
				Name:          "flat rent",
				MonthlyAmount: decimal.NewFromInt(1150),
			},
			{
				Year:   14,
				Kind:   domain.EventWindfall,
				Name:   "inheritance",
				Amount: decimal.NewFromInt(40000),
			},
			{
				Year:          18,
				Kind:          domain.EventExpenseChange,
				Name:          "university fees",
				MonthlyAmount: decimal.NewFromInt(650),
			},
			{
				Year:         33,
				Kind:         domain.EventPropertySale,
				Name:         "downsize",
				SalePrice:    decimal.NewFromInt(680000),
				SellingCosts: decimal.NewFromInt(17000),
			},
		},

		NumSimulations: 2000,
		RandomSeed:     &seed,
		Currency:       "EUR",
	}
}

// ExampleYAML renders the example scenario as a YAML document.
func ExampleYAML() ([]byte, error) {
	data, err := yaml.Marshal(ExampleScenario())
	if err != nil {
		return nil, fmt.Errorf("failed to render example scenario: %w", err)
	}
	return data, nil
}

// WriteExampleFile writes the example scenario to the given path.
func WriteExampleFile(filename string) error {
	data, err := ExampleYAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
