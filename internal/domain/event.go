package domain

import (
	"github.com/shopspring/decimal"
)

// EventKind identifies the type of a scheduled life event.
type EventKind string

const (
	EventPropertyPurchase EventKind = "property_purchase"
	EventPropertySale     EventKind = "property_sale"
	EventOneTimeExpense   EventKind = "one_time_expense"
	EventExpenseChange    EventKind = "expense_change"
	EventRentalIncome     EventKind = "rental_income"
	EventWindfall         EventKind = "windfall"
)

// IsValid reports whether the kind is one of the supported event types.
func (k EventKind) IsValid() bool {
	switch k {
	case EventPropertyPurchase, EventPropertySale, EventOneTimeExpense,
		EventExpenseChange, EventRentalIncome, EventWindfall:
		return true
	}
	return false
}

// kindPriority orders events applied in the same year: purchases and sales
// first, then recurring adjustments, then one-off cash flows. Within the
// same priority the configuration order is preserved.
var kindPriority = map[EventKind]int{
	EventPropertyPurchase: 0,
	EventPropertySale:     1,
	EventExpenseChange:    2,
	EventRentalIncome:     3,
	EventOneTimeExpense:   4,
	EventWindfall:         5,
}

// Priority returns the fixed same-year ordering rank of the kind. Lower
// ranks apply first.
func (k EventKind) Priority() int {
	if p, ok := kindPriority[k]; ok {
		return p
	}
	return len(kindPriority)
}

// Event is one scheduled life event. Year is a 0-indexed offset from the
// starting age; which payload fields apply depends on Kind:
//
//   - property_purchase: Price, DownPayment, InterestRate, TermYears
//   - property_sale:     SalePrice, SellingCosts (optional)
//   - one_time_expense:  Amount
//   - windfall:          Amount
//   - expense_change:    MonthlyAmount (added to the recurring expense delta)
//   - rental_income:     MonthlyAmount (added to the recurring income delta)
type Event struct {
	Year int       `yaml:"year" json:"year"`
	Kind EventKind `yaml:"kind" json:"kind"`
	// Name is an optional label carried through to result annotations.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	Amount        decimal.Decimal `yaml:"amount,omitempty" json:"amount,omitempty"`
	MonthlyAmount decimal.Decimal `yaml:"monthly_amount,omitempty" json:"monthly_amount,omitempty"`

	Price        decimal.Decimal `yaml:"price,omitempty" json:"price,omitempty"`
	DownPayment  decimal.Decimal `yaml:"down_payment,omitempty" json:"down_payment,omitempty"`
	InterestRate float64         `yaml:"interest_rate,omitempty" json:"interest_rate,omitempty"`
	TermYears    int             `yaml:"term_years,omitempty" json:"term_years,omitempty"`

	SalePrice    decimal.Decimal `yaml:"sale_price,omitempty" json:"sale_price,omitempty"`
	SellingCosts decimal.Decimal `yaml:"selling_costs,omitempty" json:"selling_costs,omitempty"`
}
