package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPensionStep tests accrual and drawdown arithmetic.
func TestPensionStep(t *testing.T) {
	t.Run("working year compounds pot plus contribution", func(t *testing.T) {
		pot, income := pensionStep(100000, 5000, 0.04, 0.04, false)
		// (100,000 + 5,000) × 1.04 = 109,200.
		assert.InDelta(t, 109200.0, pot, 1e-9)
		assert.Equal(t, 0.0, income)
	})

	t.Run("drawdown pays a fraction of the pot", func(t *testing.T) {
		pot, income := pensionStep(100000, 0, 0, 0.04, true)
		assert.InDelta(t, 4000.0, income, 1e-9)
		assert.InDelta(t, 96000.0, pot, 1e-9)
	})

	t.Run("drawdown comes off the grown balance", func(t *testing.T) {
		pot, income := pensionStep(100000, 0, 0.05, 0.04, true)
		// 100,000 × 1.05 = 105,000 grows first; 4% of that pays out.
		assert.InDelta(t, 4200.0, income, 1e-9)
		assert.InDelta(t, 100800.0, pot, 1e-9)
	})

	t.Run("contributions stop in drawdown", func(t *testing.T) {
		pot, income := pensionStep(100000, 5000, 0, 0.04, true)
		assert.InDelta(t, 96000.0, pot, 1e-9, "a retired household no longer contributes")
		assert.InDelta(t, 4000.0, income, 1e-9)
	})

	t.Run("full drawdown empties the pot", func(t *testing.T) {
		pot, income := pensionStep(50000, 0, 0.10, 1.0, true)
		assert.InDelta(t, 55000.0, income, 1e-9)
		assert.Equal(t, 0.0, pot)
	})

	t.Run("empty pot pays nothing", func(t *testing.T) {
		pot, income := pensionStep(0, 0, 0.05, 0.04, true)
		assert.Equal(t, 0.0, pot)
		assert.Equal(t, 0.0, income)
	})

	t.Run("total loss floors at zero", func(t *testing.T) {
		pot, _ := pensionStep(80000, 0, -1.0, 0, false)
		assert.Equal(t, 0.0, pot)
	})
}
