package simulation

// pensionStep advances the pension pot one year. While working the year's
// contribution is added and the combined pot compounds at the drawn pension
// return. In retirement contributions stop: the pot grows at the drawn
// return first, then the drawdown comes off the grown balance and is paid
// out as income. The pot never goes below zero.
func pensionStep(pot, contribution, draw, drawdownRate float64, retired bool) (newPot, income float64) {
	if !retired {
		newPot = (pot + contribution) * (1 + draw)
		if newPot < 0 {
			newPot = 0
		}
		return newPot, 0
	}
	grown := pot * (1 + draw)
	if grown < 0 {
		grown = 0
	}
	income = grown * drawdownRate
	if income > grown {
		income = grown
	}
	if income < 0 {
		income = 0
	}
	return grown - income, income
}
