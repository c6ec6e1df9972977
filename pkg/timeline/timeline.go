// Package timeline provides age and year-offset arithmetic for simulations
// that index time as whole years from a starting age.
package timeline

import "time"

// AgeAt returns the age reached during the given year offset.
func AgeAt(startingAge, yearOffset int) int {
	return startingAge + yearOffset
}

// OffsetForAge returns the year offset at which the given age is reached.
// Ages before the starting age map to offset 0.
func OffsetForAge(startingAge, age int) int {
	if age < startingAge {
		return 0
	}
	return age - startingAge
}

// Horizon returns the number of simulated years between two ages.
func Horizon(startingAge, endAge int) int {
	if endAge < startingAge {
		return 0
	}
	return endAge - startingAge
}

// RetirementOffset returns the offset of the last working year: the year in
// which the household reaches its retirement age. Drawdown begins the
// following year.
func RetirementOffset(startingAge, retirementAge int) int {
	return OffsetForAge(startingAge, retirementAge)
}

// IsRetiredAt reports whether someone with the given starting and retirement
// ages is retired during the given year offset. The year one turns the
// retirement age is still a working year.
func IsRetiredAt(startingAge, retirementAge, yearOffset int) bool {
	return AgeAt(startingAge, yearOffset) > retirementAge
}

// CalendarYear maps a year offset onto a calendar year anchored at the run
// start. Used only for display.
func CalendarYear(start time.Time, yearOffset int) int {
	return start.Year() + yearOffset
}
