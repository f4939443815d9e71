/*
proration_test.go - Proration calculator tests

Each test states the property it pins:
  1. Month count equals the number of distinct (year, month) pairs the
     window intersects
  2. Row day counts sum to the independent whole-window day count
  3. Single-day and full-month degenerate cases
  4. Leap-year daily rates (the worked 2024 example)
  5. Typed errors on invalid input
*/
package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentfold/ledger-engine/ledger"
)

func d(year int, month time.Month, day int) ledger.Date {
	return ledger.NewDate(year, month, day)
}

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// assertMoney compares a decimal against its two-place rendering, the way
// amounts reach users.
func assertMoney(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, expected, actual.StringFixed(2), msgAndArgs...)
}

func TestComputeSchedule_SingleDay(t *testing.T) {
	// GIVEN: A one-day window
	// WHEN: Computing the schedule
	// THEN: Exactly one row, one day, charged at monthlyRent/daysInMonth

	start := d(2025, time.March, 10)
	s, err := ledger.ComputeSchedule(start, start, dec("31000"))
	require.NoError(t, err)

	require.Len(t, s.Rows, 1)
	assert.Equal(t, 1, s.Rows[0].Days)
	assert.Equal(t, 1, s.TotalDays)
	assert.Equal(t, 1, s.MonthsCount)
	assertMoney(t, "1000.00", s.Rows[0].Amount, "31000 / 31 days in March")
	assertMoney(t, "1000.00", s.TotalAmount)
}

func TestComputeSchedule_FullCalendarMonth_ChargesOneRent(t *testing.T) {
	// GIVEN: A window covering a full calendar month
	// WHEN: Computing the schedule
	// THEN: One row whose amount is the monthly rent within rounding

	s, err := ledger.ComputeSchedule(d(2025, time.April, 1), d(2025, time.April, 30), dec("45000"))
	require.NoError(t, err)

	require.Len(t, s.Rows, 1)
	assert.Equal(t, 30, s.Rows[0].Days)
	assertMoney(t, "45000.00", s.TotalAmount, "full month charges one monthly rent")
}

func TestComputeSchedule_LeapYearExample(t *testing.T) {
	// GIVEN: 30000 monthly, 2024-01-15 through 2024-02-10 (2024 is a leap year)
	// WHEN: Computing the schedule
	// THEN: Jan 15-31 (17 days at 30000/31) and Feb 1-10 (10 days at 30000/29)

	s, err := ledger.ComputeSchedule(d(2024, time.January, 15), d(2024, time.February, 10), dec("30000"))
	require.NoError(t, err)

	require.Len(t, s.Rows, 2)
	assert.Equal(t, 2, s.MonthsCount)
	assert.Equal(t, 27, s.TotalDays)

	jan := s.Rows[0]
	assert.Equal(t, "01.2024", jan.MonthLabel)
	assert.Equal(t, d(2024, time.January, 15), jan.PeriodStart)
	assert.Equal(t, d(2024, time.January, 31), jan.PeriodEnd)
	assert.Equal(t, 17, jan.Days)
	assertMoney(t, "16451.61", jan.Amount)

	feb := s.Rows[1]
	assert.Equal(t, "02.2024", feb.MonthLabel)
	assert.Equal(t, 10, feb.Days)
	assertMoney(t, "10344.83", feb.Amount, "February 2024 has 29 days")

	assertMoney(t, "26796.44", s.TotalAmount)
}

func TestComputeSchedule_MonthsCount_MatchesIntersectedMonths(t *testing.T) {
	// GIVEN: Windows crossing various month boundaries
	// WHEN: Computing each schedule
	// THEN: MonthsCount equals the number of distinct (year, month) pairs intersected

	cases := []struct {
		name   string
		start  ledger.Date
		end    ledger.Date
		months int
	}{
		{"within one month", d(2025, time.June, 3), d(2025, time.June, 20), 1},
		{"two adjacent months", d(2025, time.June, 25), d(2025, time.July, 5), 2},
		{"across a year boundary", d(2024, time.November, 10), d(2025, time.February, 1), 4},
		{"a full year", d(2025, time.January, 1), d(2025, time.December, 31), 12},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := ledger.ComputeSchedule(tc.start, tc.end, dec("10000"))
			require.NoError(t, err)
			assert.Equal(t, tc.months, s.MonthsCount)
			assert.Len(t, s.Rows, tc.months)
		})
	}
}

func TestComputeSchedule_RowDaysSumToTotalDays(t *testing.T) {
	// GIVEN: A multi-month window
	// WHEN: Computing the schedule
	// THEN: The per-row day counts sum to the independently computed total

	s, err := ledger.ComputeSchedule(d(2024, time.December, 20), d(2025, time.March, 7), dec("12345.67"))
	require.NoError(t, err)

	sum := 0
	for _, row := range s.Rows {
		sum += row.Days
	}
	assert.Equal(t, s.TotalDays, sum)
	assert.Equal(t, 78, s.TotalDays, "Dec 20 - Mar 7 inclusive")
}

func TestComputeSchedule_VaryingDailyRate(t *testing.T) {
	// GIVEN: A window spanning a 28-day and a 31-day month
	// WHEN: Computing the schedule
	// THEN: Each row uses its own month's day count as the divisor

	s, err := ledger.ComputeSchedule(d(2025, time.February, 1), d(2025, time.March, 31), dec("28000"))
	require.NoError(t, err)

	require.Len(t, s.Rows, 2)
	// 28000/28 is exact; 28000/31 is not, so the March row carries the
	// quotient's precision and only the rendering is pinned.
	assertMoney(t, "28000.00", s.Rows[0].Amount, "full February charges one rent")
	assertMoney(t, "28000.00", s.Rows[1].Amount, "full March charges one rent")
	assertMoney(t, "56000.00", s.TotalAmount)
}

func TestComputeSchedule_EndBeforeStart_InvalidRange(t *testing.T) {
	// GIVEN: end date before start date
	// WHEN: Computing the schedule
	// THEN: InvalidRangeError, matchable via errors.Is and errors.As

	_, err := ledger.ComputeSchedule(d(2025, time.May, 10), d(2025, time.May, 9), dec("10000"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrInvalidRange)
	var rerr *ledger.InvalidRangeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, d(2025, time.May, 10), rerr.Start)
	assert.Equal(t, d(2025, time.May, 9), rerr.End)
}

func TestComputeSchedule_InvalidInput_ValidationErrors(t *testing.T) {
	// GIVEN: Missing dates or non-positive rent
	// WHEN: Computing the schedule
	// THEN: ValidationError naming the offending field

	var zero ledger.Date

	_, err := ledger.ComputeSchedule(zero, d(2025, time.May, 9), dec("10000"))
	var verr *ledger.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "start", verr.Field)

	_, err = ledger.ComputeSchedule(d(2025, time.May, 1), zero, dec("10000"))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "end", verr.Field)

	_, err = ledger.ComputeSchedule(d(2025, time.May, 1), d(2025, time.May, 9), decimal.Zero)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "monthly_rent", verr.Field)

	_, err = ledger.ComputeSchedule(d(2025, time.May, 1), d(2025, time.May, 9), dec("-5"))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "monthly_rent", verr.Field)
}

func TestComputeSchedule_NoRoundingDuringComputation(t *testing.T) {
	// GIVEN: A rent that does not divide evenly by the month length
	// WHEN: Summing the exact row amounts
	// THEN: The exact total matches, even though the rounded row
	//       renderings would not sum to the rounded total exactly

	s, err := ledger.ComputeSchedule(d(2024, time.January, 15), d(2024, time.February, 10), dec("30000"))
	require.NoError(t, err)

	exact := decimal.Zero
	for _, row := range s.Rows {
		exact = exact.Add(row.Amount)
	}
	assert.True(t, exact.Equal(s.TotalAmount), "total is the exact sum of unrounded rows")
}
