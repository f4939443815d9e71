/*
proration.go - Calendar-aware rent proration calculator

PURPOSE:
  Splits an arbitrary rental period into per-calendar-month charges.
  Each month is billed at its own daily rate (monthlyRent divided by the
  actual number of days in that month), so the rate varies row to row
  across a multi-month window and leap years come out right.

ALGORITHM:
  Walk calendar months from the month containing the start date through
  the month containing the end date. For each month:
    1. Clip [monthStart, monthEnd] to the requested window
    2. Count inclusive days in the clipped slice
    3. Charge days * (monthlyRent / daysInMonth)
  A full calendar month charges monthlyRent to within the precision of
  the division (the quotient carries 16 decimal places, so the residue
  never survives the two-place rendering).

ROUNDING:
  No rounding to two places during computation; that happens only when
  rendering. The displayed sum of rounded rows may differ from the
  displayed rounded total by a minor unit - accepted, not corrected.

PURITY:
  No ledger state, no clock, no I/O. Same inputs, same schedule.
*/
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SCHEDULE - Output of the proration calculator (ephemeral, never stored)
// =============================================================================

// ScheduleRow is one calendar month's slice of the requested period.
type ScheduleRow struct {
	// MonthLabel identifies the calendar month, e.g. "01.2024".
	MonthLabel string
	// PeriodStart/PeriodEnd are the window clipped to this month, inclusive.
	PeriodStart Date
	PeriodEnd   Date
	// Days is the inclusive day count of the clipped slice.
	Days int
	// Amount is the unrounded charge for the slice.
	Amount decimal.Decimal
}

// PeriodLabel renders the clipped period for display.
func (r ScheduleRow) PeriodLabel() string {
	return fmt.Sprintf("%s — %s", r.PeriodStart, r.PeriodEnd)
}

// Schedule is the full proration result.
type Schedule struct {
	Rows []ScheduleRow
	// TotalDays is the inclusive length of the whole window, computed
	// independently of the per-row day counts. The two agree by
	// construction; both are exposed.
	TotalDays int
	// MonthsCount is the number of emitted rows.
	MonthsCount int
	// TotalAmount is the unrounded sum of row amounts.
	TotalAmount decimal.Decimal
}

// =============================================================================
// CALCULATOR
// =============================================================================

// ComputeSchedule prorates monthlyRent over [start, end], both inclusive.
//
// Fails with ValidationError when a date is missing or monthlyRent is not
// positive, and with InvalidRangeError when end precedes start.
func ComputeSchedule(start, end Date, monthlyRent decimal.Decimal) (Schedule, error) {
	if start.IsZero() {
		return Schedule{}, NewValidationError("start", "start date is required")
	}
	if end.IsZero() {
		return Schedule{}, NewValidationError("end", "end date is required")
	}
	if !monthlyRent.IsPositive() {
		return Schedule{}, NewValidationError("monthly_rent", "must be greater than zero")
	}
	if end.Before(start) {
		return Schedule{}, &InvalidRangeError{Start: start, End: end}
	}

	var rows []ScheduleRow
	total := decimal.Zero

	for cursor := start.StartOfMonth(); cursor.BeforeOrEqual(end); cursor = cursor.AddMonths(1) {
		monthStart := cursor
		monthEnd := cursor.EndOfMonth()

		periodStart := monthStart.Max(start)
		periodEnd := monthEnd.Min(end)

		days := DaysBetweenInclusive(periodStart, periodEnd)
		if days <= 0 {
			continue
		}

		daily := monthlyRent.Div(decimal.NewFromInt(int64(monthStart.DaysInMonth())))
		amount := daily.Mul(decimal.NewFromInt(int64(days)))
		total = total.Add(amount)

		rows = append(rows, ScheduleRow{
			MonthLabel:  fmt.Sprintf("%02d.%d", monthStart.Month(), monthStart.Year()),
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			Days:        days,
			Amount:      amount,
		})
	}

	return Schedule{
		Rows:        rows,
		TotalDays:   DaysBetweenInclusive(start, end),
		MonthsCount: len(rows),
		TotalAmount: total,
	}, nil
}
