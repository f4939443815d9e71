/*
status.go - Contract status policy (two entry points)

PURPOSE:
  Derives a contract's lifecycle status. There are deliberately TWO named
  entry points with different rule sets, and they are NOT interchangeable:

  OnContractChange - runs after a structural create/edit of the contract.
    Only checks expiry. It never evaluates paid/debt, so a non-expired
    contract keeps whatever PaidInFull/Debt value it had until the next
    payment event recomputes it. That staleness is a known property of
    the rules, kept as-is; callers must not "helpfully" merge the two
    entry points.

  OnPaymentChange - runs after any payment add/edit/delete touching the
    contract. Checks stickiness, then expiry, then compares cumulative
    rent paid against one month's rent.

STICKINESS:
  Completed is terminal. Once a contract is Completed, neither entry
  point ever changes it, regardless of later payment activity or edits.

NOTE ON THE PAID COMPARISON:
  The paid/debt rule compares ALL-TIME rent paid against a SINGLE month's
  rent, not against the accrued obligation since the contract started.
  A long-running contract is PaidInFull as soon as one month's worth has
  ever been paid.

DETERMINISM:
  "today" is an explicit argument on both entry points. The engine never
  reads the clock; callers capture the current date once per invocation.
*/
package ledger

// OnContractChange is the status entry point for structural contract
// changes (create/edit). Expiry check only.
func OnContractChange(c Contract, today Date) Status {
	if c.Status.IsTerminal() {
		return c.Status
	}
	if !c.EndDate.IsZero() && c.EndDate.Before(today) {
		return Completed()
	}
	return c.Status
}

// OnPaymentChange is the status entry point for payment changes
// (add/edit/delete). rentPayments is the contract's payment list; only
// Rent-category entries count, all time.
func OnPaymentChange(c Contract, rentPayments []Payment, today Date) Status {
	if c.Status.IsTerminal() {
		return c.Status
	}
	if !c.EndDate.IsZero() && c.EndDate.Before(today) {
		return Completed()
	}

	paid := RentPaidTotal(rentPayments)
	if paid.GreaterThanOrEqual(c.MonthlyRent) {
		return PaidInFull()
	}
	return Debt(c.MonthlyRent.Sub(paid))
}
