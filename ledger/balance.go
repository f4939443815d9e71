package ledger

import "github.com/shopspring/decimal"

// RentBalance returns the contract's outstanding amount: all-time rent
// paid minus one month's rent. Negative means the tenant owes, positive
// means paid ahead. Non-rent categories (utilities, penalty, deposit)
// never affect the balance.
//
// Note the comparison baseline is a single month's rent, the same rule
// the status policy uses, not the obligation accrued since the contract
// started.
func RentBalance(c Contract, payments []Payment) decimal.Decimal {
	return RentPaidTotal(payments).Sub(c.MonthlyRent)
}
