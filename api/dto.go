/*
dto.go - Data transfer objects for API requests and responses

PURPOSE:
  JSON structures decoupling the domain model from the API contract.
  This is the presentation boundary: decimals are rendered here with
  two decimal places, dates as "2006-01-02", and the tagged status as
  user-facing text. Nothing below this layer rounds or formats.

NAMING CONVENTION:
  - *DTO:     response types returned to clients
  - *Request: request body types from clients
*/
package api

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rentfold/ledger-engine/ledger"
	"github.com/rentfold/ledger-engine/rental"
)

// =============================================================================
// PARTIES
// =============================================================================

type TenantDTO struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type TenantRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Notes    string `json:"notes"`
}

type PropertyDTO struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Address string `json:"address,omitempty"`
	Area    string `json:"area"`
	Price   string `json:"price"`
	Notes   string `json:"notes,omitempty"`
}

type PropertyRequest struct {
	Title   string `json:"title"`
	Address string `json:"address"`
	Area    string `json:"area"`
	Price   string `json:"price"`
	Notes   string `json:"notes"`
}

// =============================================================================
// CONTRACTS
// =============================================================================

type ContractDTO struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id"`
	LandlordID  string `json:"landlord_id"`
	PropertyID  string `json:"property_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	MonthlyRent string `json:"monthly_rent"`
	Status      string `json:"status"`
	Notes       string `json:"notes,omitempty"`
}

type ContractRequest struct {
	TenantID    string `json:"tenant_id"`
	LandlordID  string `json:"landlord_id"`
	PropertyID  string `json:"property_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	MonthlyRent string `json:"monthly_rent"`
	Notes       string `json:"notes"`
}

type BalanceDTO struct {
	ContractID string `json:"contract_id"`
	Balance    string `json:"balance"`
}

// =============================================================================
// PAYMENTS
// =============================================================================

type PaymentDTO struct {
	ID         string `json:"id"`
	ContractID string `json:"contract_id,omitempty"`
	Date       string `json:"date"`
	Amount     string `json:"amount"`
	Category   string `json:"category"`
	Notes      string `json:"notes,omitempty"`
}

type PaymentRequest struct {
	ContractID string `json:"contract_id"`
	Date       string `json:"date"`
	Amount     string `json:"amount"`
	Category   string `json:"category"`
	Notes      string `json:"notes"`
}

// =============================================================================
// SCHEDULE CALCULATOR
// =============================================================================

type ScheduleRequest struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	MonthlyRent string `json:"monthly_rent"`
}

type ScheduleRowDTO struct {
	Month  string `json:"month"`
	Period string `json:"period"`
	Days   int    `json:"days"`
	Amount string `json:"amount"`
}

type ScheduleDTO struct {
	Rows        []ScheduleRowDTO `json:"rows"`
	TotalDays   int              `json:"total_days"`
	MonthsCount int              `json:"months_count"`
	TotalAmount string           `json:"total_amount"`
}

// =============================================================================
// RENDERING
// =============================================================================

// money renders a decimal with two places. Presentation only: the sum of
// rounded rows may differ from the rounded total by a minor unit.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// statusText renders the tagged status as user-facing text.
func statusText(s ledger.Status) string {
	switch s.Code {
	case ledger.StatusActive:
		return "Active"
	case ledger.StatusCompleted:
		return "Completed"
	case ledger.StatusPaidInFull:
		return "Paid in full"
	case ledger.StatusDebt:
		return fmt.Sprintf("Debt: %s", money(s.Debt))
	default:
		return string(s.Code)
	}
}

func toTenantDTO(t rental.Tenant) TenantDTO {
	return TenantDTO{
		ID:       string(t.ID),
		FullName: t.FullName,
		Phone:    t.Phone,
		Email:    t.Email,
		Notes:    t.Notes,
	}
}

func toLandlordDTO(l rental.Landlord) TenantDTO {
	// Landlords share the tenant wire shape.
	return TenantDTO{
		ID:       string(l.ID),
		FullName: l.FullName,
		Phone:    l.Phone,
		Email:    l.Email,
		Notes:    l.Notes,
	}
}

func toPropertyDTO(p rental.Property) PropertyDTO {
	return PropertyDTO{
		ID:      string(p.ID),
		Title:   p.Title,
		Address: p.Address,
		Area:    p.Area.String(),
		Price:   money(p.Price),
		Notes:   p.Notes,
	}
}

func toContractDTO(c ledger.Contract) ContractDTO {
	return ContractDTO{
		ID:          string(c.ID),
		TenantID:    string(c.TenantID),
		LandlordID:  string(c.LandlordID),
		PropertyID:  string(c.PropertyID),
		StartDate:   c.StartDate.String(),
		EndDate:     c.EndDate.String(),
		MonthlyRent: money(c.MonthlyRent),
		Status:      statusText(c.Status),
		Notes:       c.Notes,
	}
}

func toPaymentDTO(p ledger.Payment) PaymentDTO {
	return PaymentDTO{
		ID:         string(p.ID),
		ContractID: string(p.ContractID),
		Date:       p.Date.String(),
		Amount:     money(p.Amount),
		Category:   string(p.Category),
		Notes:      p.Notes,
	}
}

func toScheduleDTO(s ledger.Schedule) ScheduleDTO {
	rows := make([]ScheduleRowDTO, 0, len(s.Rows))
	for _, r := range s.Rows {
		rows = append(rows, ScheduleRowDTO{
			Month:  r.MonthLabel,
			Period: r.PeriodLabel(),
			Days:   r.Days,
			Amount: money(r.Amount),
		})
	}
	return ScheduleDTO{
		Rows:        rows,
		TotalDays:   s.TotalDays,
		MonthsCount: s.MonthsCount,
		TotalAmount: money(s.TotalAmount),
	}
}
