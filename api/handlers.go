/*
handlers.go - HTTP handlers for the rent ledger

PURPOSE:
  Exposes the rent record keeper via REST. Handlers parse and validate
  the wire format, delegate to the domain services, and render DTOs.
  Every payment mutation triggers the payment-change status entry point
  and every contract edit the structural-change entry point - that
  wiring lives in the services, not here.

ENDPOINTS:
  Tenants / Landlords / Properties:
    GET    /api/{kind}            List (optional ?q= substring search)
    POST   /api/{kind}            Create
    PUT    /api/{kind}/{id}       Update
    DELETE /api/{kind}/{id}       Delete (409 when referenced)

  Contracts:
    GET    /api/contracts                 List
    POST   /api/contracts                 Create
    PUT    /api/contracts/{id}            Update structural fields
    DELETE /api/contracts/{id}            Delete
    GET    /api/contracts/{id}/payments   Payments, date ascending
    GET    /api/contracts/{id}/balance    Outstanding rent balance

  Payments:
    GET    /api/payments          List (optional ?q=)
    POST   /api/payments          Create
    PUT    /api/payments/{id}     Update
    DELETE /api/payments/{id}     Delete

  Calculator:
    POST   /api/schedule          Prorate a period into monthly charges

ERROR HANDLING:
  400 validation / invalid range, 404 not found, 409 referenced record,
  500 everything else. Errors are returned as {"error": "..."}.
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rentfold/ledger-engine/ledger"
	"github.com/rentfold/ledger-engine/rental"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Tenants    *rental.TenantService
	Landlords  *rental.LandlordService
	Properties *rental.PropertyService
	Contracts  *rental.ContractService
	Payments   *rental.PaymentService
	Log        *logrus.Logger

	// Now supplies the current date for status evaluation; tests pin it.
	Now func() ledger.Date
}

// NewHandler wires the handler to the domain services.
func NewHandler(tenants *rental.TenantService, landlords *rental.LandlordService,
	properties *rental.PropertyService, contracts *rental.ContractService,
	payments *rental.PaymentService, log *logrus.Logger) *Handler {
	return &Handler{
		Tenants:    tenants,
		Landlords:  landlords,
		Properties: properties,
		Contracts:  contracts,
		Payments:   payments,
		Log:        log,
		Now:        ledger.Today,
	}
}

// =============================================================================
// TENANTS
// =============================================================================

func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants := h.Tenants.Search(r.URL.Query().Get("q"))
	dtos := make([]TenantDTO, 0, len(tenants))
	for _, t := range tenants {
		dtos = append(dtos, toTenantDTO(t))
	}
	respondJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req TenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	t, err := h.Tenants.Add(r.Context(), rental.Tenant{
		FullName: req.FullName, Phone: req.Phone, Email: req.Email, Notes: req.Notes,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toTenantDTO(t))
}

func (h *Handler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	var req TenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	t := rental.Tenant{
		ID:       ledger.TenantID(chi.URLParam(r, "id")),
		FullName: req.FullName, Phone: req.Phone, Email: req.Email, Notes: req.Notes,
	}
	if err := h.Tenants.Update(r.Context(), t); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toTenantDTO(t))
}

func (h *Handler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	id := ledger.TenantID(chi.URLParam(r, "id"))
	if err := h.Tenants.Delete(r.Context(), id); err != nil {
		h.respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// LANDLORDS
// =============================================================================

func (h *Handler) ListLandlords(w http.ResponseWriter, r *http.Request) {
	landlords := h.Landlords.Search(r.URL.Query().Get("q"))
	dtos := make([]TenantDTO, 0, len(landlords))
	for _, l := range landlords {
		dtos = append(dtos, toLandlordDTO(l))
	}
	respondJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateLandlord(w http.ResponseWriter, r *http.Request) {
	var req TenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	l, err := h.Landlords.Add(r.Context(), rental.Landlord{
		FullName: req.FullName, Phone: req.Phone, Email: req.Email, Notes: req.Notes,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toLandlordDTO(l))
}

func (h *Handler) UpdateLandlord(w http.ResponseWriter, r *http.Request) {
	var req TenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	l := rental.Landlord{
		ID:       ledger.LandlordID(chi.URLParam(r, "id")),
		FullName: req.FullName, Phone: req.Phone, Email: req.Email, Notes: req.Notes,
	}
	if err := h.Landlords.Update(r.Context(), l); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toLandlordDTO(l))
}

func (h *Handler) DeleteLandlord(w http.ResponseWriter, r *http.Request) {
	id := ledger.LandlordID(chi.URLParam(r, "id"))
	if err := h.Landlords.Delete(r.Context(), id); err != nil {
		h.respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PROPERTIES
// =============================================================================

func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties := h.Properties.Search(r.URL.Query().Get("q"))
	dtos := make([]PropertyDTO, 0, len(properties))
	for _, p := range properties {
		dtos = append(dtos, toPropertyDTO(p))
	}
	respondJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodeProperty(w, r, "")
	if !ok {
		return
	}
	created, err := h.Properties.Add(r.Context(), p)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toPropertyDTO(created))
}

func (h *Handler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodeProperty(w, r, ledger.PropertyID(chi.URLParam(r, "id")))
	if !ok {
		return
	}
	if err := h.Properties.Update(r.Context(), p); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPropertyDTO(p))
}

func (h *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id := ledger.PropertyID(chi.URLParam(r, "id"))
	if err := h.Properties.Delete(r.Context(), id); err != nil {
		h.respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeProperty(w http.ResponseWriter, r *http.Request, id ledger.PropertyID) (rental.Property, bool) {
	var req PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return rental.Property{}, false
	}
	area, err := parseMoney(req.Area, "area")
	if err != nil {
		h.respondDomainError(w, err)
		return rental.Property{}, false
	}
	price, err := parseMoney(req.Price, "price")
	if err != nil {
		h.respondDomainError(w, err)
		return rental.Property{}, false
	}
	return rental.Property{
		ID: id, Title: req.Title, Address: req.Address,
		Area: area, Price: price, Notes: req.Notes,
	}, true
}

// =============================================================================
// CONTRACTS
// =============================================================================

func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	contracts := h.Contracts.All()
	dtos := make([]ContractDTO, 0, len(contracts))
	for _, c := range contracts {
		dtos = append(dtos, toContractDTO(c))
	}
	respondJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	c, ok := h.decodeContract(w, r, "")
	if !ok {
		return
	}
	created, err := h.Contracts.Add(r.Context(), c, h.Now())
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toContractDTO(created))
}

func (h *Handler) UpdateContract(w http.ResponseWriter, r *http.Request) {
	c, ok := h.decodeContract(w, r, ledger.ContractID(chi.URLParam(r, "id")))
	if !ok {
		return
	}
	updated, err := h.Contracts.Update(r.Context(), c, h.Now())
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toContractDTO(updated))
}

func (h *Handler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	id := ledger.ContractID(chi.URLParam(r, "id"))
	if err := h.Contracts.Delete(r.Context(), id); err != nil {
		h.respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetContractPayments(w http.ResponseWriter, r *http.Request) {
	id := ledger.ContractID(chi.URLParam(r, "id"))
	if _, err := h.Contracts.Get(id); err != nil {
		h.respondDomainError(w, err)
		return
	}
	payments := h.Payments.ByContract(id)
	dtos := make([]PaymentDTO, 0, len(payments))
	for _, p := range payments {
		dtos = append(dtos, toPaymentDTO(p))
	}
	respondJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetContractBalance(w http.ResponseWriter, r *http.Request) {
	id := ledger.ContractID(chi.URLParam(r, "id"))
	balance, err := h.Payments.Balance(id)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, BalanceDTO{
		ContractID: string(id),
		Balance:    money(balance),
	})
}

func (h *Handler) decodeContract(w http.ResponseWriter, r *http.Request, id ledger.ContractID) (ledger.Contract, bool) {
	var req ContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return ledger.Contract{}, false
	}
	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		h.respondDomainError(w, err)
		return ledger.Contract{}, false
	}
	end, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		h.respondDomainError(w, err)
		return ledger.Contract{}, false
	}
	rent, err := parseMoney(req.MonthlyRent, "monthly_rent")
	if err != nil {
		h.respondDomainError(w, err)
		return ledger.Contract{}, false
	}
	return ledger.Contract{
		ID:          id,
		TenantID:    ledger.TenantID(req.TenantID),
		LandlordID:  ledger.LandlordID(req.LandlordID),
		PropertyID:  ledger.PropertyID(req.PropertyID),
		StartDate:   start,
		EndDate:     end,
		MonthlyRent: rent,
		Notes:       req.Notes,
	}, true
}

// =============================================================================
// PAYMENTS
// =============================================================================

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments := h.Payments.Search(r.URL.Query().Get("q"))
	dtos := make([]PaymentDTO, 0, len(payments))
	for _, p := range payments {
		dtos = append(dtos, toPaymentDTO(p))
	}
	respondJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodePayment(w, r, "")
	if !ok {
		return
	}
	created, err := h.Payments.Add(r.Context(), p, h.Now())
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toPaymentDTO(created))
}

func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodePayment(w, r, ledger.PaymentID(chi.URLParam(r, "id")))
	if !ok {
		return
	}
	if err := h.Payments.Update(r.Context(), p, h.Now()); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPaymentDTO(p))
}

func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id := ledger.PaymentID(chi.URLParam(r, "id"))
	if err := h.Payments.Delete(r.Context(), id, h.Now()); err != nil {
		h.respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodePayment(w http.ResponseWriter, r *http.Request, id ledger.PaymentID) (ledger.Payment, bool) {
	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return ledger.Payment{}, false
	}
	date, err := parseDate(req.Date, "date")
	if err != nil {
		h.respondDomainError(w, err)
		return ledger.Payment{}, false
	}
	amount, err := parseMoney(req.Amount, "amount")
	if err != nil {
		h.respondDomainError(w, err)
		return ledger.Payment{}, false
	}
	return ledger.Payment{
		ID:         id,
		ContractID: ledger.ContractID(req.ContractID),
		Date:       date,
		Amount:     amount,
		Category:   ledger.PaymentCategory(req.Category),
		Notes:      req.Notes,
	}, true
}

// =============================================================================
// SCHEDULE CALCULATOR
// =============================================================================

func (h *Handler) ComputeSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	end, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	rent, err := parseMoney(req.MonthlyRent, "monthly_rent")
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	schedule, err := ledger.ComputeSchedule(start, end, rent)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toScheduleDTO(schedule))
}

// =============================================================================
// HELPERS
// =============================================================================

func parseDate(s, field string) (ledger.Date, error) {
	if s == "" {
		return ledger.Date{}, ledger.NewValidationError(field, "date is required")
	}
	d, err := ledger.ParseDate(s)
	if err != nil {
		return ledger.Date{}, ledger.NewValidationError(field, "expected YYYY-MM-DD")
	}
	return d, nil
}

func parseMoney(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, ledger.NewValidationError(field, "amount is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ledger.NewValidationError(field, "invalid decimal")
	}
	return d, nil
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	var verr *ledger.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, ledger.ErrInvalidRange):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrReferenced):
		respondError(w, http.StatusConflict, err.Error())
	default:
		h.Log.WithError(err).Error("request failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
