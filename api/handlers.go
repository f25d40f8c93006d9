/*
handlers.go - HTTP handlers for the calculation API

PURPOSE:
  Exposes the rule engine as a thin read-mostly REST surface plus the
  two ledger-backed accounts. Handlers parse, delegate to the
  calculators, and serialize - no rule logic lives here.

ENDPOINTS:
  Calendar:
    GET  /api/holidays/{year}              Holiday set for a year

  Calculations (stateless):
    POST /api/calculations/overtime        Tiered hourly overtime
    POST /api/calculations/shift           Shift differential for one shift
    POST /api/calculations/wage            Effective hourly wage
    POST /api/calculations/apprentice      Apprentice hourly wage
    POST /api/calculations/special-allowance
    POST /api/calculations/severance       Notice + protection-free severance
    POST /api/calculations/childcare       Child-care entitlements

  Ledger-backed accounts:
    GET  /api/employees/{id}/timebank      Balance
    POST /api/employees/{id}/timebank/add
    POST /api/employees/{id}/timebank/take
    GET  /api/employees/{id}/freedom       Balance
    POST /api/employees/{id}/freedom/deposit
    POST /api/employees/{id}/freedom/withdraw

ERROR HANDLING:
  - 400: Validation errors, invalid input
  - 409: Insufficient balance
  - 500: Store failures

SECURITY NOTE:
  No authentication; authorization is an upstream concern.
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
	"github.com/IIVroomVroomII/lonberegner-sub001/allowance"
	"github.com/IIVroomVroomII/lonberegner-sub001/apprentice"
	"github.com/IIVroomVroomII/lonberegner-sub001/calendar"
	"github.com/IIVroomVroomII/lonberegner-sub001/childcare"
	"github.com/IIVroomVroomII/lonberegner-sub001/factory"
	"github.com/IIVroomVroomII/lonberegner-sub001/freedom"
	"github.com/IIVroomVroomII/lonberegner-sub001/ledger"
	"github.com/IIVroomVroomII/lonberegner-sub001/overtime"
	"github.com/IIVroomVroomII/lonberegner-sub001/severance"
	"github.com/IIVroomVroomII/lonberegner-sub001/shift"
	"github.com/IIVroomVroomII/lonberegner-sub001/worktime"
)

// Handler holds the API dependencies: the ledger store and the rate
// tables (defaults, optionally overlaid from a JSON document at boot).
type Handler struct {
	Ledger *ledger.Ledger
	Rates  factory.RateTables
}

func NewHandler(store ledger.Store, rates factory.RateTables) *Handler {
	return &Handler{
		Ledger: ledger.New(store),
		Rates:  rates,
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, ErrorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

// =============================================================================
// CALENDAR
// =============================================================================

func (h *Handler) GetHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	holidays := calendar.HolidaysForYear(year)
	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, hd := range holidays {
		dtos = append(dtos, HolidayDTO{
			Date:      hd.Date.Format("2006-01-02"),
			Name:      hd.Name,
			IsFullDay: hd.IsFullDay,
		})
	}
	respondJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// CALCULATIONS
// =============================================================================

func (h *Handler) CalculateOvertime(w http.ResponseWriter, r *http.Request) {
	var req OvertimeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	worked, err := decimal.NewFromString(req.WorkedHours)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	standard, err := decimal.NewFromString(req.StandardDailyHours)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	result := overtime.CalculateHourly(overtime.Shift{
		WorkedHours:        worked,
		StandardDailyHours: standard,
		WeekendOrHoliday:   req.WeekendOrHoliday,
		ActualStart:        req.ActualStart,
		ScheduledStart:     req.ScheduledStart,
	}, h.Rates.Overtime)
	respondJSON(w, http.StatusOK, toOvertimeResponse(result))
}

func (h *Handler) CalculateShift(w http.ResponseWriter, r *http.Request) {
	var req ShiftPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	hours, err := decimal.NewFromString(req.Hours)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	rate, err := decimal.NewFromString(req.HourlyRate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	dayType := shift.ClassifyDay(req.Start)
	if req.BankHoliday || calendar.IsHoliday(req.Start) {
		dayType = shift.DayBankHoliday
	}
	payment := shift.CalculatePayment(hours, rate, shift.ClassifyShift(req.Start), dayType, req.Rotating)
	respondJSON(w, http.StatusOK, toShiftResponse(payment))
}

func (h *Handler) CalculateWage(w http.ResponseWriter, r *http.Request) {
	var req WageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	employee, err := req.Employee.toDomain()
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	ref, err := time.Parse("2006-01-02", req.ReferenceDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	result := allowance.EffectiveHourlyWage(employee, ref, h.Rates.Allowance)
	resp := WageResponse{
		BaseWage:     result.BaseWage.StringFixed(2),
		YouthPercent: result.YouthPercent.StringFixed(0),
		Effective:    result.Effective.StringFixed(2),
	}
	for _, item := range result.Items {
		resp.Items = append(resp.Items, item.Name+": "+item.Amount.StringFixed(2))
	}
	for _, warning := range result.Warnings {
		resp.Warnings = append(resp.Warnings, warning.String())
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) CalculateApprenticeWage(w http.ResponseWriter, r *http.Request) {
	var req ApprenticeWageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	employee, err := req.Employee.toDomain()
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	ref, err := time.Parse("2006-01-02", req.ReferenceDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	result, err := apprentice.HourlyWage(employee, ref, h.Rates.SkilledRate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	respondJSON(w, http.StatusOK, ApprenticeWageResponse{
		Type:            string(result.Type),
		Year:            result.Year,
		IsAdult:         result.IsAdult,
		Percent:         result.Percent.StringFixed(0),
		BaseWage:        result.BaseWage.StringFixed(2),
		AnciennityBonus: result.AnciennityBonus.StringFixed(2),
		TotalHourly:     result.TotalHourly.StringFixed(2),
	})
}

// priorUsage satisfies childcare.UsageHistory with a caller-supplied
// count; the API has no absence archive of its own.
type priorUsage int

func (p priorUsage) DaysUsed(context.Context, string, time.Time, time.Time) (int, error) {
	return int(p), nil
}

func (h *Handler) CalculateChildCare(w http.ResponseWriter, r *http.Request) {
	var req ChildCareRequest
	if !decodeBody(w, r, &req) {
		return
	}

	switch req.Kind {
	case "child_sick_day":
		result, err := childcare.ChildSickDay(req.DayNumber)
		if err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		respondJSON(w, http.StatusOK, toChildCareResponse(result))

	case "doctor_visit":
		respondJSON(w, http.StatusOK, toChildCareResponse(childcare.DoctorVisit()))

	case "relative_escort":
		start, end, err := parseDateRange(req.Start, req.End)
		if err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		result, err := childcare.RelativeEscort(start, end)
		if err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		respondJSON(w, http.StatusOK, toChildCareResponse(result))

	case "hospitalization":
		start, end, err := parseDateRange(req.Start, req.End)
		if err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		result, err := childcare.Hospitalization(r.Context(), priorUsage(req.PriorDaysUsed), "", start, end)
		if err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		resp := toChildCareResponse(result.Result)
		resp.DaysUsedThisYear = &result.DaysUsedThisYear
		resp.DaysRemainingThisYear = &result.DaysRemainingThisYear
		respondJSON(w, http.StatusOK, resp)

	default:
		respondError(w, http.StatusBadRequest, fmt.Errorf("unknown child care kind %q", req.Kind))
	}
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return s, e, nil
}

func toChildCareResponse(r childcare.Result) ChildCareResponse {
	return ChildCareResponse{
		Type:                  string(r.Type),
		PaidDays:              r.PaidDays,
		DocumentationRequired: r.DocumentationRequired,
	}
}

func (h *Handler) CalculateSpecialAllowance(w http.ResponseWriter, r *http.Request) {
	var req SpecialAllowanceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	base, err := decimal.NewFromString(req.Base)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	result, err := freedom.Calculate(base, agreement.WorkTimeType(req.Employee.WorkTimeType), req.Year, req.Employee.ElectedSavings)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	respondJSON(w, http.StatusOK, SpecialAllowanceResponse{
		Percent:   result.Rate.Percent.StringFixed(2),
		Track:     string(result.Rate.Track),
		IsSavings: result.Rate.IsSavings,
		Amount:    result.Amount.StringFixed(2),
	})
}

func (h *Handler) CalculateSeverance(w http.ResponseWriter, r *http.Request) {
	var req SeveranceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	employee, err := req.Employee.toDomain()
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	ref, err := time.Parse("2006-01-02", req.ReferenceDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	initiator := severance.Initiator(req.Initiator)
	wage := allowance.EffectiveHourlyWage(employee, ref, h.Rates.Allowance)
	result := severance.Calculate(employee, wage.Effective, initiator, req.GrossMisconduct, ref)
	notice := severance.NoticePeriod(employee.AnciennityMonths, initiator)
	terminationDate := severance.TerminationDate(ref, employee.AnciennityMonths, initiator)
	respondJSON(w, http.StatusOK, toSeveranceResponse(result, notice, terminationDate))
}

// =============================================================================
// LEDGER-BACKED ACCOUNTS
// =============================================================================

func (h *Handler) timeBank(r *http.Request) *worktime.TimeBank {
	return worktime.NewTimeBank(h.Ledger, chi.URLParam(r, "id"))
}

func (h *Handler) freedomAccount(r *http.Request) *freedom.Account {
	return freedom.NewAccount(h.Ledger, chi.URLParam(r, "id"))
}

func (h *Handler) GetTimeBankBalance(w http.ResponseWriter, r *http.Request) {
	bank := h.timeBank(r)
	balance, err := bank.Balance(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, BalanceResponse{
		AccountID: bank.AccountID(), Balance: balance.StringFixed(2), Unit: string(ledger.UnitHours),
	})
}

func (h *Handler) AddToTimeBank(w http.ResponseWriter, r *http.Request) {
	var req LedgerOpRequest
	if !decodeBody(w, r, &req) {
		return
	}
	hours, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.timeBank(r).Add(r.Context(), hours, req.At, req.Reason); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (h *Handler) TakeFromTimeBank(w http.ResponseWriter, r *http.Request) {
	var req LedgerOpRequest
	if !decodeBody(w, r, &req) {
		return
	}
	hours, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.timeBank(r).TakeTimeOff(r.Context(), hours, req.At); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ledger.ErrInsufficientBalance) {
			status = http.StatusConflict
		}
		respondError(w, status, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (h *Handler) GetFreedomBalance(w http.ResponseWriter, r *http.Request) {
	account := h.freedomAccount(r)
	balance, err := account.Balance(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, BalanceResponse{
		AccountID: account.AccountID(), Balance: balance.StringFixed(2), Unit: string(ledger.UnitKroner),
	})
}

func (h *Handler) DepositFreedom(w http.ResponseWriter, r *http.Request) {
	var req LedgerOpRequest
	if !decodeBody(w, r, &req) {
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.freedomAccount(r).Deposit(r.Context(), amount, req.At, req.Reason); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (h *Handler) WithdrawFreedom(w http.ResponseWriter, r *http.Request) {
	var req LedgerOpRequest
	if !decodeBody(w, r, &req) {
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.freedomAccount(r).Withdraw(r.Context(), amount, req.At, req.Reason); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ledger.ErrInsufficientBalance) {
			status = http.StatusConflict
		}
		respondError(w, status, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}
