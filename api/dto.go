package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
	"github.com/IIVroomVroomII/lonberegner-sub001/overtime"
	"github.com/IIVroomVroomII/lonberegner-sub001/severance"
	"github.com/IIVroomVroomII/lonberegner-sub001/shift"
)

// =============================================================================
// REQUEST / RESPONSE TYPES
// =============================================================================
// Amounts travel as strings so callers never see binary floating point.

type HolidayDTO struct {
	Date      string `json:"date"`
	Name      string `json:"name"`
	IsFullDay bool   `json:"is_full_day"`
}

// --- Overtime ---

type OvertimeRequest struct {
	WorkedHours        string     `json:"worked_hours"`
	StandardDailyHours string     `json:"standard_daily_hours"`
	WeekendOrHoliday   bool       `json:"weekend_or_holiday"`
	ActualStart        *time.Time `json:"actual_start,omitempty"`
	ScheduledStart     *time.Time `json:"scheduled_start,omitempty"`
}

type BreakdownItemDTO struct {
	Type    string `json:"type"`
	Hours   string `json:"hours"`
	Rate    string `json:"rate"`
	Amount  string `json:"amount"`
	RuleRef string `json:"rule_ref"`
}

type OvertimeResponse struct {
	OvertimeHours string             `json:"overtime_hours"`
	TotalPay      string             `json:"total_pay"`
	Items         []BreakdownItemDTO `json:"items"`
}

func toOvertimeResponse(r overtime.Result) OvertimeResponse {
	resp := OvertimeResponse{
		OvertimeHours: r.OvertimeHours.StringFixed(2),
		TotalPay:      r.TotalPay.StringFixed(2),
		Items:         make([]BreakdownItemDTO, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		resp.Items = append(resp.Items, BreakdownItemDTO{
			Type:    string(item.Type),
			Hours:   item.Hours.StringFixed(2),
			Rate:    item.Rate.StringFixed(2),
			Amount:  item.Amount.StringFixed(2),
			RuleRef: item.RuleRef,
		})
	}
	return resp
}

// --- Shift ---

type ShiftPaymentRequest struct {
	Hours      string    `json:"hours"`
	HourlyRate string    `json:"hourly_rate"`
	Start      time.Time `json:"start"`
	Rotating   bool      `json:"rotating"`
	// BankHoliday overrides day classification; callers may also just
	// ask GET /api/holidays/{year}.
	BankHoliday bool `json:"bank_holiday"`
}

type ShiftPaymentResponse struct {
	ShiftType       string `json:"shift_type"`
	DayType         string `json:"day_type"`
	BasePay         string `json:"base_pay"`
	ShiftSupplement string `json:"shift_supplement"`
	DaySupplement   string `json:"day_supplement"`
	Total           string `json:"total"`
}

func toShiftResponse(p shift.Payment) ShiftPaymentResponse {
	return ShiftPaymentResponse{
		ShiftType:       string(p.ShiftType),
		DayType:         string(p.DayType),
		BasePay:         p.BasePay.StringFixed(2),
		ShiftSupplement: p.ShiftSupplement.StringFixed(2),
		DaySupplement:   p.DaySupplement.StringFixed(2),
		Total:           p.Total.StringFixed(2),
	}
}

// --- Employee profile (shared by wage/apprentice/severance calls) ---

type EmployeeDTO struct {
	ID               string  `json:"id"`
	JobCategory      string  `json:"job_category"`
	WorkTimeType     string  `json:"work_time_type"`
	AnciennityMonths int     `json:"anciennity_months"`
	BaseHourlyWage   string  `json:"base_hourly_wage"`
	BirthDate        *string `json:"birth_date,omitempty"` // 2006-01-02
	PostalCode       *string `json:"postal_code,omitempty"`
	VehicleClass     string  `json:"vehicle_class,omitempty"`

	HasADRCert          bool `json:"has_adr_cert"`
	HasForkliftCert     bool `json:"has_forklift_cert"`
	HasCraneCert        bool `json:"has_crane_cert"`
	HasVocationalDegree bool `json:"has_vocational_degree"`

	IsApprentice           bool `json:"is_apprentice"`
	ApprenticeYear         int  `json:"apprentice_year,omitempty"`
	IsAdultApprentice      bool `json:"is_adult_apprentice"`
	IsDispatcherApprentice bool `json:"is_dispatcher_apprentice"`

	IsYouthWorker  bool    `json:"is_youth_worker"`
	LocalWage      *string `json:"local_wage,omitempty"`
	ElectedSavings bool    `json:"elected_savings"`
}

func (d EmployeeDTO) toDomain() (agreement.Employee, error) {
	base, err := decimal.NewFromString(d.BaseHourlyWage)
	if err != nil {
		return agreement.Employee{}, err
	}
	e := agreement.Employee{
		ID:                     d.ID,
		JobCategory:            agreement.JobCategory(d.JobCategory),
		WorkTimeType:           agreement.WorkTimeType(d.WorkTimeType),
		AnciennityMonths:       d.AnciennityMonths,
		BaseHourlyWage:         base,
		PostalCode:             d.PostalCode,
		VehicleClass:           agreement.VehicleClass(d.VehicleClass),
		HasADRCert:             d.HasADRCert,
		HasForkliftCert:        d.HasForkliftCert,
		HasCraneCert:           d.HasCraneCert,
		HasVocationalDegree:    d.HasVocationalDegree,
		IsApprentice:           d.IsApprentice,
		ApprenticeYear:         d.ApprenticeYear,
		IsAdultApprentice:      d.IsAdultApprentice,
		IsDispatcherApprentice: d.IsDispatcherApprentice,
		IsYouthWorker:          d.IsYouthWorker,
		ElectedSavings:         d.ElectedSavings,
	}
	if d.BirthDate != nil {
		t, err := time.Parse("2006-01-02", *d.BirthDate)
		if err != nil {
			return agreement.Employee{}, err
		}
		e.BirthDate = &t
	}
	if d.LocalWage != nil {
		w, err := decimal.NewFromString(*d.LocalWage)
		if err != nil {
			return agreement.Employee{}, err
		}
		e.LocalHourlyWage = &w
	}
	return e, nil
}

// --- Wage ---

type WageRequest struct {
	Employee      EmployeeDTO `json:"employee"`
	ReferenceDate string      `json:"reference_date"` // 2006-01-02
}

type WageResponse struct {
	BaseWage     string   `json:"base_wage"`
	YouthPercent string   `json:"youth_percent"`
	Effective    string   `json:"effective_hourly_wage"`
	Items        []string `json:"items"`
	Warnings     []string `json:"warnings,omitempty"`
}

// --- Apprentice wage ---

type ApprenticeWageRequest struct {
	Employee      EmployeeDTO `json:"employee"`
	ReferenceDate string      `json:"reference_date"` // 2006-01-02
}

type ApprenticeWageResponse struct {
	Type            string `json:"type"`
	Year            int    `json:"year"`
	IsAdult         bool   `json:"is_adult"`
	Percent         string `json:"percent"`
	BaseWage        string `json:"base_wage"`
	AnciennityBonus string `json:"anciennity_bonus"`
	TotalHourly     string `json:"total_hourly"`
}

// --- Child care ---

type ChildCareRequest struct {
	Kind string `json:"kind"` // child_sick_day, doctor_visit, relative_escort, hospitalization

	// child_sick_day
	DayNumber int `json:"day_number,omitempty"`

	// relative_escort / hospitalization, 2006-01-02
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`

	// hospitalization: prior days consumed in the trailing 12 months,
	// supplied by the caller's absence records.
	PriorDaysUsed int `json:"prior_days_used,omitempty"`
}

type ChildCareResponse struct {
	Type                  string `json:"type"`
	PaidDays              int    `json:"paid_days"`
	DocumentationRequired bool   `json:"documentation_required"`

	DaysUsedThisYear      *int `json:"days_used_this_year,omitempty"`
	DaysRemainingThisYear *int `json:"days_remaining_this_year,omitempty"`
}

// --- Special allowance ---

type SpecialAllowanceRequest struct {
	Employee EmployeeDTO `json:"employee"`
	Year     int         `json:"year"`
	Base     string      `json:"base_amount"`
}

type SpecialAllowanceResponse struct {
	Percent   string `json:"percent"`
	Track     string `json:"track"`
	IsSavings bool   `json:"is_savings"`
	Amount    string `json:"amount"`
}

// --- Severance ---

type SeveranceRequest struct {
	Employee        EmployeeDTO `json:"employee"`
	Initiator       string      `json:"initiator"`
	GrossMisconduct bool        `json:"gross_misconduct"`
	ReferenceDate   string      `json:"reference_date"`
}

type SeveranceResponse struct {
	Eligible      bool   `json:"eligible"`
	Reason        string `json:"reason"`
	Note          string `json:"note"`
	TierMonths    int    `json:"tier_months"`
	MonthlySalary string `json:"monthly_salary"`
	Total         string `json:"total"`

	NoticeDays      int    `json:"notice_days"`
	NoticeMonths    int    `json:"notice_months"`
	TerminationDate string `json:"termination_date"`
}

func toSeveranceResponse(r severance.Result, notice severance.Notice, terminationDate time.Time) SeveranceResponse {
	return SeveranceResponse{
		Eligible:        r.Eligible,
		Reason:          string(r.Reason),
		Note:            r.Note,
		TierMonths:      r.TierMonths,
		MonthlySalary:   r.MonthlySalary.StringFixed(2),
		Total:           r.Total.StringFixed(2),
		NoticeDays:      notice.Days,
		NoticeMonths:    notice.Months,
		TerminationDate: terminationDate.Format("2006-01-02"),
	}
}

// --- Ledger operations ---

type LedgerOpRequest struct {
	Amount string    `json:"amount"`
	At     time.Time `json:"at"`
	Reason string    `json:"reason,omitempty"`
}

type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
	Unit      string `json:"unit"`
}

// --- Errors ---

type ErrorResponse struct {
	Error string `json:"error"`
}
