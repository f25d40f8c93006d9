/*
Package agreement defines the shared domain types for the collective
agreement wage engine.

PURPOSE:
  This package contains the immutable input records every calculator
  consumes: the employee profile, recorded working time, and recorded
  absences. The calculators (overtime, shift, allowance, apprentice,
  freedom, severance, childcare) all read these snapshots and never
  mutate them.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: The full profile a calculation needs (category, wage,
    certificates, apprentice status, elections)
  - TimeEntry: One recorded shift; worked hours are always derived,
    never stored
  - AbsenceEntry: One recorded absence over an inclusive date range

DESIGN PRINCIPLES:
  1. Precision: All money and hour quantities use decimal.Decimal -
     chained percentage rules must not accumulate float error
  2. Anciennity is input: Whole months of service arrive on the
     profile; no calculator re-derives them from the employment date
  3. Reference dates are parameters: Nothing in this module reads the
     ambient clock

SEE ALSO:
  - time.go: Calendar arithmetic helpers (inclusive days, whole months, age)
  - errors.go: Warning type shared by all calculators
*/
package agreement

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ENUMS
// =============================================================================

// WorkTimeType determines standard hours and which special-allowance
// track an employee belongs to.
type WorkTimeType string

const (
	WorkTimeHourly     WorkTimeType = "hourly"
	WorkTimeSalaried   WorkTimeType = "salaried"
	WorkTimeShiftWork  WorkTimeType = "shift_work"
	WorkTimeSubstitute WorkTimeType = "substitute"
)

// JobCategory selects the per-hour category allowance.
type JobCategory string

const (
	CategoryDriver     JobCategory = "driver"
	CategoryWarehouse  JobCategory = "warehouse"
	CategoryMover      JobCategory = "mover"
	CategoryRenovation JobCategory = "renovation"
)

// VehicleClass tiers the driver allowance by what the driver operates.
type VehicleClass string

const (
	VehicleLight       VehicleClass = "light"
	VehicleMedium      VehicleClass = "medium"
	VehicleHeavy       VehicleClass = "heavy"
	VehicleArticulated VehicleClass = "articulated"
)

// AgreementType identifies which sub-agreement the employee is covered by.
type AgreementType string

const (
	AgreementTransport AgreementType = "transport"
	AgreementMoving    AgreementType = "moving"
	AgreementWarehouse AgreementType = "warehouse"
)

// =============================================================================
// EMPLOYEE - Read-only input to every calculator
// =============================================================================

// Employee is the profile snapshot a calculation runs against.
// Calculators treat it as immutable for the duration of one calculation.
type Employee struct {
	ID            string
	JobCategory   JobCategory
	AgreementType AgreementType
	WorkTimeType  WorkTimeType

	EmploymentDate time.Time

	// AnciennityMonths is continuous service in whole months, maintained
	// externally. It is the sole anciennity input to the engine.
	AnciennityMonths int

	BaseHourlyWage decimal.Decimal

	BirthDate  *time.Time
	PostalCode *string

	// Driver tiering
	VehicleClass VehicleClass

	// Certificates and capabilities
	HasDriverLicense    bool
	HasTachographCard   bool
	HasForkliftCert     bool
	HasCraneCert        bool
	HasADRCert          bool
	HasVocationalDegree bool

	// Apprentice status
	IsApprentice           bool
	ApprenticeYear         int // 1-4
	IsAdultApprentice      bool
	IsDispatcherApprentice bool

	IsYouthWorker  bool
	IsSeniorScheme bool

	// LocalHourlyWage is a locally negotiated override of the base wage.
	// Subject to the agreement's per-hour ceiling (clamped, never rejected).
	LocalHourlyWage *decimal.Decimal

	// ElectedSavings selects the savings track of the special allowance
	// for salaried and shift workers.
	ElectedSavings bool
}

// Age returns the employee's age at ref with full month/day precision,
// or false when no birth date is recorded.
func (e Employee) Age(ref time.Time) (int, bool) {
	if e.BirthDate == nil {
		return 0, false
	}
	return AgeAt(*e.BirthDate, ref), true
}

// =============================================================================
// TIME ENTRY - One recorded shift
// =============================================================================

type TimeEntryStatus string

const (
	EntryRecorded TimeEntryStatus = "recorded"
	EntryApproved TimeEntryStatus = "approved"
	EntryRejected TimeEntryStatus = "rejected"
)

// TimeEntry is one recorded shift. End is nil while the shift is open.
type TimeEntry struct {
	ID   string
	Date time.Time

	Start time.Time
	End   *time.Time

	// BreakMinutes may be recorded negative by a faulty client. That is a
	// data-quality anomaly for the automation layer to flag, not a domain
	// value this type corrects.
	BreakMinutes int

	IsNight     bool
	IsWeekend   bool
	IsHoliday   bool
	IsIrregular bool

	Status TimeEntryStatus
}

// WorkedHours derives decimal hours as (end - start) - break.
// An open shift (missing end) yields zero, never an error.
func (t TimeEntry) WorkedHours() decimal.Decimal {
	if t.End == nil {
		return decimal.Zero
	}
	minutes := decimal.NewFromFloat(t.End.Sub(t.Start).Minutes())
	minutes = minutes.Sub(decimal.NewFromInt(int64(t.BreakMinutes)))
	return minutes.Div(decimal.NewFromInt(60))
}

// =============================================================================
// ABSENCE ENTRY - One recorded absence
// =============================================================================

// AbsenceType enumerates the leave categories the engine recognizes.
type AbsenceType string

const (
	AbsenceSick            AbsenceType = "sick"
	AbsenceChildSick       AbsenceType = "child_sick"
	AbsenceDoctorVisit     AbsenceType = "doctor_visit"
	AbsenceRelativeEscort  AbsenceType = "relative_escort"
	AbsenceHospitalization AbsenceType = "hospitalization"
	AbsenceMaternity       AbsenceType = "maternity"
	AbsencePaternity       AbsenceType = "paternity"
	AbsenceParental        AbsenceType = "parental"
	AbsenceVacation        AbsenceType = "vacation"
	AbsenceTimeBank        AbsenceType = "time_bank"
)

// AbsenceEntry covers an inclusive date range: DayCount = end - start + 1.
type AbsenceEntry struct {
	ID            string
	EmployeeID    string
	Type          AbsenceType
	StartDate     time.Time
	EndDate       time.Time // zero value = open-ended
	DayCount      int
	Paid          bool
	PaymentAmount decimal.Decimal
}

// OpenEnded reports whether the absence has no recorded end date.
func (a AbsenceEntry) OpenEnded() bool {
	return a.EndDate.IsZero()
}

// =============================================================================
// DECIMAL HELPERS
// =============================================================================

// MustParseDecimal parses s, returning zero on malformed input.
// Intended for rate-table literals, which are compile-time constants.
func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
