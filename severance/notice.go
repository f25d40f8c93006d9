/*
Package severance computes termination notice periods, termination
protection, and severance pay.

PURPOSE:
  Notice periods depend on anciennity and on who terminates. Month
  tiers always resolve to the end of a month; only the day-based
  shortest tier resolves by plain day addition. Employer-initiated
  termination can be blocked by active sickness or family leave - the
  calculator returns the blocking reason instead of silently
  proceeding. Severance eligibility is a typed outcome too: callers
  branch on the reason, they never catch an error.

SEE ALSO:
  - severance.go: Eligibility gates, tier multipliers, salary basis
*/
package severance

import (
	"time"

	"github.com/IIVroomVroomII/lonberegner-sub001/agreement"
)

// Initiator says who ends the employment.
type Initiator string

const (
	InitiatorEmployer Initiator = "employer"
	InitiatorEmployee Initiator = "employee"
)

// =============================================================================
// NOTICE PERIODS
// =============================================================================

// Notice is a resolved notice period: exactly one of Days or Months is
// non-zero.
type Notice struct {
	Days   int
	Months int
}

// NoticePeriod resolves the notice period from anciennity months.
// Employer-initiated tiers are longer; the employee side is flat after
// six months.
func NoticePeriod(anciennityMonths int, initiator Initiator) Notice {
	if initiator == InitiatorEmployee {
		if anciennityMonths < 6 {
			return Notice{Days: 14}
		}
		return Notice{Months: 1}
	}
	switch {
	case anciennityMonths < 6:
		return Notice{Days: 14}
	case anciennityMonths < 36:
		return Notice{Months: 1}
	case anciennityMonths < 96:
		return Notice{Months: 3}
	case anciennityMonths < 180:
		return Notice{Months: 4}
	default:
		return Notice{Months: 6}
	}
}

// TerminationDate resolves the last day of employment from the day
// notice is given. Month tiers add the months and normalize to the end
// of that month; the 14-day tier is plain day addition without the
// month-end snap.
func TerminationDate(noticeGiven time.Time, anciennityMonths int, initiator Initiator) time.Time {
	notice := NoticePeriod(anciennityMonths, initiator)
	if notice.Days > 0 {
		return agreement.DateOnly(noticeGiven).AddDate(0, 0, notice.Days)
	}
	lastWorkingDay := agreement.DateOnly(noticeGiven).AddDate(0, notice.Months, 0)
	return agreement.EndOfMonth(lastWorkingDay)
}

// =============================================================================
// TERMINATION PROTECTION
// =============================================================================

// ProtectionReason is why employer-initiated termination is blocked.
type ProtectionReason string

const (
	ProtectionNone        ProtectionReason = ""
	ProtectionSickness    ProtectionReason = "active_sickness"
	ProtectionFamilyLeave ProtectionReason = "active_family_leave"
)

// Lookback windows, in weeks.
const (
	sicknessLookbackWeeks    = 26
	familyLeaveLookbackWeeks = 52
)

// ProtectionCheck is the outcome of the protection rules.
type ProtectionCheck struct {
	Blocked bool
	Reason  ProtectionReason
	Note    string
}

// CheckProtection blocks employer-initiated termination during active
// sickness (26-week lookback on an open-ended or still-current sick
// leave) or active maternity/paternity/parental leave (52-week
// lookback).
func CheckProtection(absences []agreement.AbsenceEntry, ref time.Time) ProtectionCheck {
	sickCutoff := ref.AddDate(0, 0, -sicknessLookbackWeeks*7)
	familyCutoff := ref.AddDate(0, 0, -familyLeaveLookbackWeeks*7)

	for _, a := range absences {
		active := a.OpenEnded() || !a.EndDate.Before(agreement.DateOnly(ref))
		if !active {
			continue
		}
		switch a.Type {
		case agreement.AbsenceSick:
			if !a.StartDate.Before(sickCutoff) {
				return ProtectionCheck{
					Blocked: true,
					Reason:  ProtectionSickness,
					Note:    "employee is on active sick leave within the 26-week protection window",
				}
			}
		case agreement.AbsenceMaternity, agreement.AbsencePaternity, agreement.AbsenceParental:
			if !a.StartDate.Before(familyCutoff) {
				return ProtectionCheck{
					Blocked: true,
					Reason:  ProtectionFamilyLeave,
					Note:    "employee is on active maternity/paternity/parental leave within the 52-week protection window",
				}
			}
		}
	}
	return ProtectionCheck{}
}
