// Package recommend derives the procedural stage of a claim and the next
// document the claimant should produce. Everything here is deterministic and
// side-effect free; ambiguous signals fall through to the most conservative
// earlier stage rather than erroring.
package recommend

import (
	"time"

	"github.com/nfarrow/recoup/internal/model"
	"github.com/nfarrow/recoup/internal/normalize"
)

// overdueUrgencyThreshold is how long past the due date an untouched claim
// stops being low urgency
const overdueUrgencyThreshold = 30 * 24 * time.Hour

// Classify runs the stage machine over the record. Signals are evaluated in
// fixed priority order: judgment, court filing, LBA status, chasers. The
// classifier never fails; a record with no recognizable signals is initial.
func Classify(record *model.TrackedClaimRecord, now time.Time) model.Stage {
	if record == nil {
		return model.StageInitial
	}

	if record.Flags.JudgmentObtained {
		return model.StageEnforcement
	}

	if record.Flags.CourtFiled {
		if record.Flags.DefendantResponded {
			return model.StageDefenseFiled
		}
		return model.StageCourtFiled
	}

	if lba := model.FirstEventOfType(record.Timeline, model.EventLBASent); lba != nil {
		sent, err := time.Parse(normalize.ISODate, lba.Date)
		if err == nil && now.Sub(sent) >= model.LBAWaitingPeriod {
			return model.StageLBAExpired
		}
		// Unparsable date counts as freshly sent: the conservative reading
		return model.StageLBASent
	}

	if model.HasEventOfType(record.Timeline, model.EventChaser) {
		return model.StagePreLBA
	}

	return model.StageInitial
}

// Urgency maps a stage to a 1-5 urgency score. An initial-stage claim gains
// urgency once the invoice due date is more than 30 days past.
func Urgency(stage model.Stage, record *model.TrackedClaimRecord, now time.Time) int {
	switch stage {
	case model.StageCourtFiled:
		return 5
	case model.StageLBAExpired:
		return 4
	case model.StageLBASent:
		return 3
	case model.StagePreLBA:
		return 2
	case model.StageInitial:
		if dueDatePassedBy(record, now) > overdueUrgencyThreshold {
			return 2
		}
		return 1
	default:
		return 3
	}
}

// dueDatePassedBy returns how long ago the invoice due date passed, or 0
// when no due date is known or it has not passed
func dueDatePassedBy(record *model.TrackedClaimRecord, now time.Time) time.Duration {
	if record == nil || record.Invoice == nil || record.Invoice.DueDate == nil {
		return 0
	}
	due, err := time.Parse(normalize.ISODate, record.Invoice.DueDate.Value)
	if err != nil {
		return 0
	}
	elapsed := now.Sub(due)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
