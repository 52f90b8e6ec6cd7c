package recommend

import (
	"strings"
	"time"

	"github.com/nfarrow/recoup/internal/model"
)

// ClaimStrength is the claimant's stated assessment of how strong the claim
// is, used only to soften recommendations - never to block them
type ClaimStrength string

const (
	StrengthUnknown  ClaimStrength = ""
	StrengthLow      ClaimStrength = "low"
	StrengthModerate ClaimStrength = "moderate"
	StrengthStrong   ClaimStrength = "strong"
)

// Preferences carry claimant-stated context that shades the recommendation
// wording without changing the stage machine
type Preferences struct {
	// PreserveRelationship signals the claimant wants to keep trading with
	// the debtor
	PreserveRelationship bool

	// Strength is the claimant's own assessment of the claim
	Strength ClaimStrength
}

// Recommend classifies the record and produces the stage's document
// recommendation with ranked alternatives and stage-specific warnings
func Recommend(record *model.TrackedClaimRecord, now time.Time, prefs Preferences) model.Recommendation {
	stage := Classify(record, now)
	rec := model.Recommendation{
		Stage:   stage,
		Urgency: Urgency(stage, record, now),
	}

	switch stage {
	case model.StageInitial:
		rec.PrimaryDocument = model.DocPoliteReminder
		rec.Reason = "no escalation has happened yet; a polite reminder often resolves the debt without souring anything"
		lbaReason := "skip straight to a formal letter before action if you want to signal that court action is next"
		if prefs.PreserveRelationship {
			lbaReason = "a formal letter before action is available, though it reads as an escalation if you want to keep working together"
		}
		rec.Alternatives = append(rec.Alternatives, model.Alternative{
			Document: model.DocLetterBeforeAction,
			Reason:   lbaReason,
		})

	case model.StagePreLBA:
		// Escalation only: once chasers have been sent, another reminder is
		// never recommended
		rec.PrimaryDocument = model.DocLetterBeforeAction
		rec.Reason = "reminders have already been sent without payment; the next step is a formal letter before action"

	case model.StageLBASent:
		rec.PrimaryDocument = model.DocLetterBeforeAction
		rec.Reason = "the letter before action is already in flight; stand by it while the 14-day period runs"
		rec.Warnings = append(rec.Warnings, model.Warning{
			Type:     model.WarningPrematureFiling,
			Severity: model.SeverityWarning,
			Message:  "filing before the statutory waiting period elapses risks cost penalties",
		})

	case model.StageLBAExpired:
		rec.PrimaryDocument = model.DocClaimForm
		rec.Reason = "the letter before action has expired without payment; the claim form is the next step"
		if prefs.Strength == StrengthLow {
			rec.Alternatives = append(rec.Alternatives, model.Alternative{
				Document: model.DocSettlementOffer,
				Reason:   "with a weaker claim, a settlement offer avoids the cost risk of losing at trial",
			})
			rec.Warnings = append(rec.Warnings, model.Warning{
				Type:     model.WarningLegalAdvice,
				Severity: model.SeverityWarning,
				Message:  "the claim has been assessed as weak; take legal advice before issuing proceedings",
			})
		}
		if amount := claimAmount(record); amount > model.SmallClaimsLimit {
			rec.Warnings = append(rec.Warnings, model.Warning{
				Type:     model.WarningRepresentation,
				Severity: model.SeverityWarning,
				Message:  "the claim exceeds the small claims track limit; consider legal representation for the fast track",
			})
		}

	case model.StageCourtFiled, model.StageDefenseFiled:
		rec.PrimaryDocument = model.DocDirectionsQuestionnaire
		rec.Reason = "the claim has been issued; the directions questionnaire keeps the case moving"
		rec.Alternatives = append(rec.Alternatives,
			model.Alternative{
				Document: model.DocDefaultJudgment,
				Reason:   "if the defendant has not responded in time, request judgment in default",
			},
			model.Alternative{
				Document: model.DocSettlementOffer,
				Reason:   "a settlement offer can still end the matter before a hearing",
			},
		)

	case model.StageEnforcement:
		rec.PrimaryDocument = model.DocClaimForm
		rec.Reason = "judgment has been entered; continue with the claim record while choosing an enforcement route"
		rec.Warnings = append(rec.Warnings, model.Warning{
			Type:     model.WarningEnforcementSteps,
			Severity: model.SeverityWarning,
			Message:  "enforcement requires further applications (warrant of control, attachment of earnings, charging order)",
		})
	}

	return rec
}

// documentSynonyms maps loosely worded AI document suggestions onto canonical
// identifiers. Matching is ordered and substring-based; the first hit wins.
var documentSynonyms = []struct {
	fragment string
	document model.DocumentType
}{
	{"polite reminder", model.DocPoliteReminder},
	{"friendly reminder", model.DocPoliteReminder},
	{"payment reminder", model.DocPoliteReminder},
	{"reminder", model.DocPoliteReminder},
	{"nudge", model.DocPoliteReminder},
	{"directions questionnaire", model.DocDirectionsQuestionnaire},
	{"n180", model.DocDirectionsQuestionnaire},
	{"default judgment", model.DocDefaultJudgment},
	{"judgment in default", model.DocDefaultJudgment},
	{"n225", model.DocDefaultJudgment},
	{"settlement", model.DocSettlementOffer},
	{"part 36", model.DocSettlementOffer},
	{"without prejudice", model.DocSettlementOffer},
	{"claim form", model.DocClaimForm},
	{"court claim", model.DocClaimForm},
	{"money claim", model.DocClaimForm},
	{"mcol", model.DocClaimForm},
	{"n1", model.DocClaimForm},
	{"letter before action", model.DocLetterBeforeAction},
	{"letter before claim", model.DocLetterBeforeAction},
	{"pre-action", model.DocLetterBeforeAction},
	{"pre action", model.DocLetterBeforeAction},
	{"final demand", model.DocLetterBeforeAction},
	{"demand letter", model.DocLetterBeforeAction},
	{"lba", model.DocLetterBeforeAction},
}

// MapDocumentName converts a loosely worded document suggestion into a
// canonical identifier. When nothing matches it defaults to the formal
// letter before action - never an unrecognized value.
func MapDocumentName(raw string) model.DocumentType {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return model.DocLetterBeforeAction
	}
	for _, entry := range documentSynonyms {
		if strings.Contains(lower, entry.fragment) {
			return entry.document
		}
	}
	return model.DocLetterBeforeAction
}

func claimAmount(record *model.TrackedClaimRecord) float64 {
	if record == nil || record.Invoice == nil || record.Invoice.TotalAmount == nil {
		return 0
	}
	return record.Invoice.TotalAmount.Value
}
