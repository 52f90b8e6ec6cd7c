// Package assess derives advisory conditions from a merged claim record.
// Warnings are metadata only: they never block merging or recommendation.
package assess

import (
	"fmt"
	"time"

	"github.com/nfarrow/recoup/internal/model"
	"github.com/nfarrow/recoup/internal/normalize"
)

// Generate evaluates every advisory rule against the merged record. Each
// rule is independent; the result is zero or more warnings.
func Generate(record *model.TrackedClaimRecord, now time.Time) []model.Warning {
	var warnings []model.Warning

	warnings = append(warnings, partyWarnings("claimant", record.Claimant)...)
	warnings = append(warnings, partyWarnings("defendant", record.Defendant)...)
	warnings = append(warnings, invoiceWarnings(record.Invoice)...)
	warnings = append(warnings, timelineWarnings(record.Timeline, now)...)

	return warnings
}

// partyWarnings flags a postcode whose county could be inferred but whose
// county field is empty
func partyWarnings(label string, party *model.TrackedParty) []model.Warning {
	if party.IsEmpty() || party.Postcode == nil || party.County != nil {
		return nil
	}
	if _, ok := normalize.InferCounty(party.Postcode.Value); !ok {
		return nil
	}
	return []model.Warning{{
		Type:     model.WarningCountyMissing,
		Severity: model.SeverityWarning,
		Message:  fmt.Sprintf("%s postcode %s implies a county but none is recorded", label, party.Postcode.Value),
	}}
}

func invoiceWarnings(invoice *model.TrackedInvoice) []model.Warning {
	if invoice.IsEmpty() {
		return nil
	}
	var warnings []model.Warning

	if invoice.Currency != nil && invoice.Currency.Value != model.DomesticCurrency {
		warnings = append(warnings, model.Warning{
			Type:     model.WarningForeignCurrency,
			Severity: model.SeverityWarning,
			Message:  fmt.Sprintf("invoice currency is %s, not %s; court claims are issued in the domestic currency", invoice.Currency.Value, model.DomesticCurrency),
		})
	}

	if invoice.TotalAmount != nil && invoice.TotalAmount.Value > model.SmallClaimsLimit {
		warnings = append(warnings, model.Warning{
			Type:     model.WarningSmallClaimsLimit,
			Severity: model.SeverityInfo,
			Message:  fmt.Sprintf("claim value %.2f exceeds the small claims track limit of %.0f", invoice.TotalAmount.Value, model.SmallClaimsLimit),
		})
	}

	return warnings
}

func timelineWarnings(timeline []model.TimelineEvent, now time.Time) []model.Warning {
	var warnings []model.Warning

	// Limitation risk: an invoice event older than the statutory horizon
	limitationCutoff := now.AddDate(-model.LimitationPeriodYears, 0, 0)
	if invoice := model.FirstEventOfType(timeline, model.EventInvoice); invoice != nil {
		if date, err := time.Parse(normalize.ISODate, invoice.Date); err == nil && date.Before(limitationCutoff) {
			warnings = append(warnings, model.Warning{
				Type:     model.WarningLimitationPeriod,
				Severity: model.SeverityError,
				Message:  fmt.Sprintf("invoice dated %s is more than %d years old; the claim may be statute-barred", invoice.Date, model.LimitationPeriodYears),
			})
		}
	}

	// Pre-action letter status
	lba := model.FirstEventOfType(timeline, model.EventLBASent)
	if lba == nil {
		warnings = append(warnings, model.Warning{
			Type:     model.WarningLBAMissing,
			Severity: model.SeverityWarning,
			Message:  "no letter before action recorded; a pre-action letter is required before court filing",
		})
		return warnings
	}
	if date, err := time.Parse(normalize.ISODate, lba.Date); err == nil {
		if now.Sub(date) < model.LBAWaitingPeriod {
			warnings = append(warnings, model.Warning{
				Type:     model.WarningLBAWaitingPeriod,
				Severity: model.SeverityInfo,
				Message:  fmt.Sprintf("letter before action sent %s; wait out the 14-day period before filing", lba.Date),
			})
		}
	}

	return warnings
}
