package reconcile

import (
	"time"

	"github.com/nfarrow/recoup/internal/model"
	"github.com/nfarrow/recoup/internal/normalize"
)

// Delta is one normalized batch of incoming facts, ready to merge into a
// claim record
type Delta struct {
	Claimant  *model.TrackedParty
	Defendant *model.TrackedParty
	Invoice   *model.TrackedInvoice
	Timeline  []model.TimelineEvent
	Flags     model.ProcedureFlags
}

// IsEmpty reports whether the delta carries nothing to merge
func (d *Delta) IsEmpty() bool {
	if d == nil {
		return true
	}
	return d.Claimant.IsEmpty() && d.Defendant.IsEmpty() && d.Invoice.IsEmpty() &&
		len(d.Timeline) == 0 && d.Flags == (model.ProcedureFlags{})
}

// Merge combines an incoming delta with the claim's previously accumulated
// state and returns a new record. The inputs are not mutated. Per scalar
// field: absent existing takes incoming, absent incoming keeps existing, and
// when both are present the strictly higher confidence wins - ties keep the
// existing value (first-seen precedence). Timelines are unioned and
// renormalized so cross-batch duplicates collapse identically to
// within-batch ones. The merge is idempotent and arrival-order independent
// with respect to confidence.
func Merge(existing *model.TrackedClaimRecord, delta *Delta) *model.TrackedClaimRecord {
	merged := cloneRecord(existing)
	if delta == nil {
		return merged
	}

	merged.Claimant = mergeParty(merged.Claimant, delta.Claimant)
	merged.Defendant = mergeParty(merged.Defendant, delta.Defendant)
	merged.Invoice = mergeInvoice(merged.Invoice, delta.Invoice)
	merged.Timeline = mergeTimeline(merged.Timeline, delta.Timeline)
	merged.Flags = mergeFlags(merged.Flags, delta.Flags)
	merged.UpdatedAt = time.Now().UTC()
	return merged
}

// mergeField resolves one scalar field by confidence. Equal confidence keeps
// the existing value; an arbitrary but deliberate policy kept for
// compatibility with accumulated records.
func mergeField[T any](existing, incoming *model.Field[T]) *model.Field[T] {
	switch {
	case existing == nil:
		return incoming
	case incoming == nil:
		return existing
	case incoming.Provenance.Confidence > existing.Provenance.Confidence:
		return incoming
	default:
		return existing
	}
}

func mergeParty(existing, incoming *model.TrackedParty) *model.TrackedParty {
	if incoming.IsEmpty() {
		return existing
	}
	if existing.IsEmpty() {
		return incoming
	}
	return &model.TrackedParty{
		Name:          mergeField(existing.Name, incoming.Name),
		Address:       mergeField(existing.Address, incoming.Address),
		City:          mergeField(existing.City, incoming.City),
		County:        mergeField(existing.County, incoming.County),
		Postcode:      mergeField(existing.Postcode, incoming.Postcode),
		Phone:         mergeField(existing.Phone, incoming.Phone),
		Email:         mergeField(existing.Email, incoming.Email),
		Type:          mergeField(existing.Type, incoming.Type),
		CompanyNumber: mergeField(existing.CompanyNumber, incoming.CompanyNumber),
	}
}

func mergeInvoice(existing, incoming *model.TrackedInvoice) *model.TrackedInvoice {
	if incoming.IsEmpty() {
		return existing
	}
	if existing.IsEmpty() {
		return incoming
	}
	return &model.TrackedInvoice{
		InvoiceNumber: mergeField(existing.InvoiceNumber, incoming.InvoiceNumber),
		DateIssued:    mergeField(existing.DateIssued, incoming.DateIssued),
		DueDate:       mergeField(existing.DueDate, incoming.DueDate),
		TotalAmount:   mergeField(existing.TotalAmount, incoming.TotalAmount),
		Currency:      mergeField(existing.Currency, incoming.Currency),
		Description:   mergeField(existing.Description, incoming.Description),
	}
}

// mergeTimeline unions both event lists and re-runs dedup+sort over the
// union. Existing events come first so that on an exact tie the first-seen
// event survives, matching the scalar tie-break.
func mergeTimeline(existing, incoming []model.TimelineEvent) []model.TimelineEvent {
	if len(incoming) == 0 && len(existing) == 0 {
		return nil
	}
	union := make([]model.TimelineEvent, 0, len(existing)+len(incoming))
	union = append(union, existing...)
	union = append(union, incoming...)
	return normalize.Renormalize(union)
}

// mergeFlags only ever latches flags on; procedural facts do not un-happen
func mergeFlags(existing, incoming model.ProcedureFlags) model.ProcedureFlags {
	return model.ProcedureFlags{
		CourtFiled:         existing.CourtFiled || incoming.CourtFiled,
		DefendantResponded: existing.DefendantResponded || incoming.DefendantResponded,
		JudgmentObtained:   existing.JudgmentObtained || incoming.JudgmentObtained,
	}
}

func cloneRecord(record *model.TrackedClaimRecord) *model.TrackedClaimRecord {
	if record == nil {
		return model.NewClaimRecord()
	}
	clone := *record
	clone.Timeline = append([]model.TimelineEvent(nil), record.Timeline...)
	clone.Claimant = cloneParty(record.Claimant)
	clone.Defendant = cloneParty(record.Defendant)
	clone.Invoice = cloneInvoice(record.Invoice)
	return &clone
}

func cloneParty(p *model.TrackedParty) *model.TrackedParty {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func cloneInvoice(inv *model.TrackedInvoice) *model.TrackedInvoice {
	if inv == nil {
		return nil
	}
	clone := *inv
	return &clone
}
