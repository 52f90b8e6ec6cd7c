package extract

import (
	"time"

	"github.com/nfarrow/recoup/internal/model"
	"github.com/nfarrow/recoup/internal/normalize"
	"github.com/nfarrow/recoup/internal/recommend"
	"github.com/nfarrow/recoup/internal/reconcile"
)

// defaultConfidence applies when the extraction service declares none
const defaultConfidence = 75

// Suggestion carries the extraction service's own document opinion. It is
// advisory: the deterministic recommender remains authoritative.
type Suggestion struct {
	Document  model.DocumentType `json:"document,omitempty"`
	Reason    string             `json:"reason,omitempty"`
	LBAStatus string             `json:"lba_status,omitempty"`
}

// BuildDelta normalizes a validated raw extraction into a mergeable delta.
// Field-level failures degrade to absent fields; this function cannot fail.
func BuildDelta(raw *model.RawExtraction, source model.Source, sourceRef string, now time.Time) (*reconcile.Delta, Suggestion) {
	if raw == nil {
		return &reconcile.Delta{}, Suggestion{}
	}

	confidence := defaultConfidence
	if raw.Confidence != nil {
		confidence = *raw.Confidence
	}
	prov := model.Provenance{
		Source:          source,
		Confidence:      confidence,
		ExtractedAt:     now,
		SourceReference: sourceRef,
	}

	delta := &reconcile.Delta{
		Claimant:  normalize.NormalizeParty(raw.Claimant, prov),
		Defendant: normalize.NormalizeParty(raw.Defendant, prov),
		Invoice:   normalize.NormalizeInvoice(raw.Invoice, prov),
		Timeline:  normalize.NormalizeTimeline(raw.Timeline, prov),
	}

	suggestion := Suggestion{LBAStatus: raw.LBAStatus}
	if raw.RecommendedDocument != "" {
		suggestion.Document = recommend.MapDocumentName(raw.RecommendedDocument)
		suggestion.Reason = raw.DocumentReason
	}

	return delta, suggestion
}
