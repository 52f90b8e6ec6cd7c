package reconcile

import (
	"testing"
	"time"

	"github.com/nfarrow/recoup/internal/model"
)

func prov(source model.Source, confidence int) model.Provenance {
	return model.Provenance{
		Source:      source,
		Confidence:  confidence,
		ExtractedAt: time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC),
	}
}

func stringField(value string, confidence int) *model.Field[string] {
	return model.NewField(value, prov(model.SourceDocumentExtraction, confidence))
}

func TestMerge_TakesIncomingWhenExistingAbsent(t *testing.T) {
	existing := model.NewClaimRecord()
	delta := &Delta{
		Defendant: &model.TrackedParty{Name: stringField("Acme Ltd", 80)},
	}

	merged := Merge(existing, delta)
	if merged.Defendant == nil || merged.Defendant.Name == nil {
		t.Fatal("expected defendant name to be taken from delta")
	}
	if merged.Defendant.Name.Value != "Acme Ltd" {
		t.Errorf("name = %q", merged.Defendant.Name.Value)
	}

	// Inputs must not be mutated
	if existing.Defendant != nil {
		t.Error("existing record was mutated")
	}
}

func TestMerge_KeepsExistingWhenIncomingAbsent(t *testing.T) {
	existing := model.NewClaimRecord()
	existing.Defendant = &model.TrackedParty{City: stringField("Leeds", 60)}

	merged := Merge(existing, &Delta{Invoice: &model.TrackedInvoice{
		InvoiceNumber: stringField("INV-1", 70),
	}})
	if merged.Defendant == nil || merged.Defendant.City == nil || merged.Defendant.City.Value != "Leeds" {
		t.Fatal("existing defendant city lost")
	}
	if merged.Invoice == nil || merged.Invoice.InvoiceNumber == nil {
		t.Fatal("incoming invoice number lost")
	}
}

func TestMerge_HigherConfidenceWins(t *testing.T) {
	existing := model.NewClaimRecord()
	existing.Defendant = &model.TrackedParty{City: stringField("Leeds", 60)}

	merged := Merge(existing, &Delta{
		Defendant: &model.TrackedParty{City: stringField("Bradford", 90)},
	})
	if merged.Defendant.City.Value != "Bradford" {
		t.Errorf("city = %q, want Bradford (higher confidence)", merged.Defendant.City.Value)
	}

	// And the other direction: lower-confidence incoming never displaces
	merged = Merge(merged, &Delta{
		Defendant: &model.TrackedParty{City: stringField("York", 40)},
	})
	if merged.Defendant.City.Value != "Bradford" {
		t.Errorf("city = %q, lower confidence must not displace", merged.Defendant.City.Value)
	}
}

func TestMerge_TieKeepsExisting(t *testing.T) {
	// Scenario D: equal confidence keeps the first-seen value
	existing := model.NewClaimRecord()
	existing.Defendant = &model.TrackedParty{City: stringField("Leeds", 60)}

	merged := Merge(existing, &Delta{
		Defendant: &model.TrackedParty{City: stringField("Bradford", 60)},
	})
	if merged.Defendant.City.Value != "Leeds" {
		t.Errorf("city = %q, want Leeds (tie keeps existing)", merged.Defendant.City.Value)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	existing := model.NewClaimRecord()
	existing.Defendant = &model.TrackedParty{Name: stringField("Acme Ltd", 80)}
	delta := &Delta{
		Defendant: &model.TrackedParty{
			Name: stringField("ACME LIMITED", 80),
			City: stringField("Reading", 75),
		},
		Timeline: []model.TimelineEvent{
			{Date: "2024-01-10", Type: model.EventInvoice, Description: "Invoice issued", Provenance: prov(model.SourceChatExtraction, 80)},
		},
	}

	once := Merge(existing, delta)
	twice := Merge(once, delta)

	if once.Defendant.Name.Value != twice.Defendant.Name.Value {
		t.Errorf("name diverged: %q vs %q", once.Defendant.Name.Value, twice.Defendant.Name.Value)
	}
	if once.Defendant.City.Value != twice.Defendant.City.Value {
		t.Errorf("city diverged")
	}
	if len(once.Timeline) != len(twice.Timeline) {
		t.Fatalf("timeline grew on repeat merge: %d vs %d", len(once.Timeline), len(twice.Timeline))
	}
}

func TestMerge_ConfidenceMonotonic(t *testing.T) {
	existing := model.NewClaimRecord()
	existing.Invoice = &model.TrackedInvoice{
		TotalAmount: model.NewField(5000.0, prov(model.SourceChatExtraction, 55)),
	}
	delta := &Delta{Invoice: &model.TrackedInvoice{
		TotalAmount: model.NewField(5500.0, prov(model.SourceDocumentExtraction, 85)),
	}}

	merged := Merge(existing, delta)
	got := merged.Invoice.TotalAmount.Provenance.Confidence
	if got < 85 {
		t.Errorf("merged confidence %d is below max input confidence 85", got)
	}
}

func TestMerge_OrderIndependent(t *testing.T) {
	// A slow document analysis completing after a faster chat answer must
	// converge to the same field values either way
	docDelta := &Delta{Defendant: &model.TrackedParty{
		Name:     model.NewField("Acme Limited", prov(model.SourceDocumentExtraction, 90)),
		Postcode: model.NewField("RG1 4QA", prov(model.SourceDocumentExtraction, 90)),
	}}
	chatDelta := &Delta{Defendant: &model.TrackedParty{
		Name: model.NewField("Acme", prov(model.SourceChatExtraction, 65)),
		City: model.NewField("Reading", prov(model.SourceChatExtraction, 65)),
	}}

	ab := Merge(Merge(model.NewClaimRecord(), docDelta), chatDelta)
	ba := Merge(Merge(model.NewClaimRecord(), chatDelta), docDelta)

	if ab.Defendant.Name.Value != ba.Defendant.Name.Value {
		t.Errorf("name order-dependent: %q vs %q", ab.Defendant.Name.Value, ba.Defendant.Name.Value)
	}
	if ab.Defendant.Name.Value != "Acme Limited" {
		t.Errorf("higher-confidence name should win, got %q", ab.Defendant.Name.Value)
	}
	if ab.Defendant.City.Value != ba.Defendant.City.Value || ab.Defendant.Postcode.Value != ba.Defendant.Postcode.Value {
		t.Error("disjoint fields diverged between arrival orders")
	}
}

func TestMerge_TimelineCrossBatchDedup(t *testing.T) {
	first := &Delta{Timeline: []model.TimelineEvent{
		{Date: "2024-01-10", Type: model.EventInvoice, Description: "Invoice", Provenance: prov(model.SourceChatExtraction, 70)},
	}}
	second := &Delta{Timeline: []model.TimelineEvent{
		{Date: "2024-01-10", Type: model.EventInvoice, Description: "Invoice INV-42 for £5,000", Provenance: prov(model.SourceDocumentExtraction, 85)},
		{Date: "2024-02-01", Type: model.EventChaser, Description: "Chased by email", Provenance: prov(model.SourceDocumentExtraction, 85)},
	}}

	record := Merge(Merge(model.NewClaimRecord(), first), second)
	if len(record.Timeline) != 2 {
		t.Fatalf("expected 2 events after cross-batch dedup, got %d", len(record.Timeline))
	}
	invoice := model.FirstEventOfType(record.Timeline, model.EventInvoice)
	if invoice.Description != "Invoice INV-42 for £5,000" {
		t.Errorf("dedup kept %q, want the longer description", invoice.Description)
	}
	if record.Timeline[0].Date > record.Timeline[1].Date {
		t.Error("timeline not sorted after merge")
	}
}

func TestMerge_FlagsLatchOn(t *testing.T) {
	record := Merge(model.NewClaimRecord(), &Delta{Flags: model.ProcedureFlags{CourtFiled: true}})
	record = Merge(record, &Delta{})
	if !record.Flags.CourtFiled {
		t.Error("court-filed flag must not reset on later merges")
	}
}
