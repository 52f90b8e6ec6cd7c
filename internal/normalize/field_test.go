package normalize

import (
	"testing"
	"time"

	"github.com/nfarrow/recoup/internal/model"
)

func testProv(confidence int) model.Provenance {
	return model.Provenance{
		Source:      model.SourceDocumentExtraction,
		Confidence:  confidence,
		ExtractedAt: time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCleanPostcode(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"RG1 4QA", "RG1 4QA", true},
		{"rg1 4qa", "RG1 4QA", true},
		{"  rg1   4qa  ", "RG1 4QA", true},
		{"SW1A1AA", "SW1A 1AA", true},
		{"M1 1AE", "M1 1AE", true},
		{"not a postcode", "", false},
		{"12345", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := CleanPostcode(tt.input)
		if ok != tt.ok {
			t.Errorf("CleanPostcode(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("CleanPostcode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCleanPhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"0118 957 3000", "01189573000", true},
		{"(0118) 957-3000", "01189573000", true},
		{"+44 118 957 3000", "+441189573000", true},
		{"call me", "", false},
		{"123", "", false},
	}

	for _, tt := range tests {
		got, ok := CleanPhone(tt.input)
		if ok != tt.ok {
			t.Errorf("CleanPhone(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("CleanPhone(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"12500", 12500, true},
		{"£12,500.00", 12500, true},
		{"$1,234.56", 1234.56, true},
		{"1234.567", 1234.57, true},
		{"0", 0, true},
		{"-50", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"twelve", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseMoney(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseMoney(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseMoney(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestInferCounty_LongestPrefixWins(t *testing.T) {
	// SO is Hampshire via the two-letter table; the one-letter S entry
	// (South Yorkshire) must not shadow it
	county, ok := InferCounty("SO15 2AA")
	if !ok || county != "Hampshire" {
		t.Errorf("InferCounty(SO15 2AA) = %q, %v; want Hampshire", county, ok)
	}

	// S1 has no two-letter entry, so the one-letter fallback applies
	county, ok = InferCounty("S1 2BJ")
	if !ok || county != "South Yorkshire" {
		t.Errorf("InferCounty(S1 2BJ) = %q, %v; want South Yorkshire", county, ok)
	}

	county, ok = InferCounty("RG1 4QA")
	if !ok || county != "Berkshire" {
		t.Errorf("InferCounty(RG1 4QA) = %q, %v; want Berkshire", county, ok)
	}
}

func TestInferPartyType(t *testing.T) {
	tests := []struct {
		name       string
		hasCompany bool
		want       model.PartyType
	}{
		{"Acme Ltd", false, model.PartyBusiness},
		{"Acme Limited", false, model.PartyBusiness},
		{"Smith & Co PLC", false, model.PartyBusiness},
		{"Jones Consulting LLP", false, model.PartyBusiness},
		{"Dave Smith t/a Smith Roofing", false, model.PartyBusiness},
		{"John Maltdale", false, model.PartyIndividual},
		{"Jane Doe", false, model.PartyIndividual},
		{"Jane Doe", true, model.PartyBusiness},
	}

	for _, tt := range tests {
		got := InferPartyType(tt.name, tt.hasCompany)
		if got != tt.want {
			t.Errorf("InferPartyType(%q, %v) = %v, want %v", tt.name, tt.hasCompany, got, tt.want)
		}
	}
}

func TestNormalizeParty_InfersCountyAndType(t *testing.T) {
	// Scenario: defendant named "Acme Ltd" with postcode RG1 4QA and nothing else
	raw := &model.RawParty{Name: "Acme Ltd", Postcode: "RG1 4QA"}
	party := NormalizeParty(raw, testProv(80))
	if party == nil {
		t.Fatal("expected a party, got nil")
	}

	if party.Name == nil || party.Name.Value != "Acme Ltd" {
		t.Errorf("unexpected name field: %+v", party.Name)
	}
	if party.Name.Provenance.Confidence != 80 {
		t.Errorf("name confidence = %d, want 80", party.Name.Provenance.Confidence)
	}

	if party.Type == nil {
		t.Fatal("expected inferred type")
	}
	if party.Type.Value != model.PartyBusiness {
		t.Errorf("type = %v, want business", party.Type.Value)
	}
	if party.Type.Provenance.Confidence != 70 || !party.Type.Provenance.Inferred {
		t.Errorf("type provenance = %+v, want confidence 70 inferred", party.Type.Provenance)
	}

	if party.County == nil {
		t.Fatal("expected inferred county")
	}
	if party.County.Value != "Berkshire" {
		t.Errorf("county = %q, want Berkshire", party.County.Value)
	}
	if party.County.Provenance.Confidence != 85 || !party.County.Provenance.Inferred {
		t.Errorf("county provenance = %+v, want confidence 85 inferred", party.County.Provenance)
	}
}

func TestNormalizeParty_ExplicitTypeWins(t *testing.T) {
	raw := &model.RawParty{Name: "Acme Ltd", Type: "sole trader"}
	party := NormalizeParty(raw, testProv(90))
	if party.Type == nil || party.Type.Value != model.PartySoleTrader {
		t.Fatalf("expected explicit sole-trader type, got %+v", party.Type)
	}
	if party.Type.Provenance.Inferred {
		t.Error("explicit type must not be flagged inferred")
	}
	if !party.Type.Value.IsBusiness() {
		t.Error("sole traders must be treated as businesses")
	}
}

func TestNormalizeParty_BadFieldsOmitted(t *testing.T) {
	raw := &model.RawParty{
		Name:     "Jane Doe",
		Postcode: "not a postcode",
		Phone:    "none",
	}
	party := NormalizeParty(raw, testProv(75))
	if party.Postcode != nil {
		t.Error("invalid postcode should be omitted")
	}
	if party.Phone != nil {
		t.Error("invalid phone should be omitted")
	}
	if party.Name == nil {
		t.Error("valid name should survive")
	}
}

func TestNormalizeParty_Empty(t *testing.T) {
	if party := NormalizeParty(&model.RawParty{Postcode: "junk"}, testProv(50)); party != nil {
		t.Errorf("expected nil for empty party, got %+v", party)
	}
	if party := NormalizeParty(nil, testProv(50)); party != nil {
		t.Errorf("expected nil for nil raw party, got %+v", party)
	}
}

func TestNormalizeInvoice(t *testing.T) {
	raw := &model.RawInvoice{
		InvoiceNumber: " INV-001 ",
		DateIssued:    "15/11/2024",
		DueDate:       "15th December 2024",
		TotalAmount:   "£12,500.00",
		Currency:      "gbp",
		Description:   "Consulting services",
	}
	inv := NormalizeInvoice(raw, testProv(85))
	if inv == nil {
		t.Fatal("expected an invoice, got nil")
	}

	if inv.InvoiceNumber.Value != "INV-001" {
		t.Errorf("invoice number = %q", inv.InvoiceNumber.Value)
	}
	if inv.DateIssued.Value != "2024-11-15" {
		t.Errorf("date issued = %q, want 2024-11-15", inv.DateIssued.Value)
	}
	if inv.DateIssued.Provenance.RawValue != "15/11/2024" {
		t.Errorf("raw value not preserved: %q", inv.DateIssued.Provenance.RawValue)
	}
	if inv.DueDate.Value != "2024-12-15" {
		t.Errorf("due date = %q, want 2024-12-15", inv.DueDate.Value)
	}
	if inv.TotalAmount.Value != 12500 {
		t.Errorf("total amount = %v, want 12500", inv.TotalAmount.Value)
	}
	if inv.Currency.Value != "GBP" {
		t.Errorf("currency = %q, want GBP", inv.Currency.Value)
	}
}

func TestNormalizeInvoice_BadMoneyOmitted(t *testing.T) {
	inv := NormalizeInvoice(&model.RawInvoice{TotalAmount: "unknown", InvoiceNumber: "INV-2"}, testProv(60))
	if inv == nil {
		t.Fatal("expected an invoice")
	}
	if inv.TotalAmount != nil {
		t.Error("unparsable amount must be treated as missing, not zero")
	}
}
