package model

import (
	"time"

	"github.com/google/uuid"
)

// Source identifies where an extracted value came from
type Source string

const (
	SourceDocumentExtraction Source = "document-extraction" // Uploaded document analyzed by the extraction service
	SourceChatExtraction     Source = "chat-extraction"     // Free-text chat turn analyzed by the extraction service
	SourceIntakeForm         Source = "intake-form"         // Values typed directly into the intake form
)

// Provenance records where a value came from and how much we trust it
type Provenance struct {
	Source          Source    `json:"source"`
	Confidence      int       `json:"confidence"` // 0-100
	ExtractedAt     time.Time `json:"extracted_at"`
	RawValue        string    `json:"raw_value,omitempty"`        // Original pre-normalization string
	SourceReference string    `json:"source_reference,omitempty"` // Free-text pointer to the origin (filename, chat turn)
	Inferred        bool      `json:"inferred,omitempty"`         // Derived by the normalizer, not stated by the source
}

// ClampConfidence forces the confidence into [0,100]
func (p Provenance) ClampConfidence() Provenance {
	if p.Confidence < 0 {
		p.Confidence = 0
	}
	if p.Confidence > 100 {
		p.Confidence = 100
	}
	return p
}

// Field is a value paired with its provenance. A field is either entirely
// present (non-nil, with provenance) or absent (nil pointer) - partial or
// empty values are treated as absent, never as a zero-confidence field.
type Field[T any] struct {
	Value      T          `json:"value"`
	Provenance Provenance `json:"provenance"`
}

// NewField builds a present field with clamped confidence
func NewField[T any](value T, prov Provenance) *Field[T] {
	return &Field[T]{Value: value, Provenance: prov.ClampConfidence()}
}

// PartyType classifies a claim party
type PartyType string

const (
	PartyIndividual PartyType = "individual"
	PartyBusiness   PartyType = "business"
	PartySoleTrader PartyType = "sole-trader"
)

// IsBusiness reports whether business legal rates apply. Sole traders are
// treated as businesses for all downstream rate logic - this is a domain
// rule, not an accident.
func (t PartyType) IsBusiness() bool {
	return t == PartyBusiness || t == PartySoleTrader
}

// TrackedParty holds the provenance-tagged attributes of one claim party
type TrackedParty struct {
	Name          *Field[string]    `json:"name,omitempty"`
	Address       *Field[string]    `json:"address,omitempty"`
	City          *Field[string]    `json:"city,omitempty"`
	County        *Field[string]    `json:"county,omitempty"`
	Postcode      *Field[string]    `json:"postcode,omitempty"`
	Phone         *Field[string]    `json:"phone,omitempty"`
	Email         *Field[string]    `json:"email,omitempty"`
	Type          *Field[PartyType] `json:"type,omitempty"`
	CompanyNumber *Field[string]    `json:"company_number,omitempty"`
}

// IsEmpty reports whether no attribute is present
func (p *TrackedParty) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Name == nil && p.Address == nil && p.City == nil && p.County == nil &&
		p.Postcode == nil && p.Phone == nil && p.Email == nil && p.Type == nil &&
		p.CompanyNumber == nil
}

// TrackedInvoice holds the provenance-tagged attributes of the claimed invoice.
// Dates are ISO calendar dates (YYYY-MM-DD). TotalAmount is non-negative with
// 2-decimal granularity.
type TrackedInvoice struct {
	InvoiceNumber *Field[string]  `json:"invoice_number,omitempty"`
	DateIssued    *Field[string]  `json:"date_issued,omitempty"`
	DueDate       *Field[string]  `json:"due_date,omitempty"`
	TotalAmount   *Field[float64] `json:"total_amount,omitempty"`
	Currency      *Field[string]  `json:"currency,omitempty"`
	Description   *Field[string]  `json:"description,omitempty"`
}

// IsEmpty reports whether no attribute is present
func (i *TrackedInvoice) IsEmpty() bool {
	if i == nil {
		return true
	}
	return i.InvoiceNumber == nil && i.DateIssued == nil && i.DueDate == nil &&
		i.TotalAmount == nil && i.Currency == nil && i.Description == nil
}

// ProcedureFlags are caller-asserted procedural facts that the extraction
// service cannot observe from documents alone. They only ever latch on.
type ProcedureFlags struct {
	CourtFiled         bool `json:"court_filed,omitempty"`
	DefendantResponded bool `json:"defendant_responded,omitempty"`
	JudgmentObtained   bool `json:"judgment_obtained,omitempty"`
}

// TrackedClaimRecord is the accumulated state of one debt claim. It is
// created empty when a claim begins and mutated only through merger outputs;
// deletion is a storage-layer concern, never the core's.
type TrackedClaimRecord struct {
	ID        string          `json:"id"`
	Claimant  *TrackedParty   `json:"claimant,omitempty"`
	Defendant *TrackedParty   `json:"defendant,omitempty"`
	Invoice   *TrackedInvoice `json:"invoice,omitempty"`
	Timeline  []TimelineEvent `json:"timeline,omitempty"`
	Flags     ProcedureFlags  `json:"flags,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewClaimRecord creates an empty claim record
func NewClaimRecord() *TrackedClaimRecord {
	now := time.Now().UTC()
	return &TrackedClaimRecord{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FieldRef points at one populated tracked field
type FieldRef struct {
	Path       string `json:"path"`
	Confidence int    `json:"confidence"`
	Inferred   bool   `json:"inferred,omitempty"`
}

// FieldRefs lists every populated scalar field with its path and confidence,
// in a stable order (claimant, defendant, invoice)
func (r *TrackedClaimRecord) FieldRefs() []FieldRef {
	var refs []FieldRef
	refs = append(refs, partyRefs("claimant", r.Claimant)...)
	refs = append(refs, partyRefs("defendant", r.Defendant)...)
	refs = append(refs, invoiceRefs("invoice", r.Invoice)...)
	return refs
}

func partyRefs(prefix string, p *TrackedParty) []FieldRef {
	if p == nil {
		return nil
	}
	var refs []FieldRef
	add := func(name string, prov *Provenance) {
		if prov != nil {
			refs = append(refs, FieldRef{
				Path:       prefix + "." + name,
				Confidence: prov.Confidence,
				Inferred:   prov.Inferred,
			})
		}
	}
	add("name", fieldProv(p.Name))
	add("address", fieldProv(p.Address))
	add("city", fieldProv(p.City))
	add("county", fieldProv(p.County))
	add("postcode", fieldProv(p.Postcode))
	add("phone", fieldProv(p.Phone))
	add("email", fieldProv(p.Email))
	add("type", fieldProv(p.Type))
	add("company_number", fieldProv(p.CompanyNumber))
	return refs
}

func invoiceRefs(prefix string, inv *TrackedInvoice) []FieldRef {
	if inv == nil {
		return nil
	}
	var refs []FieldRef
	add := func(name string, prov *Provenance) {
		if prov != nil {
			refs = append(refs, FieldRef{
				Path:       prefix + "." + name,
				Confidence: prov.Confidence,
				Inferred:   prov.Inferred,
			})
		}
	}
	add("invoice_number", fieldProv(inv.InvoiceNumber))
	add("date_issued", fieldProv(inv.DateIssued))
	add("due_date", fieldProv(inv.DueDate))
	add("total_amount", fieldProv(inv.TotalAmount))
	add("currency", fieldProv(inv.Currency))
	add("description", fieldProv(inv.Description))
	return refs
}

func fieldProv[T any](f *Field[T]) *Provenance {
	if f == nil {
		return nil
	}
	return &f.Provenance
}
