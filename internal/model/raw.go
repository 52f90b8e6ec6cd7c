package model

// RawExtraction is the typed-but-partial representation of one extraction
// service response, produced by the validation boundary. Every field is
// optional; malformed fields are discarded at the boundary rather than
// failing the payload. Unknown extra keys are preserved in Extra.
type RawExtraction struct {
	Claimant            *RawParty  `json:"claimant,omitempty"`
	Defendant           *RawParty  `json:"defendant,omitempty"`
	Invoice             *RawInvoice `json:"invoice,omitempty"`
	Timeline            []RawEvent `json:"timeline,omitempty"`
	LBAStatus           string     `json:"lbaStatus,omitempty"`
	RecommendedDocument string     `json:"recommendedDocument,omitempty"` // Free text from the AI, mapped by the recommender
	DocumentReason      string     `json:"documentReason,omitempty"`
	Confidence          *int       `json:"confidence,omitempty"` // 0-100, declared by the extraction service

	Extra map[string]any `json:"-"` // Unrecognized top-level keys, preserved not rejected
}

// IsEmpty reports whether the extraction carried no usable content
func (r *RawExtraction) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.Claimant == nil && r.Defendant == nil && r.Invoice == nil &&
		len(r.Timeline) == 0 && r.LBAStatus == "" && r.RecommendedDocument == ""
}

// RawParty is one party as reported by the extraction service, before
// normalization
type RawParty struct {
	Name          string `json:"name,omitempty"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	County        string `json:"county,omitempty"`
	Postcode      string `json:"postcode,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Type          string `json:"type,omitempty"`
	CompanyNumber string `json:"companyNumber,omitempty"`
}

// RawInvoice is the invoice as reported by the extraction service. Dates and
// the amount keep their original string form so provenance can record the
// pre-normalization value.
type RawInvoice struct {
	InvoiceNumber string `json:"invoiceNumber,omitempty"`
	DateIssued    string `json:"dateIssued,omitempty"`
	DueDate       string `json:"dueDate,omitempty"`
	TotalAmount   string `json:"totalAmount,omitempty"`
	Currency      string `json:"currency,omitempty"`
	Description   string `json:"description,omitempty"`
}

// RawEvent is one event-like record with already-unified key names. The
// boundary maps the aliases (date/when, description/what/event,
// type/event_type/eventType) onto these fields.
type RawEvent struct {
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
}
