package model

import "math"

// AnalysisResult is the bundle handed to presentation and document-generation
// collaborators after a merge
type AnalysisResult struct {
	Record *TrackedClaimRecord `json:"record"`

	// OverallConfidence is the arithmetic mean of all present field
	// confidences, 0 if none are present
	OverallConfidence int `json:"overall_confidence"`

	// PopulatedFields lists every field path that holds a value
	PopulatedFields []string `json:"populated_fields,omitempty"`

	// NeedsVerification lists field paths whose confidence is below the
	// verification threshold
	NeedsVerification []string `json:"needs_verification,omitempty"`

	Warnings       []Warning       `json:"warnings,omitempty"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
}

// OverallConfidence computes the arithmetic mean of all present field
// confidences, 0 if none
func OverallConfidence(record *TrackedClaimRecord) int {
	refs := record.FieldRefs()
	if len(refs) == 0 {
		return 0
	}
	sum := 0
	for _, ref := range refs {
		sum += ref.Confidence
	}
	return int(math.Round(float64(sum) / float64(len(refs))))
}

// ClaimDetails is the plain projection of a claim record - provenance
// stripped down to bare values. This is the shape document generation and
// persistence collaborators consume.
type ClaimDetails struct {
	ID        string         `json:"id"`
	Claimant  *PartyDetails  `json:"claimant,omitempty"`
	Defendant *PartyDetails  `json:"defendant,omitempty"`
	Invoice   *InvoiceDetails `json:"invoice,omitempty"`
	Timeline  []EventDetails `json:"timeline,omitempty"`
}

// PartyDetails is the plain projection of a tracked party
type PartyDetails struct {
	Name          string    `json:"name,omitempty"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	County        string    `json:"county,omitempty"`
	Postcode      string    `json:"postcode,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Type          PartyType `json:"type,omitempty"`
	CompanyNumber string    `json:"company_number,omitempty"`
}

// InvoiceDetails is the plain projection of a tracked invoice
type InvoiceDetails struct {
	InvoiceNumber string  `json:"invoice_number,omitempty"`
	DateIssued    string  `json:"date_issued,omitempty"`
	DueDate       string  `json:"due_date,omitempty"`
	TotalAmount   float64 `json:"total_amount,omitempty"`
	Currency      string  `json:"currency,omitempty"`
	Description   string  `json:"description,omitempty"`
}

// EventDetails is the plain projection of a timeline event
type EventDetails struct {
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Type        EventType `json:"type"`
}

// Plain strips provenance from the record, leaving bare values
func (r *TrackedClaimRecord) Plain() *ClaimDetails {
	details := &ClaimDetails{ID: r.ID}
	details.Claimant = plainParty(r.Claimant)
	details.Defendant = plainParty(r.Defendant)
	details.Invoice = plainInvoice(r.Invoice)
	for _, e := range r.Timeline {
		details.Timeline = append(details.Timeline, EventDetails{
			Date:        e.Date,
			Description: e.Description,
			Type:        e.Type,
		})
	}
	return details
}

func plainParty(p *TrackedParty) *PartyDetails {
	if p.IsEmpty() {
		return nil
	}
	return &PartyDetails{
		Name:          fieldValue(p.Name),
		Address:       fieldValue(p.Address),
		City:          fieldValue(p.City),
		County:        fieldValue(p.County),
		Postcode:      fieldValue(p.Postcode),
		Phone:         fieldValue(p.Phone),
		Email:         fieldValue(p.Email),
		Type:          fieldValue(p.Type),
		CompanyNumber: fieldValue(p.CompanyNumber),
	}
}

func plainInvoice(inv *TrackedInvoice) *InvoiceDetails {
	if inv.IsEmpty() {
		return nil
	}
	return &InvoiceDetails{
		InvoiceNumber: fieldValue(inv.InvoiceNumber),
		DateIssued:    fieldValue(inv.DateIssued),
		DueDate:       fieldValue(inv.DueDate),
		TotalAmount:   fieldValue(inv.TotalAmount),
		Currency:      fieldValue(inv.Currency),
		Description:   fieldValue(inv.Description),
	}
}

func fieldValue[T any](f *Field[T]) T {
	if f == nil {
		var zero T
		return zero
	}
	return f.Value
}
