package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/nfarrow/recoup/internal/model"
)

const (
	// countyInferenceConfidence is the fixed confidence for a county looked
	// up from the postcode prefix table
	countyInferenceConfidence = 85

	// typeInferenceConfidence is the fixed confidence for a party type
	// inferred from name text or a company number
	typeInferenceConfidence = 70
)

var (
	ukPostcodePattern = regexp.MustCompile(`^[A-Z]{1,2}\d[A-Z\d]?\s\d[A-Z]{2}$`)
	phonePattern      = regexp.MustCompile(`^\+?\d{7,15}$`)
	currencyPattern   = regexp.MustCompile(`^[A-Z]{3}$`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// NormalizeParty converts one raw party into a tracked party. Fields that
// fail unit-level cleanup are omitted, never errored. Returns nil when
// nothing survives.
func NormalizeParty(raw *model.RawParty, prov model.Provenance) *model.TrackedParty {
	if raw == nil {
		return nil
	}
	party := &model.TrackedParty{}

	if name := strings.TrimSpace(raw.Name); name != "" {
		party.Name = model.NewField(name, prov)
	}
	if addr := strings.TrimSpace(raw.Address); addr != "" {
		party.Address = model.NewField(addr, prov)
	}
	if city := strings.TrimSpace(raw.City); city != "" {
		party.City = model.NewField(city, prov)
	}
	if county := strings.TrimSpace(raw.County); county != "" {
		party.County = model.NewField(county, prov)
	}
	if postcode, ok := CleanPostcode(raw.Postcode); ok {
		p := prov
		if postcode != raw.Postcode {
			p.RawValue = raw.Postcode
		}
		party.Postcode = model.NewField(postcode, p)
	}
	if phone, ok := CleanPhone(raw.Phone); ok {
		p := prov
		if phone != raw.Phone {
			p.RawValue = raw.Phone
		}
		party.Phone = model.NewField(phone, p)
	}
	if email := strings.ToLower(strings.TrimSpace(raw.Email)); email != "" && strings.Contains(email, "@") {
		party.Email = model.NewField(email, prov)
	}
	if num := strings.TrimSpace(raw.CompanyNumber); num != "" {
		party.CompanyNumber = model.NewField(num, prov)
	}

	if explicit, ok := parsePartyType(raw.Type); ok {
		party.Type = model.NewField(explicit, prov)
	} else if party.Name != nil || party.CompanyNumber != nil {
		inferred := InferPartyType(fieldString(party.Name), party.CompanyNumber != nil)
		p := prov
		p.Confidence = typeInferenceConfidence
		p.Inferred = true
		party.Type = model.NewField(inferred, p)
	}

	// County inference from the postcode area, at a fixed confidence
	if party.County == nil && party.Postcode != nil {
		if county, ok := InferCounty(party.Postcode.Value); ok {
			p := prov
			p.Confidence = countyInferenceConfidence
			p.Inferred = true
			party.County = model.NewField(county, p)
		}
	}

	if party.IsEmpty() {
		return nil
	}
	return party
}

// NormalizeInvoice converts one raw invoice into a tracked invoice. Returns
// nil when nothing survives.
func NormalizeInvoice(raw *model.RawInvoice, prov model.Provenance) *model.TrackedInvoice {
	if raw == nil {
		return nil
	}
	inv := &model.TrackedInvoice{}

	if num := strings.TrimSpace(raw.InvoiceNumber); num != "" {
		inv.InvoiceNumber = model.NewField(num, prov)
	}
	if date, ok := ParseDate(raw.DateIssued); ok {
		p := prov
		if date != raw.DateIssued {
			p.RawValue = raw.DateIssued
		}
		inv.DateIssued = model.NewField(date, p)
	}
	if date, ok := ParseDate(raw.DueDate); ok {
		p := prov
		if date != raw.DueDate {
			p.RawValue = raw.DueDate
		}
		inv.DueDate = model.NewField(date, p)
	}
	if amount, ok := ParseMoney(raw.TotalAmount); ok {
		p := prov
		p.RawValue = raw.TotalAmount
		inv.TotalAmount = model.NewField(amount, p)
	}
	if currency := strings.ToUpper(strings.TrimSpace(raw.Currency)); currencyPattern.MatchString(currency) {
		inv.Currency = model.NewField(currency, prov)
	}
	if desc := strings.TrimSpace(raw.Description); desc != "" {
		inv.Description = model.NewField(desc, prov)
	}

	if inv.IsEmpty() {
		return nil
	}
	return inv
}

// CleanPostcode collapses whitespace and uppercases, then checks the UK
// postcode pattern. Fails silently (ok=false) when the cleaned value does
// not match.
func CleanPostcode(raw string) (string, bool) {
	compact := strings.ToUpper(whitespacePattern.ReplaceAllString(strings.TrimSpace(raw), ""))
	if len(compact) < 5 || len(compact) > 7 {
		return "", false
	}
	// Canonical form has a single space before the 3-character inward code
	formatted := compact[:len(compact)-3] + " " + compact[len(compact)-3:]
	if !ukPostcodePattern.MatchString(formatted) {
		return "", false
	}
	return formatted, true
}

// CleanPhone strips spaces, dashes and parens before validating
func CleanPhone(raw string) (string, bool) {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '\t':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	if !phonePattern.MatchString(stripped) {
		return "", false
	}
	return stripped, true
}

// ParseMoney accepts a numeric or currency-prefixed string. Non-finite or
// unparsable values are treated as missing - never coerced to 0 where 0
// would misrepresent the source. The result is non-negative with 2-decimal
// granularity.
func ParseMoney(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimLeft(cleaned, "£$€ ")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, false
	}
	return math.Round(value*100) / 100, true
}

// InferCounty looks up the county for a cleaned postcode. The two-letter
// area prefix wins; a one-letter fallback applies only when no two-letter
// entry matches.
func InferCounty(postcode string) (string, bool) {
	if len(postcode) >= 2 {
		if county, ok := countyByTwoLetterPrefix[postcode[:2]]; ok {
			return county, true
		}
	}
	if len(postcode) >= 1 {
		if county, ok := countyByOneLetterPrefix[postcode[:1]]; ok {
			return county, true
		}
	}
	return "", false
}

// InferPartyType infers a party type from name text or the presence of a
// company number, defaulting to individual
func InferPartyType(name string, hasCompanyNumber bool) model.PartyType {
	if hasCompanyNumber {
		return model.PartyBusiness
	}
	lower := strings.ToLower(name)
	for _, suffix := range companySuffixes {
		if containsWord(lower, suffix) {
			return model.PartyBusiness
		}
	}
	return model.PartyIndividual
}

// parsePartyType accepts an explicitly declared party type
func parsePartyType(raw string) (model.PartyType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "individual", "person", "consumer":
		return model.PartyIndividual, true
	case "business", "company", "organisation", "organization":
		return model.PartyBusiness, true
	case "sole-trader", "sole trader", "sole_trader":
		return model.PartySoleTrader, true
	}
	return "", false
}

// containsWord reports whether text contains fragment on a word boundary,
// so "ltd" matches "Acme Ltd" but not "Maltdale"
func containsWord(text, fragment string) bool {
	idx := 0
	for {
		pos := strings.Index(text[idx:], fragment)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(fragment)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
		if idx >= len(text) {
			return false
		}
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func fieldString(f *model.Field[string]) string {
	if f == nil {
		return ""
	}
	return f.Value
}
