// Package extract is the validation boundary between the opaque extraction
// service and the core. Raw AI JSON is parsed into a typed-but-partial
// representation here; nothing downstream ever touches an untyped map.
package extract

import (
	"encoding/json"
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/nfarrow/recoup/internal/model"
)

// knownKeys are the top-level keys of the extraction contract. Everything
// else is preserved in Extra, not rejected.
var knownKeys = map[string]bool{
	"claimant":            true,
	"defendant":           true,
	"invoice":             true,
	"timeline":            true,
	"lbaStatus":           true,
	"recommendedDocument": true,
	"documentReason":      true,
	"confidence":          true,
}

// ParseRaw checks the raw payload against the permissive extraction schema.
// Structural invalidity (not a JSON object) is the single hard error; present
// fields are type-checked individually and discarded when malformed, never
// failing the whole payload.
func ParseRaw(data []byte) (*model.RawExtraction, error) {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("extraction payload is not a JSON object: %w", err)
	}

	raw := &model.RawExtraction{}

	if party, ok := payload["claimant"].(map[string]any); ok {
		raw.Claimant = parseParty(party)
	}
	if party, ok := payload["defendant"].(map[string]any); ok {
		raw.Defendant = parseParty(party)
	}
	if invoice, ok := payload["invoice"].(map[string]any); ok {
		raw.Invoice = parseInvoice(invoice)
	}
	if timeline, ok := payload["timeline"].([]any); ok {
		for _, entry := range timeline {
			if event, ok := entry.(map[string]any); ok {
				raw.Timeline = append(raw.Timeline, parseEvent(event))
			}
		}
	}

	raw.LBAStatus = asString(payload["lbaStatus"])
	raw.RecommendedDocument = asString(payload["recommendedDocument"])
	raw.DocumentReason = asString(payload["documentReason"])

	if confidence, ok := asInt(payload["confidence"]); ok {
		if err := validation.Validate(confidence, validation.Min(0), validation.Max(100)); err == nil {
			raw.Confidence = &confidence
		}
	}

	for key, value := range payload {
		if !knownKeys[key] {
			if raw.Extra == nil {
				raw.Extra = make(map[string]any)
			}
			raw.Extra[key] = value
		}
	}

	return raw, nil
}

func parseParty(m map[string]any) *model.RawParty {
	return &model.RawParty{
		Name:          asString(m["name"]),
		Address:       asString(m["address"]),
		City:          asString(m["city"]),
		County:        asString(m["county"]),
		Postcode:      asString(m["postcode"]),
		Phone:         asString(m["phone"]),
		Email:         asString(m["email"]),
		Type:          asString(m["type"]),
		CompanyNumber: asString(m["companyNumber"]),
	}
}

func parseInvoice(m map[string]any) *model.RawInvoice {
	return &model.RawInvoice{
		InvoiceNumber: asString(m["invoiceNumber"]),
		DateIssued:    asString(m["dateIssued"]),
		DueDate:       asString(m["dueDate"]),
		TotalAmount:   asMoneyString(m["totalAmount"]),
		Currency:      asString(m["currency"]),
		Description:   asString(m["description"]),
	}
}

// parseEvent unifies the key aliases the extraction service is known to emit
func parseEvent(m map[string]any) model.RawEvent {
	date := asString(m["date"])
	if date == "" {
		date = asString(m["when"])
	}
	description := asString(m["description"])
	if description == "" {
		description = asString(m["what"])
	}
	if description == "" {
		description = asString(m["event"])
	}
	eventType := asString(m["type"])
	if eventType == "" {
		eventType = asString(m["event_type"])
	}
	if eventType == "" {
		eventType = asString(m["eventType"])
	}
	return model.RawEvent{Date: date, Description: description, Type: eventType}
}

// asString coerces strings and JSON numbers; anything else is treated as
// absent
func asString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case json.Number:
		return value.String()
	}
	return ""
}

// asMoneyString keeps the original textual form of a numeric-coercible
// amount so provenance can record the pre-normalization value. Booleans,
// objects and arrays are not numeric-coercible and are discarded.
func asMoneyString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case json.Number:
		return value.String()
	}
	return ""
}

func asInt(v any) (int, bool) {
	switch value := v.(type) {
	case float64:
		return int(value), true
	case json.Number:
		if i, err := value.Int64(); err == nil {
			return int(i), true
		}
	case string:
		if i, err := strconv.Atoi(value); err == nil {
			return i, true
		}
	}
	return 0, false
}
