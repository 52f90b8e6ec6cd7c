package normalize

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/nfarrow/recoup/internal/model"
)

// ISODate is the canonical calendar date layout used throughout the record
const ISODate = "2006-01-02"

var (
	separatorPattern = regexp.MustCompile(`[\s\-/]+`)
	ordinalPattern   = regexp.MustCompile(`(\d{1,2})(st|nd|rd|th)`)
)

// directLayouts are tried first, then ukLayouts, then textLayouts with
// ordinal suffixes stripped. Order matters: UK day-first forms must not be
// shadowed by a US-style parse.
var (
	directLayouts = []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006/01/02",
	}
	ukLayouts = []string{
		"02/01/2006",
		"2/1/2006",
		"02-01-2006",
		"2-1-2006",
		"02.01.2006",
		"02/01/06",
		"2/1/06",
	}
	textLayouts = []string{
		"2 January 2006",
		"2 Jan 2006",
		"January 2 2006",
		"January 2, 2006",
		"Jan 2, 2006",
	}
)

// ParseDate parses a raw date string into canonical ISO form. Parse order:
// direct calendar parse, UK day-first numeric forms, then ordinal text dates
// ("1st January 2025") with suffixes stripped.
func ParseDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	for _, layout := range directLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISODate), true
		}
	}
	for _, layout := range ukLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISODate), true
		}
	}

	stripped := ordinalPattern.ReplaceAllString(s, "$1")
	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, stripped); err == nil {
			return t.Format(ISODate), true
		}
	}

	return "", false
}

// CanonicalEventType maps a free-text event type onto the closed canonical
// set. Unrecognized types default to communication - never rejected.
func CanonicalEventType(raw string) model.EventType {
	collapsed := separatorPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), "_")
	collapsed = strings.Trim(collapsed, "_")
	if collapsed == "" {
		return model.EventCommunication
	}
	if canonical, ok := eventTypeSynonyms[collapsed]; ok {
		return canonical
	}
	if model.IsKnownEventType(model.EventType(collapsed)) {
		return model.EventType(collapsed)
	}
	return model.EventCommunication
}

// NormalizeTimeline converts raw event records into canonical timeline
// events, deduplicates and orders them. Events with unparsable dates are
// dropped individually; the batch never fails.
func NormalizeTimeline(events []model.RawEvent, prov model.Provenance) []model.TimelineEvent {
	var normalized []model.TimelineEvent
	for _, raw := range events {
		date, ok := ParseDate(raw.Date)
		if !ok {
			continue
		}
		eventType := CanonicalEventType(raw.Type)
		description := strings.TrimSpace(raw.Description)
		if description == "" {
			description = strings.ReplaceAll(string(eventType), "_", " ")
		}
		p := prov
		if date != raw.Date {
			p.RawValue = raw.Date
		}
		normalized = append(normalized, model.TimelineEvent{
			Date:        date,
			Description: description,
			Type:        eventType,
			Provenance:  p,
		})
	}
	return Renormalize(normalized)
}

// Renormalize deduplicates and sorts an event list. It is idempotent, so the
// merger can re-run it over the union of two already-normalized timelines
// and cross-batch duplicates collapse identically to within-batch ones.
func Renormalize(events []model.TimelineEvent) []model.TimelineEvent {
	deduped := DedupeEvents(events)
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Date < deduped[j].Date
	})
	return deduped
}

// DedupeEvents collapses events sharing the same (date, type) key. When two
// collide, the one with the longer description survives: more information
// wins. A deliberate heuristic, not a correctness guarantee.
func DedupeEvents(events []model.TimelineEvent) []model.TimelineEvent {
	byKey := make(map[string]int)
	var unique []model.TimelineEvent
	for _, event := range events {
		key := event.Key()
		if idx, seen := byKey[key]; seen {
			if len(event.Description) > len(unique[idx].Description) {
				unique[idx] = event
			}
			continue
		}
		byKey[key] = len(unique)
		unique = append(unique, event)
	}
	return unique
}
