package model

// EventType is the closed set of canonical timeline event types
type EventType string

const (
	EventContract         EventType = "contract"
	EventServiceDelivered EventType = "service_delivered"
	EventInvoice          EventType = "invoice"
	EventPaymentDue       EventType = "payment_due"
	EventPartPayment      EventType = "part_payment"
	EventChaser           EventType = "chaser"
	EventLBASent          EventType = "lba_sent"
	EventAcknowledgment   EventType = "acknowledgment"
	EventCommunication    EventType = "communication" // Safe default for unrecognized types
)

// KnownEventTypes lists every canonical event type
var KnownEventTypes = []EventType{
	EventContract,
	EventServiceDelivered,
	EventInvoice,
	EventPaymentDue,
	EventPartPayment,
	EventChaser,
	EventLBASent,
	EventAcknowledgment,
	EventCommunication,
}

// IsKnownEventType reports whether t is one of the canonical types
func IsKnownEventType(t EventType) bool {
	for _, known := range KnownEventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// TimelineEvent is one canonical event in a claim's history. Date is an ISO
// calendar date (YYYY-MM-DD). After normalization a timeline is a set keyed
// by (date, type): no two surviving events share both.
type TimelineEvent struct {
	Date        string     `json:"date"`
	Description string     `json:"description"`
	Type        EventType  `json:"type"`
	Provenance  Provenance `json:"provenance"`
}

// Key returns the dedup key for the event
func (e TimelineEvent) Key() string {
	return e.Date + "|" + string(e.Type)
}

// FirstEventOfType returns the earliest event of the given type, or nil.
// Assumes the timeline is sorted ascending by date.
func FirstEventOfType(timeline []TimelineEvent, t EventType) *TimelineEvent {
	for i := range timeline {
		if timeline[i].Type == t {
			return &timeline[i]
		}
	}
	return nil
}

// HasEventOfType reports whether any event of the given type exists
func HasEventOfType(timeline []TimelineEvent, t EventType) bool {
	return FirstEventOfType(timeline, t) != nil
}
