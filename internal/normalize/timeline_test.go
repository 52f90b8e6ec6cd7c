package normalize

import (
	"testing"

	"github.com/nfarrow/recoup/internal/model"
)

func TestParseDate_RoundTrip(t *testing.T) {
	// All three forms of the same date must yield identical ISO output
	inputs := []string{"15/11/2024", "2024-11-15", "15th November 2024"}
	for _, input := range inputs {
		got, ok := ParseDate(input)
		if !ok {
			t.Errorf("ParseDate(%q) failed", input)
			continue
		}
		if got != "2024-11-15" {
			t.Errorf("ParseDate(%q) = %q, want 2024-11-15", input, got)
		}
	}
}

func TestParseDate_Variants(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"2024-01-10", "2024-01-10", true},
		{"10/01/2024", "2024-01-10", true},
		{"1/2/2024", "2024-02-01", true}, // Day-first, never US-style
		{"02/01/06", "2006-01-02", true},
		{"1st January 2025", "2025-01-01", true},
		{"3rd Mar 2024", "2024-03-03", true},
		{"2024-11-15T10:30:00Z", "2024-11-15", true},
		{"soon", "", false},
		{"", "", false},
		{"32/01/2024", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseDate(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCanonicalEventType(t *testing.T) {
	tests := []struct {
		input string
		want  model.EventType
	}{
		{"invoice", model.EventInvoice},
		{"Invoice Sent", model.EventInvoice},
		{"reminder", model.EventChaser},
		{"chase", model.EventChaser},
		{"Follow-Up", model.EventChaser},
		{"final demand", model.EventLBASent},
		{"statutory_demand", model.EventLBASent},
		{"7 day notice", model.EventLBASent},
		{"lba_sent", model.EventLBASent},
		{"part payment", model.EventPartPayment},
		{"service delivered", model.EventServiceDelivered},
		{"something else entirely", model.EventCommunication},
		{"", model.EventCommunication},
	}

	for _, tt := range tests {
		if got := CanonicalEventType(tt.input); got != tt.want {
			t.Errorf("CanonicalEventType(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeTimeline_DropsUnparsableDates(t *testing.T) {
	raw := []model.RawEvent{
		{Date: "2024-01-10", Type: "invoice", Description: "Invoice issued"},
		{Date: "whenever", Type: "chaser", Description: "dropped"},
		{Date: "20/01/2024", Type: "reminder", Description: "First chaser"},
	}
	events := NormalizeTimeline(raw, testProv(80))
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != model.EventInvoice || events[1].Type != model.EventChaser {
		t.Errorf("unexpected event types: %v, %v", events[0].Type, events[1].Type)
	}
}

func TestNormalizeTimeline_DedupKeepsLongerDescription(t *testing.T) {
	raw := []model.RawEvent{
		{Date: "2024-01-10", Type: "reminder", Description: "chased"},
		{Date: "10/01/2024", Type: "chase", Description: "Chased by phone, spoke to accounts"},
		{Date: "2024-01-10", Type: "invoice", Description: "Invoice 42 issued"},
	}
	events := NormalizeTimeline(raw, testProv(80))
	if len(events) != 2 {
		t.Fatalf("expected 2 events after dedup, got %d", len(events))
	}

	chaser := model.FirstEventOfType(events, model.EventChaser)
	if chaser == nil {
		t.Fatal("expected surviving chaser event")
	}
	if chaser.Description != "Chased by phone, spoke to accounts" {
		t.Errorf("dedup kept %q, want the longer description", chaser.Description)
	}
}

func TestNormalizeTimeline_SortedAscending(t *testing.T) {
	raw := []model.RawEvent{
		{Date: "2024-03-01", Type: "chaser"},
		{Date: "2024-01-10", Type: "invoice"},
		{Date: "2024-02-10", Type: "payment_due"},
	}
	events := NormalizeTimeline(raw, testProv(80))
	for i := 1; i < len(events); i++ {
		if events[i-1].Date > events[i].Date {
			t.Fatalf("timeline not sorted: %s before %s", events[i-1].Date, events[i].Date)
		}
	}
}

func TestRenormalize_Idempotent(t *testing.T) {
	events := []model.TimelineEvent{
		{Date: "2024-01-10", Type: model.EventInvoice, Description: "Invoice"},
		{Date: "2024-01-10", Type: model.EventInvoice, Description: "Invoice 42 issued late"},
		{Date: "2024-02-01", Type: model.EventChaser, Description: "Chased"},
	}
	once := Renormalize(events)
	twice := Renormalize(once)
	if len(once) != len(twice) {
		t.Fatalf("renormalize not idempotent: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("event %d changed on second pass: %+v vs %+v", i, once[i], twice[i])
		}
	}

	// No two survivors share a (date, type) pair
	seen := map[string]bool{}
	for _, e := range once {
		if seen[e.Key()] {
			t.Errorf("duplicate key survived: %s", e.Key())
		}
		seen[e.Key()] = true
	}
}
