package recommend

import (
	"testing"
	"time"

	"github.com/nfarrow/recoup/internal/model"
)

var testNow = time.Date(2024, 11, 15, 12, 0, 0, 0, time.UTC)

func field[T any](value T, confidence int) *model.Field[T] {
	return model.NewField(value, model.Provenance{
		Source:      model.SourceDocumentExtraction,
		Confidence:  confidence,
		ExtractedAt: testNow,
	})
}

func TestClassify_PriorityOrder(t *testing.T) {
	tests := []struct {
		name   string
		record *model.TrackedClaimRecord
		want   model.Stage
	}{
		{"nil record", nil, model.StageInitial},
		{"empty record", model.NewClaimRecord(), model.StageInitial},
		{
			"judgment wins over everything",
			&model.TrackedClaimRecord{
				Flags: model.ProcedureFlags{JudgmentObtained: true, CourtFiled: true},
				Timeline: []model.TimelineEvent{
					{Date: "2024-10-01", Type: model.EventLBASent},
				},
			},
			model.StageEnforcement,
		},
		{
			"court filed without response",
			&model.TrackedClaimRecord{Flags: model.ProcedureFlags{CourtFiled: true}},
			model.StageCourtFiled,
		},
		{
			"court filed with defendant response",
			&model.TrackedClaimRecord{Flags: model.ProcedureFlags{CourtFiled: true, DefendantResponded: true}},
			model.StageDefenseFiled,
		},
		{
			"lba sent 20 days ago",
			&model.TrackedClaimRecord{Timeline: []model.TimelineEvent{
				{Date: "2024-10-26", Type: model.EventLBASent},
			}},
			model.StageLBAExpired,
		},
		{
			"lba sent 5 days ago",
			&model.TrackedClaimRecord{Timeline: []model.TimelineEvent{
				{Date: "2024-11-10", Type: model.EventLBASent},
			}},
			model.StageLBASent,
		},
		{
			"lba sent exactly 14 days ago counts as expired",
			&model.TrackedClaimRecord{Timeline: []model.TimelineEvent{
				{Date: "2024-11-01", Type: model.EventLBASent},
			}},
			model.StageLBAExpired,
		},
		{
			"chaser only",
			&model.TrackedClaimRecord{Timeline: []model.TimelineEvent{
				{Date: "2024-01-10", Type: model.EventInvoice},
				{Date: "2024-01-10", Type: model.EventChaser},
			}},
			model.StagePreLBA,
		},
		{
			"invoice only is still initial",
			&model.TrackedClaimRecord{Timeline: []model.TimelineEvent{
				{Date: "2024-01-10", Type: model.EventInvoice},
			}},
			model.StageInitial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.record, testNow); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUrgency(t *testing.T) {
	record := model.NewClaimRecord()

	tests := []struct {
		stage model.Stage
		want  int
	}{
		{model.StageCourtFiled, 5},
		{model.StageLBAExpired, 4},
		{model.StageLBASent, 3},
		{model.StagePreLBA, 2},
		{model.StageInitial, 1},
		{model.StageDefenseFiled, 3},
		{model.StageEnforcement, 3},
	}

	for _, tt := range tests {
		if got := Urgency(tt.stage, record, testNow); got != tt.want {
			t.Errorf("Urgency(%v) = %d, want %d", tt.stage, got, tt.want)
		}
	}
}

func TestUrgency_InitialEscalatesWhenLongOverdue(t *testing.T) {
	record := model.NewClaimRecord()
	record.Invoice = &model.TrackedInvoice{DueDate: field("2024-09-01", 80)}

	if got := Urgency(model.StageInitial, record, testNow); got != 2 {
		t.Errorf("urgency = %d, want 2 for an invoice 75 days overdue", got)
	}

	record.Invoice.DueDate = field("2024-11-01", 80)
	if got := Urgency(model.StageInitial, record, testNow); got != 1 {
		t.Errorf("urgency = %d, want 1 for an invoice 14 days overdue", got)
	}
}
