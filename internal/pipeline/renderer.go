package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nfarrow/recoup/internal/model"
)

// Renderer renders analysis results to JSON, Markdown, and the terminal
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full result, provenance included, as JSON
func (r *Renderer) RenderJSON(result *model.AnalysisResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(result *model.AnalysisResult, path string) error {
	var sb strings.Builder

	details := result.Record.Plain()

	sb.WriteString("# Claim Analysis\n\n")
	sb.WriteString(fmt.Sprintf("**Claim ID:** %s\n", details.ID))
	sb.WriteString(fmt.Sprintf("**Overall Confidence:** %d%%\n", result.OverallConfidence))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().UTC().Format(time.RFC3339)))

	r.writeParty(&sb, "Claimant", details.Claimant)
	r.writeParty(&sb, "Defendant", details.Defendant)
	r.writeInvoice(&sb, details.Invoice)
	r.writeTimeline(&sb, details.Timeline)
	r.writeRecommendation(&sb, result.Recommendation)
	r.writeWarnings(&sb, result.Warnings)

	if len(result.NeedsVerification) > 0 {
		sb.WriteString("## Needs Verification\n\n")
		sb.WriteString("Low-confidence values to confirm before producing documents:\n\n")
		for _, path := range result.NeedsVerification {
			sb.WriteString(fmt.Sprintf("- `%s`\n", path))
		}
		sb.WriteString("\n")
	}

	if r.includeFooter {
		sb.WriteString("---\n\n")
		sb.WriteString("*This report is procedural guidance, not legal advice.*\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (r *Renderer) writeParty(sb *strings.Builder, label string, p *model.PartyDetails) {
	if p == nil {
		return
	}
	sb.WriteString(fmt.Sprintf("## %s\n\n", label))
	writeRow(sb, "Name", p.Name)
	writeRow(sb, "Type", string(p.Type))
	writeRow(sb, "Address", p.Address)
	writeRow(sb, "City", p.City)
	writeRow(sb, "County", p.County)
	writeRow(sb, "Postcode", p.Postcode)
	writeRow(sb, "Phone", p.Phone)
	writeRow(sb, "Email", p.Email)
	writeRow(sb, "Company No.", p.CompanyNumber)
	sb.WriteString("\n")
}

func (r *Renderer) writeInvoice(sb *strings.Builder, inv *model.InvoiceDetails) {
	if inv == nil {
		return
	}
	sb.WriteString("## Invoice\n\n")
	writeRow(sb, "Invoice No.", inv.InvoiceNumber)
	writeRow(sb, "Date Issued", inv.DateIssued)
	writeRow(sb, "Due Date", inv.DueDate)
	if inv.TotalAmount > 0 {
		currency := inv.Currency
		if currency == "" {
			currency = model.DomesticCurrency
		}
		writeRow(sb, "Amount", fmt.Sprintf("%.2f %s", inv.TotalAmount, currency))
	}
	writeRow(sb, "Description", inv.Description)
	sb.WriteString("\n")
}

func (r *Renderer) writeTimeline(sb *strings.Builder, events []model.EventDetails) {
	if len(events) == 0 {
		return
	}
	sb.WriteString("## Timeline\n\n")
	sb.WriteString("| Date | Event | Description |\n")
	sb.WriteString("|------|-------|-------------|\n")
	for _, e := range events {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", e.Date, e.Type, e.Description))
	}
	sb.WriteString("\n")
}

func (r *Renderer) writeRecommendation(sb *strings.Builder, rec *model.Recommendation) {
	if rec == nil {
		return
	}
	sb.WriteString("## Recommendation\n\n")
	sb.WriteString(fmt.Sprintf("**Stage:** %s\n", rec.Stage))
	sb.WriteString(fmt.Sprintf("**Urgency:** %d/5\n", rec.Urgency))
	sb.WriteString(fmt.Sprintf("**Next Document:** %s\n\n", rec.PrimaryDocument))
	sb.WriteString(rec.Reason + "\n\n")

	if len(rec.Alternatives) > 0 {
		sb.WriteString("### Alternatives\n\n")
		for _, alt := range rec.Alternatives {
			sb.WriteString(fmt.Sprintf("- **%s** - %s\n", alt.Document, alt.Reason))
		}
		sb.WriteString("\n")
	}
}

func (r *Renderer) writeWarnings(sb *strings.Builder, warnings []model.Warning) {
	if len(warnings) == 0 {
		return
	}
	sb.WriteString("## Warnings\n\n")
	for _, w := range warnings {
		sb.WriteString(fmt.Sprintf("- %s **[%s]** %s\n", severityMark(w.Severity), w.Type, w.Message))
	}
	sb.WriteString("\n")
}

// RenderSummary prints a compact summary to stdout
func (r *Renderer) RenderSummary(result *model.AnalysisResult) {
	details := result.Record.Plain()

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════")
	fmt.Printf("  Claim %s\n", shortID(details.ID))
	fmt.Println("═══════════════════════════════════════════")

	if details.Defendant != nil && details.Defendant.Name != "" {
		fmt.Printf("  Defendant:  %s\n", details.Defendant.Name)
	}
	if details.Invoice != nil && details.Invoice.TotalAmount > 0 {
		currency := details.Invoice.Currency
		if currency == "" {
			currency = model.DomesticCurrency
		}
		fmt.Printf("  Amount:     %.2f %s\n", details.Invoice.TotalAmount, currency)
	}
	fmt.Printf("  Confidence: %d%%\n", result.OverallConfidence)

	if rec := result.Recommendation; rec != nil {
		fmt.Printf("  Stage:      %s (urgency %d/5)\n", rec.Stage, rec.Urgency)
		fmt.Printf("  Next step:  %s\n", rec.PrimaryDocument)
	}

	if len(result.Warnings) > 0 {
		fmt.Println("  ───────────────────────────────────────")
		for _, w := range result.Warnings {
			fmt.Printf("  %s %s\n", severityMark(w.Severity), w.Message)
		}
	}

	if len(result.NeedsVerification) > 0 {
		fmt.Printf("  %d value(s) need verification\n", len(result.NeedsVerification))
	}
	fmt.Println()
}

func writeRow(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	sb.WriteString(fmt.Sprintf("- **%s:** %s\n", label, value))
}

func severityMark(s model.Severity) string {
	switch s {
	case model.SeverityError:
		return "✗"
	case model.SeverityWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
