package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nfarrow/recoup/internal/extract"
	"github.com/nfarrow/recoup/internal/model"
	"github.com/nfarrow/recoup/internal/pipeline"
	"github.com/nfarrow/recoup/internal/recommend"
	"github.com/nfarrow/recoup/internal/reconcile"
)

var (
	claimID        string
	outJSON        string
	outMD          string
	extractTimeout time.Duration
	noFooter       bool
	noStore        bool
	chatInput      bool
	preExtracted   bool

	extractProvider string
	extractModel    string

	preserveRelationship bool
	claimStrength        string

	flagCourtFiled    bool
	flagDefResponded  bool
	flagJudgment      bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a document and merge the findings into a claim",
	Long: `Analyze runs one input through the full pipeline:
- Send the document text to the extraction service (or accept a
  pre-extracted JSON payload with --extracted)
- Validate and normalize the extracted facts
- Merge them into the claim record, higher confidence winning
- Derive the procedural stage, next document, and warnings

Repeated analyses against the same --claim accumulate into one record.

Example:
  recoup analyze invoice.txt --provider openai
  recoup analyze chat-turn.txt --chat --claim 4f2c... --provider ollama
  recoup analyze payload.json --extracted --json claim.json --md claim.md`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&claimID, "claim", "", "existing claim ID to merge into (default: new claim)")
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().DurationVar(&extractTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().BoolVar(&noStore, "no-store", false, "do not persist the claim record")
	analyzeCmd.Flags().BoolVar(&chatInput, "chat", false, "treat the input as a chat turn rather than a document")
	analyzeCmd.Flags().BoolVar(&preExtracted, "extracted", false, "input is a pre-extracted JSON payload, skip the extraction service")

	analyzeCmd.Flags().StringVar(&extractProvider, "provider", "", "extraction provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&extractModel, "model", "", "extraction model name")

	addPreferenceFlags(analyzeCmd)
	addProcedureFlags(analyzeCmd)
}

func addPreferenceFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&preserveRelationship, "preserve-relationship", false, "the claimant wants to keep working with the defendant")
	cmd.Flags().StringVar(&claimStrength, "strength", "", "claimant's view of the claim: low, moderate, strong")
}

func addProcedureFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagCourtFiled, "court-filed", false, "a claim form has been filed at court")
	cmd.Flags().BoolVar(&flagDefResponded, "defendant-responded", false, "the defendant has filed a defense")
	cmd.Flags().BoolVar(&flagJudgment, "judgment", false, "judgment has been entered")
}

func preferences() recommend.Preferences {
	return recommend.Preferences{
		PreserveRelationship: preserveRelationship,
		Strength:             recommend.ClaimStrength(claimStrength),
	}
}

func procedureFlags() model.ProcedureFlags {
	return model.ProcedureFlags{
		CourtFiled:         flagCourtFiled,
		DefendantResponded: flagDefResponded,
		JudgmentObtained:   flagJudgment,
	}
}

// procedureDelta wraps the procedure flags as a flags-only delta
func procedureDelta() *reconcile.Delta {
	return &reconcile.Delta{Flags: procedureFlags()}
}

// applyProviderFlags overrides the extraction section from CLI flags,
// pulling API keys from the environment the way the providers expect
func applyProviderFlags(cfg *model.Config) error {
	if extractProvider != "" {
		cfg.Extraction.Provider = extractProvider
	}
	if extractModel != "" {
		cfg.Extraction.Model = extractModel
	}

	switch cfg.Extraction.Provider {
	case "openai":
		if cfg.Extraction.APIKey == "" {
			cfg.Extraction.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.Extraction.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		if cfg.Extraction.APIKey == "" {
			cfg.Extraction.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if cfg.Extraction.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Extraction.BaseURL = baseURL
		}
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if err := applyProviderFlags(cfg); err != nil {
		return err
	}
	cfg.Output.IncludeFooter = !noFooter
	if noStore {
		cfg.Store.Enabled = false
	}

	p := pipeline.NewPipeline(cfg, logger)

	record, err := p.LoadOrCreate(claimID)
	if err != nil {
		return err
	}

	var (
		delta      *reconcile.Delta
		suggestion extract.Suggestion
	)

	switch {
	case preExtracted:
		data, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("read payload: %w", err)
		}
		delta, suggestion, err = p.ParseDelta(data, model.SourceDocumentExtraction, filepath.Base(input))
		if err != nil {
			return err
		}
	default:
		if !p.ExtractionEnabled() {
			return fmt.Errorf("no extraction provider configured; set --provider or pass --extracted with a JSON payload")
		}
		data, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}
		if chatInput {
			delta, suggestion, err = p.ExtractChatDelta(ctx, string(data), filepath.Base(input))
		} else {
			delta, suggestion, err = p.ExtractDelta(ctx, string(data), filepath.Base(input))
		}
		if err != nil {
			return fmt.Errorf("analyze %s: %w", input, err)
		}
	}

	delta.Flags = procedureFlags()
	merged := p.Apply(record, delta)

	if err := p.Save(merged); err != nil {
		return err
	}

	result := p.Assess(merged, time.Now().UTC(), preferences())
	p.LogSuggestion(suggestion, result.Recommendation)

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Claim %s: %d field(s) populated, confidence %d%%\n",
			merged.ID, len(result.PopulatedFields), result.OverallConfidence)
	}

	return p.RenderResult(result, outJSON, outMD, verbose)
}
