package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nfarrow/recoup/internal/pipeline"
)

// recommendCmd represents the recommend command
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Re-derive the next step for a stored claim",
	Long: `Recommend re-runs the assessment over a stored claim record without
new extraction: procedural stage, urgency, next document, alternatives,
and warnings. Procedure flags let you assert facts documents cannot
show, such as a claim form already filed.

Example:
  recoup recommend --claim 4f2c...
  recoup recommend --claim 4f2c... --court-filed --defendant-responded
  recoup recommend --claim 4f2c... --preserve-relationship --strength low`,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringVar(&claimID, "claim", "", "claim ID to assess (required)")
	recommendCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	recommendCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	recommendCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	_ = recommendCmd.MarkFlagRequired("claim")

	addPreferenceFlags(recommendCmd)
	addProcedureFlags(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Output.IncludeFooter = !noFooter

	p := pipeline.NewPipeline(cfg, logger)
	if p.Store() == nil {
		return fmt.Errorf("persistence is disabled; nothing to assess")
	}

	record, found, err := p.Store().Get(claimID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("claim not found: %s", claimID)
	}

	// Asserted procedure flags latch onto the stored record
	flags := procedureFlags()
	if flags.CourtFiled || flags.DefendantResponded || flags.JudgmentObtained {
		record = p.Apply(record, procedureDelta())
		if err := p.Save(record); err != nil {
			return err
		}
	}

	result := p.Assess(record, time.Now().UTC(), preferences())
	return p.RenderResult(result, outJSON, outMD, verbose)
}
