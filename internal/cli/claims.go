package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nfarrow/recoup/internal/pipeline"
)

// claimsCmd lists stored claim records
var claimsCmd = &cobra.Command{
	Use:   "claims",
	Short: "List stored claims",
	RunE:  runClaims,
}

var claimsDeleteCmd = &cobra.Command{
	Use:   "delete <claim-id>",
	Short: "Delete a stored claim",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig()
		if err != nil {
			return err
		}
		p := pipeline.NewPipeline(cfg, logger)
		if p.Store() == nil {
			return fmt.Errorf("persistence is disabled")
		}
		if err := p.Store().Delete(args[0]); err != nil {
			return fmt.Errorf("delete claim: %w", err)
		}
		fmt.Printf("✓ Deleted claim %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(claimsCmd)
	claimsCmd.AddCommand(claimsDeleteCmd)
}

func runClaims(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg, logger)
	if p.Store() == nil {
		return fmt.Errorf("persistence is disabled")
	}

	ids, err := p.Store().List()
	if err != nil {
		return fmt.Errorf("list claims: %w", err)
	}
	if len(ids) == 0 {
		fmt.Println("No stored claims.")
		return nil
	}

	for _, id := range ids {
		record, found, err := p.Store().Get(id)
		if err != nil || !found {
			fmt.Fprintf(os.Stderr, "✗ %s: unreadable\n", id)
			continue
		}
		details := record.Plain()
		defendant := "(no defendant)"
		if details.Defendant != nil && details.Defendant.Name != "" {
			defendant = details.Defendant.Name
		}
		amount := ""
		if details.Invoice != nil && details.Invoice.TotalAmount > 0 {
			amount = fmt.Sprintf("  %.2f", details.Invoice.TotalAmount)
		}
		fmt.Printf("%s  %s%s  (updated %s)\n", id, defendant, amount,
			record.UpdatedAt.Format("2006-01-02"))
	}
	return nil
}
