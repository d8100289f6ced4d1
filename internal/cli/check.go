package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/mailgen/internal/generate"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report likely mistakes in the account declaration",
	Long: `Check is purely advisory: generate never refuses to run. An account
without any retrieval or send backend is legal (it may be configured
entirely through its freeform settings), but usually a mistake.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadDeclaration()
		if err != nil {
			return err
		}

		findings := generate.Check(cfg)
		if len(findings) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no problems found")
			return nil
		}

		for _, f := range findings {
			fmt.Fprintln(cmd.OutOrStdout(), f.String())
		}
		return fmt.Errorf("%d problem(s) found", len(findings))
	},
}
