package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent generate runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt64("limit")

		store, rdb, err := requireRedis(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()

		runs, err := store.Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RUN_ID\tCREATED_AT\tFINGERPRINT\tRECORDS\tSEED\tFORMAT\tSHA256")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
				r.RunID, r.CreatedAt.Format("2006-01-02T15:04:05Z"), r.Fingerprint, r.Count, r.Seed, r.Format, r.Checksum)
		}
		return tw.Flush()
	},
}

func init() {
	runsCmd.Flags().Int64("limit", 20, "number of runs to show")
}
