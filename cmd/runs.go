package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"are-we-consistent-yet/core/config"
	"are-we-consistent-yet/feature/runs"

	"github.com/spf13/cobra"
)

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored consistency runs",
	Long:  `Lists the runs stored in the run history database, newest first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		properties, _ := cmd.Flags().GetString("properties")
		limit, _ := cmd.Flags().GetInt("limit")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := config.LoadConfig(".", properties)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, err := openHistory(cfg)
		if err != nil {
			return err
		}
		records, err := store.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		return printRuns(cmd.OutOrStdout(), records, jsonOutput)
	},
}

// printRuns writes records as an aligned table or as JSON.
func printRuns(w io.Writer, records []runs.RunRecord, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tCONTAINER\tITERATIONS\tSIZE\tRAC\tRAD\tRAO\tLAC\tLAD\tDURATION")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%dms\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Container, r.Iterations, r.ObjectSize,
			r.ReadAfterCreate, r.ReadAfterDelete, r.ReadAfterOverwrite, r.ListAfterCreate, r.ListAfterDelete,
			r.DurationMillis)
	}
	return tw.Flush()
}

func init() {
	runsCmd.Flags().String("properties", "", "configuration file")
	runsCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	runsCmd.Flags().Bool("json", false, "print the runs as JSON")
	RootCmd.AddCommand(runsCmd)
}
