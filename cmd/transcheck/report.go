// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/transcheck/internal/runstore"
	"github.com/pdiddy/transcheck/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "List and show stored comparison runs",
	Long: `Report reads the runs database written by analyze --store. Use list to
see recent runs with their severity tallies, and show to print the full
report of one run.`,
}

// --- list subcommand ---

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, newest first",
	RunE:  runReportList,
}

func runReportList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("max-results")
	runs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No stored runs.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-5s  %4s  %6s  %3s  %s\n",
		"ID", "Created", "Mode", "High", "Medium", "Low", "Translation")
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-5s  %4d  %6d  %3d  %s\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), r.Mode,
			r.Summary.High, r.Summary.Medium, r.Summary.Low,
			filepath.Base(r.TargetPath))
	}
	return nil
}

// --- show subcommand ---

var reportShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the full report of one stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportShow,
}

func runReportShow(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	return writeReport(os.Stdout, run.Report, format)
}

func openStore(cmd *cobra.Command) (*runstore.Store, error) {
	runsDir, _ := cmd.Flags().GetString("runs-dir")
	return runstore.Open(types.StoreConfig{RunsDir: runsDir})
}

func init() {
	reportCmd.PersistentFlags().String("runs-dir", "runs", "base directory for stored runs")

	reportListCmd.Flags().Int("max-results", 50, "maximum number of runs to list")
	reportListCmd.Flags().Bool("json", false, "output the listing as JSON")

	reportShowCmd.Flags().String("format", "json", "report output format: json or yaml")

	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)
	rootCmd.AddCommand(reportCmd)
}
