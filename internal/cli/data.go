package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/ppiankov/rivalry/internal/ingest"
	"github.com/spf13/cobra"
)

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the fact table from the configured sources",
	Long: `Refresh tries each configured source in order. The first reachable
source is parsed; if none is reachable or nothing could be parsed, the
built-in seed data is written instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		report, err := a.refresher.Refresh(cmd.Context())
		if err != nil {
			return fmt.Errorf("refresh: %w", err)
		}
		printReport(report)
		return nil
	},
}

// initDBCmd represents the init-db command
var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the schema and load the seed data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		report, err := a.refresher.Initialize(cmd.Context())
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		printReport(report)
		return nil
	},
}

// categoriesCmd represents the categories command
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the known stat categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		categories, err := a.facts.ListCategories(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tDISPLAY NAME")
		for _, c := range categories {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Name, c.DisplayName)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(initDBCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func printReport(report *ingest.RefreshReport) {
	status := color.GreenString("✓")
	if report.Fallback {
		status = color.YellowString("!")
	}

	fmt.Fprintf(os.Stderr, "%s Loaded %d categories and %d stats from %s\n",
		status, report.Categories, report.Stats, report.Source)
	for _, attempt := range report.Attempts {
		if attempt.Error != "" {
			fmt.Fprintf(os.Stderr, "  %s %s: %s\n", color.RedString("✗"), attempt.URL, attempt.Error)
		}
	}
	fmt.Fprintf(os.Stderr, "  run %s in %v\n", report.RunID, report.Duration)
}
