package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mauv0809/pkhk-scout/internal/history"
	"github.com/mauv0809/pkhk-scout/internal/roster"
	"github.com/spf13/cobra"
)

var errHistoryDisabled = errors.New("run history is not configured, set DB_NAME or TURSO_PRIMARY_URL")

var (
	historyLimit int
	historyJSON  bool
)

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of runs to list")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print the runs as JSON")
}

func newTable(cmd *cobra.Command) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(cmd.OutOrStdout())
	return t
}

const timeLayout = "2006-01-02 15:04:05"

var searchCmd = &cobra.Command{
	Use:   "search <given names...> <surname>",
	Short: "Look up a single person and show their club",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry := roster.NameEntry{
			GivenNames: strings.Join(args[:len(args)-1], " "),
			Surname:    args[len(args)-1],
		}
		people, err := newSearchClient().Search(cmd.Context(), entry.Query())
		if err != nil {
			return fmt.Errorf("search for %s failed: %w", entry, err)
		}
		if len(people) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
			return nil
		}

		t := newTable(cmd)
		t.AppendHeader(table.Row{"", "Name", "User ID", "Club"})
		for _, p := range people {
			marker := ""
			if p.ClubAbbrev == cfg.ClubAbbrev {
				marker = "✓"
			}
			t.AppendRow(table.Row{marker, p.FullName(), p.UserID.String(), p.ClubAbbrev})
		}
		t.Render()
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previous runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, teardown, err := openHistory()
		if err != nil {
			return err
		}
		if store == nil {
			return errHistoryDisabled
		}
		defer teardown()

		runs, err := store.ListRuns(historyLimit)
		if err != nil {
			return err
		}
		if historyJSON {
			if runs == nil {
				runs = []history.RunRecord{}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(runs)
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
			return nil
		}

		t := newTable(cmd)
		t.AppendHeader(table.Row{"Run", "Started", "Club", "Names", "Failed", "Matches", "Written", "Output"})
		for _, run := range runs {
			t.AppendRow(table.Row{
				run.ID,
				run.StartedAt.Local().Format(timeLayout),
				run.Club,
				run.Names,
				run.FailedLookups,
				run.Matches,
				run.Written,
				run.OutputPath,
			})
		}
		t.Render()
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run and the members it wrote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, teardown, err := openHistory()
		if err != nil {
			return err
		}
		if store == nil {
			return errHistoryDisabled
		}
		defer teardown()

		run, err := store.GetRun(args[0])
		if err != nil {
			return err
		}
		members, err := store.GetRunMembers(run.ID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Run %s\n", run.ID)
		fmt.Fprintf(out, "  Club:     %s\n", run.Club)
		fmt.Fprintf(out, "  Started:  %s (%s)\n", run.StartedAt.Local().Format(timeLayout), run.Duration)
		fmt.Fprintf(out, "  Input:    %s (%d names)\n", run.InputPath, run.Names)
		fmt.Fprintf(out, "  Output:   %s\n", run.OutputPath)
		fmt.Fprintf(out, "  Lookups:  %d, %d failed\n", run.Lookups, run.FailedLookups)
		fmt.Fprintf(out, "  Matches:  %d, %d written, %d skipped\n", run.Matches, run.Written, run.Skipped)
		if len(members) == 0 {
			return nil
		}

		t := newTable(cmd)
		t.AppendHeader(table.Row{"#", "Name", "User ID"})
		for i, m := range members {
			t.AppendRow(table.Row{i + 1, m.FullName(), m.UserID.String()})
		}
		t.Render()
		return nil
	},
}
