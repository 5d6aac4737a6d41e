package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sgwessen/kalender/internal/usecase"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the stored fixtures and club events",
	Long: `List prints every stored entry with its display number, fixtures first,
then club events. The numbers are what "kalender remove --no" expects; they
are renumbered after a removal and are not stable identifiers.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "print the listing as JSON on stdout")
}

// listEntry is one row of the machine-readable listing. No is the combined
// display number used by remove; Identity is the stable key.
type listEntry struct {
	No           int    `json:"no"`
	Kind         string `json:"kind"`
	Identity     string `json:"identity"`
	Date         string `json:"date"`
	Time         string `json:"time,omitempty"`
	Summary      string `json:"summary"`
	Competition  string `json:"competition,omitempty"`
	Location     string `json:"location,omitempty"`
	Result       string `json:"result,omitempty"`
	LastModified string `json:"last_modified"`
}

func runList(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	snapshot, err := rt.app.Schedule.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list schedule: %w", err)
	}

	entries := flattenSnapshot(snapshot)
	if listJSON {
		return printJSON(struct {
			Entries []listEntry `json:"entries"`
		}{Entries: entries})
	}

	if len(entries) == 0 {
		fmt.Println("No entries stored yet. Run \"kalender sync\" first.")
		return nil
	}

	fmt.Printf("%d fixtures, %d events\n", len(snapshot.Fixtures), len(snapshot.Events))
	for _, entry := range entries {
		printListEntry(entry)
	}
	return nil
}

// flattenSnapshot numbers fixtures 1..F and events F+1..F+E, mirroring the
// ordinal resolution in the remove command.
func flattenSnapshot(snapshot usecase.ScheduleSnapshot) []listEntry {
	entries := make([]listEntry, 0, len(snapshot.Fixtures)+len(snapshot.Events))
	for i, f := range snapshot.Fixtures {
		entries = append(entries, listEntry{
			No:           i + 1,
			Kind:         "fixture",
			Identity:     f.Identity,
			Date:         f.Date,
			Time:         f.Time,
			Summary:      f.Summary(),
			Competition:  f.Competition,
			Location:     f.Location,
			Result:       f.Result,
			LastModified: f.LastModified.UTC().Format(time.RFC3339),
		})
	}
	offset := len(snapshot.Fixtures)
	for i, e := range snapshot.Events {
		entries = append(entries, listEntry{
			No:           offset + i + 1,
			Kind:         "event",
			Identity:     e.Identity,
			Date:         e.Date,
			Time:         e.Time,
			Summary:      e.Summary(),
			Location:     e.Location,
			LastModified: e.LastModified.UTC().Format(time.RFC3339),
		})
	}
	return entries
}

func printListEntry(entry listEntry) {
	when := entry.Date
	if entry.Time != "" {
		when += " " + entry.Time
	}
	line := fmt.Sprintf("%3d | %-16s | %s", entry.No, when, entry.Summary)
	if entry.Result != "" {
		line += " | " + entry.Result
	}
	fmt.Println(line)
	if entry.Location != "" {
		fmt.Printf("      %s\n", entry.Location)
	}
	fmt.Printf("      last change: %s\n", entry.LastModified)
}
