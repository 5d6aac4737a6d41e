package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var removeOrdinals []int

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove entries by their list number",
	Long: `Remove deletes stored entries by the numbers "kalender list" shows,
renumbers the remaining ones and rewrites the calendar file.`,
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().IntSliceVar(&removeOrdinals, "no", nil, "list numbers to remove, e.g. --no 3,5")
	_ = removeCmd.MarkFlagRequired("no")
}

func runRemove(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := cmd.Context()

	// Ordinals are resolved against the current listing: fixtures occupy
	// 1..F, events F+1..F+E. The snapshot between list and remove is the
	// operator's responsibility, same as with the numbers themselves.
	snapshot, err := rt.app.Schedule.List(ctx)
	if err != nil {
		return fmt.Errorf("list schedule: %w", err)
	}
	total := len(snapshot.Fixtures) + len(snapshot.Events)

	identities := make([]string, 0, len(removeOrdinals))
	for _, no := range removeOrdinals {
		switch {
		case no < 1 || no > total:
			return fmt.Errorf("no entry with number %d, the list has %d entries", no, total)
		case no <= len(snapshot.Fixtures):
			identities = append(identities, snapshot.Fixtures[no-1].Identity)
		default:
			identities = append(identities, snapshot.Events[no-1-len(snapshot.Fixtures)].Identity)
		}
	}

	result, err := rt.app.Schedule.Remove(ctx, identities)
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d fixture(s) and %d event(s)\n", result.FixturesRemoved, result.EventsRemoved)

	return republish(ctx, rt)
}

// republish rewrites the calendar file after a manual store change.
func republish(ctx context.Context, rt *runtime) error {
	published, err := rt.app.Publisher.Publish(ctx, rt.cfg.ICSOutputPath)
	if err != nil {
		return fmt.Errorf("publish calendar: %w", err)
	}
	fmt.Printf("Calendar written to %s (%d fixtures, %d events)\n",
		published.Path, published.Fixtures, published.Events)
	return nil
}
