package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/sgwessen/kalender/internal/interfaces/ical"
	"github.com/sgwessen/kalender/internal/usecase"
)

var (
	syncDaemon       bool
	syncInterval     time.Duration
	syncForce        bool
	syncDetailedExit bool
	syncJSON         bool
	syncWorkers      int
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scrape all configured competitions and update the calendar",
	Long: `Sync fetches every configured competition from its source, reconciles
the candidates against the stored schedule and rewrites the .ics file when
anything changed (or --force is given).

With --daemon the command keeps running and repeats the pass on SYNC_INTERVAL;
--interval overrides the pause and implies --daemon.

With --detailed-exitcode a single pass exits 0 when the store is unchanged
and 2 when records were created or updated, so publish automation can skip
no-op runs.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&syncDaemon, "daemon", false, "keep running, repeating the sync on SYNC_INTERVAL")
	syncCmd.Flags().DurationVar(&syncInterval, "interval", 0, "pause between daemon passes (implies --daemon)")
	syncCmd.Flags().BoolVar(&syncForce, "force", false, "rewrite the calendar file even when nothing changed")
	syncCmd.Flags().BoolVar(&syncDetailedExit, "detailed-exitcode", false, "exit 2 when records were created or updated")
	syncCmd.Flags().BoolVar(&syncJSON, "json", false, "print the pass report as JSON on stdout")
	syncCmd.Flags().IntVar(&syncWorkers, "workers", 4, "concurrent competition fetches (capped at 4)")
}

// syncOutput is the machine-readable pass report. Published is nil when the
// calendar file was left untouched.
type syncOutput struct {
	usecase.SyncResult
	Changed   bool                `json:"changed"`
	Published *ical.PublishResult `json:"published,omitempty"`
}

func runSync(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := cmd.Context()

	interval := syncInterval
	if interval < 0 {
		return fmt.Errorf("--interval must be positive, got %s", interval)
	}
	daemon := syncDaemon || interval > 0
	if daemon && interval == 0 {
		interval = rt.cfg.SyncInterval
	}

	if !daemon {
		out, err := runSyncPass(ctx, rt)
		if err != nil {
			return err
		}
		if syncDetailedExit && out.Changed {
			changesExitCode = 2
		}
		return nil
	}

	if syncDetailedExit {
		return fmt.Errorf("--detailed-exitcode only makes sense for a single pass, not daemon mode")
	}

	rt.logger.Info("sync daemon starting", "interval", interval.String())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		// A failed pass must not kill the daemon; the portal being down for
		// one tick is routine.
		if _, err := runSyncPass(ctx, rt); err != nil {
			if ctx.Err() != nil {
				break
			}
			rt.logger.Error("sync pass failed", "error", err)
		}

		select {
		case <-ctx.Done():
			rt.logger.Info("sync daemon stopping")
			return nil
		case <-ticker.C:
		}
	}

	rt.logger.Info("sync daemon stopping")
	return nil
}

func runSyncPass(ctx context.Context, rt *runtime) (syncOutput, error) {
	result, err := rt.app.Sync.Run(ctx, usecase.SyncInput{MaxWorkers: syncWorkers})
	if err != nil {
		return syncOutput{}, err
	}

	out := syncOutput{SyncResult: result, Changed: result.Report.HasChanges()}
	if out.Changed || syncForce {
		published, err := rt.app.Publisher.Publish(ctx, rt.cfg.ICSOutputPath)
		if err != nil {
			return syncOutput{}, fmt.Errorf("publish calendar: %w", err)
		}
		out.Published = &published
	} else {
		rt.logger.InfoContext(ctx, "store unchanged, calendar left as is",
			"path", rt.cfg.ICSOutputPath)
	}

	if syncJSON {
		return out, printJSON(out)
	}
	printSyncSummary(out)
	return out, nil
}

func printSyncSummary(out syncOutput) {
	report := out.Report
	fmt.Printf("Sync: %d new, %d updated, %d unchanged, %d dropped (%d candidates from %d competitions)\n",
		len(report.New), len(report.Updated), len(report.Unchanged), report.Dropped,
		out.CandidateCount, out.CompetitionCount)

	for _, note := range report.New {
		fmt.Printf("  + %s (%s)\n", note.Summary, note.Date)
	}
	for _, note := range report.Updated {
		fmt.Printf("  ~ %s (%s)\n", note.Summary, note.Date)
		for _, change := range note.Changes {
			fmt.Printf("      %s\n", change)
		}
	}
	for _, fetch := range out.Fetches {
		if fetch.Status == "failed" {
			fmt.Printf("  ! %s (%s): %s\n", fetch.CompetitionID, fetch.Source, fetch.Message)
		}
	}

	if out.Published != nil {
		fmt.Printf("Calendar written to %s (%d bytes, %d fixtures, %d events)\n",
			out.Published.Path, out.Published.Bytes, out.Published.Fixtures, out.Published.Events)
	} else {
		fmt.Println("No changes, calendar not rewritten.")
	}
}

func printJSON(v any) error {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')
	if _, err := os.Stdout.Write(data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
