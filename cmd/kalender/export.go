package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportOut    string
	exportStdout bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the .ics calendar from the stored schedule without scraping",
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default ICS_OUTPUT)")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "write the calendar to stdout instead of a file")
}

func runExport(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := cmd.Context()

	if exportStdout {
		doc, err := rt.app.Publisher.Render(ctx)
		if err != nil {
			return fmt.Errorf("render calendar: %w", err)
		}
		if _, err := os.Stdout.Write(doc); err != nil {
			return fmt.Errorf("write calendar: %w", err)
		}
		return nil
	}

	path := exportOut
	if path == "" {
		path = rt.cfg.ICSOutputPath
	}
	result, err := rt.app.Publisher.Publish(ctx, path)
	if err != nil {
		return fmt.Errorf("publish calendar: %w", err)
	}

	fmt.Printf("Calendar written to %s (%d bytes, %d fixtures, %d events)\n",
		result.Path, result.Bytes, result.Fixtures, result.Events)
	return nil
}
