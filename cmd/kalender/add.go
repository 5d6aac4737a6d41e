package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sgwessen/kalender/internal/usecase"
)

var addFixtureInput usecase.AddFixtureInput

var addEventInput usecase.AddEventInput

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Enter a fixture or club event by hand",
	Long: `Add stores a manually entered fixture or club event and rewrites the
calendar file. Manual entries share the identity scheme with scraped data, so
a later sync of the same match updates the entry instead of duplicating it.

Dates take the same forms the scraper accepts: 24.12.2025, 24.12.25 or
2025-12-24; times are H:MM.`,
}

var addFixtureCmd = &cobra.Command{
	Use:   "fixture",
	Short: "Add a match",
	RunE:  runAddFixture,
}

var addEventCmd = &cobra.Command{
	Use:   "event",
	Short: "Add a club event",
	RunE:  runAddEvent,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.AddCommand(addFixtureCmd)
	addCmd.AddCommand(addEventCmd)

	addFixtureCmd.Flags().StringVar(&addFixtureInput.Competition, "competition", "Manuell", "competition tag shown in the calendar entry")
	addFixtureCmd.Flags().StringVar(&addFixtureInput.Home, "home", "", "home team")
	addFixtureCmd.Flags().StringVar(&addFixtureInput.Guest, "guest", "", "guest team")
	addFixtureCmd.Flags().StringVar(&addFixtureInput.Date, "date", "", "match date")
	addFixtureCmd.Flags().StringVar(&addFixtureInput.Time, "time", "", "throw-off time")
	addFixtureCmd.Flags().StringVar(&addFixtureInput.Location, "location", "", "pool or venue")
	addFixtureCmd.Flags().StringVar(&addFixtureInput.Result, "result", "", "final score, if already played")
	_ = addFixtureCmd.MarkFlagRequired("home")
	_ = addFixtureCmd.MarkFlagRequired("guest")
	_ = addFixtureCmd.MarkFlagRequired("date")

	addEventCmd.Flags().StringVar(&addEventInput.Title, "title", "", "event title")
	addEventCmd.Flags().StringVar(&addEventInput.Date, "date", "", "event date")
	addEventCmd.Flags().StringVar(&addEventInput.Time, "time", "", "start time")
	addEventCmd.Flags().StringVar(&addEventInput.Location, "location", "", "venue")
	addEventCmd.Flags().StringVar(&addEventInput.Description, "description", "", "free-text description")
	_ = addEventCmd.MarkFlagRequired("title")
	_ = addEventCmd.MarkFlagRequired("date")
}

func runAddFixture(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := cmd.Context()
	added, err := rt.app.Schedule.AddFixture(ctx, addFixtureInput)
	if err != nil {
		return err
	}

	when := added.Date
	if added.Time != "" {
		when += " " + added.Time
	}
	fmt.Printf("Added %s on %s [%s]\n", added.Summary(), when, added.Competition)

	return republish(ctx, rt)
}

func runAddEvent(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := cmd.Context()
	added, err := rt.app.Schedule.AddEvent(ctx, addEventInput)
	if err != nil {
		return err
	}

	when := added.Date
	if added.Time != "" {
		when += " " + added.Time
	}
	fmt.Printf("Added %s on %s\n", added.Summary(), when)

	return republish(ctx, rt)
}
