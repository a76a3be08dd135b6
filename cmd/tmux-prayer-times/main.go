package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/prayer-engine/internal/config"
	"github.com/smokyabdulrahman/prayer-engine/internal/geo"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

// detectLocation is the IP geolocation lookup. Tests replace it.
var detectLocation = geo.DetectLocation

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if err := run(context.Background(), os.Args[1:], os.Stdout, time.Now()); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// printMethods prints the table of supported calculation methods.
func printMethods(w io.Writer) {
	fmt.Fprintln(w, "Supported calculation methods:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-14s %-7s %-7s %s\n", "Name", "Fajr", "Isha", "Description")
	fmt.Fprintf(w, "  %-14s %-7s %-7s %s\n", "────", "────", "────", "───────────")
	for _, m := range prayer.Methods() {
		fmt.Fprintf(w, "  %-14s %-7s %-7s %s\n", m.Name, fmt.Sprintf("%g°", m.FajrAngle), m.Isha, m.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Use --method <name> to select a calculation method (default: %s).\n", prayer.DefaultMethod)
}

func run(ctx context.Context, args []string, stdout io.Writer, now time.Time) error {
	fs := flag.NewFlagSet("tmux-prayer-times", flag.ContinueOnError)

	// Location flags
	latitude := fs.Float64("latitude", 0, "Latitude for prayer time calculation")
	longitude := fs.Float64("longitude", 0, "Longitude for prayer time calculation")
	elevation := fs.Float64("elevation", 0, "Elevation in meters")
	timezone := fs.Float64("timezone", 0, "UTC offset in hours (default: detected or system offset)")

	// Calculation flags
	method := fs.String("method", prayer.DefaultMethod, "Calculation method name (see --list-methods)")
	asrMethod := fs.String("asr-method", prayer.Standard.String(), "Asr shadow rule: standard or hanafi")
	highLat := fs.String("high-lat", prayer.TwilightAngle.String(), "High latitude rule: middle_of_night, seventh_of_night or twilight_angle")
	adjustments := fs.String("adjustments", "", "Per-prayer minute offsets, e.g. fajr=2,isha=-3")

	// Display flags
	format := fs.String("format", prayer.FormatNameAndTime, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template (e.g. '{{.Name}} in {{.Remaining}}'). Template fields: .Name, .ShortName, .Time, .Remaining, .Hours, .Minutes")
	timeFormat := fs.String("time-format", "24h", "Time format: 12h, 24h or a PHP date format")
	prayers := fs.String("prayers", "", "Comma-separated list of prayers to track (default: Fajr,Sunrise,Duhr,Asr,Maghrib,Isha)")

	// Info flags
	showVersion := fs.Bool("version", false, "Print version and exit")
	listMethods := fs.Bool("list-methods", false, "Print supported calculation methods and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "tmux-prayer-times %s\n", version)
		return nil
	}
	if *listMethods {
		printMethods(stdout)
		return nil
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	selected := prayer.Names
	if *prayers != "" {
		var err error
		if selected, err = config.ParsePrayers(*prayers); err != nil {
			return err
		}
	}

	_, systemOffset := now.Zone()
	tz := float64(systemOffset) / 3600
	lat, lng := *latitude, *longitude
	if !set["latitude"] && !set["longitude"] {
		detected, err := detectLocation(ctx)
		if err != nil {
			return fmt.Errorf("no location specified and auto-detection failed: %w", err)
		}
		lat, lng = detected.Latitude, detected.Longitude
		tz = detected.UTCOffset.Hours()
	}
	if set["timezone"] {
		tz = *timezone
	}

	coords, err := prayer.NewCoordinates(lat, lng, *elevation)
	if err != nil {
		return err
	}
	jurisprudence, err := prayer.ParseJurisprudence(*asrMethod)
	if err != nil {
		return err
	}
	rule, err := prayer.ParseHighLatitudeRule(*highLat)
	if err != nil {
		return err
	}
	adj, err := prayer.ParseAdjustmentList(*adjustments)
	if err != nil {
		return err
	}

	offset := prayer.OffsetHours(tz)
	now = now.In(prayer.Zone(offset))
	params := prayer.Params{
		Coordinates:   coords,
		Date:          prayer.DateOf(now),
		MethodName:    *method,
		Jurisprudence: jurisprudence,
		HighLatitude:  rule,
		Adjustments:   adj,
		UTCOffset:     offset,
	}

	today, err := prayer.Calculate(params)
	if err != nil {
		return err
	}

	next, err := prayer.NextOccurrence(params.Day, params.Date, now, selected)
	if err != nil {
		// Tomorrow failed: show the last prayer with a "done" indicator
		// rather than breaking the status bar.
		log.Warn().Err(err).Msg("could not compute tomorrow's prayers")
		done := today.Select(selected)
		if len(done) == 0 {
			return err
		}
		fmt.Fprintf(stdout, "%s --:--", done[len(done)-1].Name)
		return nil
	}

	fmt.Fprint(stdout, strings.TrimRight(prayer.FormatOutput(next, now, *format, *timeFormat), "\n"))
	return nil
}
