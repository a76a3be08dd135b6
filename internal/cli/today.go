package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-engine/internal/display"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
)

// schedule is everything the root command prints.
type schedule struct {
	settings *settings
	times    *prayer.Times
	prayers  []prayer.Prayer
	current  *prayer.Prayer
	next     prayer.Prayer
	now      time.Time
}

func runToday(cmd *cobra.Command, o *options) error {
	s, err := effectiveSettings(cmd, o)
	if err != nil {
		return err
	}
	src := newSource(o, s)
	ctx := cmd.Context()

	times, err := src.Times(ctx, s.params.Date)
	if err != nil {
		return err
	}
	if len(times.Corrected) > 0 {
		log.Info().Interface("corrected", times.Corrected).Str("rule", s.params.HighLatitude.String()).
			Msg("high latitude rule applied")
	}

	now := nowFunc().In(s.zone())
	sch := schedule{
		settings: s,
		times:    times,
		prayers:  times.Select(s.prayers),
		now:      now,
	}
	sch.current = prayer.CurrentPrayer(sch.prayers, now)
	if sch.next, err = prayer.NextOccurrence(dayFunc(ctx, src), s.params.Date, now, s.prayers); err != nil {
		return err
	}

	if o.json {
		return printTodayJSON(cmd.OutOrStdout(), sch)
	}
	printTodayRich(cmd.OutOrStdout(), sch)
	return nil
}

// printTodayRich renders the colored terminal output for today's prayer schedule.
func printTodayRich(w io.Writer, sch schedule) {
	s := sch.settings
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Times"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", sch.settings.label)
	fmt.Fprintf(w, "  %s\n", display.Gray(fmt.Sprintf("%s · %s · asr %s", s.zone(), s.params.MethodName, s.params.Jurisprudence)))
	fmt.Fprintf(w, "  %s\n", formatDate(sch.times.Date))
	fmt.Fprintln(w)

	tbl := display.NewTable("Prayer", "Time", "")
	for _, p := range sch.prayers {
		style := display.RowPlain
		var note string
		switch {
		case p.Name == sch.next.Name && p.Time.Equal(sch.next.Time):
			style = display.RowNext
			note = "<- next in " + prayer.FormatRemaining(prayer.TimeRemaining(p, sch.now))
		case sch.current != nil && p.Name == sch.current.Name:
			style = display.RowCurrent
			note = "now"
		case p.Time.Before(sch.now):
			style = display.RowPassed
		}
		if slices.Contains(sch.times.Corrected, p.Name) {
			if note != "" {
				note += ", "
			}
			note += "high latitude estimate"
		}
		tbl.AddStyledRow(style, string(p.Name), prayer.FormatTime(p.Time, s.timeFormat), note)
	}
	fmt.Fprint(w, tbl.Render())

	if !containsInstant(sch.prayers, sch.next) {
		fmt.Fprintf(w, "\n  %s %s\n", display.Countdown(string(sch.next.Name), prayer.FormatRemaining(prayer.TimeRemaining(sch.next, sch.now))),
			display.Gray("("+prayer.FormatTime(sch.next.Time, "D")+" "+prayer.FormatTime(sch.next.Time, s.timeFormat)+")"))
	}
	fmt.Fprintln(w)
}

func containsInstant(prayers []prayer.Prayer, p prayer.Prayer) bool {
	return slices.ContainsFunc(prayers, func(q prayer.Prayer) bool {
		return q.Name == p.Name && q.Time.Equal(p.Time)
	})
}

// formatDate renders a date like "Saturday, 28 February 2026".
func formatDate(d prayer.Date) string {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Format("Monday, 02 January 2006")
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location  todayJSONLocation `json:"location"`
	Date      string            `json:"date"`
	Method    string            `json:"method"`
	AsrMethod string            `json:"asr_method"`
	HighLat   string            `json:"high_lat"`
	Timings   map[string]string `json:"timings"`
	Current   string            `json:"current"`
	Next      todayJSONNext     `json:"next"`
	Corrected []string          `json:"corrected,omitempty"`
}

type todayJSONLocation struct {
	Label     string  `json:"label"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation,omitempty"`
	Timezone  string  `json:"timezone"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Date      string `json:"date"`
	Remaining string `json:"remaining"`
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, sch schedule) error {
	s := sch.settings
	c := s.params.Coordinates

	timings := make(map[string]string, len(sch.prayers))
	for _, p := range sch.prayers {
		timings[p.Name.Key()] = prayer.FormatTime(p.Time, s.timeFormat)
	}

	out := todayJSON{
		Location: todayJSONLocation{
			Label:     s.label,
			Latitude:  c.Latitude(),
			Longitude: c.Longitude(),
			Elevation: c.Elevation(),
			Timezone:  s.zone().String(),
		},
		Date:      sch.times.Date.String(),
		Method:    s.params.MethodName,
		AsrMethod: s.params.Jurisprudence.String(),
		HighLat:   s.params.HighLatitude.String(),
		Timings:   timings,
		Next: todayJSONNext{
			Prayer:    sch.next.Name.Key(),
			Time:      prayer.FormatTime(sch.next.Time, s.timeFormat),
			Date:      prayer.DateOf(sch.next.Time).String(),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(sch.next, sch.now)),
		},
	}
	if sch.current != nil {
		out.Current = sch.current.Name.Key()
	}
	for _, n := range sch.times.Corrected {
		out.Corrected = append(out.Corrected, n.Key())
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
