package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-engine/internal/config"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
)

func newNextCmd(o *options) *cobra.Command {
	var format, prayers string

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long: "Display the next upcoming prayer time with a countdown.\n" +
			"After the last selected prayer of the day, tomorrow's first one is shown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNext(cmd, o, format, prayers)
		},
	}

	cmd.Flags().StringVar(&format, "format", prayer.FormatFull, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template")
	cmd.Flags().StringVar(&prayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")

	return cmd
}

func runNext(cmd *cobra.Command, o *options, format, prayersFlag string) error {
	s, err := effectiveSettings(cmd, o)
	if err != nil {
		return err
	}

	// Priority: --prayers flag > config > all six.
	selected := s.prayers
	if cmd.Flags().Changed("prayers") && prayersFlag != "" {
		if selected, err = config.ParsePrayers(prayersFlag); err != nil {
			return err
		}
	}

	now := nowFunc().In(s.zone())
	next, err := prayer.NextOccurrence(dayFunc(cmd.Context(), newSource(o, s)), s.params.Date, now, selected)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), prayer.FormatOutput(next, now, format, s.timeFormat))
	return nil
}
