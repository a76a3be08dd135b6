package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
)

func newQueryCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long: "Print one prayer time for today, or for the day selected with --date.\n\n" +
			"Valid prayer names: Fajr, Sunrise, Duhr (Dhuhr), Asr, Maghrib, Isha",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, o, args[0])
		},
	}
}

type queryJSON struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Date      string `json:"date"`
	Corrected bool   `json:"corrected,omitempty"`
}

func runQuery(cmd *cobra.Command, o *options, name string) error {
	n, err := prayer.ParseName(name)
	if err != nil {
		names := make([]string, len(prayer.Names))
		for i, n := range prayer.Names {
			names[i] = string(n)
		}
		return fmt.Errorf("%w; valid names: %s", err, strings.Join(names, ", "))
	}

	s, err := effectiveSettings(cmd, o)
	if err != nil {
		return err
	}
	times, err := newSource(o, s).Times(cmd.Context(), s.params.Date)
	if err != nil {
		return err
	}

	out := queryJSON{
		Prayer:    n.Key(),
		Time:      prayer.FormatTime(times.At(n), s.timeFormat),
		Date:      times.Date.String(),
		Corrected: slices.Contains(times.Corrected, n),
	}

	w := cmd.OutOrStdout()
	if o.json {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintf(w, "%s %s\n", n, out.Time)
	return nil
}
