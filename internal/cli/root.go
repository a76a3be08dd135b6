// Package cli implements the prayer-times command line.
package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/prayer-engine/internal/config"
	"github.com/smokyabdulrahman/prayer-engine/internal/display"
)

// nowFunc is the clock for "now" and the default date. Tests replace it.
var nowFunc = time.Now

// options holds the global flags shared by all subcommands and the config
// file loaded before any of them runs.
type options struct {
	latitude     float64
	longitude    float64
	elevation    float64
	timezone     float64
	method       string
	asrMethod    string
	highLat      string
	fajrAngle    float64
	ishaAngle    float64
	ishaInterval int
	adjustments  string
	timeFormat   string
	date         string
	json         bool
	server       string
	logLevel     string

	cfg *config.Config
}

// NewRootCmd creates the root command for the prayer-times CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:   "prayer-times",
		Short: "Islamic prayer times CLI",
		Long: "Compute the five daily prayer times and sunrise from astronomical formulas.\n" +
			"Works offline; use --server to ask a running prayer-engine service instead.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(o.logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", o.logLevel, err)
			}
			zerolog.SetGlobalLevel(level)

			display.DetectFor(cmd.OutOrStdout())
			if o.json {
				display.SetEnabled(false)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			o.cfg = cfg
			return nil
		},
		// Default action: show today's prayer schedule.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToday(cmd, o)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("prayer-times version {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&o.latitude, "latitude", 0, "Override latitude in degrees, north positive")
	pf.Float64Var(&o.longitude, "longitude", 0, "Override longitude in degrees, east positive")
	pf.Float64Var(&o.elevation, "elevation", 0, "Observer elevation in meters")
	pf.Float64Var(&o.timezone, "timezone", 0, "UTC offset in hours, e.g. 7 or 5.5 (default: detected or system offset)")
	pf.StringVar(&o.method, "method", "", "Calculation method (see 'methods')")
	pf.StringVar(&o.asrMethod, "asr-method", "", "Asr shadow rule: standard or hanafi")
	pf.StringVar(&o.highLat, "high-lat", "", "High latitude rule: middle_of_night, seventh_of_night or twilight_angle")
	pf.Float64Var(&o.fajrAngle, "fajr-angle", 0, "Custom Fajr depression angle (replaces --method)")
	pf.Float64Var(&o.ishaAngle, "isha-angle", 0, "Custom Isha depression angle")
	pf.IntVar(&o.ishaInterval, "isha-interval", 0, "Custom Isha as minutes after Maghrib")
	pf.StringVar(&o.adjustments, "adjustments", "", "Per-prayer minute offsets, e.g. fajr=2,isha=-3")
	pf.StringVar(&o.timeFormat, "time-format", "", "Time format: 12h, 24h or a PHP date format such as 'g:i a'")
	pf.StringVar(&o.date, "date", "", "Date as YYYY-MM-DD (default: today)")
	pf.BoolVar(&o.json, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&o.server, "server", "", "Base URL of a prayer-engine server to query instead of computing locally")
	pf.StringVar(&o.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newNextCmd(o))
	rootCmd.AddCommand(newQueryCmd(o))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd(o))
	rootCmd.AddCommand(newServeCmd(o))

	return rootCmd
}

// PrintVersion prints the version string in the expected format.
func PrintVersion(version string) string {
	return fmt.Sprintf("prayer-times %s\n", version)
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(cmd *cobra.Command, name string) bool {
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.Root().PersistentFlags()} {
		if f := fs.Lookup(name); f != nil && f.Changed {
			return true
		}
	}
	return false
}
