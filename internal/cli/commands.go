package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-engine/internal/api"
	"github.com/smokyabdulrahman/prayer-engine/internal/config"
	"github.com/smokyabdulrahman/prayer-engine/internal/display"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		// The config file is read by each subcommand so that reset and
		// set still work on a file that fails validation.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE:              runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n"+
			"  prayer-times config set latitude 21.4225\n"+
			"  prayer-times config set longitude 39.8262\n"+
			"  prayer-times config set timezone 3\n"+
			"  prayer-times config set method makkah\n"+
			"  prayer-times config set adjustments fajr=2,isha=-3\n"+
			"  prayer-times config set time_format 12h\n"+
			"  prayer-times config set prayers Fajr,Duhr,Asr,Maghrib,Isha",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "  Configuration (%s)\n\n", path)

	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			shown = "(not set)"
		}
		if key == "method" && val != "" {
			shown = formatMethodValue(val)
		}
		fmt.Fprintf(w, "  %-14s %s\n", key, shown)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	path, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		// An invalid file is replaced key by key rather than blocking every edit.
		cfg = &config.Config{}
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// formatMethodValue adds the method description to its name.
func formatMethodValue(val string) string {
	if p, err := prayer.LookupMethod(val); err == nil {
		return fmt.Sprintf("%s (%s)", val, p.Description)
	}
	return val
}

func newMethodsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the twilight angles of every built-in calculation method.",
		RunE: func(cmd *cobra.Command, args []string) error {
			methods, err := listMethods(cmd, o)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Supported calculation methods:")
			fmt.Fprintln(w)

			tbl := display.NewTable("Name", "Fajr", "Isha", "Description")
			for _, m := range methods {
				isha := fmt.Sprintf("%g°", m.IshaAngle)
				if m.IshaInterval > 0 {
					isha = fmt.Sprintf("%d min", m.IshaInterval)
				}
				tbl.AddRow(m.Name, fmt.Sprintf("%g°", m.FajrAngle), isha, m.Description)
			}
			fmt.Fprint(w, tbl.Render())

			fmt.Fprintln(w)
			fmt.Fprintf(w, "Use --method <name> to select a calculation method (default: %s).\n", prayer.DefaultMethod)
			fmt.Fprintln(w, "Use --fajr-angle with --isha-angle or --isha-interval for a custom one.")
			return nil
		},
	}
}

func listMethods(cmd *cobra.Command, o *options) ([]api.MethodInfo, error) {
	if o.server != "" {
		return api.NewClient(o.server).Methods(cmd.Context())
	}

	var out []api.MethodInfo
	for _, p := range prayer.Methods() {
		info := api.MethodInfo{Name: p.Name, Description: p.Description, FajrAngle: p.FajrAngle}
		switch r := p.Isha.(type) {
		case prayer.IshaAngle:
			info.IshaAngle = float64(r)
		case prayer.IshaInterval:
			info.IshaInterval = int(r)
		}
		out = append(out, info)
	}
	return out, nil
}
