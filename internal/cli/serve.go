package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-engine/internal/config"
	"github.com/smokyabdulrahman/prayer-engine/internal/server"
)

func newServeCmd(o *options) *cobra.Command {
	var addr string
	var envFiles []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve prayer times over HTTP",
		Long: "Run the prayer-engine HTTP API.\n\n" +
			"Settings come from the environment (PRAYER_ADDR, LOG_LEVEL, PRAYER_CORS_ORIGINS,\n" +
			"PRAYER_DEFAULT_LATITUDE, PRAYER_DEFAULT_LONGITUDE, PRAYER_DEFAULT_TIMEZONE,\n" +
			"PRAYER_DEFAULT_METHOD, PRAYER_DEFAULT_ASR_METHOD, PRAYER_DEFAULT_HIGH_LAT,\n" +
			"PRAYER_DEFAULT_TIME_FORMAT), optionally loaded from .env files.",
		// The CLI config file does not apply to the server.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServer(envFiles...)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			levelName := cfg.LogLevel
			if flagWasSet(cmd, "log-level") {
				levelName = o.logLevel
			}
			level, err := zerolog.ParseLevel(levelName)
			if err != nil {
				return err
			}
			zerolog.SetGlobalLevel(level)
			if level > zerolog.DebugLevel {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(cfg).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides PRAYER_ADDR)")
	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "Environment files to load (default: .env if present)")

	return cmd
}
