// Package cmd holds the command line entry points.
package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"inotecloud/config"
	"inotecloud/utils"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "inotecloud",
	Short:         "Notes and message board API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		utils.InitLogger(cfg.LogLevel, cfg.LogPretty)
		gin.SetMode(cfg.GinMode)
		return nil
	},
	// Running without a subcommand starts the server.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command and logs a failure before returning it.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("inotecloud exited")
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd, indexesCmd)
}
