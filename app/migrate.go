package app

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfig()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd, func(context.Context, *gorm.DB) error {
			log.Info().Str("engine", cfg.DB.Engine).Msg("database migrated")

			return nil
		})
	},
}
