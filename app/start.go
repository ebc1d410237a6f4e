package app

import (
	"github.com/spf13/cobra"

	"github.com/rizkyprovidervisa/visa-admin/internal/daemon"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(startCmd)
}

var (
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the visa catalog api",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if err := loadConfig(); err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := daemon.New(cmd.Context(), &cfg)
			if err != nil {
				return err //nolint:wrapcheck
			}

			return d.Start() //nolint:wrapcheck
		},
	}
)
