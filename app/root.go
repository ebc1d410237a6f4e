// Package app implements the main application commands.
package app

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rizkyprovidervisa/visa-admin/internal/config"
	"github.com/rizkyprovidervisa/visa-admin/internal/logger"
)

var (
	configPath string // directory holding main.toml
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "visa-admin",
		Short: "visa-admin serves the visa catalog api of Rizky Provider Visa",
		Long: `visa-admin serves the public visa catalog (countries, visa types,
visa categories and visa details), the site settings and the admin
sign in used by the content management pages.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory of main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration and sets up logging.
func loadConfig() error {
	path := configPath
	if path != "" && !strings.HasSuffix(path, "/") {
		path += "/"
	}

	var err error
	if cfg, err = config.ReadConfig(path); err != nil {
		return err //nolint:wrapcheck
	}

	return logger.Init(cfg.Log) //nolint:wrapcheck
}
