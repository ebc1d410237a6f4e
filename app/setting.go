package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/controller/setting"
)

func init() { //nolint: gochecknoinits
	settingCmd.AddCommand(settingGetCmd, settingSetCmd, settingDeleteCmd)
	rootCmd.AddCommand(settingCmd)
}

var (
	settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Read and change single site settings",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
	}

	settingGetCmd = &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, func(ctx context.Context, db *gorm.DB) error {
				s, err := setting.Get(ctx, db, args[0])
				if err != nil {
					return err //nolint:wrapcheck
				}

				fmt.Fprintln(cmd.OutOrStdout(), s.Value)

				return nil
			})
		},
	}

	settingSetCmd = &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Create or replace a setting",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, func(ctx context.Context, db *gorm.DB) error {
				return setting.Set(ctx, db, args[0], args[1]) //nolint:wrapcheck
			})
		},
	}

	settingDeleteCmd = &cobra.Command{
		Use:   "delete KEY",
		Short: "Remove a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, func(ctx context.Context, db *gorm.DB) error {
				return setting.Delete(ctx, db, args[0]) //nolint:wrapcheck
			})
		},
	}
)
