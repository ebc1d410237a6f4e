package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/controller/adminuser"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
)

func init() { //nolint: gochecknoinits
	adminCreateCmd.Flags().StringVar(&adminUsername, "username", "", "login name of the new admin")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "password of the new admin")
	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "email of the new admin")
	_ = adminCreateCmd.MarkFlagRequired("username")
	_ = adminCreateCmd.MarkFlagRequired("password")

	adminCmd.AddCommand(adminCreateCmd)
	rootCmd.AddCommand(adminCmd, hashPasswordCmd)
}

var (
	adminUsername string
	adminPassword string
	adminEmail    string

	adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Manage admin users, the api has no user endpoints",
	}

	adminCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create an admin user",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd, func(ctx context.Context, db *gorm.DB) error {
				user, err := adminuser.Create(ctx, db, adminUsername, adminPassword, adminEmail)
				if err != nil {
					return err //nolint:wrapcheck
				}

				fmt.Fprintf(cmd.OutOrStdout(), "admin %s created with id %d\n", user.Username, user.ID)

				return nil
			})
		},
	}

	hashPasswordCmd = &cobra.Command{
		Use:   "hash-password PASSWORD",
		Short: "Print the argon2id hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := models.HashPassword(args[0])
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash)

			return nil
		},
	}
)
