package app

import (
	"context"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/rizkyprovidervisa/visa-admin/internal/daemon"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/database"
)

// withDB opens and migrates the database for one maintenance command.
func withDB(cmd *cobra.Command, fn func(ctx context.Context, db *gorm.DB) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := daemon.DB(ctx, &cfg)
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer database.Close(db) //nolint:errcheck

	return fn(ctx, db)
}
