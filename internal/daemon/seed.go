package daemon

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rizkyprovidervisa/visa-admin/internal/config"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/controller/adminuser"
)

const insecureDefaultPassword = "changeme"

// seed creates the configured default admin while admin_users is empty.
// Settings are never seeded, absent keys stay absent.
func seed(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	count, err := adminuser.Count(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to count admin users: %w", err)
	}

	if count > 0 {
		return nil
	}

	admin := cfg.Auth.DefaultAdmin
	if admin.Username == "" || admin.Password == "" {
		log.Warn().Msg("no admin user exists and no default admin is configured, sign in is impossible")

		return nil
	}

	if _, err = adminuser.Create(ctx, db, admin.Username, admin.Password, admin.Email); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	event := log.Info()
	if admin.Password == insecureDefaultPassword {
		event = log.Warn()
	}

	event.Str("username", admin.Username).Msg("default admin created, change its password")

	return nil
}
