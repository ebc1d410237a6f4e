// Package dsn builds the data source names of the supported store engines.
package dsn

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/rizkyprovidervisa/visa-admin/internal/config"
)

// ErrUnknownEngine is returned for a DB.Engine without a dsn format.
var ErrUnknownEngine = errors.New("unknown database engine")

const defaultSQLitePath = "visa-admin.db"

// Create builds the Data Source Name from the configuration.
func Create(cfg *config.Config) (string, error) {
	db := cfg.DB

	switch db.Engine {
	case config.EngineMySQL, "":
		out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
			db.User,
			db.Password,
			db.Host,
			db.Port,
			db.Name,
		)
		if db.Extras != "" {
			out += "?" + db.Extras
		}

		return out, nil
	case config.EnginePostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(db.User, db.Password),
			Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
			Path:   "/" + db.Name,
		}
		u.RawQuery = db.Extras

		return u.String(), nil
	case config.EngineSQLite:
		if db.Path == "" {
			return defaultSQLitePath, nil
		}

		return db.Path, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownEngine, db.Engine)
	}
}
