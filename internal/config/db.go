package config

// Supported values for DB.Engine.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Engine   string // mysql, postgres or sqlite
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Path     string // sqlite database file
}
