package config

const (
	// EnvPrefix is empty because every field carries its full variable name.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverSQLite3  = "sqlite3"

	DefaultSQLiteDSN = "file:pharmacy_pos.db?_foreign_keys=on"
)

const (
	EnvAppEnv   = "PHARMACY_APP_ENV"
	EnvPort     = "PHARMACY_APP_PORT"
	EnvLogLevel = "PHARMACY_LOG_LEVEL"

	EnvDBDSN    = "PHARMACY_DB_DSN"
	EnvDBDriver = "PHARMACY_DB_DRIVER"
	EnvDBHost   = "PHARMACY_DB_HOST"
	EnvDBUser   = "PHARMACY_DB_USER"
	EnvDBName   = "PHARMACY_DB_NAME"

	EnvRedisURL    = "PHARMACY_REDIS_URL"
	EnvCORSOrigins = "PHARMACY_CORS_ORIGINS"
	EnvAutoMigrate = "PHARMACY_AUTO_MIGRATE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
