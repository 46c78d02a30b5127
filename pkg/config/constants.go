package config

// EnvPrefix is the envconfig prefix for every variable the service reads.
const EnvPrefix = "HUDUMA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "HUDUMA_DB_DSN"
	EnvDBHost = "HUDUMA_DB_HOST"
	EnvDBUser = "HUDUMA_DB_USER"
	EnvDBName = "HUDUMA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
