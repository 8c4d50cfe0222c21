package config

const EnvPrefix = "SHOPSTEAD"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SHOPSTEAD_DB_DSN"
	EnvDBHost = "SHOPSTEAD_DB_HOST"
	EnvDBUser = "SHOPSTEAD_DB_USER"
	EnvDBName = "SHOPSTEAD_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
