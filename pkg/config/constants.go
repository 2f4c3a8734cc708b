package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "HANNIEFOODS"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (tests, error text).
const (
	EnvAppEnv            = "HANNIEFOODS_APP_ENV"
	EnvPort              = "HANNIEFOODS_APP_PORT"
	EnvRedisURL          = "HANNIEFOODS_REDIS_URL"
	EnvSanityProjectID   = "HANNIEFOODS_SANITY_PROJECT_ID"
	EnvSanityToken       = "HANNIEFOODS_SANITY_API_TOKEN"
	EnvPaystackPublicKey = "HANNIEFOODS_PAYSTACK_PUBLIC_KEY"
	EnvPaystackSecretKey = "HANNIEFOODS_PAYSTACK_SECRET_KEY"
	EnvAuthSecret        = "HANNIEFOODS_AUTH_SECRET"
	EnvAuthIssuer        = "HANNIEFOODS_AUTH_ISSUER"
	EnvAdminKey          = "HANNIEFOODS_ADMIN_KEY"
)
