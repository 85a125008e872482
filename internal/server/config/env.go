package config

import (
	"github.com/dmitrijs2005/mochamagic/internal/envx"
)

// Environment variables read by parseEnv.
const (
	EnvGRPCAddr      = "MOCHAMAGIC_GRPC_ADDR"
	EnvHTTPAddr      = "MOCHAMAGIC_HTTP_ADDR"
	EnvStorage       = "MOCHAMAGIC_STORAGE"
	EnvSQLitePath    = "MOCHAMAGIC_SQLITE_PATH"
	EnvPostgresDSN   = "MOCHAMAGIC_POSTGRES_DSN"
	EnvS3Bucket      = "MOCHAMAGIC_S3_BUCKET"
	EnvS3Prefix      = "MOCHAMAGIC_S3_PREFIX"
	EnvS3Region      = "MOCHAMAGIC_S3_REGION"
	EnvS3Endpoint    = "MOCHAMAGIC_S3_ENDPOINT"
	EnvS3AccessKey   = "MOCHAMAGIC_S3_ACCESS_KEY"
	EnvS3SecretKey   = "MOCHAMAGIC_S3_SECRET_KEY"
	EnvS3PathStyle   = "MOCHAMAGIC_S3_PATH_STYLE"
	EnvSecretKey     = "MOCHAMAGIC_SECRET_KEY"
	EnvTokenValidity = "MOCHAMAGIC_TOKEN_TTL"
	EnvLoginByName   = "MOCHAMAGIC_LOGIN_BY_NAME"
	EnvLogLevel      = "MOCHAMAGIC_LOG_LEVEL"
	EnvLogFormat     = "MOCHAMAGIC_LOG_FORMAT"
)

// parseEnv overlays Config with variables from a .env file in the working
// directory and the process environment. Malformed values panic, like
// malformed JSON does.
func parseEnv(config *Config) {
	if err := envx.LoadDotEnv(); err != nil {
		panic(err)
	}

	envx.String(EnvGRPCAddr, &config.EndpointAddrGRPC)
	envx.String(EnvHTTPAddr, &config.EndpointAddrHTTP)
	envx.String(EnvStorage, &config.Storage.Backend)
	envx.String(EnvSQLitePath, &config.Storage.SQLitePath)
	envx.String(EnvPostgresDSN, &config.Storage.PostgresDSN)
	envx.String(EnvS3Bucket, &config.Storage.S3.Bucket)
	envx.String(EnvS3Prefix, &config.Storage.S3.Prefix)
	envx.String(EnvS3Region, &config.Storage.S3.Region)
	envx.String(EnvS3Endpoint, &config.Storage.S3.BaseEndpoint)
	envx.String(EnvS3AccessKey, &config.Storage.S3.AccessKey)
	envx.String(EnvS3SecretKey, &config.Storage.S3.SecretKey)
	envx.String(EnvSecretKey, &config.SecretKey)
	envx.String(EnvLogLevel, &config.LogLevel)
	envx.String(EnvLogFormat, &config.LogFormat)

	if err := envx.Bool(EnvS3PathStyle, &config.Storage.S3.UsePathStyle); err != nil {
		panic(err)
	}
	if err := envx.Duration(EnvTokenValidity, &config.TokenValidityDuration); err != nil {
		panic(err)
	}
	if err := envx.Bool(EnvLoginByName, &config.LoginByName); err != nil {
		panic(err)
	}
}
