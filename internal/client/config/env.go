package config

import "github.com/dmitrijs2005/mochamagic/internal/envx"

const (
	EnvStorage        = "MOCHAMAGIC_STORAGE"
	EnvSQLitePath     = "MOCHAMAGIC_SQLITE_PATH"
	EnvPostgresDSN    = "MOCHAMAGIC_POSTGRES_DSN"
	EnvS3Bucket       = "MOCHAMAGIC_S3_BUCKET"
	EnvS3Region       = "MOCHAMAGIC_S3_REGION"
	EnvS3Endpoint     = "MOCHAMAGIC_S3_ENDPOINT"
	EnvSecretKey      = "MOCHAMAGIC_SECRET_KEY"
	EnvTokenValidity  = "MOCHAMAGIC_TOKEN_TTL"
	EnvLoginByName    = "MOCHAMAGIC_LOGIN_BY_NAME"
	EnvRewardsAPIAddr = "MOCHAMAGIC_REWARDS_API"
	EnvLogLevel       = "MOCHAMAGIC_LOG_LEVEL"
)

func parseEnv(cfg *Config) {
	if err := envx.LoadDotEnv(); err != nil {
		panic(err)
	}

	envx.String(EnvStorage, &cfg.Storage.Backend)
	envx.String(EnvSQLitePath, &cfg.Storage.SQLitePath)
	envx.String(EnvPostgresDSN, &cfg.Storage.PostgresDSN)
	envx.String(EnvS3Bucket, &cfg.Storage.S3.Bucket)
	envx.String(EnvS3Region, &cfg.Storage.S3.Region)
	envx.String(EnvS3Endpoint, &cfg.Storage.S3.BaseEndpoint)
	envx.String(EnvSecretKey, &cfg.SecretKey)
	envx.String(EnvRewardsAPIAddr, &cfg.RewardsAPIAddr)
	envx.String(EnvLogLevel, &cfg.LogLevel)

	if err := envx.Duration(EnvTokenValidity, &cfg.TokenValidityDuration); err != nil {
		panic(err)
	}
	if err := envx.Bool(EnvLoginByName, &cfg.LoginByName); err != nil {
		panic(err)
	}
}
