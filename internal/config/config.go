package config

import (
	"errors"
	"io/fs"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config interface {
	EnvConfig
	ClientConfig
	StorageConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type ClientConfig interface {
	GetBaseURL() string
	GetRequestTimeout() time.Duration
	GetExpiryMargin() time.Duration
	GetTokenPath() string
	GetRefreshPath() string
	GetUserAgent() string
}

type StorageConfig interface {
	GetSessionStore() StoreKind
	GetSessionKey() string
	GetSessionFile() string
	GetSessionPassphrase() string
	GetRedisURL() string
}

type mainConfig struct {
	EnvVars
	Client
	Storage
}

var dotEnvOnce sync.Once

// New returns the environment backed configuration. Any .env files given (or
// ./.env when none are) are loaded first; variables already set in the
// process environment win.
func New(dotEnvFiles ...string) Config {
	dotEnvOnce.Do(func() {
		if err := godotenv.Load(dotEnvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Msg("Unable to load .env file")
		}
	})
	return mainConfig{}
}
