package config

import "strings"

type StoreKind string

const (
	StoreMemory StoreKind = "memory"
	StoreFile   StoreKind = "file"
	StoreRedis  StoreKind = "redis"
)

const (
	sessionStoreVar      = "TALENT_SESSION_STORE"
	sessionKeyVar        = "TALENT_SESSION_KEY"
	sessionFileVar       = "TALENT_SESSION_FILE"
	sessionPassphraseVar = "TALENT_SESSION_PASSPHRASE"
	redisURLVar          = "REDIS_URL"
)

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetSessionStore() StoreKind {
	switch kind := StoreKind(strings.ToLower(GetEnv(sessionStoreVar, string(StoreFile)))); kind {
	case StoreMemory, StoreFile, StoreRedis:
		return kind
	default:
		return StoreFile
	}
}

// GetSessionKey is the well-known key the credential pair is stored under
func (Storage) GetSessionKey() string {
	return GetEnv(sessionKeyVar, "authTokens")
}

func (Storage) GetSessionFile() string {
	return GetEnv(sessionFileVar, "./data/session.json")
}

// GetSessionPassphrase enables at-rest encryption of the session file when set
func (Storage) GetSessionPassphrase() string {
	return GetEnv(sessionPassphraseVar, "")
}

func (Storage) GetRedisURL() string {
	return GetEnv(redisURLVar, "redis://localhost:6379/0")
}
