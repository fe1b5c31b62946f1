package entpool

import (
	"os"
	"strconv"
)

// PoolConfig carries the environment-tunable defaults applied when a pool
// is constructed without explicit options.
type PoolConfig struct {
	PoolName              string
	InitialEntityCapacity int
	LogLevel              string
}

// GetPoolConfig reads the pool defaults from the environment.
func GetPoolConfig() PoolConfig {
	return PoolConfig{
		PoolName:              getEnv("ENTPOOL_NAME", ""),
		InitialEntityCapacity: getEnvInt("ENTPOOL_ENTITY_CAPACITY", 256),
		LogLevel:              getEnv("ENTPOOL_LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
