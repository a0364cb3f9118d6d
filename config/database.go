package config

import (
	"inotecloud/utils"
	"time"
)

type DatabaseConfig struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
	RetryWrites     bool
	Timeout         time.Duration
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             utils.GetEnvFirst("mongodb://localhost:27017", "MONGO_URI", "MONGODB_URI"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: utils.GetEnvAsDuration("MONGO_MAX_CONN_IDLE_TIME", 60*time.Second),
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "inotecloud"),
		RetryWrites:     utils.GetEnvAsBool("MONGO_RETRY_WRITES", true),
		Timeout:         utils.GetEnvAsDuration("MONGO_TIMEOUT", 5*time.Second),
	}
}
