package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration, loaded from DEADEYE_* environment
// variables
type Config struct {
	// HTTP server
	Addr            string        `env:"DEADEYE_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"DEADEYE_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"DEADEYE_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"DEADEYE_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Storage backend: "memory" or "redis"
	StorageType       string `env:"DEADEYE_STORAGE" envDefault:"memory"`
	RedisURL          string `env:"DEADEYE_REDIS_URL" envDefault:"redis://localhost:6379"`
	RedisPoolSize     int    `env:"DEADEYE_REDIS_POOL_SIZE" envDefault:"10"`
	RedisMinIdleConns int    `env:"DEADEYE_REDIS_MIN_IDLE_CONNS" envDefault:"2"`

	// Auth. An empty secret makes the server generate an ephemeral one at
	// startup; tokens then stop working across restarts.
	JWTSecret string        `env:"DEADEYE_JWT_SECRET"`
	TokenTTL  time.Duration `env:"DEADEYE_TOKEN_TTL" envDefault:"24h"`

	// Leaderboard candidate over-fetch factor
	LeaderboardOverfetch int `env:"DEADEYE_LEADERBOARD_OVERFETCH" envDefault:"3"`
}

// Load reads configuration from the environment
func Load() (Config, error) {
	return env.ParseAs[Config]()
}
