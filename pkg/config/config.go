package config

import (
	"flag"
	"time"
)

const (
	DefaultUpcomingThresholdDays = 30
	DefaultFinalThresholdDays    = 7
)

type Config struct {
	LogLevel   string
	ListenAddr string

	PostgresAddr     string // Postgres address in host[:port] format
	PostgresDB       string
	PostgresUser     string
	PostgresPassword string

	RedisAddr     string // Redis address in host[:port] format
	RedisUser     string // Redis user
	RedisPassword string // Redis password

	// Expiry notifier thresholds in days. Malformed env values silently
	// degrade to the defaults, they are never fatal.
	UpcomingThresholdDays int
	FinalThresholdDays    int

	SweepLockTTL  time.Duration
	StatsCacheTTL time.Duration
}

func New() *Config {
	c := &Config{}

	flag.StringVar(&c.LogLevel, "logLevel", LookupEnvString("LOG_LEVEL", "DEBUG"), "Set log level: DEBUG, INFO, WARNING, ERROR.")
	flag.StringVar(&c.ListenAddr, "listenAddr", LookupEnvString("LISTEN_ADDR", ":8000"), `Address in form of "[host]:port" that HTTP server should be listening on.`)

	flag.StringVar(&c.PostgresAddr, "postgresAddr", LookupEnvString("POSTGRES_ADDR", "127.0.0.1:5432"), "Set PostgreSQL address as host:port, where port is optional (without TLS).")
	flag.StringVar(&c.PostgresDB, "postgresDB", LookupEnvString("POSTGRES_DB", "vouchervault"), "Set PostgreSQL DB.")
	flag.StringVar(&c.PostgresUser, "postgresUser", LookupEnvString("POSTGRES_USER", "develop"), "Set PostgreSQL user.")
	flag.StringVar(&c.PostgresPassword, "postgresPassword", LookupEnvString("POSTGRES_PASSWORD", "develop"), "Set PostgreSQL password.")

	flag.StringVar(&c.RedisAddr, "redisAddr", LookupEnvString("REDIS_ADDR", "127.0.0.1:6379"), "Redis address in host[:port] format.")
	flag.StringVar(&c.RedisUser, "redisUser", LookupEnvString("REDIS_USER", ""), "Redis user.")
	flag.StringVar(&c.RedisPassword, "redisPassword", LookupEnvString("REDIS_PASSWORD", ""), "Redis password.")

	flag.IntVar(&c.UpcomingThresholdDays, "upcomingThresholdDays", LookupEnvInt("EXPIRY_UPCOMING_DAYS", DefaultUpcomingThresholdDays), "How many days before expiry the first reminder is sent.")
	flag.IntVar(&c.FinalThresholdDays, "finalThresholdDays", LookupEnvInt("EXPIRY_FINAL_DAYS", DefaultFinalThresholdDays), "How many days before expiry the last-chance reminder is sent.")

	flag.DurationVar(&c.SweepLockTTL, "sweepLockTTL", LookupEnvDuration("SWEEP_LOCK_TTL", 10*time.Minute), "For how long a notifier run holds the sweep lock at most.")
	flag.DurationVar(&c.StatsCacheTTL, "statsCacheTTL", LookupEnvDuration("STATS_CACHE_TTL", time.Minute), "For how long per-user dashboard stats are cached in redis.")

	flag.Parse()

	c.normalize()

	return c
}

// normalize guards threshold values that made it through parsing but make no
// sense, falling back to defaults instead of aborting.
func (c *Config) normalize() {
	if c.UpcomingThresholdDays <= 0 {
		c.UpcomingThresholdDays = DefaultUpcomingThresholdDays
	}
	if c.FinalThresholdDays <= 0 {
		c.FinalThresholdDays = DefaultFinalThresholdDays
	}
}
