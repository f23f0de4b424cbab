package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Lookup helpers read an env variable and fall back to the given default when
// it is unset or can't be parsed. A malformed value is logged, not fatal.

func LookupEnvString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func LookupEnvInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("can't parse env variable, using default",
			slog.String("key", key),
			slog.String("value", v),
			slog.Int("default", def),
		)
		return def
	}

	return i
}

func LookupEnvBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("can't parse env variable, using default",
			slog.String("key", key),
			slog.String("value", v),
			slog.Bool("default", def),
		)
		return def
	}

	return b
}

func LookupEnvDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("can't parse env variable, using default",
			slog.String("key", key),
			slog.String("value", v),
			slog.Duration("default", def),
		)
		return def
	}

	return d
}
