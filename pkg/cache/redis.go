package cache

import (
	"strings"

	"github.com/redis/go-redis/v9"
)

const defaultPort = "6379"

// NewRedis connects a client used for the sweep lock and stats caching.
func NewRedis(addr, user, password string) (*redis.Client, func() error, error) {
	if !strings.Contains(addr, ":") {
		addr = addr + ":" + defaultPort
	}

	r := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: user,
		Password: password,
	})

	return r, r.Close, nil
}
