package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/l4rm4nd/VoucherVault/pkg/cache"
	"github.com/l4rm4nd/VoucherVault/pkg/config"
	"github.com/l4rm4nd/VoucherVault/pkg/database"
	"github.com/l4rm4nd/VoucherVault/pkg/notify"
	"github.com/l4rm4nd/VoucherVault/pkg/server"
	"github.com/l4rm4nd/VoucherVault/pkg/service"
)

const gracefulTimeout = 15 * time.Second

func main() {
	cfg := config.New()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	db, closeDB, err := database.New(cfg.PostgresAddr, cfg.PostgresDB, cfg.PostgresUser, cfg.PostgresPassword)
	if err != nil {
		log.Fatalf("### Can't init database: %v", err)
	}
	defer closeDB()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("### Can't apply migrations: %v", err)
	}

	rdb, closeRedis, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisUser, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("### Can't init redis: %v", err)
	}
	defer closeRedis()

	itemSvc, shareSvc, profileSvc, settingsSvc := composeServices(db, rdb, cfg)

	srv, err := server.New(cfg.ListenAddr, itemSvc, shareSvc, profileSvc, settingsSvc)
	if err != nil {
		log.Fatalf("### Can't create server: %v", err)
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("### Can't listen and serve: %v", err)
		}
	}()
	slog.Info(fmt.Sprintf("HTTP server listening at %s", srv.Addr))

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), gracefulTimeout)
	defer cancel()

	srv.Shutdown(ctx)
}

func composeServices(db *sql.DB, rdb *redis.Client, cfg *config.Config) (item service.Item, share service.Share, profile service.Profile, settings service.Settings) {
	item = &service.ItemGeneric{
		Items:  &database.ItemDatabase{DB: db},
		Ledger: &database.LedgerDatabase{DB: db},
	}
	item = &service.ItemCaching{Item: item, Redis: rdb, TTL: cfg.StatsCacheTTL}
	item = &service.ItemLogging{Item: item}

	share = &service.ShareGeneric{
		Shares: &database.ShareDatabase{DB: db},
	}

	profile = &service.ProfileGeneric{
		Profiles: &database.ProfileDatabase{DB: db},
		Sender:   notify.ShoutrrrSender{},
	}

	settings = &service.SettingsGeneric{
		Settings: &database.SettingsDatabase{DB: db},
	}

	return
}

func parseLogLevel(lvl string) slog.Level {
	switch lvl {
	case slog.LevelDebug.String():
		return slog.LevelDebug
	case slog.LevelInfo.String():
		return slog.LevelInfo
	case slog.LevelWarn.String():
		return slog.LevelWarn
	case slog.LevelError.String():
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
