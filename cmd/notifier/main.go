package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/l4rm4nd/VoucherVault/pkg/cache"
	"github.com/l4rm4nd/VoucherVault/pkg/config"
	"github.com/l4rm4nd/VoucherVault/pkg/database"
	"github.com/l4rm4nd/VoucherVault/pkg/lock"
	"github.com/l4rm4nd/VoucherVault/pkg/notify"
	"github.com/l4rm4nd/VoucherVault/pkg/service"
)

const sweepLockKey = "notifier:sweep"

// this should run by cron once a day in 1 instance; the redis lock makes an
// accidental second instance a no-op.
func main() {
	cfg := config.New()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	t0 := time.Now()
	defer func() { log.Printf("Expiry sweep finished. Elapsed: %s", time.Since(t0)) }()

	db, closeDB, err := database.New(cfg.PostgresAddr, cfg.PostgresDB, cfg.PostgresUser, cfg.PostgresPassword)
	if err != nil {
		log.Fatalf("### Can't init database: %v", err)
	}
	defer closeDB()

	rdb, closeRedis, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisUser, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("### Can't init redis: %v", err)
	}
	defer closeRedis()

	ctx := context.Background()

	mu := &lock.Mutex{Redis: rdb, Key: sweepLockKey, TTL: cfg.SweepLockTTL}

	acquired, err := mu.Acquire(ctx)
	if err != nil {
		log.Fatalf("### Can't acquire sweep lock: %v", err)
	}
	if !acquired {
		slog.Warn("another sweep is running, exiting")
		return
	}
	defer func() {
		if err := mu.Release(ctx); err != nil {
			slog.Error("can't release sweep lock", slog.Any("error", err))
		}
	}()

	notifier := &service.Notifier{
		Profiles:     &database.ProfileDatabase{DB: db},
		Items:        &database.NotifierDatabase{DB: db},
		Sender:       notify.ShoutrrrSender{},
		UpcomingDays: cfg.UpcomingThresholdDays,
		FinalDays:    cfg.FinalThresholdDays,
	}

	results, err := notifier.Run(ctx)
	if err != nil {
		log.Fatalf("### Can't run expiry sweep: %v", err)
	}

	var notified, failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			slog.Error("sweep failed for user",
				slog.Int("user_id", res.UserID),
				slog.Any("error", res.Err),
			)
			continue
		}
		if res.Items > 0 {
			notified++
		}
	}

	slog.Info("expiry sweep done",
		slog.Int("users_checked", len(results)),
		slog.Int("users_notified", notified),
		slog.Int("users_failed", failed),
	)
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
