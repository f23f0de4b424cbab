package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/l4rm4nd/VoucherVault/pkg/model"
)

const statsKeyPrefix = "stats:"

// ItemCaching caches per-user dashboard stats in redis and drops the cache on
// every mutating call. Redis errors are logged, never surfaced: the DB is the
// source of truth and the cache is best effort.
type ItemCaching struct {
	Item

	Redis *redis.Client
	TTL   time.Duration
}

func (ic *ItemCaching) Stats(ctx context.Context, userID int) (model.Stats, error) {
	key := statsKey(userID)

	val, err := ic.Redis.Get(ctx, key).Bytes()
	switch {
	case err == redis.Nil:
		// cache miss
	case err != nil:
		slog.Error("can't get stats from redis", slog.Any("error", err))
	default:
		var s model.Stats
		if err := json.Unmarshal(val, &s); err == nil {
			return s, nil
		}
		slog.Error("can't decode cached stats", slog.Any("error", err))
	}

	s, err := ic.Item.Stats(ctx, userID)
	if err != nil {
		return model.Stats{}, err
	}

	if raw, err := json.Marshal(s); err == nil {
		if err := ic.Redis.Set(ctx, key, raw, ic.TTL).Err(); err != nil {
			slog.Error("can't cache stats in redis", slog.Any("error", err))
		}
	}

	return s, nil
}

func (ic *ItemCaching) Create(ctx context.Context, item *model.Item) error {
	err := ic.Item.Create(ctx, item)
	if err == nil {
		ic.invalidate(ctx, item.UserID)
	}
	return err
}

func (ic *ItemCaching) Update(ctx context.Context, item *model.Item) error {
	err := ic.Item.Update(ctx, item)
	if err == nil {
		ic.invalidate(ctx, item.UserID)
	}
	return err
}

func (ic *ItemCaching) Delete(ctx context.Context, id uuid.UUID, userID int) error {
	err := ic.Item.Delete(ctx, id, userID)
	if err == nil {
		ic.invalidate(ctx, userID)
	}
	return err
}

func (ic *ItemCaching) ApplyTransaction(ctx context.Context, itemID uuid.UUID, userID int, description string, value decimal.Decimal) (model.Transaction, error) {
	t, err := ic.Item.ApplyTransaction(ctx, itemID, userID, description, value)
	if err == nil {
		ic.invalidate(ctx, userID)
	}
	return t, err
}

func (ic *ItemCaching) DeleteTransaction(ctx context.Context, txID uuid.UUID, userID int) error {
	err := ic.Item.DeleteTransaction(ctx, txID, userID)
	if err == nil {
		ic.invalidate(ctx, userID)
	}
	return err
}

func (ic *ItemCaching) ToggleUsed(ctx context.Context, itemID uuid.UUID, userID int) (bool, error) {
	used, err := ic.Item.ToggleUsed(ctx, itemID, userID)
	if err == nil {
		ic.invalidate(ctx, userID)
	}
	return used, err
}

func (ic *ItemCaching) invalidate(ctx context.Context, userID int) {
	if err := ic.Redis.Del(ctx, statsKey(userID)).Err(); err != nil {
		slog.Error("can't invalidate stats cache", slog.Any("error", err))
	}
}

func statsKey(userID int) string {
	return statsKeyPrefix + strconv.Itoa(userID)
}
