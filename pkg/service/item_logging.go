package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/l4rm4nd/VoucherVault/pkg/model"
)

type ItemLogging struct {
	Item
}

func (il *ItemLogging) Create(ctx context.Context, item *model.Item) (err error) {
	defer func(t0 time.Time) {
		log := slog.With(
			slog.Int("user_id", item.UserID),
			slog.String("type", item.Type),
			slog.String("delay", time.Since(t0).String()),
		)

		if err != nil {
			log.Error("failed to create item", slog.Any("error", err))
		} else {
			log.Debug("item created", slog.String("item_id", item.ID.String()))
		}
	}(time.Now())

	return il.Item.Create(ctx, item)
}

func (il *ItemLogging) ApplyTransaction(ctx context.Context, itemID uuid.UUID, userID int, description string, value decimal.Decimal) (t model.Transaction, err error) {
	defer func(t0 time.Time) {
		log := slog.With(
			slog.Int("user_id", userID),
			slog.String("item_id", itemID.String()),
			slog.String("value", value.String()),
			slog.String("delay", time.Since(t0).String()),
		)

		if err != nil {
			log.Error("failed to apply transaction", slog.Any("error", err))
		} else {
			log.Debug("transaction applied")
		}
	}(time.Now())

	return il.Item.ApplyTransaction(ctx, itemID, userID, description, value)
}

func (il *ItemLogging) ToggleUsed(ctx context.Context, itemID uuid.UUID, userID int) (used bool, err error) {
	defer func(t0 time.Time) {
		log := slog.With(
			slog.Int("user_id", userID),
			slog.String("item_id", itemID.String()),
			slog.String("delay", time.Since(t0).String()),
		)

		if err != nil {
			log.Error("failed to toggle item", slog.Any("error", err))
		} else {
			log.Debug("item toggled", slog.Bool("used", used))
		}
	}(time.Now())

	return il.Item.ToggleUsed(ctx, itemID, userID)
}

func (il *ItemLogging) Delete(ctx context.Context, id uuid.UUID, userID int) (err error) {
	defer func() {
		if err != nil {
			slog.Error("failed to delete item",
				slog.Int("user_id", userID),
				slog.String("item_id", id.String()),
				slog.Any("error", err),
			)
		} else {
			slog.Debug("item deleted", slog.String("item_id", id.String()))
		}
	}()

	return il.Item.Delete(ctx, id, userID)
}
