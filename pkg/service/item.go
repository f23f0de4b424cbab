package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/l4rm4nd/VoucherVault/pkg/barcode"
	"github.com/l4rm4nd/VoucherVault/pkg/database"
	"github.com/l4rm4nd/VoucherVault/pkg/model"
)

const (
	DefaultPageNum  = 1
	DefaultPageSize = 50
)

type Item interface {
	Create(ctx context.Context, item *model.Item) error
	Update(ctx context.Context, item *model.Item) error
	Get(ctx context.Context, id uuid.UUID, userID int) (model.ItemWithValue, []model.Transaction, error)
	ListPage(ctx context.Context, f database.ItemFilter, pageNum, pageSize int) ([]model.ItemWithValue, int, error)
	Delete(ctx context.Context, id uuid.UUID, userID int) error

	ApplyTransaction(ctx context.Context, itemID uuid.UUID, userID int, description string, value decimal.Decimal) (model.Transaction, error)
	DeleteTransaction(ctx context.Context, txID uuid.UUID, userID int) error
	ToggleUsed(ctx context.Context, itemID uuid.UUID, userID int) (bool, error)

	Stats(ctx context.Context, userID int) (model.Stats, error)
	GlobalStats(ctx context.Context) (model.GlobalStats, error)
}

// ItemGeneric contains the core item logic. It can be wrapped by the
// implementations in item_*.go.
type ItemGeneric struct {
	Items  database.ItemRepository
	Ledger database.LedgerRepository
}

func (ig *ItemGeneric) Create(ctx context.Context, item *model.Item) error {
	now := time.Now()

	item.ID = uuid.New()
	item.CreatedAt = now
	item.IsUsed = false
	item.Normalize(now)

	if err := item.Validate(); err != nil {
		return err
	}

	ig.renderCodeImage(item)

	return ig.Items.Create(ctx, item)
}

func (ig *ItemGeneric) Update(ctx context.Context, item *model.Item) error {
	existing, err := ig.Items.Get(ctx, item.ID, item.UserID)
	if err != nil {
		return err
	}

	item.Normalize(time.Now())
	if err := item.Validate(); err != nil {
		return err
	}

	if existing.RedeemCode != item.RedeemCode {
		ig.renderCodeImage(item)
	} else {
		item.CodeImage = existing.CodeImage
	}

	return ig.Items.Update(ctx, item)
}

// renderCodeImage attaches the barcode/QR rendering of the redeem code.
// Rendering failures don't block the write, the item just has no image.
func (ig *ItemGeneric) renderCodeImage(item *model.Item) {
	img, err := barcode.CodeImage(item.RedeemCode)
	if err != nil {
		slog.Error("can't render code image", slog.String("item", item.Name), slog.Any("error", err))
		return
	}

	item.CodeImage = img
}

func (ig *ItemGeneric) Get(ctx context.Context, id uuid.UUID, userID int) (model.ItemWithValue, []model.Transaction, error) {
	item, err := ig.Items.Get(ctx, id, userID)
	if err != nil {
		return model.ItemWithValue{}, nil, err
	}

	ts, err := ig.Items.Transactions(ctx, id)
	if err != nil {
		return model.ItemWithValue{}, nil, err
	}

	l := model.Ledger{Item: item, Transactions: ts}

	return model.ItemWithValue{Item: item, CurrentValue: l.CurrentValue()}, ts, nil
}

func (ig *ItemGeneric) ListPage(ctx context.Context, f database.ItemFilter, pageNum, pageSize int) ([]model.ItemWithValue, int, error) {
	return ig.Items.GetPage(ctx, f, pageNum, pageSize)
}

func (ig *ItemGeneric) Delete(ctx context.Context, id uuid.UUID, userID int) error {
	return ig.Items.Delete(ctx, id, userID)
}

func (ig *ItemGeneric) ApplyTransaction(ctx context.Context, itemID uuid.UUID, userID int, description string, value decimal.Decimal) (model.Transaction, error) {
	// cheap precondition before taking the row lock
	if value.Sign() >= 0 {
		return model.Transaction{}, model.ErrNonNegativeTransaction
	}

	return ig.Ledger.ApplyTransaction(ctx, itemID, userID, description, value)
}

func (ig *ItemGeneric) DeleteTransaction(ctx context.Context, txID uuid.UUID, userID int) error {
	return ig.Ledger.DeleteTransaction(ctx, txID, userID)
}

func (ig *ItemGeneric) ToggleUsed(ctx context.Context, itemID uuid.UUID, userID int) (bool, error) {
	return ig.Ledger.ToggleUsed(ctx, itemID, userID)
}

func (ig *ItemGeneric) Stats(ctx context.Context, userID int) (model.Stats, error) {
	return ig.Items.Stats(ctx, userID)
}

func (ig *ItemGeneric) GlobalStats(ctx context.Context) (model.GlobalStats, error) {
	return ig.Items.GlobalStats(ctx)
}
