package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/l4rm4nd/VoucherVault/pkg/database"
	"github.com/l4rm4nd/VoucherVault/pkg/model"
)

type fakeItemRepo struct {
	created      []model.Item
	updated      []model.Item
	item         model.Item
	transactions []model.Transaction
}

func (f *fakeItemRepo) Create(_ context.Context, item *model.Item) error {
	f.created = append(f.created, *item)
	return nil
}

func (f *fakeItemRepo) Update(_ context.Context, item *model.Item) error {
	f.updated = append(f.updated, *item)
	return nil
}

func (f *fakeItemRepo) Get(_ context.Context, id uuid.UUID, userID int) (model.Item, error) {
	if f.item.ID != id {
		return model.Item{}, database.ErrNotFound
	}
	return f.item, nil
}

func (f *fakeItemRepo) Transactions(_ context.Context, itemID uuid.UUID) ([]model.Transaction, error) {
	return f.transactions, nil
}

func (f *fakeItemRepo) GetPage(_ context.Context, _ database.ItemFilter, _, _ int) ([]model.ItemWithValue, int, error) {
	return nil, 0, nil
}

func (f *fakeItemRepo) Delete(_ context.Context, _ uuid.UUID, _ int) error { return nil }

func (f *fakeItemRepo) Stats(_ context.Context, _ int) (model.Stats, error) {
	return model.Stats{}, nil
}

func (f *fakeItemRepo) GlobalStats(_ context.Context) (model.GlobalStats, error) {
	return model.GlobalStats{}, nil
}

type fakeLedgerRepo struct {
	applied int
}

func (f *fakeLedgerRepo) ApplyTransaction(_ context.Context, itemID uuid.UUID, _ int, description string, value decimal.Decimal) (model.Transaction, error) {
	f.applied++
	return model.Transaction{
		Base:        model.Base{ID: uuid.New(), CreatedAt: time.Now()},
		ItemID:      itemID,
		Description: description,
		Value:       value,
	}, nil
}

func (f *fakeLedgerRepo) ToggleUsed(_ context.Context, _ uuid.UUID, _ int) (bool, error) {
	return true, nil
}

func (f *fakeLedgerRepo) DeleteTransaction(_ context.Context, _ uuid.UUID, _ int) error {
	return nil
}

func TestItemCreateRejectsInvalid(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := &ItemGeneric{Items: repo, Ledger: &fakeLedgerRepo{}}

	item := model.Item{
		UserID:    1,
		Type:      model.TypeCoupon,
		Name:      "Broken",
		Value:     decimal.NewFromInt(101),
		ValueType: model.ValuePercentage,
	}

	err := svc.Create(context.Background(), &item)
	if !errors.Is(err, model.ErrPercentageRange) {
		t.Fatalf("Create() error = %v, want ErrPercentageRange", err)
	}

	if len(repo.created) != 0 {
		t.Error("invalid item reached the repository")
	}
}

func TestItemCreateAppliesDefaults(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := &ItemGeneric{Items: repo, Ledger: &fakeLedgerRepo{}}

	item := model.Item{
		UserID:     1,
		Type:       model.TypeGiftCard,
		Name:       "Bookstore",
		RedeemCode: "4006381333931",
		Value:      decimal.NewFromInt(50),
	}

	if err := svc.Create(context.Background(), &item); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if item.ID == uuid.Nil {
		t.Error("no id assigned")
	}
	if item.ValueType != model.ValueMoney {
		t.Errorf("ValueType = %q, want default %q", item.ValueType, model.ValueMoney)
	}
	if item.ExpiryDate.Before(time.Now().AddDate(model.DefaultExpiryYears, 0, -1)) {
		t.Errorf("ExpiryDate = %v, want far-future default", item.ExpiryDate)
	}
	if item.CodeImage == "" {
		t.Error("no code image rendered for a valid EAN-13 redeem code")
	}

	if len(repo.created) != 1 {
		t.Fatalf("created %d items, want 1", len(repo.created))
	}
}

func TestItemUpdateKeepsImageWhenCodeUnchanged(t *testing.T) {
	id := uuid.New()
	repo := &fakeItemRepo{
		item: model.Item{
			Base:       model.Base{ID: id},
			UserID:     1,
			Type:       model.TypeVoucher,
			Name:       "Cinema",
			RedeemCode: "ABC-123",
			Value:      decimal.NewFromInt(10),
			ValueType:  model.ValueMoney,
			CodeImage:  "data:image/png;base64,original",
		},
	}
	svc := &ItemGeneric{Items: repo, Ledger: &fakeLedgerRepo{}}

	item := repo.item
	item.Name = "Cinema (renamed)"
	item.CodeImage = ""

	if err := svc.Update(context.Background(), &item); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if item.CodeImage != repo.item.CodeImage {
		t.Errorf("CodeImage = %q, want the existing rendering kept", item.CodeImage)
	}
}

func TestItemApplyTransactionPrecheck(t *testing.T) {
	ledger := &fakeLedgerRepo{}
	svc := &ItemGeneric{Items: &fakeItemRepo{}, Ledger: ledger}

	tests := []struct {
		name  string
		value decimal.Decimal
	}{
		{"zero", decimal.Zero},
		{"positive", decimal.NewFromInt(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ApplyTransaction(context.Background(), uuid.New(), 1, "refill", tt.value)
			if !errors.Is(err, model.ErrNonNegativeTransaction) {
				t.Errorf("ApplyTransaction() error = %v, want ErrNonNegativeTransaction", err)
			}
		})
	}

	if ledger.applied != 0 {
		t.Error("rejected transaction reached the ledger repository")
	}

	if _, err := svc.ApplyTransaction(context.Background(), uuid.New(), 1, "spent", decimal.NewFromInt(-5)); err != nil {
		t.Fatalf("ApplyTransaction: %v", err)
	}
	if ledger.applied != 1 {
		t.Errorf("applied = %d, want 1", ledger.applied)
	}
}

func TestItemGetComputesCurrentValue(t *testing.T) {
	id := uuid.New()
	repo := &fakeItemRepo{
		item: model.Item{
			Base:      model.Base{ID: id},
			UserID:    1,
			Type:      model.TypeGiftCard,
			Name:      "Grocery",
			Value:     decimal.NewFromInt(100),
			ValueType: model.ValueMoney,
		},
		transactions: []model.Transaction{
			{Base: model.Base{ID: uuid.New()}, ItemID: id, Value: decimal.NewFromInt(-30)},
			{Base: model.Base{ID: uuid.New()}, ItemID: id, Value: decimal.NewFromInt(-15)},
		},
	}
	svc := &ItemGeneric{Items: repo, Ledger: &fakeLedgerRepo{}}

	iv, ts, err := svc.Get(context.Background(), id, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if want := decimal.NewFromInt(55); !iv.CurrentValue.Equal(want) {
		t.Errorf("CurrentValue = %s, want %s", iv.CurrentValue, want)
	}
	if len(ts) != 2 {
		t.Errorf("len(transactions) = %d, want 2", len(ts))
	}
}
