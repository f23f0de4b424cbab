package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/l4rm4nd/VoucherVault/pkg/database"
	"github.com/l4rm4nd/VoucherVault/pkg/model"
)

type Share interface {
	Grant(ctx context.Context, itemID uuid.UUID, ownerID, withID int) (model.ItemShare, error)
	Revoke(ctx context.Context, shareID, userID int) error
	List(ctx context.Context, userID int) ([]model.ItemShare, error)
}

type ShareGeneric struct {
	Shares database.ShareRepository
}

func (sg *ShareGeneric) Grant(ctx context.Context, itemID uuid.UUID, ownerID, withID int) (model.ItemShare, error) {
	if ownerID == withID {
		return model.ItemShare{}, model.ErrSelfShare
	}

	share := model.ItemShare{
		ItemID:     itemID,
		SharedBy:   ownerID,
		SharedWith: withID,
		CreatedAt:  time.Now(),
	}

	if err := sg.Shares.Add(ctx, &share); err != nil {
		return model.ItemShare{}, err
	}

	return share, nil
}

func (sg *ShareGeneric) Revoke(ctx context.Context, shareID, userID int) error {
	return sg.Shares.Delete(ctx, shareID, userID)
}

func (sg *ShareGeneric) List(ctx context.Context, userID int) ([]model.ItemShare, error) {
	return sg.Shares.ByUser(ctx, userID)
}
