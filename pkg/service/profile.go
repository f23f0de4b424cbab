package service

import (
	"context"

	"github.com/l4rm4nd/VoucherVault/pkg/database"
	"github.com/l4rm4nd/VoucherVault/pkg/model"
	"github.com/l4rm4nd/VoucherVault/pkg/notify"
)

type Profile interface {
	SetNotifyURLs(ctx context.Context, userID int, urls string) error
	// SendTest delivers a test message to the user's configured destinations
	// so they can verify them.
	SendTest(ctx context.Context, userID int) error
}

type ProfileGeneric struct {
	Profiles database.ProfileRepository
	Sender   notify.Sender
}

func (pg *ProfileGeneric) SetNotifyURLs(ctx context.Context, userID int, urls string) error {
	return pg.Profiles.SetNotifyURLs(ctx, userID, urls)
}

func (pg *ProfileGeneric) SendTest(ctx context.Context, userID int) error {
	p, err := pg.Profiles.Get(ctx, userID)
	if err != nil {
		return err
	}

	dests := p.Destinations()
	if len(dests) == 0 {
		return model.ErrNoDestinations
	}

	return pg.Sender.Send(ctx, dests, notify.TestTitle, notify.TestBody)
}
