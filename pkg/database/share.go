package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/l4rm4nd/VoucherVault/pkg/model"
)

const uniqueViolation = "23505"

type ShareRepository interface {
	// Add records a share. Only the item's owner may share it.
	Add(ctx context.Context, share *model.ItemShare) error
	Delete(ctx context.Context, shareID, ownerID int) error
	// ByUser returns shares the user granted or received.
	ByUser(ctx context.Context, userID int) ([]model.ItemShare, error)
}

type ShareDatabase struct {
	DB *sql.DB
}

func (d *ShareDatabase) Add(ctx context.Context, share *model.ItemShare) error {
	const q = `
		insert into item_shares (item_id, shared_by, shared_with, created_at)
		select $1, $2, $3, $4
		where exists (select 1 from items where id = $1 and user_id = $2)
		returning id
	`

	err := d.DB.QueryRowContext(ctx, q, share.ItemID, share.SharedBy, share.SharedWith, share.CreatedAt).Scan(&share.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrShareExists
		}

		// no row produced: the item doesn't exist or isn't owned by shared_by
		return fmt.Errorf("can't insert share: %w", mapError(err))
	}

	return nil
}

func (d *ShareDatabase) Delete(ctx context.Context, shareID, ownerID int) error {
	const q = `
		delete from item_shares s
		using items i
		where s.id = $1 and i.id = s.item_id and (i.user_id = $2 or s.shared_with = $2)
	`

	res, err := d.DB.ExecContext(ctx, q, shareID, ownerID)
	if err != nil {
		return fmt.Errorf("can't delete share: %w", err)
	}

	return requireAffected(res)
}

func (d *ShareDatabase) ByUser(ctx context.Context, userID int) ([]model.ItemShare, error) {
	const q = `
		select id, item_id, shared_by, shared_with, created_at
		from item_shares
		where shared_by = $1 or shared_with = $1
		order by created_at desc
	`

	rows, err := d.DB.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("can't query shares: %w", err)
	}
	defer rows.Close()

	var shares []model.ItemShare
	for rows.Next() {
		var s model.ItemShare
		if err := rows.Scan(&s.ID, &s.ItemID, &s.SharedBy, &s.SharedWith, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("can't scan share: %w", err)
		}

		shares = append(shares, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over shares: %w", err)
	}

	return shares, nil
}
