package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/l4rm4nd/VoucherVault/pkg/model"
)

// LedgerRepository serializes value mutations per item. Each call runs in one
// DB transaction holding a row lock on the item, so two concurrent redemptions
// can't both pass the balance check.
type LedgerRepository interface {
	ApplyTransaction(ctx context.Context, itemID uuid.UUID, userID int, description string, value decimal.Decimal) (model.Transaction, error)
	// ToggleUsed flips the consumed state and returns the new one.
	ToggleUsed(ctx context.Context, itemID uuid.UUID, userID int) (bool, error)
	DeleteTransaction(ctx context.Context, txID uuid.UUID, userID int) error
}

type LedgerDatabase struct {
	DB *sql.DB
}

func (d *LedgerDatabase) ApplyTransaction(ctx context.Context, itemID uuid.UUID, userID int, description string, value decimal.Decimal) (model.Transaction, error) {
	var created model.Transaction

	err := WithTx(ctx, d.DB, func(tx *sql.Tx) error {
		l, err := lockLedger(ctx, tx, itemID, userID)
		if err != nil {
			return err
		}

		created, err = l.Apply(description, value, time.Now())
		if err != nil {
			return err
		}

		if err := insertTransaction(ctx, tx, created); err != nil {
			return err
		}

		return saveUsedFlag(ctx, tx, l.Item)
	})
	if err != nil {
		return model.Transaction{}, err
	}

	return created, nil
}

func (d *LedgerDatabase) ToggleUsed(ctx context.Context, itemID uuid.UUID, userID int) (bool, error) {
	var used bool

	err := WithTx(ctx, d.DB, func(tx *sql.Tx) error {
		l, err := lockLedger(ctx, tx, itemID, userID)
		if err != nil {
			return err
		}

		added, _ := l.Toggle(time.Now())
		used = l.Item.IsUsed

		if added != nil {
			if err := insertTransaction(ctx, tx, *added); err != nil {
				return err
			}
		} else {
			// Toggling back: drop the synthetic adjustment, if the user
			// hasn't deleted it already.
			if _, err := tx.ExecContext(ctx, `delete from transactions where item_id = $1 and synthetic`, itemID); err != nil {
				return fmt.Errorf("can't delete synthetic transactions: %w", err)
			}
		}

		return saveUsedFlag(ctx, tx, l.Item)
	})
	if err != nil {
		return false, err
	}

	return used, nil
}

func (d *LedgerDatabase) DeleteTransaction(ctx context.Context, txID uuid.UUID, userID int) error {
	const q = `
		delete from transactions t
		using items i
		where t.id = $1
		  and i.id = t.item_id
		  and (i.user_id = $2 or exists (
		      select 1 from item_shares s where s.item_id = i.id and s.shared_with = $2
		  ))
	`

	res, err := d.DB.ExecContext(ctx, q, txID, userID)
	if err != nil {
		return fmt.Errorf("can't delete transaction: %w", err)
	}

	return requireAffected(res)
}

// lockLedger loads the item under `for update` together with its full
// transaction history.
func lockLedger(ctx context.Context, tx *sql.Tx, itemID uuid.UUID, userID int) (*model.Ledger, error) {
	q := `select ` + itemColumns + ` from items i where i.id = $1 and ` + ownedOrShared + ` for update of i`

	item, err := scanItem(tx.QueryRowContext(ctx, q, itemID, userID))
	if err != nil {
		return nil, fmt.Errorf("can't lock item: %w", mapError(err))
	}

	l := &model.Ledger{Item: item}

	rows, err := tx.QueryContext(ctx, `
		select id, item_id, description, value, synthetic, created_at
		from transactions
		where item_id = $1
		order by created_at, id
	`, itemID)
	if err != nil {
		return nil, fmt.Errorf("can't query transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.ItemID, &t.Description, &t.Value, &t.Synthetic, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("can't scan transaction: %w", err)
		}

		l.Transactions = append(l.Transactions, t)
	}

	return l, rows.Err()
}

func insertTransaction(ctx context.Context, tx *sql.Tx, t model.Transaction) error {
	const q = `
		insert into transactions (id, item_id, description, value, synthetic, created_at)
		values ($1, $2, $3, $4, $5, $6)
	`

	if _, err := tx.ExecContext(ctx, q, t.ID, t.ItemID, t.Description, t.Value, t.Synthetic, t.CreatedAt); err != nil {
		return fmt.Errorf("can't insert transaction: %w", err)
	}

	return nil
}

func saveUsedFlag(ctx context.Context, tx *sql.Tx, item model.Item) error {
	if _, err := tx.ExecContext(ctx, `update items set is_used = $2 where id = $1`, item.ID, item.IsUsed); err != nil {
		return fmt.Errorf("can't update used flag: %w", err)
	}

	return nil
}
