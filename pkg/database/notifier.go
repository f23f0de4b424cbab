package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/l4rm4nd/VoucherVault/pkg/model"
)

// NotifierRepository feeds the expiry sweep. Candidate selection by window is
// done in the service, the query only narrows to items that can possibly need
// a notice.
type NotifierRepository interface {
	// ExpiringItems returns the user's unconsumed items expiring within
	// horizon days from `from` which still miss at least one notice flag.
	ExpiringItems(ctx context.Context, userID int, from time.Time, horizonDays int) ([]model.Item, error)
	// MarkNotified advances the notice flags. Flags only move forward.
	MarkNotified(ctx context.Context, itemID uuid.UUID, upcoming, final bool) error
}

type NotifierDatabase struct {
	DB *sql.DB
}

func (d *NotifierDatabase) ExpiringItems(ctx context.Context, userID int, from time.Time, horizonDays int) ([]model.Item, error) {
	q := `
		select ` + itemColumns + `
		from items i
		where i.user_id = $1
		  and not i.is_used
		  and i.expiry_date >= $2::date
		  and i.expiry_date <= $2::date + $3 * interval '1 day'
		  and not (i.upcoming_notice_sent and i.final_notice_sent)
		order by i.expiry_date, i.created_at
	`

	rows, err := d.DB.QueryContext(ctx, q, userID, from, horizonDays)
	if err != nil {
		return nil, fmt.Errorf("can't query expiring items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("can't scan item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over items: %w", err)
	}

	return items, nil
}

func (d *NotifierDatabase) MarkNotified(ctx context.Context, itemID uuid.UUID, upcoming, final bool) error {
	const q = `
		update items
		set upcoming_notice_sent = upcoming_notice_sent or $2,
		    final_notice_sent = final_notice_sent or $3
		where id = $1
	`

	res, err := d.DB.ExecContext(ctx, q, itemID, upcoming, final)
	if err != nil {
		return fmt.Errorf("can't update notice flags: %w", err)
	}

	return requireAffected(res)
}
