package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/l4rm4nd/VoucherVault/pkg/model"
)

type ItemFilter struct {
	UserID int
	Type   string // voucher | giftcard | coupon | loyaltycard
	Status string // available | used | expired
	Query  string // substring match on name or issuer
}

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	Update(ctx context.Context, item *model.Item) error
	// Get returns the item when userID is the owner or a share recipient.
	Get(ctx context.Context, id uuid.UUID, userID int) (model.Item, error)
	Transactions(ctx context.Context, itemID uuid.UUID) ([]model.Transaction, error)
	GetPage(ctx context.Context, f ItemFilter, num, size int) ([]model.ItemWithValue, int, error)
	Delete(ctx context.Context, id uuid.UUID, userID int) error
	Stats(ctx context.Context, userID int) (model.Stats, error)
	GlobalStats(ctx context.Context) (model.GlobalStats, error)
}

type ItemDatabase struct {
	DB *sql.DB
}

const itemColumns = `
	i.id, i.user_id, i.type, i.name, i.issuer, i.redeem_code,
	coalesce(i.pin, ''), coalesce(i.description, ''),
	i.value, i.value_type, i.issue_date, i.expiry_date,
	i.is_used, i.upcoming_notice_sent, i.final_notice_sent,
	coalesce(i.code_image, ''), i.created_at
`

// ownedOrShared restricts a query to items the user owns or received a share
// for. The placeholder numbers must match the calling query.
const ownedOrShared = `
	(i.user_id = $2 or exists (
		select 1 from item_shares s where s.item_id = i.id and s.shared_with = $2
	))
`

func scanItem(row interface{ Scan(...any) error }) (model.Item, error) {
	var i model.Item
	err := row.Scan(
		&i.ID, &i.UserID, &i.Type, &i.Name, &i.Issuer, &i.RedeemCode,
		&i.Pin, &i.Description,
		&i.Value, &i.ValueType, &i.IssueDate, &i.ExpiryDate,
		&i.IsUsed, &i.UpcomingNoticeSent, &i.FinalNoticeSent,
		&i.CodeImage, &i.CreatedAt,
	)
	return i, err
}

func (d *ItemDatabase) Create(ctx context.Context, item *model.Item) error {
	const q = `
		insert into items (
			id, user_id, type, name, issuer, redeem_code, pin, description,
			value, value_type, issue_date, expiry_date, is_used, code_image, created_at
		)
		values ($1, $2, $3, $4, $5, $6, nullif($7, ''), nullif($8, ''), $9, $10, $11, $12, $13, nullif($14, ''), $15)
	`

	_, err := d.DB.ExecContext(ctx, q,
		item.ID, item.UserID, item.Type, item.Name, item.Issuer, item.RedeemCode,
		item.Pin, item.Description,
		item.Value, item.ValueType, item.IssueDate, item.ExpiryDate,
		item.IsUsed, item.CodeImage, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("can't insert item: %w", err)
	}

	return nil
}

func (d *ItemDatabase) Update(ctx context.Context, item *model.Item) error {
	const q = `
		update items i
		set name = $3, issuer = $4, redeem_code = $5, pin = nullif($6, ''),
		    description = nullif($7, ''), value = $8, value_type = $9,
		    issue_date = $10, expiry_date = $11, code_image = nullif($12, '')
		where i.id = $1 and i.user_id = $2
	`

	res, err := d.DB.ExecContext(ctx, q,
		item.ID, item.UserID,
		item.Name, item.Issuer, item.RedeemCode, item.Pin,
		item.Description, item.Value, item.ValueType,
		item.IssueDate, item.ExpiryDate, item.CodeImage,
	)
	if err != nil {
		return fmt.Errorf("can't update item: %w", err)
	}

	return requireAffected(res)
}

func (d *ItemDatabase) Get(ctx context.Context, id uuid.UUID, userID int) (model.Item, error) {
	q := `select ` + itemColumns + ` from items i where i.id = $1 and ` + ownedOrShared

	item, err := scanItem(d.DB.QueryRowContext(ctx, q, id, userID))
	if err != nil {
		return model.Item{}, fmt.Errorf("can't query item: %w", mapError(err))
	}

	return item, nil
}

func (d *ItemDatabase) Transactions(ctx context.Context, itemID uuid.UUID) ([]model.Transaction, error) {
	const q = `
		select id, item_id, description, value, synthetic, created_at
		from transactions
		where item_id = $1
		order by created_at, id
	`

	rows, err := d.DB.QueryContext(ctx, q, itemID)
	if err != nil {
		return nil, fmt.Errorf("can't query transactions: %w", err)
	}
	defer rows.Close()

	var ts []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.ItemID, &t.Description, &t.Value, &t.Synthetic, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("can't scan transaction: %w", err)
		}

		ts = append(ts, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over transactions: %w", err)
	}

	return ts, nil
}

func (d *ItemDatabase) GetPage(ctx context.Context, f ItemFilter, num, size int) ([]model.ItemWithValue, int, error) {
	where, args := buildItemFilter(f)

	q := `select count(*) from items i where ` + where

	var total int
	if err := d.DB.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("can't count items: %w", err)
	}

	offset := (num - 1) * size
	q = `
		select ` + itemColumns + `, i.value + coalesce(t.total, 0) as current_value
		from items i
		left join (
			select item_id, sum(value) as total from transactions group by item_id
		) t on t.item_id = i.id
		where ` + where + `
		order by i.created_at desc
		limit $` + strconv.Itoa(len(args)+1) + ` offset $` + strconv.Itoa(len(args)+2)

	args = append(args, size, offset)

	rows, err := d.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("can't query items: %w", err)
	}
	defer rows.Close()

	items := make([]model.ItemWithValue, 0, size)
	for rows.Next() {
		var (
			iv      model.ItemWithValue
			current decimal.Decimal
		)
		err := rows.Scan(
			&iv.ID, &iv.UserID, &iv.Type, &iv.Name, &iv.Issuer, &iv.RedeemCode,
			&iv.Pin, &iv.Description,
			&iv.Value, &iv.ValueType, &iv.IssueDate, &iv.ExpiryDate,
			&iv.IsUsed, &iv.UpcomingNoticeSent, &iv.FinalNoticeSent,
			&iv.CodeImage, &iv.CreatedAt,
			&current,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("can't scan item: %w", err)
		}

		iv.CurrentValue = current
		items = append(items, iv)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over items: %w", err)
	}

	return items, total, nil
}

func buildItemFilter(f ItemFilter) (string, []any) {
	where := []string{"i.user_id = $1"}
	args := []any{f.UserID}

	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("i.type = $%d", len(args)))
	}

	switch f.Status {
	case "available":
		where = append(where, "not i.is_used", "i.expiry_date >= current_date")
	case "used":
		where = append(where, "i.is_used")
	case "expired":
		where = append(where, "i.expiry_date < current_date")
	}

	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		where = append(where, fmt.Sprintf("(i.name ilike $%d or i.issuer ilike $%d)", len(args), len(args)))
	}

	return strings.Join(where, " and "), args
}

func (d *ItemDatabase) Delete(ctx context.Context, id uuid.UUID, userID int) error {
	res, err := d.DB.ExecContext(ctx, `delete from items where id = $1 and user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("can't delete item: %w", err)
	}

	return requireAffected(res)
}

func (d *ItemDatabase) Stats(ctx context.Context, userID int) (model.Stats, error) {
	const q = `
		select
			count(*) filter (where not is_used),
			count(*) filter (where not is_used and expiry_date >= current_date),
			count(*) filter (where is_used),
			count(*) filter (where not is_used and expiry_date < current_date),
			count(*) filter (where type = 'voucher' and not is_used and expiry_date >= current_date),
			count(*) filter (where type = 'giftcard' and not is_used and expiry_date >= current_date),
			count(*) filter (where type = 'coupon' and not is_used and expiry_date >= current_date),
			count(*) filter (where type = 'loyaltycard' and not is_used and expiry_date >= current_date)
		from items
		where user_id = $1
	`

	var s model.Stats
	err := d.DB.QueryRowContext(ctx, q, userID).Scan(
		&s.Total, &s.Available, &s.Used, &s.Expired,
		&s.Vouchers, &s.GiftCards, &s.Coupons, &s.LoyaltyCards,
	)
	if err != nil {
		return model.Stats{}, fmt.Errorf("can't query item counts: %w", err)
	}

	const valueQ = `
		select coalesce(sum(i.value + coalesce(t.total, 0)), 0)
		from items i
		left join (
			select item_id, sum(value) as total from transactions group by item_id
		) t on t.item_id = i.id
		where i.user_id = $1
		  and not i.is_used
		  and i.value_type = 'money'
		  and i.type <> 'loyaltycard'
		  and i.expiry_date >= current_date
	`

	if err := d.DB.QueryRowContext(ctx, valueQ, userID).Scan(&s.TotalValue); err != nil {
		return model.Stats{}, fmt.Errorf("can't query total value: %w", err)
	}

	return s, nil
}

func (d *ItemDatabase) GlobalStats(ctx context.Context) (model.GlobalStats, error) {
	const q = `
		select count(*), count(distinct user_id), count(distinct issuer)
		from items
	`

	var s model.GlobalStats
	if err := d.DB.QueryRowContext(ctx, q).Scan(&s.Items, &s.Users, &s.Issuers); err != nil {
		return model.GlobalStats{}, fmt.Errorf("can't query global stats: %w", err)
	}

	return s, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
