package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/l4rm4nd/VoucherVault/pkg/model"
)

type ProfileRepository interface {
	Get(ctx context.Context, userID int) (model.UserProfile, error)
	SetNotifyURLs(ctx context.Context, userID int, urls string) error
	// Recipients returns profiles with at least one notification destination.
	Recipients(ctx context.Context) ([]model.UserProfile, error)
}

type ProfileDatabase struct {
	DB *sql.DB
}

func (d *ProfileDatabase) Get(ctx context.Context, userID int) (model.UserProfile, error) {
	p := model.UserProfile{UserID: userID}

	err := d.DB.QueryRowContext(ctx, `select notify_urls from user_profiles where user_id = $1`, userID).Scan(&p.NotifyURLs)
	if err != nil && err != sql.ErrNoRows { // missing profile is an empty one
		return model.UserProfile{}, fmt.Errorf("can't query profile: %w", err)
	}

	return p, nil
}

func (d *ProfileDatabase) SetNotifyURLs(ctx context.Context, userID int, urls string) error {
	const q = `
		insert into user_profiles (user_id, notify_urls)
		values ($1, $2)
		on conflict (user_id) do update set notify_urls = excluded.notify_urls
	`

	if _, err := d.DB.ExecContext(ctx, q, userID, urls); err != nil {
		return fmt.Errorf("can't save notify urls: %w", err)
	}

	return nil
}

func (d *ProfileDatabase) Recipients(ctx context.Context) ([]model.UserProfile, error) {
	const q = `
		select user_id, notify_urls
		from user_profiles
		where trim(notify_urls) <> ''
		order by user_id
	`

	rows, err := d.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("can't query recipients: %w", err)
	}
	defer rows.Close()

	var profiles []model.UserProfile
	for rows.Next() {
		var p model.UserProfile
		if err := rows.Scan(&p.UserID, &p.NotifyURLs); err != nil {
			return nil, fmt.Errorf("can't scan profile: %w", err)
		}

		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over profiles: %w", err)
	}

	return profiles, nil
}
