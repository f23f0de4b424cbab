package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrations returns the schema DDL. Each string is a single statement,
// executed in order at startup; everything is idempotent.
func Migrations() []string {
	return []string{
		`create table if not exists items (
			id                   uuid primary key,
			user_id              integer not null,
			type                 text not null,
			name                 text not null,
			issuer               text not null default '',
			redeem_code          text not null,
			pin                  text,
			description          text,
			value                numeric(10,2) not null default 0,
			value_type           text not null default 'money',
			issue_date           date not null,
			expiry_date          date not null,
			is_used              boolean not null default false,
			upcoming_notice_sent boolean not null default false,
			final_notice_sent    boolean not null default false,
			code_image           text,
			created_at           timestamptz not null default now()
		)`,
		`create index if not exists idx_items_user on items (user_id)`,
		`create index if not exists idx_items_expiry on items (expiry_date) where not is_used`,

		`create table if not exists transactions (
			id          uuid primary key,
			item_id     uuid not null references items (id) on delete cascade,
			description text not null,
			value       numeric(10,2) not null,
			synthetic   boolean not null default false,
			created_at  timestamptz not null default now()
		)`,
		`create index if not exists idx_transactions_item on transactions (item_id)`,

		`create table if not exists item_shares (
			id          serial primary key,
			item_id     uuid not null references items (id) on delete cascade,
			shared_by   integer not null,
			shared_with integer not null,
			created_at  timestamptz not null default now(),
			unique (item_id, shared_with)
		)`,
		`create index if not exists idx_item_shares_recipient on item_shares (shared_with)`,

		`create table if not exists user_profiles (
			user_id     integer primary key,
			notify_urls text not null default ''
		)`,

		`create table if not exists app_settings (
			id         integer primary key check (id = 1),
			api_token  uuid not null,
			updated_at timestamptz not null default now()
		)`,
	}
}

// Migrate applies the schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range Migrations() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("can't apply migration: %w", err)
		}
	}
	return nil
}
