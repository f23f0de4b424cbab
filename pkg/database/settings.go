package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/l4rm4nd/VoucherVault/pkg/model"
)

// SettingsRepository guards the single-row application settings. The row is
// created on first read; the `check (id = 1)` constraint makes a second row
// impossible.
type SettingsRepository interface {
	Get(ctx context.Context) (model.AppSettings, error)
	RegenerateToken(ctx context.Context) (model.AppSettings, error)
}

type SettingsDatabase struct {
	DB *sql.DB
}

func (d *SettingsDatabase) Get(ctx context.Context) (model.AppSettings, error) {
	const q = `
		insert into app_settings (id, api_token, updated_at)
		values (1, $1, $2)
		on conflict (id) do nothing
	`

	if _, err := d.DB.ExecContext(ctx, q, uuid.NewString(), time.Now()); err != nil {
		return model.AppSettings{}, fmt.Errorf("can't ensure settings row: %w", err)
	}

	var s model.AppSettings
	err := d.DB.QueryRowContext(ctx, `select api_token, updated_at from app_settings where id = 1`).Scan(&s.APIToken, &s.UpdatedAt)
	if err != nil {
		return model.AppSettings{}, fmt.Errorf("can't query settings: %w", err)
	}

	return s, nil
}

func (d *SettingsDatabase) RegenerateToken(ctx context.Context) (model.AppSettings, error) {
	if _, err := d.Get(ctx); err != nil {
		return model.AppSettings{}, err
	}

	s := model.AppSettings{APIToken: uuid.NewString(), UpdatedAt: time.Now()}

	const q = `update app_settings set api_token = $1, updated_at = $2 where id = 1`
	if _, err := d.DB.ExecContext(ctx, q, s.APIToken, s.UpdatedAt); err != nil {
		return model.AppSettings{}, fmt.Errorf("can't regenerate api token: %w", err)
	}

	return s, nil
}
