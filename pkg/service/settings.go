package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/l4rm4nd/VoucherVault/pkg/database"
)

var ErrInvalidToken = errors.New("invalid api token")

type Settings interface {
	// VerifyToken checks a bearer token against the stored one.
	VerifyToken(ctx context.Context, token string) error
	RegenerateToken(ctx context.Context) (string, error)
}

type SettingsGeneric struct {
	Settings database.SettingsRepository
}

func (sg *SettingsGeneric) VerifyToken(ctx context.Context, token string) error {
	s, err := sg.Settings.Get(ctx)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(s.APIToken)) != 1 {
		return ErrInvalidToken
	}

	return nil
}

func (sg *SettingsGeneric) RegenerateToken(ctx context.Context) (string, error) {
	s, err := sg.Settings.RegenerateToken(ctx)
	if err != nil {
		return "", err
	}

	return s.APIToken, nil
}
