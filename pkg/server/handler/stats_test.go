package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/l4rm4nd/VoucherVault/pkg/service"
)

type stubSettings struct {
	token string
}

func (s *stubSettings) VerifyToken(_ context.Context, token string) error {
	if token != s.token {
		return service.ErrInvalidToken
	}
	return nil
}

func (s *stubSettings) RegenerateToken(_ context.Context) (string, error) {
	s.token = "regenerated"
	return s.token, nil
}

func TestGlobalStatsAuth(t *testing.T) {
	h := GlobalStats(&stubItemService{}, &stubSettings{token: "secret"})

	tests := []struct {
		name       string
		auth       string
		wantStatus int
	}{
		{"valid token", "Bearer secret", http.StatusOK},
		{"wrong token", "Bearer guess", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"not a bearer", "Basic c2VjcmV0", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()

			h(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestTokenRegenerate(t *testing.T) {
	settings := &stubSettings{token: "old"}
	h := TokenRegenerate(settings)

	req := httptest.NewRequest(http.MethodPost, "/api/token/regenerate", nil)
	rec := httptest.NewRecorder()

	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if settings.token == "old" {
		t.Error("token not rotated")
	}
}
