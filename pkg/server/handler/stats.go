package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/l4rm4nd/VoucherVault/pkg/service"
)

// GlobalStats serves the instance-wide summary. It is the only endpoint
// authenticated by the application's API token rather than a user id.
func GlobalStats(svc service.Item, settings service.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "only GET method allowed", http.StatusMethodNotAllowed)
			return
		}

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		err := settings.VerifyToken(r.Context(), token)
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		stats, err := svc.GlobalStats(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, stats)
	}
}

func TokenRegenerate(settings service.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "only POST method allowed", http.StatusMethodNotAllowed)
			return
		}

		token, err := settings.RegenerateToken(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, map[string]string{"api_token": token})
	}
}
