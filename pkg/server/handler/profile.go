package handler

import (
	"errors"
	"net/http"

	"github.com/l4rm4nd/VoucherVault/pkg/model"
	"github.com/l4rm4nd/VoucherVault/pkg/service"
)

type profileReq struct {
	UserID     int    `json:"user_id"`
	NotifyURLs string `json:"notify_urls"`
}

func ProfileNotifications(svc service.Profile) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "only POST method allowed", http.StatusMethodNotAllowed)
			return
		}

		var req profileReq
		if !readJSON(w, r, &req) {
			return
		}

		if err := svc.SetNotifyURLs(r.Context(), req.UserID, req.NotifyURLs); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func NotifyTest(svc service.Profile) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "only POST method allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := queryUserID(w, r)
		if !ok {
			return
		}

		err := svc.SendTest(r.Context(), userID)
		switch {
		case errors.Is(err, model.ErrNoDestinations):
			http.Error(w, err.Error(), http.StatusPreconditionFailed)
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
