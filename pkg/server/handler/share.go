package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/l4rm4nd/VoucherVault/pkg/database"
	"github.com/l4rm4nd/VoucherVault/pkg/model"
	"github.com/l4rm4nd/VoucherVault/pkg/service"
)

type shareReq struct {
	ItemID     uuid.UUID `json:"item_id"`
	UserID     int       `json:"user_id"`
	SharedWith int       `json:"shared_with"`
}

func ShareGrant(svc service.Share) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "only POST method allowed", http.StatusMethodNotAllowed)
			return
		}

		var req shareReq
		if !readJSON(w, r, &req) {
			return
		}

		share, err := svc.Grant(r.Context(), req.ItemID, req.UserID, req.SharedWith)
		switch {
		case errors.Is(err, model.ErrSelfShare):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		case errors.Is(err, model.ErrShareExists):
			http.Error(w, err.Error(), http.StatusConflict)
			return
		case errors.Is(err, database.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusCreated)
		writeJSON(w, share)
	}
}

func ShareRevoke(svc service.Share) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "only POST method allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := queryUserID(w, r)
		if !ok {
			return
		}

		shareID, err := strconv.Atoi(r.URL.Query().Get("id"))
		if err != nil {
			http.Error(w, fmt.Sprintf("can't parse id: %v", err), http.StatusBadRequest)
			return
		}

		err = svc.Revoke(r.Context(), shareID, userID)
		switch {
		case errors.Is(err, database.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func ShareList(svc service.Share) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "only GET method allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := queryUserID(w, r)
		if !ok {
			return
		}

		shares, err := svc.List(r.Context(), userID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, shares)
	}
}
