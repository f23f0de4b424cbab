package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/l4rm4nd/VoucherVault/pkg/database"
	"github.com/l4rm4nd/VoucherVault/pkg/service"
)

type transactionReq struct {
	ItemID      uuid.UUID       `json:"item_id"`
	UserID      int             `json:"user_id"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

func TransactionApply(svc service.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "only POST method allowed", http.StatusMethodNotAllowed)
			return
		}

		var req transactionReq
		if !readJSON(w, r, &req) {
			return
		}

		t, err := svc.ApplyTransaction(r.Context(), req.ItemID, req.UserID, req.Description, req.Value)
		switch {
		case isValidationErr(err):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		case errors.Is(err, database.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusCreated)
		writeJSON(w, t)
	}
}

func TransactionDelete(svc service.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "only POST method allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := queryUserID(w, r)
		if !ok {
			return
		}
		txID, ok := queryUUID(w, r, "id")
		if !ok {
			return
		}

		err := svc.DeleteTransaction(r.Context(), txID, userID)
		switch {
		case errors.Is(err, database.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
