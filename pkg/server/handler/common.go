package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/l4rm4nd/VoucherVault/pkg/model"
)

type ListPageResp[T any] struct {
	Page  []T `json:"page"`
	Total int `json:"total"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("can't encode response: %v", err), http.StatusInternalServerError)
	}
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, fmt.Sprintf("can't decode request: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

func queryUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, err := strconv.Atoi(r.URL.Query().Get("user_id"))
	if err != nil {
		http.Error(w, fmt.Sprintf("can't parse user_id: %v", err), http.StatusBadRequest)
		return 0, false
	}
	return userID, true
}

func queryUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.URL.Query().Get(param))
	if err != nil {
		http.Error(w, fmt.Sprintf("can't parse %s: %v", param, err), http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// isValidationErr reports whether err is one of the item or ledger validation
// sentinels, which map to 422 rather than 500.
func isValidationErr(err error) bool {
	for _, sentinel := range []error{
		model.ErrUnknownItemType,
		model.ErrUnknownValueType,
		model.ErrNegativeValue,
		model.ErrLoyaltyCardValue,
		model.ErrPercentageRange,
		model.ErrMultiplierRange,
		model.ErrNonNegativeTransaction,
		model.ErrNegativeLedger,
		model.ErrSelfShare,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
