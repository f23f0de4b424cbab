package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/l4rm4nd/VoucherVault/pkg/database"
	"github.com/l4rm4nd/VoucherVault/pkg/model"
	"github.com/l4rm4nd/VoucherVault/pkg/service"
)

func ItemCreate(svc service.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "only POST method allowed", http.StatusMethodNotAllowed)
			return
		}

		var item model.Item
		if !readJSON(w, r, &item) {
			return
		}

		err := svc.Create(r.Context(), &item)
		switch {
		case isValidationErr(err):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusCreated)
		writeJSON(w, item)
	}
}

func ItemUpdate(svc service.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "only POST method allowed", http.StatusMethodNotAllowed)
			return
		}

		var item model.Item
		if !readJSON(w, r, &item) {
			return
		}

		err := svc.Update(r.Context(), &item)
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

		writeJSON(w, item)
	}
}

type itemResp struct {
	model.ItemWithValue
	Transactions []model.Transaction `json:"transactions"`
}

func ItemGet(svc service.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "only GET method allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := queryUserID(w, r)
		if !ok {
			return
		}
		id, ok := queryUUID(w, r, "id")
		if !ok {
			return
		}

		item, ts, err := svc.Get(r.Context(), id, userID)
		switch {
		case errors.Is(err, database.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, itemResp{ItemWithValue: item, Transactions: ts})
	}
}

func ItemListPage(svc service.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "only GET method allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := queryUserID(w, r)
		if !ok {
			return
		}

		var (
			q        = r.URL.Query()
			pageNum  = service.DefaultPageNum
			pageSize = service.DefaultPageSize
			err      error
		)

		if pn := q.Get("page_num"); pn != "" {
			pageNum, err = strconv.Atoi(pn)
			if err != nil {
				http.Error(w, fmt.Sprintf("can't parse page_num: %v", err), http.StatusBadRequest)
				return
			}
		}

		if ps := q.Get("page_size"); ps != "" {
			pageSize, err = strconv.Atoi(ps)
			if err != nil {
				http.Error(w, fmt.Sprintf("can't parse page_size: %v", err), http.StatusBadRequest)
				return
			}
		}

		f := database.ItemFilter{
			UserID: userID,
			Type:   q.Get("type"),
			Status: q.Get("status"),
			Query:  q.Get("q"),
		}

		var resp ListPageResp[model.ItemWithValue]

		resp.Page, resp.Total, err = svc.ListPage(r.Context(), f, pageNum, pageSize)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, resp)
	}
}

func ItemDelete(svc service.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "only POST method allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := queryUserID(w, r)
		if !ok {
			return
		}
		id, ok := queryUUID(w, r, "id")
		if !ok {
			return
		}

		err := svc.Delete(r.Context(), id, userID)
		switch {
		case errors.Is(err, database.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func ItemToggle(svc service.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "only POST method allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := queryUserID(w, r)
		if !ok {
			return
		}
		id, ok := queryUUID(w, r, "id")
		if !ok {
			return
		}

		used, err := svc.ToggleUsed(r.Context(), id, userID)
		switch {
		case errors.Is(err, database.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, map[string]bool{"is_used": used})
	}
}

func ItemStats(svc service.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "only GET method allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := queryUserID(w, r)
		if !ok {
			return
		}

		stats, err := svc.Stats(r.Context(), userID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, stats)
	}
}
