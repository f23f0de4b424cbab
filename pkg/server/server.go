package server

import (
	"net/http"
	"time"

	"github.com/l4rm4nd/VoucherVault/pkg/server/handler"
	"github.com/l4rm4nd/VoucherVault/pkg/server/middleware"
	"github.com/l4rm4nd/VoucherVault/pkg/service"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
)

func New(addr string, itemSvc service.Item, shareSvc service.Share, profileSvc service.Profile, settingsSvc service.Settings) (*http.Server, error) {
	mux := http.NewServeMux()

	mux.Handle("/items", handler.ItemListPage(itemSvc))
	mux.Handle("/items/create", handler.ItemCreate(itemSvc))
	mux.Handle("/item", handler.ItemGet(itemSvc))
	mux.Handle("/item/update", handler.ItemUpdate(itemSvc))
	mux.Handle("/item/delete", handler.ItemDelete(itemSvc))
	mux.Handle("/item/toggle", handler.ItemToggle(itemSvc))

	mux.Handle("/transactions", handler.TransactionApply(itemSvc))
	mux.Handle("/transactions/delete", handler.TransactionDelete(itemSvc))

	mux.Handle("/shares", handler.ShareList(shareSvc))
	mux.Handle("/shares/grant", handler.ShareGrant(shareSvc))
	mux.Handle("/shares/revoke", handler.ShareRevoke(shareSvc))

	mux.Handle("/stats", handler.ItemStats(itemSvc))
	mux.Handle("/profile/notifications", handler.ProfileNotifications(profileSvc))
	mux.Handle("/notify/test", handler.NotifyTest(profileSvc))

	mux.Handle("/api/stats", handler.GlobalStats(itemSvc, settingsSvc))
	mux.Handle("/api/token/regenerate", handler.TokenRegenerate(settingsSvc))

	chain := middleware.Chain{
		middleware.Log,
		middleware.Recovery,
	}

	return &http.Server{
		Addr:         addr,
		Handler:      chain.Then(mux),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}, nil
}
