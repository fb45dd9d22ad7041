package store

import (
	"net/http"

	"saraylidoener_server/handling"

	"github.com/MonkyMars/gecho"
)

// GetStoreStatus is the public open/closed endpoint the storefront polls.
func (srm *StoreRoutesManager) GetStoreStatus(w http.ResponseWriter, r *http.Request) {
	status, err := srm.storeService.Status(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to resolve store status", srm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(status),
		gecho.Send(),
	)
}

// GetMenu serves the canonical menu table the storefront renders prices from.
func (srm *StoreRoutesManager) GetMenu(w http.ResponseWriter, r *http.Request) {
	gecho.Success(w,
		gecho.WithData(srm.menuService.Items()),
		gecho.Send(),
	)
}
