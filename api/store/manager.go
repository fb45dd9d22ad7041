package store

import (
	"saraylidoener_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type StoreRoutesManager struct {
	logger       *gecho.Logger
	storeService *services.StoreService
	menuService  *services.MenuService
}

func NewStoreRoutesManager(logger *gecho.Logger, storeService *services.StoreService, menuService *services.MenuService) *StoreRoutesManager {
	return &StoreRoutesManager{
		logger:       logger,
		storeService: storeService,
		menuService:  menuService,
	}
}

func (srm *StoreRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/api/store-status", srm.GetStoreStatus)
	r.Get("/api/menu", srm.GetMenu)
}
