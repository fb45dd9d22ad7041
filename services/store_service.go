package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"saraylidoener_server/database"
	"saraylidoener_server/structs"
	"saraylidoener_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

const (
	storeStatusCacheKey = "store:status"
	storeStatusCacheTTL = 30 * time.Second
)

// StoreService resolves the public store status and manages the singleton
// settings row.
type StoreService struct {
	logger         *gecho.Logger
	cfg            *structs.Config
	db             *database.DB
	cacheService   *CacheService
	paymentService *PaymentService
}

func NewStoreService(
	logger *gecho.Logger,
	cfg *structs.Config,
	db *database.DB,
	cacheService *CacheService,
	paymentService *PaymentService,
) *StoreService {
	return &StoreService{
		logger:         logger,
		cfg:            cfg,
		db:             db,
		cacheService:   cacheService,
		paymentService: paymentService,
	}
}

// Status resolves the current public store status. Manual mode reports the
// stored open flag verbatim; auto mode derives it from the opening hours in
// the store's civil timezone. shopEnabled additionally requires the payment
// provider to be fully configured, so a missing Stripe key can never leave
// checkout reachable.
//
// The result is cached briefly in Redis; cache failures fall through to a
// fresh computation.
func (ss *StoreService) Status(ctx context.Context) (*structs.StoreStatus, error) {
	if cached, err := ss.cacheService.Get(storeStatusCacheKey); err == nil && cached != "" {
		var status structs.StoreStatus
		if err := json.Unmarshal([]byte(cached), &status); err == nil {
			return &status, nil
		}
	}

	settings, err := ss.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	status, err := ss.composeStatus(settings, time.Now())
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(status); err == nil {
		if err := ss.cacheService.Set(storeStatusCacheKey, string(payload), storeStatusCacheTTL); err != nil {
			ss.logger.Debug("Failed to cache store status", gecho.Field("error", err))
		}
	}

	return status, nil
}

// composeStatus derives the public status from the settings row. The closed
// message is only exposed while the store is manually closed; an open or
// auto-mode store never carries one.
func (ss *StoreService) composeStatus(settings *tables.StoreSettings, now time.Time) (*structs.StoreStatus, error) {
	status := &structs.StoreStatus{
		Mode:        string(settings.Mode),
		ShopEnabled: settings.ShopEnabled && ss.paymentService.Configured(),
	}

	switch settings.Mode {
	case tables.StoreModeManual:
		status.Open = settings.IsOpen
		if !settings.IsOpen {
			status.ClosedMessage = settings.ClosedMessage
		}
	default:
		open, err := ss.withinOpeningHours(now)
		if err != nil {
			return nil, err
		}
		status.Open = open
		status.Schedule = &structs.StoreSchedule{
			OpenHour:  ss.cfg.Store.OpenHour,
			CloseHour: ss.cfg.Store.CloseHour,
			Timezone:  ss.cfg.Store.Timezone,
		}
	}

	return status, nil
}

// withinOpeningHours checks whether the wall clock in the store timezone
// falls inside [OpenHour, CloseHour).
func (ss *StoreService) withinOpeningHours(now time.Time) (bool, error) {
	loc, err := time.LoadLocation(ss.cfg.Store.Timezone)
	if err != nil {
		return false, fmt.Errorf("invalid store timezone %q: %w", ss.cfg.Store.Timezone, err)
	}

	hour := now.In(loc).Hour()
	return hour >= ss.cfg.Store.OpenHour && hour < ss.cfg.Store.CloseHour, nil
}

// loadSettings fetches the singleton row; a missing row degrades to the
// defaults (auto mode, open, shop enabled) rather than failing.
func (ss *StoreService) loadSettings(ctx context.Context) (*tables.StoreSettings, error) {
	settings := new(tables.StoreSettings)
	err := ss.db.NewSelect().Model(settings).Where("ss.id = ?", tables.StoreSettingsRowId).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &tables.StoreSettings{
				Id:          tables.StoreSettingsRowId,
				Mode:        tables.StoreModeAuto,
				IsOpen:      true,
				ShopEnabled: true,
			}, nil
		}
		return nil, err
	}
	return settings, nil
}

// UpdateSettings upserts the singleton row with a new mode, manual open flag
// and closed message, then drops the status cache. The message belongs to the
// closed state: reopening discards it.
func (ss *StoreService) UpdateSettings(ctx context.Context, mode tables.StoreMode, isOpen bool, closedMessage *string) (*tables.StoreSettings, error) {
	current, err := ss.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	if isOpen {
		closedMessage = nil
	}

	settings := &tables.StoreSettings{
		Id:            tables.StoreSettingsRowId,
		Mode:          mode,
		IsOpen:        isOpen,
		ClosedMessage: closedMessage,
		ShopEnabled:   current.ShopEnabled,
		UpdatedAt:     time.Now(),
	}

	if err := ss.upsert(ctx, settings); err != nil {
		return nil, err
	}

	ss.invalidateStatusCache()
	return settings, nil
}

// SetShopEnabled flips the checkout kill switch.
func (ss *StoreService) SetShopEnabled(ctx context.Context, enabled bool) (*tables.StoreSettings, error) {
	current, err := ss.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	current.ShopEnabled = enabled
	current.UpdatedAt = time.Now()

	if err := ss.upsert(ctx, current); err != nil {
		return nil, err
	}

	ss.invalidateStatusCache()
	return current, nil
}

func (ss *StoreService) upsert(ctx context.Context, settings *tables.StoreSettings) error {
	_, err := ss.db.NewInsert().
		Model(settings).
		On("CONFLICT (id) DO UPDATE").
		Set("mode = EXCLUDED.mode").
		Set("is_open = EXCLUDED.is_open").
		Set("closed_message = EXCLUDED.closed_message").
		Set("shop_enabled = EXCLUDED.shop_enabled").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save store settings: %w", err)
	}
	return nil
}

func (ss *StoreService) invalidateStatusCache() {
	if err := ss.cacheService.Delete(storeStatusCacheKey); err != nil {
		ss.logger.Debug("Failed to invalidate store status cache", gecho.Field("error", err))
	}
}

// Settings returns the raw singleton row for the admin settings panel.
func (ss *StoreService) Settings(ctx context.Context) (*tables.StoreSettings, error) {
	return ss.loadSettings(ctx)
}
