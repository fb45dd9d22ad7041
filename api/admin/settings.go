package admin

import (
	"net/http"

	"saraylidoener_server/handling"
	"saraylidoener_server/lib"
	"saraylidoener_server/structs"
	"saraylidoener_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// GetSettings returns the raw store settings row for the settings panel.
func (arm *AdminRoutesManager) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := arm.storeService.Settings(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to load store settings", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(settings),
		gecho.Send(),
	)
}

// UpdateSettings switches the availability mode and, in manual mode, the
// open flag and closed message.
func (arm *AdminRoutesManager) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.UpdateStoreSettingsRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid settings request"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	isOpen := true
	if body.IsOpen != nil {
		isOpen = *body.IsOpen
	}

	settings, err := arm.storeService.UpdateSettings(r.Context(), tables.StoreMode(body.Mode), isOpen, body.ClosedMessage)
	if err != nil {
		handling.HandleError(err, "Failed to update store settings", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(settings),
		gecho.Send(),
	)
}

// UpdateShopEnabled flips the checkout kill switch.
func (arm *AdminRoutesManager) UpdateShopEnabled(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.UpdateShopEnabledRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid request"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	settings, err := arm.storeService.SetShopEnabled(r.Context(), *body.Enabled)
	if err != nil {
		handling.HandleError(err, "Failed to update shop flag", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(settings),
		gecho.Send(),
	)
}
