package admin

import (
	"errors"
	"net/http"

	"saraylidoener_server/handling"
	"saraylidoener_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// GetAnalytics serves the traffic dashboard.
func (arm *AdminRoutesManager) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	filter, err := handling.ParseTrafficOptions(r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage(err.Error()),
			gecho.Send(),
		)
		return
	}

	report, err := arm.analyticsService.TrafficReport(r.Context(), filter)
	if err != nil {
		handling.HandleError(err, "Failed to build traffic report", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(report),
		gecho.Send(),
	)
}

// GetVisitor serves one visitor's derived profile.
func (arm *AdminRoutesManager) GetVisitor(w http.ResponseWriter, r *http.Request) {
	visitorId := chi.URLParam(r, "id")

	profile, err := arm.analyticsService.VisitorProfile(r.Context(), visitorId)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Visitor not found"), gecho.Send())
			return
		}
		handling.HandleError(err, "Failed to build visitor profile", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(profile),
		gecho.Send(),
	)
}

// GetStats serves the order dashboard aggregates.
func (arm *AdminRoutesManager) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := arm.analyticsService.OrderStats(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to compute order stats", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(stats),
		gecho.Send(),
	)
}
