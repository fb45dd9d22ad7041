package events

import (
	"encoding/json"
	"net/http"

	"saraylidoener_server/api/middleware"
	"saraylidoener_server/handling"
	"saraylidoener_server/structs"

	"github.com/MonkyMars/gecho"
)

const maxEventsPerBatch = 50

// IngestEvents accepts a batch of client analytics events. Rejections carry a
// machine-readable code so the storefront script can distinguish permanent
// failures (drop the batch) from transient ones (retry).
func (erm *EventRoutesManager) IngestEvents(w http.ResponseWriter, r *http.Request) {
	if !middleware.ConsentGranted(r) {
		gecho.Forbidden(w,
			gecho.WithMessage("Tracking consent not granted"),
			gecho.WithData(map[string]string{"code": "consent_required"}),
			gecho.Send(),
		)
		return
	}

	var body structs.EventsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		gecho.BadRequest(w,
			gecho.WithData(map[string]string{"code": "invalid_json"}),
			gecho.Send(),
		)
		return
	}

	if len(body.Events) == 0 {
		gecho.BadRequest(w,
			gecho.WithData(map[string]string{"code": "missing_events_array"}),
			gecho.Send(),
		)
		return
	}

	if len(body.Events) > maxEventsPerBatch {
		gecho.BadRequest(w,
			gecho.WithData(map[string]string{"code": "too_many_events"}),
			gecho.Send(),
		)
		return
	}

	visitorId := middleware.VisitorIDFromRequest(r)

	stored, err := erm.trackingService.InsertEvents(r.Context(), visitorId, body.Events)
	if err != nil {
		handling.HandleError(err, "Failed to store events", erm.logger, w)
		return
	}

	if stored == 0 {
		gecho.BadRequest(w,
			gecho.WithData(map[string]string{"code": "no_valid_events"}),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]int{"stored": stored}),
		gecho.Send(),
	)
}
