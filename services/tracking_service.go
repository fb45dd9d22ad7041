package services

import (
	"context"
	"net/url"
	"strings"
	"time"

	"saraylidoener_server/database"
	"saraylidoener_server/lib"
	"saraylidoener_server/structs"
	"saraylidoener_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

const (
	maxEventBatchSize = 50
	maxEventPageLen   = 2048
)

// allowedEventTypes is the server-side allow-list for client analytics
// events. Anything else is silently dropped.
var allowedEventTypes = map[string]bool{
	"scroll_depth": true,
	"click":        true,
}

// supportedLocales mirrors the storefront's locale path prefixes.
var supportedLocales = map[string]bool{
	"de": true,
	"en": true,
	"tr": true,
}

// TrackingService records page views and client events. Everything here is
// best-effort analytics: failures are logged and never surface to visitors.
type TrackingService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewTrackingService(logger *gecho.Logger, db *database.DB) *TrackingService {
	return &TrackingService{
		logger: logger,
		db:     db,
	}
}

// PageViewInput carries everything the tracking middleware extracted from one
// storefront request.
type PageViewInput struct {
	IP        string
	UserAgent string
	Referer   string
	URL       string // full request URI including query string
	VisitorId *string
}

// RecordPageView persists one page view with its attribution fields resolved.
// Explicit UTM parameters on the landing URL win; the referer classifier only
// fills in source and medium when UTM left them unset. Callers run this off
// the request path, so errors are logged rather than returned.
func (ts *TrackingService) RecordPageView(ctx context.Context, input PageViewInput) {
	view := tables.PageView{
		IpAddress:   input.IP,
		UserAgent:   optionalString(input.UserAgent),
		Referer:     optionalString(input.Referer),
		LandingPage: input.URL,
		VisitorId:   input.VisitorId,
		CreatedAt:   time.Now(),
	}

	if u, err := url.Parse(input.URL); err == nil {
		view.LandingPage = u.Path
		view.Locale = localeFromPath(u.Path)

		query := u.Query()
		view.UtmSource = optionalString(query.Get("utm_source"))
		view.UtmMedium = optionalString(query.Get("utm_medium"))
		view.UtmCampaign = optionalString(query.Get("utm_campaign"))
		view.UtmTerm = optionalString(query.Get("utm_term"))
		view.UtmContent = optionalString(query.Get("utm_content"))
	}

	if view.UtmSource == nil && input.Referer != "" {
		if source, medium, ok := lib.InferSourceFromReferer(input.Referer); ok {
			view.UtmSource = &source
			if view.UtmMedium == nil {
				view.UtmMedium = &medium
			}
		}
	}

	err := database.WithRetry(ctx, func() error {
		_, err := ts.db.NewInsert().Model(&view).Exec(ctx)
		return err
	})
	if err != nil {
		ts.logger.Warn("Failed to record page view", gecho.Field("error", err))
	}
}

// InsertEvents stores a client event batch. Events with an unknown type or an
// oversized page field are dropped, not rejected: the batch is best-effort
// telemetry and a single bad entry must not void the rest. Returns the number
// of events actually stored.
func (ts *TrackingService) InsertEvents(ctx context.Context, visitorId string, events []structs.IncomingEvent) (int, error) {
	if len(events) > maxEventBatchSize {
		events = events[:maxEventBatchSize]
	}

	rows := make([]tables.VisitorEvent, 0, len(events))
	now := time.Now()
	for _, event := range events {
		if !allowedEventTypes[event.Type] {
			continue
		}
		if event.Page == "" || len(event.Page) > maxEventPageLen {
			continue
		}
		rows = append(rows, tables.VisitorEvent{
			VisitorId: visitorId,
			EventType: event.Type,
			Page:      event.Page,
			Metadata:  event.Metadata,
			CreatedAt: now,
		})
	}

	if len(rows) == 0 {
		return 0, nil
	}

	if _, err := ts.db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return 0, err
	}

	return len(rows), nil
}

// localeFromPath extracts the locale from a path like /de/speisekarte. Paths
// without a locale prefix belong to the default German storefront.
func localeFromPath(path string) *string {
	trimmed := strings.TrimPrefix(path, "/")
	segment, _, _ := strings.Cut(trimmed, "/")
	if supportedLocales[segment] {
		return &segment
	}
	fallback := "de"
	return &fallback
}
