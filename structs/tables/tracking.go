package tables

import (
	"time"
)

// PageView is one analytics observation of a storefront page load.
// Append-only; rows are never mutated or deleted.
type PageView struct {
	tableName struct{} `bun:"table:page_views,alias:pv"`
	Id        int64    `bun:"id,pk,autoincrement" json:"id"`

	IpAddress   string  `bun:"ip_address,notnull" json:"ip_address"`
	VisitorId   *string `bun:"visitor_id,nullzero" json:"visitor_id,omitempty"`
	UserAgent   *string `bun:"user_agent,nullzero" json:"user_agent,omitempty"`
	Referer     *string `bun:"referer,nullzero" json:"referer,omitempty"`
	LandingPage string  `bun:"landing_page,notnull" json:"landing_page"`

	UtmSource   *string `bun:"utm_source,nullzero" json:"utm_source,omitempty"`
	UtmMedium   *string `bun:"utm_medium,nullzero" json:"utm_medium,omitempty"`
	UtmCampaign *string `bun:"utm_campaign,nullzero" json:"utm_campaign,omitempty"`
	UtmTerm     *string `bun:"utm_term,nullzero" json:"utm_term,omitempty"`
	UtmContent  *string `bun:"utm_content,nullzero" json:"utm_content,omitempty"`

	Locale    *string   `bun:"locale,nullzero" json:"locale,omitempty"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// VisitorEvent is one client-side analytics event (scroll depth, click).
// Append-only.
type VisitorEvent struct {
	tableName struct{} `bun:"table:visitor_events,alias:ve"`
	Id        int64    `bun:"id,pk,autoincrement" json:"id"`

	VisitorId string         `bun:"visitor_id,notnull" json:"visitor_id"`
	EventType string         `bun:"event_type,notnull" json:"event_type"`
	Page      string         `bun:"page,notnull" json:"page"`
	Metadata  map[string]any `bun:"metadata,type:jsonb,nullzero" json:"metadata,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
