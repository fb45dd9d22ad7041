package structs

import (
	"time"

	"saraylidoener_server/structs/tables"
)

// SourceCount is one row of the grouped-by-source traffic report.
type SourceCount struct {
	Source string `bun:"source" json:"source"`
	Count  int    `bun:"count" json:"count"`
}

type CampaignCount struct {
	Campaign string `bun:"campaign" json:"campaign"`
	Count    int    `bun:"count" json:"count"`
}

type DailyCount struct {
	Date  string `bun:"date" json:"date"`
	Count int    `bun:"count" json:"count"`
}

// TimelineBucket is one bucket of the traffic timeline. Labels are "HH:00"
// for hourly buckets and "DD.MM" for daily ones.
type TimelineBucket struct {
	Label string `bun:"label" json:"label"`
	Count int    `bun:"count" json:"count"`
}

// TrafficReport is the page-view dashboard payload.
type TrafficReport struct {
	Views          []tables.PageView `json:"views"`
	TotalViews     int               `json:"total_views"`
	UniqueVisitors int               `json:"unique_visitors"`
	TodayViews     int               `json:"today_views"`
	TopSource      string            `json:"top_source"`
	SourceStats    []SourceCount     `json:"source_stats"`
	CampaignStats  []CampaignCount   `json:"campaign_stats"`
	DailyStats     []DailyCount      `json:"daily_stats"`
	Timeline       []TimelineBucket  `json:"traffic_timeline"`
	AllSources     []string          `json:"all_sources"`
	Pagination     Pagination        `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// VisitorProfile is a computed view over all rows sharing one visitor id;
// there is no stored "visitor" entity.
type VisitorProfile struct {
	VisitorId      string                `json:"visitor_id"`
	IpAddress      string                `json:"ip_address"`
	UserAgent      string                `json:"user_agent"`
	FirstSeen      time.Time             `json:"first_seen"`
	LastSeen       time.Time             `json:"last_seen"`
	PageViews      []tables.PageView     `json:"page_views"`
	Events         []tables.VisitorEvent `json:"events"`
	Orders         []tables.Order        `json:"orders"`
	TotalPageViews int                   `json:"total_page_views"`
	TotalEvents    int                   `json:"total_events"`
}

type StatusCount struct {
	Status string `bun:"status" json:"status"`
	Count  int    `bun:"count" json:"count"`
}

type OrderTypeCount struct {
	Type  string `bun:"type" json:"type"`
	Count int    `bun:"count" json:"count"`
}

type DailyRevenue struct {
	Date    string `bun:"date" json:"date"`
	Revenue int64  `bun:"revenue" json:"revenue"`
	Count   int    `bun:"count" json:"count"`
}

// OrderStats is the order dashboard payload. Revenue figures only count
// orders whose payment settled (paid, in_process, fulfilled), in cents.
type OrderStats struct {
	TotalOrders  int              `json:"total_orders"`
	TotalRevenue int64            `json:"total_revenue"`
	TodayOrders  int              `json:"today_orders"`
	TodayRevenue int64            `json:"today_revenue"`
	WeekRevenue  int64            `json:"week_revenue"`
	MonthRevenue int64            `json:"month_revenue"`
	StatusCounts []StatusCount    `json:"status_counts"`
	DailyRevenue []DailyRevenue   `json:"daily_revenue"`
	TypeCounts   []OrderTypeCount `json:"order_type_distribution"`
}

// StoreStatus is the public store-status payload.
type StoreStatus struct {
	Open          bool           `json:"open"`
	ClosedMessage *string        `json:"closedMessage"`
	Mode          string         `json:"mode"`
	ShopEnabled   bool           `json:"shopEnabled"`
	Schedule      *StoreSchedule `json:"schedule"`
}

type StoreSchedule struct {
	OpenHour  int    `json:"openHour"`
	CloseHour int    `json:"closeHour"`
	Timezone  string `json:"timezone"`
}
