package services

import (
	"context"
	"time"

	"saraylidoener_server/database"
	"saraylidoener_server/lib"
	"saraylidoener_server/structs"
	"saraylidoener_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

const trafficPageSize = 25

// revenueStatuses are the order statuses that count towards revenue figures.
// A paid order keeps counting while it moves through the kitchen.
var revenueStatuses = []string{
	string(tables.OrderStatusPaid),
	string(tables.OrderStatusInProcess),
	string(tables.OrderStatusFulfilled),
}

// AnalyticsService computes the admin dashboard aggregates. All reads, no
// writes; everything is derived from page_views, visitor_events and orders.
type AnalyticsService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewAnalyticsService(logger *gecho.Logger, db *database.DB) *AnalyticsService {
	return &AnalyticsService{
		logger: logger,
		db:     db,
	}
}

// TrafficFilter narrows the traffic report. A nil bound means unbounded on
// that side; Source filters on the resolved utm_source.
type TrafficFilter struct {
	From   *time.Time
	To     *time.Time
	Source string
	Page   int
}

// filtered builds a page_views query with the filter's range and source
// applied. Every aggregate of the report starts from this.
func (as *AnalyticsService) filtered(model any, filter TrafficFilter) *bun.SelectQuery {
	q := as.db.NewSelect().Model(model)
	if filter.From != nil {
		q = q.Where("pv.created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("pv.created_at <= ?", *filter.To)
	}
	if filter.Source != "" {
		q = q.Where("coalesce(pv.utm_source, 'direct') = ?", filter.Source)
	}
	return q
}

// TrafficReport builds the page-view dashboard: one page of raw views plus
// the aggregates over the whole filtered range. The timeline is bucketed
// hourly when the range spans at most one day, daily otherwise.
func (as *AnalyticsService) TrafficReport(ctx context.Context, filter TrafficFilter) (*structs.TrafficReport, error) {
	report := &structs.TrafficReport{
		Views:         []tables.PageView{},
		SourceStats:   []structs.SourceCount{},
		CampaignStats: []structs.CampaignCount{},
		DailyStats:    []structs.DailyCount{},
		Timeline:      []structs.TimelineBucket{},
		AllSources:    []string{},
	}

	total, err := as.filtered((*tables.PageView)(nil), filter).Count(ctx)
	if err != nil {
		return nil, err
	}
	report.TotalViews = total

	page := filter.Page
	if page < 1 {
		page = 1
	}
	report.Pagination = structs.Pagination{
		Page:       page,
		PageSize:   trafficPageSize,
		Total:      total,
		TotalPages: (total + trafficPageSize - 1) / trafficPageSize,
	}

	err = as.filtered(&report.Views, filter).
		Order("pv.created_at DESC").
		Limit(trafficPageSize).
		Offset((page - 1) * trafficPageSize).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	err = as.filtered((*tables.PageView)(nil), filter).
		ColumnExpr("count(DISTINCT pv.visitor_id)").
		Scan(ctx, &report.UniqueVisitors)
	if err != nil {
		return nil, err
	}

	today, err := as.db.NewSelect().
		Model((*tables.PageView)(nil)).
		Where("pv.created_at >= CURRENT_DATE").
		Count(ctx)
	if err != nil {
		return nil, err
	}
	report.TodayViews = today

	err = as.filtered((*tables.PageView)(nil), filter).
		ColumnExpr("coalesce(pv.utm_source, 'direct') AS source, count(*) AS count").
		GroupExpr("coalesce(pv.utm_source, 'direct')").
		OrderExpr("count DESC").
		Limit(10).
		Scan(ctx, &report.SourceStats)
	if err != nil {
		return nil, err
	}
	if len(report.SourceStats) > 0 {
		report.TopSource = report.SourceStats[0].Source
	}

	err = as.filtered((*tables.PageView)(nil), filter).
		ColumnExpr("pv.utm_campaign AS campaign, count(*) AS count").
		Where("pv.utm_campaign IS NOT NULL").
		GroupExpr("pv.utm_campaign").
		OrderExpr("count DESC").
		Limit(10).
		Scan(ctx, &report.CampaignStats)
	if err != nil {
		return nil, err
	}

	err = as.filtered((*tables.PageView)(nil), filter).
		ColumnExpr("to_char(pv.created_at, 'YYYY-MM-DD') AS date, count(*) AS count").
		GroupExpr("to_char(pv.created_at, 'YYYY-MM-DD')").
		OrderExpr("date ASC").
		Scan(ctx, &report.DailyStats)
	if err != nil {
		return nil, err
	}

	bucketFormat := "DD.MM"
	if filter.From != nil && filter.To != nil && filter.To.Sub(*filter.From) <= 24*time.Hour {
		bucketFormat = "HH24:00"
	}
	err = as.filtered((*tables.PageView)(nil), filter).
		ColumnExpr("to_char(pv.created_at, ?) AS label, count(*) AS count", bucketFormat).
		GroupExpr("to_char(pv.created_at, ?)", bucketFormat).
		OrderExpr("min(pv.created_at) ASC").
		Scan(ctx, &report.Timeline)
	if err != nil {
		return nil, err
	}

	err = as.db.NewSelect().
		Model((*tables.PageView)(nil)).
		ColumnExpr("DISTINCT coalesce(pv.utm_source, 'direct')").
		Scan(ctx, &report.AllSources)
	if err != nil {
		return nil, err
	}

	return report, nil
}

// VisitorProfile assembles everything known about one visitor id. A visitor
// with neither page views nor events does not exist: lib.ErrNotFound.
func (as *AnalyticsService) VisitorProfile(ctx context.Context, visitorId string) (*structs.VisitorProfile, error) {
	profile := &structs.VisitorProfile{
		VisitorId: visitorId,
		PageViews: []tables.PageView{},
		Events:    []tables.VisitorEvent{},
		Orders:    []tables.Order{},
	}

	err := as.db.NewSelect().
		Model(&profile.PageViews).
		Where("pv.visitor_id = ?", visitorId).
		Order("pv.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	err = as.db.NewSelect().
		Model(&profile.Events).
		Where("ve.visitor_id = ?", visitorId).
		Order("ve.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	if len(profile.PageViews) == 0 && len(profile.Events) == 0 {
		return nil, lib.ErrNotFound
	}

	err = as.db.NewSelect().
		Model(&profile.Orders).
		Where("o.visitor_id = ?", visitorId).
		Order("o.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	profile.TotalPageViews = len(profile.PageViews)
	profile.TotalEvents = len(profile.Events)

	// First and last seen span both observation kinds
	for _, view := range profile.PageViews {
		profile.FirstSeen, profile.LastSeen = widenSeen(profile.FirstSeen, profile.LastSeen, view.CreatedAt)
		if profile.IpAddress == "" {
			profile.IpAddress = view.IpAddress
		}
		if profile.UserAgent == "" && view.UserAgent != nil {
			profile.UserAgent = *view.UserAgent
		}
	}
	for _, event := range profile.Events {
		profile.FirstSeen, profile.LastSeen = widenSeen(profile.FirstSeen, profile.LastSeen, event.CreatedAt)
	}

	return profile, nil
}

func widenSeen(first, last, at time.Time) (time.Time, time.Time) {
	if first.IsZero() || at.Before(first) {
		first = at
	}
	if last.IsZero() || at.After(last) {
		last = at
	}
	return first, last
}

// OrderStats computes the order dashboard aggregates.
func (as *AnalyticsService) OrderStats(ctx context.Context) (*structs.OrderStats, error) {
	stats := &structs.OrderStats{
		StatusCounts: []structs.StatusCount{},
		DailyRevenue: []structs.DailyRevenue{},
		TypeCounts:   []structs.OrderTypeCount{},
	}

	total, err := as.db.NewSelect().Model((*tables.Order)(nil)).Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalOrders = total

	revenueSince := func(sinceExpr string) (int64, error) {
		var sum int64
		q := as.db.NewSelect().
			Model((*tables.Order)(nil)).
			ColumnExpr("coalesce(sum(o.total_amount), 0)").
			Where("o.status IN (?)", bun.In(revenueStatuses))
		if sinceExpr != "" {
			q = q.Where("o.created_at >= " + sinceExpr)
		}
		if err := q.Scan(ctx, &sum); err != nil {
			return 0, err
		}
		return sum, nil
	}

	if stats.TotalRevenue, err = revenueSince(""); err != nil {
		return nil, err
	}
	if stats.TodayRevenue, err = revenueSince("CURRENT_DATE"); err != nil {
		return nil, err
	}
	if stats.WeekRevenue, err = revenueSince("now() - interval '7 days'"); err != nil {
		return nil, err
	}
	if stats.MonthRevenue, err = revenueSince("now() - interval '30 days'"); err != nil {
		return nil, err
	}

	todayOrders, err := as.db.NewSelect().
		Model((*tables.Order)(nil)).
		Where("o.created_at >= CURRENT_DATE").
		Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TodayOrders = todayOrders

	err = as.db.NewSelect().
		Model((*tables.Order)(nil)).
		ColumnExpr("o.status AS status, count(*) AS count").
		GroupExpr("o.status").
		OrderExpr("count DESC").
		Scan(ctx, &stats.StatusCounts)
	if err != nil {
		return nil, err
	}

	err = as.db.NewSelect().
		Model((*tables.Order)(nil)).
		ColumnExpr("to_char(o.created_at, 'YYYY-MM-DD') AS date, coalesce(sum(o.total_amount), 0) AS revenue, count(*) AS count").
		Where("o.status IN (?)", bun.In(revenueStatuses)).
		Where("o.created_at >= now() - interval '30 days'").
		GroupExpr("to_char(o.created_at, 'YYYY-MM-DD')").
		OrderExpr("date ASC").
		Scan(ctx, &stats.DailyRevenue)
	if err != nil {
		return nil, err
	}

	err = as.db.NewSelect().
		Model((*tables.Order)(nil)).
		ColumnExpr("o.order_type AS type, count(*) AS count").
		GroupExpr("o.order_type").
		OrderExpr("count DESC").
		Scan(ctx, &stats.TypeCounts)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
