package handling

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"saraylidoener_server/services"
	"saraylidoener_server/structs/tables"
)

// ParseOrderListOptions parses the admin order listing query parameters.
// Dates accept YYYY-MM-DD or RFC3339.
func ParseOrderListOptions(r *http.Request) (services.OrderListFilter, int, error) {
	query := r.URL.Query()

	filter := services.OrderListFilter{}
	page := 1

	if raw := query.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return filter, 0, fmt.Errorf("invalid page %q", raw)
		}
		page = parsed
	}

	if raw := query.Get("status"); raw != "" {
		status := tables.OrderStatus(raw)
		if !status.IsValid() {
			return filter, 0, fmt.Errorf("unknown status %q", raw)
		}
		filter.Status = &status
	}

	if raw := query.Get("date_from"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return filter, 0, err
		}
		filter.DateFrom = &t
	}

	if raw := query.Get("date_to"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return filter, 0, err
		}
		filter.DateTo = &t
	}

	return filter, page, nil
}

// ParseTrafficOptions parses the analytics dashboard query parameters.
func ParseTrafficOptions(r *http.Request) (services.TrafficFilter, error) {
	query := r.URL.Query()

	filter := services.TrafficFilter{Page: 1}

	if raw := query.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return filter, fmt.Errorf("invalid page %q", raw)
		}
		filter.Page = parsed
	}

	if raw := query.Get("from"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}

	if raw := query.Get("to"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return filter, err
		}
		filter.To = &t
	}

	filter.Source = query.Get("source")

	return filter, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return t, nil
}
