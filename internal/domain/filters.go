package domain

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filters is the closed set of listing filters the dashboard exposes.
// Zero values mean "not set".
type Filters struct {
	Search     string
	Status     string
	DateStart  time.Time
	DateEnd    time.Time
	WalletType string
	SortBy     string
	SortOrder  SortOrder
}

// Signature serializes the cache-relevant part of the filter set together
// with the page. Keys are always present and emitted in sorted order, so
// equal filter sets yield equal signatures.
func (f Filters) Signature(page int) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("search", strings.TrimSpace(f.Search))
	v.Set("status", strings.TrimSpace(f.Status))
	v.Set("startDate", formatDate(f.DateStart))
	v.Set("endDate", formatDate(f.DateEnd))
	v.Set("walletType", strings.TrimSpace(f.WalletType))
	return v.Encode()
}

// QueryParams builds the remote query for one page. Empty filters are
// omitted rather than sent as empty strings.
func (f Filters) QueryParams(page, pageSize int) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if pageSize > 0 {
		v.Set("limit", strconv.Itoa(pageSize))
	}
	setIfPresent(v, "search", f.Search)
	setIfPresent(v, "status", f.Status)
	setIfPresent(v, "startDate", formatDate(f.DateStart))
	setIfPresent(v, "endDate", formatDate(f.DateEnd))
	setIfPresent(v, "walletType", f.WalletType)
	setIfPresent(v, "sortBy", f.SortBy)
	setIfPresent(v, "sortOrder", string(f.SortOrder))
	return v
}

func setIfPresent(v url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		v.Set(key, value)
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
