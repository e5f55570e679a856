package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/penfold-app/backend/database"
)

// Listing endpoints share one query-parameter dialect: tags (comma-separated
// titles, match any), created_after / created_before (RFC 3339 or
// YYYY-MM-DD), search, ordering ("-" prefix for descending), limit, offset.

const maxPageSize = 100

func parseBlogFilter(r *http.Request) database.BlogFilter {
	q := r.URL.Query()
	limit, offset := parsePagination(q)
	return database.BlogFilter{
		CreatedAt: parseCreatedAtRange(q),
		Search:    q.Get("search"),
		Ordering:  q.Get("ordering"),
		Limit:     limit,
		Offset:    offset,
	}
}

func parsePostFilter(r *http.Request) database.PostFilter {
	q := r.URL.Query()
	limit, offset := parsePagination(q)

	var tags []string
	if raw := q.Get("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	return database.PostFilter{
		Tags:      tags,
		CreatedAt: parseCreatedAtRange(q),
		Search:    q.Get("search"),
		Ordering:  q.Get("ordering"),
		Limit:     limit,
		Offset:    offset,
	}
}

func parseCreatedAtRange(q url.Values) database.RangeFilter {
	return database.RangeFilter{
		After:  parseTime(q.Get("created_after")),
		Before: parseTime(q.Get("created_before")),
	}
}

func parseTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

func parsePagination(q url.Values) (limit, offset int) {
	limit, _ = strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	offset, _ = strconv.Atoi(q.Get("offset"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
