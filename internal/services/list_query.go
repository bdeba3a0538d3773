package services

import (
	"jobbotron/internal/dtos"
	"jobbotron/internal/store"
)

// maxPageSize caps list responses; larger requested limits are clamped.
const maxPageSize = 50

func listFilter(query dtos.ListQuery) store.ListFilter {
	limit := query.Limit
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}
	return store.ListFilter{Search: query.Search, Limit: limit, Offset: offset}
}
