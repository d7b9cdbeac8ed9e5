package utils

import (
	"net/url"
	"strconv"
	"strings"

	"asset-system/pkg/types"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// ParseFilterFromQuery understands the list-query convention shared by every
// collection endpoint:
//
//	?search=macbook&sort[created_at]=desc&filter[asset_status_id]=S1&limit=10&offset=0
func ParseFilterFromQuery(values url.Values) types.Filter {
	filterReq := types.Filter{
		Sort:   make(map[string]string),
		Filter: make(map[string]interface{}),
		Limit:  DefaultLimit,
		Page:   1,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				filterReq.Limit = MaxLimit
			} else {
				filterReq.Limit = l
			}
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filterReq.Page = p
		}
	}

	if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filterReq.Offset = o
		}
	} else {
		filterReq.Offset = (filterReq.Page - 1) * filterReq.Limit
	}

	if search := values.Get("search"); search != "" {
		filterReq.Search = search
	}

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			filterReq.Filter[key[7:len(key)-1]] = vals[0]
		}
		if strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]") {
			filterReq.Sort[key[5:len(key)-1]] = vals[0]
		}
	}

	return filterReq
}
