package utils

import (
	"net/http"
	"strconv"
)

// ParsePage reads a 1-indexed page number from the query string. Anything
// missing, unparseable or below 1 falls back to page 1.
func ParsePage(r *http.Request, name string) int {
	page, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// TotalPages is ceil(count / pageSize); zero matches yield zero pages.
func TotalPages(count int64, pageSize int) int {
	return int((count + int64(pageSize) - 1) / int64(pageSize))
}
