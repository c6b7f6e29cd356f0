// Package page slices ordered results into fixed-size pages.
package page

import (
	"errors"
	"strconv"
	"strings"
)

// DefaultSize is the page size used when a caller does not supply one.
const DefaultSize = 20

// ErrInvalidPagination is returned for a non-numeric page number or a
// non-positive page size.
var ErrInvalidPagination = errors.New("page and page_size must be positive integers")

// Page is the envelope returned by every listing endpoint.
type Page[T any] struct {
	Result      []T `json:"result"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
}

// Request is a validated page request.
type Request struct {
	Page int
	Size int
}

// ParseRequest reads page and size from their raw query values. Empty
// values fall back to page 1 and defaultSize. A page number outside the
// available range is not an error; Paginate answers it with an empty page.
func ParseRequest(rawPage, rawSize string, defaultSize int) (Request, error) {
	if defaultSize <= 0 {
		defaultSize = DefaultSize
	}
	req := Request{Page: 1, Size: defaultSize}

	if v := strings.TrimSpace(rawPage); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Request{}, ErrInvalidPagination
		}
		req.Page = n
	}

	if v := strings.TrimSpace(rawSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Request{}, ErrInvalidPagination
		}
		req.Size = n
	}

	return req, nil
}

// LastPage returns ceil(total/size), or 0 when there is nothing to page.
func LastPage(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total-1)/size + 1
}

// Paginate returns the requested page of items. Pages before the first or
// after the last come back empty with the requested page number echoed.
// The returned Result is never nil and never aliases items.
func Paginate[T any](items []T, req Request) (Page[T], error) {
	if req.Size <= 0 {
		return Page[T]{}, ErrInvalidPagination
	}

	last := LastPage(len(items), req.Size)
	out := Page[T]{Result: []T{}, CurrentPage: req.Page, LastPage: last}

	if req.Page < 1 || req.Page > last {
		return out, nil
	}

	start := (req.Page - 1) * req.Size
	end := min(start+req.Size, len(items))
	out.Result = append(out.Result, items[start:end]...)

	return out, nil
}
