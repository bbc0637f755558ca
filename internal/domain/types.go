package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// Order is the sort direction sent to the backend.
type Order string

const (
	Asc  Order = "ASC"
	Desc Order = "DESC"
)

// ParseOrder accepts asc/desc in any case; anything else falls back to def.
func ParseOrder(s string, def Order) Order {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(Asc):
		return Asc
	case string(Desc):
		return Desc
	default:
		return def
	}
}

// Flip returns the opposite direction.
func (o Order) Flip() Order {
	if o == Desc {
		return Asc
	}
	return Desc
}

// PageInfo is the pagination block of a search response.
type PageInfo struct {
	Number        int `json:"number"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// Last is the zero-based index of the final page (0 when there are no pages).
func (p PageInfo) Last() int {
	if p.TotalPages <= 0 {
		return 0
	}
	return p.TotalPages - 1
}

// PageResult is one page of items as returned by GET /{entity}/search.
type PageResult[T any] struct {
	Items []T      `json:"data"`
	Page  PageInfo `json:"page"`
}

// Valid checks the page invariants: items fit the page size and a non-empty page lies within the total.
func (r PageResult[T]) Valid() bool {
	if r.Page.Size > 0 && len(r.Items) > r.Page.Size {
		return false
	}
	if len(r.Items) == 0 {
		return true
	}
	return r.Page.Number*r.Page.Size < r.Page.TotalElements
}

// Filter is the search state of one list screen. It is treated as a value: every change builds a new one.
type Filter struct {
	Page    int
	Size    int
	SortBy  string
	Order   Order
	Keyword string
	// Values holds entity specific criteria; slices are repeated keys, absent keys mean null.
	Values url.Values
}

// Clone returns a deep copy.
func (f Filter) Clone() Filter {
	out := f
	out.Values = make(url.Values, len(f.Values))
	for k, v := range f.Values {
		out.Values[k] = append([]string(nil), v...)
	}
	return out
}

// WithPage returns a copy with paging and sorting replaced.
func (f Filter) WithPage(page, size int, sortBy string, order Order) Filter {
	out := f.Clone()
	out.Page = page
	out.Size = size
	if sortBy != "" {
		out.SortBy = sortBy
	}
	if order != "" {
		out.Order = order
	}
	return out
}

// WithSearch returns a copy with keyword and entity values replaced wholesale and the page reset to 0.
func (f Filter) WithSearch(keyword string, values url.Values) Filter {
	out := f.Clone()
	out.Page = 0
	out.Keyword = strings.TrimSpace(keyword)
	out.Values = url.Values{}
	for k, v := range values {
		var kept []string
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				kept = append(kept, s)
			}
		}
		if len(kept) > 0 {
			out.Values[k] = kept
		}
	}
	return out
}

// Query serializes the filter for the backend search endpoint. Arrays become repeated keys.
func (f Filter) Query() url.Values {
	q := url.Values{}
	for k, v := range f.Values {
		q[k] = append([]string(nil), v...)
	}
	if f.Keyword != "" {
		q.Set("keyword", f.Keyword)
	}
	q.Set("page", strconv.Itoa(f.Page))
	q.Set("size", strconv.Itoa(f.Size))
	if f.SortBy != "" {
		q.Set("sortBy", f.SortBy)
	}
	if f.Order != "" {
		q.Set("order", string(f.Order))
	}
	return q
}

// Option is a label/value pair used by selects and reference lookups.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
