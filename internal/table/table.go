// Package table builds the view model of a paginated, sortable list.
package table

import (
	"fmt"
	"net/url"
	"strconv"

	"recruitadmin/internal/domain"
)

var DefaultPageSizes = []int{10, 20, 50, 100}

const (
	DefaultHalfWindow = 3
	NoData            = "No data"
)

// Column describes one table column. Render wins over Enum; with neither the cell is empty.
type Column[T any] struct {
	Field    string
	Label    string
	Sortable bool
	Render   func(T) string
	// Enum maps a raw enum value to its label.
	Enum func(T) string
	// Link makes the cell a link to the returned URL.
	Link func(T) string
	// Action makes the cell a button posting to the returned URL.
	Action func(T) string
}

// ToggleSort returns the next sort after clicking clicked: the same field flips direction,
// a different field starts descending.
func ToggleSort(currentField string, current domain.Order, clicked string) (string, domain.Order) {
	if clicked == currentField {
		return clicked, current.Flip()
	}
	return clicked, domain.Desc
}

// PageWindow returns the inclusive page range shown around page.
func PageWindow(page, totalPages, half int) (from, to int) {
	if totalPages <= 0 {
		return 0, -1
	}
	from = max(0, page-half)
	to = min(totalPages-1, page+half)
	return from, to
}

// RowNumber is the 1-based position of row i of the page across all pages.
func RowNumber(p domain.PageInfo, i int) int {
	return p.Size*p.Number + i + 1
}

type Cell struct {
	Text   string
	Link   string
	Action string
}

type Row struct {
	Key    string
	Number int
	Cells  []Cell
}

type Header struct {
	Label    string
	Field    string
	Sortable bool
	Active   bool
	Order    domain.Order
	// URL requests the toggled sort.
	URL string
}

type PageLink struct {
	Label    string
	Number   int
	URL      string
	Current  bool
	Disabled bool
}

type SizeOption struct {
	Size     int
	URL      string
	Selected bool
}

// View is everything a template needs to draw the table and its pager.
type View struct {
	Headers []Header
	Rows    []Row
	Empty   bool
	// Colspan spans the "No data" row over every column.
	Colspan int
	Pages   []PageLink
	First   PageLink
	Prev    PageLink
	Next    PageLink
	Last    PageLink
	Sizes   []SizeOption
	Range   string
}

type Options struct {
	// BaseURL receives page, size, sortBy and order as query parameters.
	BaseURL    string
	HalfWindow int
	PageSizes  []int
	// Actions adds a trailing column rendered by the template.
	Actions bool
}

// Build lays out one page of items.
func Build[T any](items []T, key func(T) string, p domain.PageInfo, cols []Column[T], f domain.Filter, opts Options) View {
	if opts.HalfWindow <= 0 {
		opts.HalfWindow = DefaultHalfWindow
	}
	if len(opts.PageSizes) == 0 {
		opts.PageSizes = DefaultPageSizes
	}
	link := func(page, size int, sortBy string, order domain.Order) string {
		return pageURL(opts.BaseURL, page, size, sortBy, order)
	}

	v := View{Colspan: len(cols) + 1}
	if opts.Actions {
		v.Colspan++
	}
	for _, c := range cols {
		h := Header{Label: c.Label, Field: c.Field, Sortable: c.Sortable}
		if c.Sortable {
			h.Active = c.Field == f.SortBy
			if h.Active {
				h.Order = f.Order
			}
			field, order := ToggleSort(f.SortBy, f.Order, c.Field)
			h.URL = link(p.Number, p.Size, field, order)
		}
		v.Headers = append(v.Headers, h)
	}

	for i, it := range items {
		r := Row{Number: RowNumber(p, i)}
		if key != nil {
			r.Key = key(it)
		}
		for _, c := range cols {
			r.Cells = append(r.Cells, cell(c, it))
		}
		v.Rows = append(v.Rows, r)
	}
	v.Empty = len(items) == 0

	last := p.Last()
	from, to := PageWindow(p.Number, p.TotalPages, opts.HalfWindow)
	for n := from; n <= to; n++ {
		v.Pages = append(v.Pages, PageLink{
			Label:   strconv.Itoa(n + 1),
			Number:  n,
			URL:     link(n, p.Size, f.SortBy, f.Order),
			Current: n == p.Number,
		})
	}
	atStart := p.Number <= 0
	atEnd := p.Number >= last
	v.First = PageLink{Label: "First", Number: 0, URL: link(0, p.Size, f.SortBy, f.Order), Disabled: atStart}
	v.Prev = PageLink{Label: "Previous", Number: max(0, p.Number-1), URL: link(max(0, p.Number-1), p.Size, f.SortBy, f.Order), Disabled: atStart}
	v.Next = PageLink{Label: "Next", Number: min(last, p.Number+1), URL: link(min(last, p.Number+1), p.Size, f.SortBy, f.Order), Disabled: atEnd}
	v.Last = PageLink{Label: "Last", Number: last, URL: link(last, p.Size, f.SortBy, f.Order), Disabled: atEnd}

	// a size change only reports the new size; page 0 follows from the filter being replaced
	for _, s := range opts.PageSizes {
		v.Sizes = append(v.Sizes, SizeOption{Size: s, URL: link(0, s, f.SortBy, f.Order), Selected: s == p.Size})
	}
	v.Range = RangeLabel(p, len(items))
	return v
}

func cell[T any](c Column[T], it T) Cell {
	out := Cell{}
	switch {
	case c.Render != nil:
		out.Text = c.Render(it)
	case c.Enum != nil:
		out.Text = c.Enum(it)
	}
	if c.Link != nil {
		out.Link = c.Link(it)
	}
	if c.Action != nil {
		out.Action = c.Action(it)
	}
	return out
}

// RangeLabel renders "from-to of total" for the rows on the page.
func RangeLabel(p domain.PageInfo, count int) string {
	if count == 0 {
		return fmt.Sprintf("0-0 of %d", p.TotalElements)
	}
	from := p.Size*p.Number + 1
	return fmt.Sprintf("%d-%d of %d", from, from+count-1, p.TotalElements)
}

func pageURL(base string, page, size int, sortBy string, order domain.Order) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if sortBy != "" {
		q.Set("sortBy", sortBy)
	}
	if order != "" {
		q.Set("order", string(order))
	}
	return base + "?" + q.Encode()
}
