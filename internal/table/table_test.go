package table

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitadmin/internal/domain"
)

type person struct {
	ID   string
	Name string
}

var cols = []Column[person]{
	{Field: "name", Label: "Name", Sortable: true, Render: func(p person) string { return p.Name }},
	{Field: "id", Label: "ID"},
}

func TestToggleSort(t *testing.T) {
	f, o := ToggleSort("fullName", domain.Desc, "fullName")
	assert.Equal(t, "fullName", f)
	assert.Equal(t, domain.Asc, o)
	_, o = ToggleSort(f, o, "fullName")
	assert.Equal(t, domain.Desc, o)

	for _, start := range []domain.Order{domain.Asc, domain.Desc} {
		f, o = ToggleSort("fullName", start, "email")
		assert.Equal(t, "email", f)
		assert.Equal(t, domain.Desc, o, "a new field always starts descending")
	}
}

func TestToggleSameFieldTwiceFromDescEndsAscThenDesc(t *testing.T) {
	field, order := ToggleSort("", domain.Asc, "title")
	require.Equal(t, domain.Desc, order)
	_, order = ToggleSort(field, order, "title")
	assert.Equal(t, domain.Asc, order)
}

func TestPageWindow(t *testing.T) {
	cases := []struct{ page, total, from, to int }{
		{0, 10, 0, 3},
		{5, 10, 2, 8},
		{9, 10, 6, 9},
		{0, 1, 0, 0},
	}
	for _, c := range cases {
		from, to := PageWindow(c.page, c.total, 3)
		assert.Equal(t, [2]int{c.from, c.to}, [2]int{from, to}, "page %d of %d", c.page, c.total)
	}
	from, to := PageWindow(0, 0, 3)
	assert.Greater(t, from, to, "no pages means an empty window")
}

func TestRowNumberingIsContinuous(t *testing.T) {
	p := domain.PageInfo{Number: 2, Size: 10, TotalElements: 95, TotalPages: 10}
	assert.Equal(t, 21, RowNumber(p, 0))
	assert.Equal(t, 30, RowNumber(p, 9))
}

func TestBuildEmptyPage(t *testing.T) {
	v := Build[person](nil, nil, domain.PageInfo{Size: 10}, cols, domain.Filter{}, Options{BaseURL: "/users/page", Actions: true})
	assert.True(t, v.Empty)
	assert.Empty(t, v.Rows)
	assert.Equal(t, 4, v.Colspan, "number + 2 columns + actions")
	assert.True(t, v.First.Disabled)
	assert.True(t, v.Next.Disabled)
	assert.Equal(t, "0-0 of 0", v.Range)
}

func TestBuildBoundariesAndSizes(t *testing.T) {
	f := domain.Filter{Page: 9, Size: 10, SortBy: "name", Order: domain.Asc}
	p := domain.PageInfo{Number: 9, Size: 10, TotalElements: 95, TotalPages: 10}
	items := []person{{"a", "A"}, {"b", "B"}, {"c", "C"}, {"d", "D"}, {"e", "E"}}

	v := Build(items, func(p person) string { return p.ID }, p, cols, f, Options{BaseURL: "/x"})
	assert.False(t, v.First.Disabled)
	assert.False(t, v.Prev.Disabled)
	assert.True(t, v.Next.Disabled)
	assert.True(t, v.Last.Disabled)
	assert.Equal(t, "91-95 of 95", v.Range)
	assert.Equal(t, 91, v.Rows[0].Number)
	assert.Equal(t, "A", v.Rows[0].Cells[0].Text)

	require.Len(t, v.Sizes, 4)
	for _, s := range v.Sizes {
		assert.Contains(t, s.URL, "page=0", "size change goes back to page 0")
	}
	assert.True(t, v.Sizes[0].Selected)

	h := v.Headers[0]
	assert.True(t, h.Active)
	assert.Contains(t, h.URL, "order=DESC")
	assert.Contains(t, h.URL, "sortBy=name")
	assert.Empty(t, v.Headers[1].URL)

	assert.Equal(t, []int{6, 7, 8, 9}, pageNumbers(v))
	assert.True(t, v.Pages[len(v.Pages)-1].Current)
}

func pageNumbers(v View) []int {
	var out []int
	for _, p := range v.Pages {
		out = append(out, p.Number)
	}
	return out
}

// fakeBackend serves stable pages of n items.
func fakeBackend(n int, f domain.Filter) ([]person, domain.PageInfo) {
	total := (n + f.Size - 1) / f.Size
	var items []person
	for i := f.Page * f.Size; i < min(n, (f.Page+1)*f.Size); i++ {
		items = append(items, person{ID: "p" + strconv.Itoa(i), Name: "Person " + strconv.Itoa(i)})
	}
	return items, domain.PageInfo{Number: f.Page, Size: f.Size, TotalElements: n, TotalPages: total}
}

func TestPagingForwardAndBackShowsSameRows(t *testing.T) {
	f := domain.Filter{Page: 3, Size: 10, SortBy: "name", Order: domain.Asc}
	key := func(p person) string { return p.ID }
	keys := func(v View) []string {
		var out []string
		for _, r := range v.Rows {
			out = append(out, r.Key)
		}
		return out
	}

	items, p := fakeBackend(95, f)
	before := Build(items, key, p, cols, f, Options{})

	fwd := f.WithPage(before.Next.Number, p.Size, f.SortBy, f.Order)
	items, p = fakeBackend(95, fwd)
	Build(items, key, p, cols, fwd, Options{})

	back := fwd.WithPage(fwd.Page-1, p.Size, fwd.SortBy, fwd.Order)
	items, p = fakeBackend(95, back)
	after := Build(items, key, p, cols, back, Options{})

	if diff := cmp.Diff(keys(before), keys(after)); diff != "" {
		t.Fatalf("rows differ after paging round trip (-before +after):\n%s", diff)
	}
}
