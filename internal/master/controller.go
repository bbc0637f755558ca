// Package master drives one list screen: search, paging, sorting and the create/update panel.
package master

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"recruitadmin/internal/domain"
	"recruitadmin/internal/form"
	"recruitadmin/internal/utils"
)

const (
	FetchFailedPrefix  = "An error occurred while fetching data: "
	DeleteFailedPrefix = "An error occurred while deleting: "
)

// ErrInvalidPage rejects a page whose items overflow its size or lie beyond its total.
var ErrInvalidPage = errors.New("backend returned an inconsistent page")

// Config binds a controller to one entity.
type Config[T any] struct {
	Name   string
	Filter domain.Filter
	Fetch  func(ctx context.Context, f domain.Filter) (domain.PageResult[T], error)
	// Values turns the edited item into form values; nil item means create.
	Values func(item *T) url.Values
	// Submit validates and persists the panel; item is nil when creating. up, when set,
	// stores attached files after validation.
	Submit func(ctx context.Context, item *T, values url.Values, up *form.Upload) form.Outcome
	Delete func(ctx context.Context, id string) error
}

// Detail is the create/update panel. Generation changes on every open so the form is
// rebuilt from the selected item instead of earlier input.
type Detail[T any] struct {
	Open       bool
	Item       *T
	Generation int
	Values     url.Values
	Errors     form.Errors
	Alert      *form.Alert
}

func (d Detail[T]) Editing() bool { return d.Item != nil }

// Snapshot is a copy of the visible state.
type Snapshot[T any] struct {
	Filter   domain.Filter
	Page     domain.PageResult[T]
	Loaded   bool
	Fetching bool
	Alert    *form.Alert
	Detail   Detail[T]
	// Err is the last failure; auth failures end the session instead of showing Alert.
	Err error
}

// Controller is safe for concurrent use. Fetches run on their own goroutines; a response
// older than the newest applied one is dropped, and nothing is applied after Close.
type Controller[T any] struct {
	cfg    Config[T]
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	filter   domain.Filter
	page     domain.PageResult[T]
	loaded   bool
	alert    *form.Alert
	lastErr  error
	detail   Detail[T]
	seq      uint64
	applied  uint64
	inflight int
	idle     chan struct{}
	closed   bool
}

func New[T any](cfg Config[T]) *Controller[T] {
	ctx, cancel := context.WithCancel(context.Background())
	idle := make(chan struct{})
	close(idle)
	return &Controller[T]{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
		filter: cfg.Filter.Clone(),
		idle:   idle,
	}
}

// WithContext derives the controller lifetime from parent, e.g. to carry the session's token source.
func (c *Controller[T]) WithContext(parent context.Context) *Controller[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancel()
	c.ctx, c.cancel = context.WithCancel(context.WithoutCancel(parent))
	return c
}

// Mount runs the initial fetch with the default filter.
func (c *Controller[T]) Mount() {
	c.mu.Lock()
	f := c.filter
	c.mu.Unlock()
	c.fetch(f)
}

// OnFilterChange applies a search form submission: keyword and entity values are replaced
// wholesale and paging restarts at page 0.
func (c *Controller[T]) OnFilterChange(keyword string, values url.Values) {
	c.mu.Lock()
	f := c.filter.WithSearch(keyword, values)
	c.mu.Unlock()
	c.fetch(f)
}

func (c *Controller[T]) OnPageChange(page, size int, sortBy string, order domain.Order) {
	if page < 0 {
		page = 0
	}
	c.mu.Lock()
	if size <= 0 {
		size = c.filter.Size
	}
	f := c.filter.WithPage(page, size, sortBy, order)
	c.mu.Unlock()
	c.fetch(f)
}

// Refresh re-runs the current filter.
func (c *Controller[T]) Refresh() {
	c.mu.Lock()
	f := c.filter
	c.mu.Unlock()
	c.fetch(f)
}

func (c *Controller[T]) fetch(f domain.Filter) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	c.filter = f.Clone()
	if c.inflight == 0 {
		c.idle = make(chan struct{})
	}
	c.inflight++
	ctx := c.ctx
	c.mu.Unlock()

	go func() {
		res, err := c.cfg.Fetch(ctx, f)

		c.mu.Lock()
		defer c.mu.Unlock()
		c.inflight--
		if c.inflight == 0 {
			close(c.idle)
		}
		if c.closed || ctx.Err() != nil || seq <= c.applied {
			return
		}
		c.applied = seq
		if err == nil && !res.Valid() {
			err = ErrInvalidPage
		}
		if err != nil {
			c.lastErr = err
			if !domain.IsAuth(err) {
				c.alert = form.Danger("Error", FetchFailedPrefix+err.Error())
			}
			utils.LogError("", c.cfg.Name, "fetch", err)
			return
		}
		c.page = res
		c.loaded = true
		c.lastErr = nil
	}()
}

// Wait blocks until no fetch is in flight or ctx is done.
func (c *Controller[T]) Wait(ctx context.Context) error {
	c.mu.Lock()
	idle := c.idle
	c.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OnCreate opens an empty panel.
func (c *Controller[T]) OnCreate() {
	c.open(nil)
}

// Edit opens the panel for item; editing the same item again still rebuilds the form.
func (c *Controller[T]) Edit(item T) {
	c.open(&item)
}

func (c *Controller[T]) open(item *T) {
	var values url.Values
	if c.cfg.Values != nil {
		values = c.cfg.Values(item)
	}
	if values == nil {
		values = url.Values{}
	}
	c.mu.Lock()
	c.detail = Detail[T]{Open: true, Item: item, Generation: c.detail.Generation + 1, Values: values}
	c.mu.Unlock()
}

// CancelDetail closes the panel and refreshes the list.
func (c *Controller[T]) CancelDetail() {
	c.closeDetail()
	c.Refresh()
}

func (c *Controller[T]) closeDetail() {
	c.mu.Lock()
	c.detail = Detail[T]{Generation: c.detail.Generation}
	c.mu.Unlock()
}

// SubmitDetail validates and saves the panel. Success closes it and refreshes; otherwise the
// panel stays open with the entered values and the errors or alert.
func (c *Controller[T]) SubmitDetail(ctx context.Context, values url.Values, up *form.Upload) form.Outcome {
	c.mu.Lock()
	d := c.detail
	c.mu.Unlock()
	if !d.Open {
		return form.Outcome{Values: values, Alert: form.Danger("Error", form.SubmitFailedPrefix+"the form is no longer open")}
	}

	out := c.cfg.Submit(ctx, d.Item, values, up)

	c.mu.Lock()
	if c.detail.Generation != d.Generation {
		// the panel was reopened while saving
		c.mu.Unlock()
		return out
	}
	if out.Done {
		c.mu.Unlock()
		c.closeDetail()
		c.Refresh()
		return out
	}
	c.detail.Values = out.Values
	c.detail.Errors = out.Errors
	c.detail.Alert = out.Alert
	if out.Alert != nil {
		utils.LogEvent("", c.cfg.Name, "submit", out.Alert.Message)
	}
	c.mu.Unlock()
	return out
}

// Delete removes id and refreshes on success.
func (c *Controller[T]) Delete(ctx context.Context, id string) error {
	if c.cfg.Delete == nil {
		return nil
	}
	if err := c.cfg.Delete(ctx, id); err != nil {
		c.mu.Lock()
		c.lastErr = err
		if !domain.IsAuth(err) {
			c.alert = form.Danger("Error", DeleteFailedPrefix+err.Error())
		}
		c.mu.Unlock()
		return err
	}
	c.Refresh()
	return nil
}

// DismissAlert closes the shared modal.
func (c *Controller[T]) DismissAlert() {
	c.mu.Lock()
	c.alert = nil
	c.detail.Alert = nil
	c.mu.Unlock()
}

// Snapshot returns a copy of the visible state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot[T]{
		Filter:   c.filter.Clone(),
		Page:     domain.PageResult[T]{Items: append([]T(nil), c.page.Items...), Page: c.page.Page},
		Loaded:   c.loaded,
		Fetching: c.inflight > 0,
		Alert:    c.alert,
		Detail:   c.detail,
		Err:      c.lastErr,
	}
	if c.detail.Values != nil {
		s.Detail.Values = cloneValues(c.detail.Values)
	}
	return s
}

// Close ends the screen's lifetime; in-flight results are dropped.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	c.closed = true
	c.cancel()
	c.mu.Unlock()
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
