// Package screens binds the generic list scaffold to the users, candidates, jobs and
// interviews backends.
package screens

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"strings"
	"sync"

	"recruitadmin/internal/apiclient"
	"recruitadmin/internal/domain"
	"recruitadmin/internal/export"
	"recruitadmin/internal/form"
	"recruitadmin/internal/master"
	"recruitadmin/internal/table"
	"recruitadmin/internal/utils"
)

// ManagerRoles may open every management screen.
var ManagerRoles = []string{"Admin", "HR Manager", "Recruiter"}

const keywordField = "keyword"

// Meta identifies a screen to the router and the navigation.
type Meta struct {
	Name  string
	Title string
	Path  string
	Roles []string
}

// Screen is the type-erased face of a Definition, used by the HTTP layer.
type Screen interface {
	Describe() Meta
	Open(ctx context.Context) Instance
}

// Instance is one mounted screen of one browser session.
type Instance interface {
	Close()
	Search(values url.Values)
	Page(page, size int, sortBy string, order domain.Order)
	Refresh()
	New()
	Edit(ctx context.Context, id string) error
	Save(ctx context.Context, values url.Values, files map[string]*multipart.FileHeader) form.Outcome
	Cancel()
	Delete(ctx context.Context, id string) error
	DismissAlert()
	View(ctx context.Context) (PageView, error)
	Export(ctx context.Context, requestID string) ([]byte, string, error)
}

// PageView is what the list template renders.
type PageView struct {
	Name        string
	Title       string
	Path        string
	Search      []form.Control
	SearchError string
	Table       table.View
	Loaded      bool
	Fetching    bool
	Alert       *form.Alert
	Detail      *DetailView
}

type DetailView struct {
	Title      string
	ID         string
	Generation int
	Controls   []form.Control
	FormError  string
	Alert      *form.Alert
}

// Definition describes one entity screen.
type Definition[T any] struct {
	Name   string
	Title  string
	Entity string
	Roles  []string
	Filter domain.Filter
	// PageSizes defaults to table.DefaultPageSizes.
	PageSizes    []int
	SearchFields []form.Field
	DetailFields []form.Field
	Columns      []table.Column[T]
	Key          func(T) string
	Resource     apiclient.Resource[T]
	// CheckSearch validates search values before they reach the filter.
	CheckSearch func(url.Values) form.Errors
	Values      func(item *T) url.Values
	// Save validates and persists; up stores the attached files once the values are valid.
	Save func(ctx context.Context, item *T, values url.Values, up *form.Upload) form.Outcome
	// Sources maps a select field to the lookup source that fills it.
	Sources map[string]string
	// Uploads lists file fields. The file part and the stored URL share the field name.
	Uploads []string
	Client  *apiclient.Client
	Lookups *Lookups
}

func (d *Definition[T]) Describe() Meta {
	return Meta{Name: d.Name, Title: d.Title, Path: d.path(), Roles: d.Roles}
}

func (d *Definition[T]) path() string { return "/" + d.Name }

// Open mounts a fresh instance with the default filter and starts the first fetch.
// ctx carries the session's token source into every later fetch.
func (d *Definition[T]) Open(ctx context.Context) Instance {
	ctl := master.New(master.Config[T]{
		Name:   d.Name,
		Filter: d.Filter,
		Fetch:  d.Resource.Search,
		Values: d.Values,
		Submit: d.Save,
		Delete: d.Resource.Remove,
	}).WithContext(ctx)
	ctl.Mount()
	return &instance[T]{def: d, ctl: ctl}
}

type instance[T any] struct {
	def *Definition[T]
	ctl *master.Controller[T]

	mu           sync.Mutex
	searchValues url.Values
	searchErrors form.Errors
}

func (in *instance[T]) Close() { in.ctl.Close() }

// Search applies a submitted search form. Invalid criteria keep the current list.
func (in *instance[T]) Search(values url.Values) {
	if in.def.CheckSearch != nil {
		if errs := in.def.CheckSearch(values); len(errs) > 0 {
			in.mu.Lock()
			in.searchValues = values
			in.searchErrors = errs
			in.mu.Unlock()
			return
		}
	}
	in.mu.Lock()
	in.searchValues = nil
	in.searchErrors = nil
	in.mu.Unlock()

	criteria := url.Values{}
	for k, v := range values {
		if k != keywordField {
			criteria[k] = v
		}
	}
	in.ctl.OnFilterChange(values.Get(keywordField), criteria)
}

func (in *instance[T]) Page(page, size int, sortBy string, order domain.Order) {
	in.ctl.OnPageChange(page, size, sortBy, order)
}

func (in *instance[T]) Refresh() { in.ctl.Refresh() }

func (in *instance[T]) New() { in.ctl.OnCreate() }

// Edit opens the panel for id, taken from the visible page or fetched when not on it.
func (in *instance[T]) Edit(ctx context.Context, id string) error {
	for _, it := range in.ctl.Snapshot().Page.Items {
		if in.def.Key(it) == id {
			in.ctl.Edit(it)
			return nil
		}
	}
	it, err := in.def.Resource.GetByID(ctx, id)
	if err != nil {
		return err
	}
	in.ctl.Edit(it)
	return nil
}

// Save submits the panel. Attached files are uploaded only after the values validated.
func (in *instance[T]) Save(ctx context.Context, values url.Values, files map[string]*multipart.FileHeader) form.Outcome {
	values = cloneValues(values)
	attached := map[string]*multipart.FileHeader{}
	for _, field := range in.def.Uploads {
		if h := files[field]; h != nil {
			attached[field] = h
		}
	}
	if len(attached) == 0 {
		return in.ctl.SubmitDetail(ctx, values, nil)
	}
	up := &form.Upload{Store: func(ctx context.Context, values url.Values) (url.Values, error) {
		stored := cloneValues(values)
		for field, h := range attached {
			u, err := in.upload(ctx, field, h)
			if err != nil {
				return nil, err
			}
			stored.Set(field, u)
		}
		return stored, nil
	}}
	for field := range attached {
		up.Pending = append(up.Pending, field)
	}
	return in.ctl.SubmitDetail(ctx, values, up)
}

func (in *instance[T]) upload(ctx context.Context, field string, h *multipart.FileHeader) (string, error) {
	fi := form.FileInput{}
	for _, f := range in.def.DetailFields {
		if f.Name == field {
			fi.Image = f.Image
		}
	}
	if err := fi.Read(h); err != nil {
		return "", err
	}
	if fi.Image && !strings.HasPrefix(fi.MIME(), "image/") {
		return "", fmt.Errorf("%s is not an image", h.Filename)
	}
	file, err := h.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	return in.def.Client.UploadFile(ctx, h.Filename, file)
}

func (in *instance[T]) Cancel() { in.ctl.CancelDetail() }

func (in *instance[T]) Delete(ctx context.Context, id string) error {
	return in.ctl.Delete(ctx, id)
}

func (in *instance[T]) DismissAlert() { in.ctl.DismissAlert() }

// View waits for pending fetches, then lays out the page. An auth failure of the last
// fetch is returned so the caller can end the session.
func (in *instance[T]) View(ctx context.Context) (PageView, error) {
	if err := in.ctl.Wait(ctx); err != nil {
		return PageView{}, err
	}
	snap := in.ctl.Snapshot()
	if snap.Err != nil && domain.IsAuth(snap.Err) {
		return PageView{}, snap.Err
	}
	options, err := in.def.loadOptions(ctx)
	if err != nil {
		return PageView{}, err
	}

	d := in.def
	v := PageView{
		Name:     d.Name,
		Title:    d.Title,
		Path:     d.path(),
		Loaded:   snap.Loaded,
		Fetching: snap.Fetching,
		Alert:    snap.Alert,
		Table: table.Build(snap.Page.Items, d.Key, snap.Page.Page, d.Columns, snap.Filter, table.Options{
			BaseURL:   d.path() + "/page",
			PageSizes: d.PageSizes,
			Actions:   true,
		}),
	}

	in.mu.Lock()
	searchValues, searchErrors := in.searchValues, in.searchErrors
	in.mu.Unlock()
	if searchValues == nil {
		searchValues = cloneValues(snap.Filter.Values)
		if snap.Filter.Keyword != "" {
			searchValues.Set(keywordField, snap.Filter.Keyword)
		}
	}
	v.Search = form.Render(withOptions(d.SearchFields, options), searchValues, searchErrors)
	v.SearchError = searchErrors[form.FormKey]

	if snap.Detail.Open {
		dv := &DetailView{
			Title:      "Create " + d.Entity,
			Generation: snap.Detail.Generation,
			Controls:   form.Render(withOptions(d.DetailFields, options), snap.Detail.Values, snap.Detail.Errors),
			FormError:  snap.Detail.Errors[form.FormKey],
			Alert:      snap.Detail.Alert,
		}
		if snap.Detail.Item != nil {
			dv.Title = "Update " + d.Entity
			dv.ID = d.Key(*snap.Detail.Item)
		}
		v.Detail = dv
	}
	return v, nil
}

// Export renders the visible page as a PDF.
func (in *instance[T]) Export(ctx context.Context, requestID string) ([]byte, string, error) {
	if err := in.ctl.Wait(ctx); err != nil {
		return nil, "", err
	}
	snap := in.ctl.Snapshot()
	tv := table.Build(snap.Page.Items, in.def.Key, snap.Page.Page, in.def.Columns, snap.Filter, table.Options{})
	sheet := export.Sheet{Title: in.def.Title, Range: tv.Range, RequestID: requestID}
	sheet.Headers = append(sheet.Headers, "No.")
	for _, h := range tv.Headers {
		sheet.Headers = append(sheet.Headers, h.Label)
	}
	for _, r := range tv.Rows {
		row := []string{fmt.Sprint(r.Number)}
		for _, c := range r.Cells {
			row = append(row, c.Text)
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return export.PDF(sheet)
}

// loadOptions fetches every lookup source the screen's selects need, each source once.
func (d *Definition[T]) loadOptions(ctx context.Context) (map[string][]domain.Option, error) {
	if len(d.Sources) == 0 || d.Lookups == nil {
		return nil, nil
	}
	bySource := map[string][]domain.Option{}
	for _, src := range d.Sources {
		bySource[src] = nil
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		authErr error
	)
	for src := range bySource {
		wg.Add(1)
		go func(src string) {
			defer wg.Done()
			opts, err := d.Lookups.Options(ctx, src)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if domain.IsAuth(err) {
					authErr = err
				}
				utils.LogError("", d.Name, "options_"+src, err)
				return
			}
			bySource[src] = opts
		}(src)
	}
	wg.Wait()
	if authErr != nil {
		return nil, authErr
	}

	out := map[string][]domain.Option{}
	for field, src := range d.Sources {
		out[field] = bySource[src]
	}
	return out, nil
}

func withOptions(fields []form.Field, options map[string][]domain.Option) []form.Field {
	for name, opts := range options {
		fields = form.WithOptions(fields, name, opts)
	}
	return fields
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

// searchCheck validates search values against the binding tags of V.
func searchCheck[V any](fields []form.Field) func(url.Values) form.Errors {
	s := form.Schema[V]{Fields: fields}
	return func(values url.Values) form.Errors {
		_, errs := s.Decode(values)
		return errs
	}
}

func boolValue(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// sourcesOf collects the lookup source of every select field.
func sourcesOf(lists ...[]form.Field) map[string]string {
	out := map[string]string{}
	for _, fields := range lists {
		for _, f := range fields {
			if f.Source != "" {
				out[f.Name] = f.Source
			}
		}
	}
	return out
}

func datePart(ts string) string {
	d, _ := utils.SplitWireTimestamp(ts)
	return d
}

func dateTime(ts string) string {
	d, c := utils.SplitWireTimestamp(ts)
	return strings.TrimSpace(d + " " + c)
}
