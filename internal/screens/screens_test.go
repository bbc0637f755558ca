package screens

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitadmin/internal/apiclient"
	"recruitadmin/internal/domain"
	"recruitadmin/internal/domain/models"
)

// fakeBackend records requests and answers the few endpoints the screens call.
type fakeBackend struct {
	mu       sync.Mutex
	searches []url.Values
	writes   []string
	bodies   []map[string]any
}

func (b *fakeBackend) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		switch {
		case strings.HasSuffix(r.URL.Path, "/search"):
			b.searches = append(b.searches, r.URL.Query())
			page := r.URL.Query().Get("page")
			_, _ = io.WriteString(w, `{"data":[{"id":"u`+page+`","username":"user`+page+`","active":true,"roles":[{"id":"r1","name":"Admin"}]}],"page":{"number":`+page+`,"size":10,"totalElements":95,"totalPages":10}}`)
		case r.Method == http.MethodGet && r.URL.Path == "/users/u9":
			_, _ = io.WriteString(w, `{"id":"u9","username":"far","fullName":"Far Away"}`)
		case r.Method == http.MethodGet:
			_, _ = io.WriteString(w, `[{"id":"x1","name":"First"},{"id":"x2","title":"Second"}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/files/upload-file":
			b.writes = append(b.writes, r.Method+" "+r.URL.Path)
			b.bodies = append(b.bodies, nil)
			_, _ = io.WriteString(w, `"http://files/cv.pdf"`)
		case r.Method == http.MethodPost || r.Method == http.MethodPut:
			b.writes = append(b.writes, r.Method+" "+r.URL.Path)
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			b.bodies = append(b.bodies, body)
			_, _ = io.WriteString(w, `{}`)
		case r.Method == http.MethodDelete:
			b.writes = append(b.writes, r.Method+" "+r.URL.Path)
			_, _ = io.WriteString(w, `true`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func (b *fakeBackend) lastSearch() url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.searches) == 0 {
		return nil
	}
	return b.searches[len(b.searches)-1]
}

func newRegistry(t *testing.T) (*Registry, *fakeBackend) {
	t.Helper()
	b := &fakeBackend{}
	srv := httptest.NewServer(b.handler(t))
	t.Cleanup(srv.Close)
	c := apiclient.New(apiclient.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, nil, nil)
	return NewRegistry(c), b
}

func open(t *testing.T, r *Registry, name string) Instance {
	t.Helper()
	s, ok := r.Get(name)
	require.True(t, ok)
	in := s.Open(context.Background())
	t.Cleanup(in.Close)
	return in
}

func view(t *testing.T, in Instance) PageView {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	v, err := in.View(ctx)
	require.NoError(t, err)
	return v
}

func TestMountFetchesDefaultFilter(t *testing.T) {
	r, b := newRegistry(t)
	in := open(t, r, "users")
	v := view(t, in)

	q := b.lastSearch()
	assert.Equal(t, "0", q.Get("page"))
	assert.Equal(t, "10", q.Get("size"))
	assert.Equal(t, "username", q.Get("sortBy"))
	assert.Equal(t, "ASC", q.Get("order"))
	assert.Equal(t, "true", q.Get("active"))

	require.Len(t, v.Table.Rows, 1)
	assert.Equal(t, "u0", v.Table.Rows[0].Key)
	assert.Equal(t, "/users/u0/info", v.Table.Rows[0].Cells[0].Link)
	assert.Equal(t, "Admin", v.Table.Rows[0].Cells[5].Text)
	assert.Equal(t, "/users/u0/active?to=false", v.Table.Rows[0].Cells[6].Action)
	assert.Equal(t, "User Management", v.Title)
	for _, c := range v.Search {
		if c.Name == "departmentId" {
			require.Len(t, c.Options, 2)
			assert.Equal(t, "Second", c.Options[1].Label)
		}
	}
}

func TestPageChangeRequestsSortedPage(t *testing.T) {
	r, b := newRegistry(t)
	in := open(t, r, "users")
	view(t, in)

	in.Page(2, 10, "fullName", domain.Desc)
	v := view(t, in)

	q := b.lastSearch()
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "10", q.Get("size"))
	assert.Equal(t, "fullName", q.Get("sortBy"))
	assert.Equal(t, "DESC", q.Get("order"))
	assert.Equal(t, 21, v.Table.Rows[0].Number)
	assert.Equal(t, "21-21 of 95", v.Table.Range)
}

func TestSearchResetsPageAndReplacesCriteria(t *testing.T) {
	r, b := newRegistry(t)
	in := open(t, r, "users")
	in.Page(3, 10, "", "")
	view(t, in)

	in.Search(url.Values{"keyword": {" ann "}, "roleIds": {"r1", "r2"}})
	v := view(t, in)

	q := b.lastSearch()
	assert.Equal(t, "0", q.Get("page"))
	assert.Equal(t, "ann", q.Get("keyword"))
	assert.Equal(t, []string{"r1", "r2"}, q["roleIds"])
	assert.Empty(t, q.Get("active"), "criteria are replaced wholesale")
	for _, c := range v.Search {
		if c.Name == keywordField {
			assert.Equal(t, "ann", c.Value)
		}
	}
}

func TestInvalidSearchKeepsList(t *testing.T) {
	r, b := newRegistry(t)
	in := open(t, r, "candidates")
	view(t, in)
	before := len(b.searches)

	in.Search(url.Values{"yearsOfExperience": {"many"}})
	v := view(t, in)

	assert.Len(t, b.searches, before)
	assert.NotEmpty(t, findControl(v, "yearsOfExperience").Error)
	assert.Equal(t, "many", findControl(v, "yearsOfExperience").Value)
}

func findControl(v PageView, name string) (out struct{ Value, Error string }) {
	for _, c := range v.Search {
		if c.Name == name {
			out.Value, out.Error = c.Value, c.Error
		}
	}
	return out
}

func TestCandidateWithoutSkillsIsNotSent(t *testing.T) {
	r, b := newRegistry(t)
	in := open(t, r, "candidates")
	in.New()

	out := in.Save(context.Background(), url.Values{
		"fullName":     {"Jane Doe"},
		"email":        {"jane@example.com"},
		"phoneNumber":  {"0123"},
		"dateOfBirth":  {"1990-01-01"},
		"address":      {"Street 1"},
		"recruiterId":  {"u1"},
		"positionId":   {"p1"},
		"highestLevel": {"BACHELOR"},
		"status":       {"OPEN"},
	}, nil)

	assert.False(t, out.Done)
	assert.Equal(t, "Select at least one skill", out.Errors["skillIds"])
	assert.Empty(t, b.writes)

	v := view(t, in)
	require.NotNil(t, v.Detail)
	assert.Equal(t, "Create candidate", v.Detail.Title)
	assert.Equal(t, "Jane Doe", v.Detail.Controls[0].Value)
}

// attach builds the header of one uploaded file the way the HTTP layer hands it over.
func attach(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File[field], 1)
	return form.File[field][0]
}

func candidateForm() url.Values {
	return url.Values{
		"fullName":         {"Jane Doe"},
		"email":            {"jane@example.com"},
		"phoneNumber":      {"0123"},
		"dateOfBirth":      {"1990-01-01"},
		"address":          {"Street 1"},
		"recruiterId":      {"u1"},
		"positionId":       {"p1"},
		"yearsOfExprience": {"2"},
		"highestLevel":     {"BACHELOR"},
		"status":           {"OPEN"},
		"skillIds":         {"s1"},
	}
}

func TestInvalidCandidateWithCVUploadsNothing(t *testing.T) {
	r, b := newRegistry(t)
	in := open(t, r, "candidates")
	in.New()

	cv := attach(t, "cv", "cv.pdf", []byte("%PDF-1.4 resume"))
	out := in.Save(context.Background(), url.Values{"fullName": {"Jane Doe"}}, map[string]*multipart.FileHeader{"cv": cv})

	assert.False(t, out.Done)
	assert.Equal(t, "Select at least one skill", out.Errors["skillIds"])
	assert.NotContains(t, out.Errors, "cv")
	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Empty(t, b.writes)
}

func TestValidCandidateUploadsCVThenCreates(t *testing.T) {
	r, b := newRegistry(t)
	in := open(t, r, "candidates")
	in.New()

	cv := attach(t, "cv", "cv.pdf", []byte("%PDF-1.4 resume"))
	out := in.Save(context.Background(), candidateForm(), map[string]*multipart.FileHeader{"cv": cv})
	require.True(t, out.Done, "errors=%v alert=%v", out.Errors, out.Alert)

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, []string{"POST /files/upload-file", "POST /candidates"}, b.writes)
	assert.Equal(t, "http://files/cv.pdf", b.bodies[1]["cv"])
}

func TestCandidateRequiresCV(t *testing.T) {
	r, b := newRegistry(t)
	in := open(t, r, "candidates")
	in.New()

	out := in.Save(context.Background(), candidateForm(), nil)
	assert.False(t, out.Done)
	assert.Equal(t, "CV is required", out.Errors["cv"])
	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Empty(t, b.writes)
}

func TestEditAndSaveUpdatesJob(t *testing.T) {
	r, b := newRegistry(t)
	in := open(t, r, "jobs")
	view(t, in)

	require.NoError(t, in.Edit(context.Background(), "u0"))
	out := in.Save(context.Background(), url.Values{
		"title":          {"Go Developer"},
		"startDate":      {"2024-03-01"},
		"endDate":        {"2024-04-01"},
		"salaryFrom":     {"1,000"},
		"salaryTo":       {"2.000.000"},
		"workingAddress": {"Hanoi"},
		"status":         {"OPEN"},
		"skillIds":       {"s1"},
		"levelIds":       {"l1"},
	}, nil)
	require.True(t, out.Done, "errors=%v alert=%v", out.Errors, out.Alert)

	v := view(t, in)
	assert.Nil(t, v.Detail)
	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, []string{"PUT /jobs/u0"}, b.writes)
	assert.Equal(t, "2024-03-01", b.bodies[0]["startDate"])
	assert.EqualValues(t, 1000, b.bodies[0]["salaryFrom"])
	assert.EqualValues(t, 2000000, b.bodies[0]["salaryTo"])
}

func TestEditFetchesItemsOffPage(t *testing.T) {
	r, _ := newRegistry(t)
	in := open(t, r, "users")
	view(t, in)

	require.NoError(t, in.Edit(context.Background(), "u9"))
	v := view(t, in)
	require.NotNil(t, v.Detail)
	assert.Equal(t, "u9", v.Detail.ID)
	assert.Equal(t, "Update user", v.Detail.Title)
}

func TestUserInfoCard(t *testing.T) {
	srv := httptest.NewServer((&fakeBackend{}).handler(t))
	t.Cleanup(srv.Close)
	c := apiclient.New(apiclient.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, nil, nil)
	card, err := UserInfo(context.Background(), c, "u9")
	require.NoError(t, err)
	assert.Equal(t, "Far Away", card.FullName)
	assert.Equal(t, "far", card.Username)
	assert.False(t, card.Active)
	assert.Equal(t, "Inactive (Banned)", card.Status)
	assert.Equal(t, "/users/u9/active?to=true", card.Toggle)
	assert.Empty(t, card.Department)
}

func TestEndDateBeforeStartDateBlocksJob(t *testing.T) {
	r, b := newRegistry(t)
	in := open(t, r, "jobs")
	in.New()
	out := in.Save(context.Background(), url.Values{
		"title":          {"Go Developer"},
		"startDate":      {"2024-04-01"},
		"endDate":        {"2024-03-01"},
		"workingAddress": {"Hanoi"},
		"status":         {"OPEN"},
		"skillIds":       {"s1"},
		"levelIds":       {"l1"},
	}, nil)
	assert.False(t, out.Done)
	assert.Equal(t, "End Date must not be before Start Date", out.Errors["endDate"])
	assert.Empty(t, b.writes)
}

func TestDeleteRefreshes(t *testing.T) {
	r, b := newRegistry(t)
	in := open(t, r, "interviews")
	view(t, in)
	before := len(b.searches)

	require.NoError(t, in.Delete(context.Background(), "i1"))
	view(t, in)
	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, []string{"DELETE /interviews/i1"}, b.writes)
	assert.Greater(t, len(b.searches), before)
}

func TestInterviewPayloadCombinesDateAndClock(t *testing.T) {
	f := models.InterviewForm{
		Title:          "Round 1",
		InterviewDate:  time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local),
		StartTime:      time.Date(0, 1, 1, 9, 30, 0, 0, time.Local),
		EndTime:        time.Date(0, 1, 1, 10, 15, 0, 0, time.Local),
		InterviewerIDs: []string{"u1"},
	}
	in, err := InterviewPayload(f)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06T09:30:00", in.StartDate)
	assert.Equal(t, "2024-05-06T10:15:00", in.EndDate)
	assert.Equal(t, []string{"u1"}, in.InterviewerIDs)

	v := interviewValues(&models.Interview{StartDate: in.StartDate, EndDate: in.EndDate})
	assert.Equal(t, "2024-05-06", v.Get("interviewDate"))
	assert.Equal(t, "09:30", v.Get("startTime"))
	assert.Equal(t, "10:15", v.Get("endTime"))
}

func TestExportRendersVisiblePage(t *testing.T) {
	r, _ := newRegistry(t)
	in := open(t, r, "users")
	view(t, in)

	out, name, err := in.Export(context.Background(), "req-1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.True(t, strings.HasPrefix(name, "User_Management_"))
}

func TestLookupsRejectUnknownSource(t *testing.T) {
	r, _ := newRegistry(t)
	_, err := r.Lookups.Options(context.Background(), "planets")
	assert.True(t, domain.IsNotFound(err))

	opts, err := r.Lookups.Options(context.Background(), SourceSkills)
	require.NoError(t, err)
	assert.Equal(t, []domain.Option{{Label: "First", Value: "x1"}, {Label: "Second", Value: "x2"}}, opts)
}

func TestNavFiltersByRole(t *testing.T) {
	r, _ := newRegistry(t)
	all := r.Nav(nil)
	require.Len(t, all, 4)
	assert.Equal(t, "/users", all[0].Path)

	none := r.Nav(func([]string) bool { return false })
	assert.Empty(t, none)
}
