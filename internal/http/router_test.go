package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitadmin/internal/apiclient"
	"recruitadmin/internal/busy"
	"recruitadmin/internal/http/middleware"
	"recruitadmin/internal/kvstore"
	"recruitadmin/internal/notify"
	"recruitadmin/internal/screens"
	"recruitadmin/internal/session"
)

const cookieName = "recruit_sid"

func jwtFor(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "exp": exp.Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

type harness struct {
	t      *testing.T
	router *gin.Engine
	kv     *kvstore.Memory
	roles  []string
}

func newHarness(t *testing.T, roles []string) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hs := &harness{t: t, kv: kvstore.NewMemory(), roles: roles}

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/login":
			var in struct{ Username, Password string }
			_ = json.NewDecoder(r.Body).Decode(&in)
			if in.Password != "secret1" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"bad credentials"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"accessToken": jwtFor(t, time.Now().Add(time.Hour)),
				"user":        map[string]any{"id": "u1", "fullName": "Jane Doe", "roles": hs.roles},
			})
		case r.Method == http.MethodPut && r.URL.Path == "/users/update-profile":
			var in map[string]any
			_ = json.NewDecoder(r.Body).Decode(&in)
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "u1", "fullName": in["fullName"], "dateOfBirth": in["dateOfBirth"]})
		case r.Method == http.MethodPut && r.URL.Path == "/users/change-password":
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodGet && r.URL.Path == "/users/u7":
			_, _ = w.Write([]byte(`{"id":"u7","username":"jroe","fullName":"Jane Roe","active":true,"department":{"id":"d1","name":"Engineering"},"roles":[{"id":"r1","name":"Recruiter"}]}`))
		case r.URL.Path == "/files/upload-file":
			_, _ = w.Write([]byte(`"http://files/avatar.png"`))
		case strings.HasSuffix(r.URL.Path, "/search"):
			_, _ = w.Write([]byte(`{"data":[],"page":{"number":0,"size":10,"totalElements":0,"totalPages":0}}`))
		default:
			_, _ = w.Write([]byte(`[{"id":"d1","name":"Engineering"},{"id":"d2","name":"Sales"}]`))
		}
	}))
	t.Cleanup(backend.Close)

	client := apiclient.New(apiclient.Config{BaseURL: backend.URL, Timeout: 5 * time.Second}, busy.New(nil), nil)
	mgr := session.NewManager(hs.kv, session.WithQueueFactory(func() *notify.Queue {
		return notify.NewQueue(notify.WithTimings(time.Hour, time.Hour))
	}))
	t.Cleanup(mgr.Close)

	hs.router = NewRouter(Deps{
		Client:      client,
		Screens:     screens.NewRegistry(client),
		Sessions:    mgr,
		Gatherer:    prometheus.NewRegistry(),
		Cookie:      middleware.CookieConfig{Name: cookieName},
		ViewTimeout: 5 * time.Second,
	})
	return hs
}

func (hs *harness) do(method, target, sid string, form url.Values) *httptest.ResponseRecorder {
	hs.t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
	}
	w := httptest.NewRecorder()
	hs.router.ServeHTTP(w, req)
	return w
}

func (hs *harness) login(sid string) {
	hs.t.Helper()
	w := hs.do(http.MethodPost, "/auth/login", sid, url.Values{"username": {"jane"}, "password": {"secret1"}})
	require.Equal(hs.t, http.StatusFound, w.Code, w.Body.String())
	require.Equal(hs.t, "/", w.Header().Get("Location"))
}

func TestHealth(t *testing.T) {
	hs := newHarness(t, nil)
	w := hs.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = hs.do(http.MethodGet, "/api/busy", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":0,"busy":false}`, w.Body.String())
}

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	hs := newHarness(t, nil)
	w := hs.do(http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), cookieName+"=")
}

func TestExpiredTokenRedirectsWithMarker(t *testing.T) {
	hs := newHarness(t, nil)
	sid := uuid.NewString()
	ctx := context.Background()
	require.NoError(t, hs.kv.Set(ctx, sid+":"+session.KeyToken, jwtFor(t, time.Now().Add(-time.Minute))))

	w := hs.do(http.MethodGet, "/users", sid, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login?tokenExpired=true", w.Header().Get("Location"))

	_, ok, _ := hs.kv.Get(ctx, sid+":"+session.KeyToken)
	assert.False(t, ok)

	w = hs.do(http.MethodGet, "/auth/login?tokenExpired=true", sid, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))

	w = hs.do(http.MethodGet, "/toasts", sid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var toasts []notify.Toast
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toasts))
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.Warning, toasts[0].Kind)
	assert.Equal(t, "Your session has expired. Please login again.", toasts[0].Message)

	// the notice is shown once
	w = hs.do(http.MethodGet, "/users", sid, nil)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
}

func TestLoginFlow(t *testing.T) {
	hs := newHarness(t, []string{"Recruiter"})
	sid := uuid.NewString()

	w := hs.do(http.MethodGet, "/auth/login", sid, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	hs.login(sid)

	w = hs.do(http.MethodGet, "/", sid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jane Doe")
	assert.Contains(t, w.Body.String(), "User Management")
	assert.Contains(t, w.Body.String(), "Logged in successfully")

	// signed-in users are sent home from the login page
	w = hs.do(http.MethodGet, "/auth/login", sid, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = hs.do(http.MethodPost, "/auth/logout", sid, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	w = hs.do(http.MethodGet, "/", sid, nil)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
}

func TestLoginValidationAndBadCredentials(t *testing.T) {
	hs := newHarness(t, []string{"Admin"})
	sid := uuid.NewString()

	w := hs.do(http.MethodPost, "/auth/login", sid, url.Values{"username": {"jane"}, "password": {"abc"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Password must be between 6 and 20 characters")

	w = hs.do(http.MethodPost, "/auth/login", sid, url.Values{"username": {"jane"}, "password": {"wrong12"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Contains(t, w.Body.String(), "Login failed. Please try again.")
}

func TestRoleMismatchGoesToForbidden(t *testing.T) {
	hs := newHarness(t, []string{"Interviewer"})
	sid := uuid.NewString()
	hs.login(sid)

	w := hs.do(http.MethodGet, "/users", sid, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.ForbiddenPath, w.Header().Get("Location"))

	w = hs.do(http.MethodGet, middleware.ForbiddenPath, sid, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestScreenAndOptions(t *testing.T) {
	hs := newHarness(t, []string{"HR Manager"})
	sid := uuid.NewString()
	hs.login(sid)

	w := hs.do(http.MethodGet, "/users", sid, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "User Management")

	w = hs.do(http.MethodGet, "/options/departments?q=eng", sid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Engineering")
	assert.NotContains(t, w.Body.String(), "Sales")

	w = hs.do(http.MethodGet, "/options/unknown", sid, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserInfoIsReadOnlyCard(t *testing.T) {
	hs := newHarness(t, []string{"Admin"})
	sid := uuid.NewString()
	hs.login(sid)

	w := hs.do(http.MethodGet, "/users/u7/info", sid, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.String()
	assert.Contains(t, body, "User Detail")
	assert.Contains(t, body, "Jane Roe")
	assert.Contains(t, body, "Engineering")
	assert.Contains(t, body, "Recruiter")
	assert.Contains(t, body, `action="/users/u7/active?to=false"`)
	assert.NotContains(t, body, `name="fullName"`)
}

func TestComboboxKeysOverLookup(t *testing.T) {
	hs := newHarness(t, []string{"Recruiter"})
	sid := uuid.NewString()
	hs.login(sid)

	type state struct {
		Query     string           `json:"query"`
		Open      bool             `json:"open"`
		Cursor    int              `json:"cursor"`
		Value     string           `json:"value"`
		Values    []string         `json:"values"`
		Options   []map[string]any `json:"options"`
		Focused   string           `json:"focused"`
		Committed bool             `json:"committed"`
	}
	press := func(form url.Values) state {
		t.Helper()
		w := hs.do(http.MethodPost, "/options/departments/combobox", sid, form)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var st state
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
		return st
	}

	st := press(url.Values{"key": {"ArrowDown"}})
	assert.True(t, st.Open)
	assert.Equal(t, "d1", st.Focused)
	assert.Len(t, st.Options, 2)

	st = press(url.Values{"key": {"ArrowDown"}, "open": {"true"}, "cursor": {"0"}})
	assert.Equal(t, 1, st.Cursor)
	assert.Equal(t, "d2", st.Focused)

	st = press(url.Values{"key": {"Enter"}, "open": {"true"}, "cursor": {"1"}})
	assert.True(t, st.Committed)
	assert.Equal(t, "d2", st.Value)
	assert.False(t, st.Open)

	st = press(url.Values{"key": {"type"}, "arg": {"sal"}, "value": {"d2"}})
	require.Len(t, st.Options, 1)
	assert.Equal(t, "Sales", st.Options[0]["label"])
	assert.Equal(t, "d2", st.Value)

	st = press(url.Values{"key": {"inject"}, "arg": {"u1"}, "multiple": {"true"}, "values": {"d1"}})
	assert.Equal(t, []string{"d1", "u1"}, st.Values)

	w := hs.do(http.MethodPost, "/options/departments/combobox", sid, url.Values{"key": {"Tab"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = hs.do(http.MethodPost, "/options/departments/combobox", sid, url.Values{"q": {"x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssignMeActionSlot(t *testing.T) {
	hs := newHarness(t, []string{"Recruiter"})
	sid := uuid.NewString()
	hs.login(sid)

	w := hs.do(http.MethodGet, "/profile/option", sid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"label":"Jane Doe","value":"u1"}`, w.Body.String())

	w = hs.do(http.MethodGet, "/candidates/new", sid, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.String()
	assert.Contains(t, body, `data-action="/profile/option"`)
	assert.Contains(t, body, `data-for="f-recruiterId"`)
	assert.Contains(t, body, "Assign me")
	assert.Contains(t, body, `data-source="/options/users"`)
}

func TestDismissToast(t *testing.T) {
	hs := newHarness(t, []string{"Admin"})
	sid := uuid.NewString()
	hs.login(sid)

	w := hs.do(http.MethodGet, "/toasts", sid, nil)
	var toasts []notify.Toast
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toasts))
	require.NotEmpty(t, toasts)

	req := httptest.NewRequest(http.MethodPost, "/toasts/"+strconvID(toasts[0].ID)+"/dismiss", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
	rec := httptest.NewRecorder()
	hs.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	w = hs.do(http.MethodGet, "/toasts", sid, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toasts))
	require.Len(t, toasts, 1)
	assert.True(t, toasts[0].Exiting)

	w = hs.do(http.MethodPost, "/toasts/abc/dismiss", sid, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDismissToastRedirectsOnlyToLocalPages(t *testing.T) {
	hs := newHarness(t, []string{"Admin"})
	sid := uuid.NewString()
	hs.login(sid)

	cases := map[string]string{
		"":                                "/",
		"http://example.com/users?page=2": "/users?page=2",
		"/candidates":                     "/candidates",
		"http://evil.example/phish":       "/",
		"//evil.example/phish":            "/",
		"javascript:alert(1)":             "/",
	}
	for referer, want := range cases {
		req := httptest.NewRequest(http.MethodPost, "/toasts/1/dismiss", nil)
		if referer != "" {
			req.Header.Set("Referer", referer)
		}
		req.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
		rec := httptest.NewRecorder()
		hs.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code, referer)
		assert.Equal(t, want, rec.Header().Get("Location"), referer)
	}
}

func strconvID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestUploadFileReturnsURLAndPreview(t *testing.T) {
	hs := newHarness(t, []string{"Admin"})
	sid := uuid.NewString()
	hs.login(sid)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "avatar.png")
	require.NoError(t, err)
	_, err = fw.Write(png)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/files/upload?image=true", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
	rec := httptest.NewRecorder()
	hs.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		URL     string `json:"url"`
		MIME    string `json:"mime"`
		Preview string `json:"preview"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "http://files/avatar.png", out.URL)
	assert.Equal(t, "image/png", out.MIME)
	assert.True(t, strings.HasPrefix(out.Preview, "data:image/png;base64,"))
}

func TestProfileUpdateKeepsRoles(t *testing.T) {
	hs := newHarness(t, []string{"Recruiter"})
	sid := uuid.NewString()
	hs.login(sid)

	w := hs.do(http.MethodGet, "/profile", sid, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = hs.do(http.MethodPost, "/profile", sid, url.Values{
		"fullName":    {"Jane Smith"},
		"email":       {"jane@example.com"},
		"phoneNumber": {"0123"},
		"dateOfBirth": {"1990-05-01"},
		"gender":      {"false"},
	})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())

	w = hs.do(http.MethodGet, "/", sid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jane Smith")
	assert.Contains(t, w.Body.String(), "User Management")
}

func TestProfileValidationAndPassword(t *testing.T) {
	hs := newHarness(t, []string{"Recruiter"})
	sid := uuid.NewString()
	hs.login(sid)

	w := hs.do(http.MethodPost, "/profile", sid, url.Values{"fullName": {"Jane"}, "email": {"nope"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email address")

	w = hs.do(http.MethodPost, "/profile/password", sid, url.Values{
		"currentPassword": {"secret1"},
		"newPassword":     {"secret2"},
		"confirmPassword": {"secret3"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match")
	assert.NotContains(t, w.Body.String(), "secret2")

	w = hs.do(http.MethodPost, "/profile/password", sid, url.Values{
		"currentPassword": {"secret1"},
		"newPassword":     {"secret2"},
		"confirmPassword": {"secret2"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
}
