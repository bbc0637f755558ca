package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitadmin/internal/domain/models"
	"recruitadmin/internal/kvstore"
	"recruitadmin/internal/notify"
)

func token(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "exp": exp.Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

func waitReady(t *testing.T, s *Store) {
	t.Helper()
	select {
	case <-s.Ready():
	case <-time.After(2 * time.Second):
		t.Fatalf("store never became ready")
	}
}

func newTestStore() (*Store, *kvstore.Memory, *notify.Queue) {
	kv := kvstore.NewMemory()
	q := notify.NewQueue(notify.WithTimings(time.Hour, time.Hour))
	return NewStore(kv, q), kv, q
}

func TestInitializeWithValidToken(t *testing.T) {
	s, kv, q := newTestStore()
	defer q.Close()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, KeyToken, token(t, time.Now().Add(time.Hour))))
	require.NoError(t, kv.Set(ctx, KeyUser, `{"id":"u1","fullName":"Jane","roles":["Admin"]}`))

	assert.True(t, s.State().Loading)
	s.Initialize(ctx)
	s.Initialize(ctx)
	waitReady(t, s)

	st := s.State()
	assert.False(t, st.Loading)
	assert.True(t, st.Authenticated)
	require.NotNil(t, st.User)
	assert.Equal(t, []string{"Admin"}, st.User.Roles)
}

func TestInitializeWithExpiredTokenClearsStorage(t *testing.T) {
	s, kv, q := newTestStore()
	defer q.Close()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, KeyToken, token(t, time.Now().Add(-time.Minute))))
	require.NoError(t, kv.Set(ctx, KeyUser, `{"id":"u1"}`))

	s.Initialize(ctx)
	waitReady(t, s)

	st := s.State()
	assert.False(t, st.Authenticated)
	assert.Nil(t, st.User)
	assert.False(t, st.Loading)
	assert.True(t, st.Expired)
	_, ok, _ := kv.Get(ctx, KeyToken)
	assert.False(t, ok)
	_, ok, _ = kv.Get(ctx, KeyUser)
	assert.False(t, ok)
	assert.Empty(t, q.List(), "expiry is silent")
}

func TestInitializeWithoutToken(t *testing.T) {
	s, _, q := newTestStore()
	defer q.Close()
	s.Initialize(context.Background())
	waitReady(t, s)
	assert.Equal(t, State{}, s.State())
}

func TestLoginPersistsAndNotifies(t *testing.T) {
	s, kv, q := newTestStore()
	defer q.Close()
	ctx := context.Background()

	require.ErrorIs(t, s.Login(ctx, nil), ErrNoSession)
	require.ErrorIs(t, s.Login(ctx, &models.LoginResponse{AccessToken: "x"}), ErrNoSession)

	tok := token(t, time.Now().Add(time.Hour))
	require.NoError(t, s.Login(ctx, &models.LoginResponse{AccessToken: tok, User: &models.UserProfile{ID: "u1", Roles: []string{"HR Manager"}}}))

	st := s.State()
	assert.True(t, st.Authenticated)
	assert.Equal(t, "u1", st.User.ID)
	got, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, tok, got)
	raw, ok, _ := kv.Get(ctx, KeyUser)
	assert.True(t, ok)
	assert.Contains(t, raw, `"roles":["HR Manager"]`)

	toasts := q.List()
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.Info, toasts[0].Kind)
	assert.Equal(t, MsgLoggedIn, toasts[0].Message)
}

func TestUpdateProfileKeepsAuthentication(t *testing.T) {
	s, kv, q := newTestStore()
	defer q.Close()
	ctx := context.Background()
	require.NoError(t, s.Login(ctx, &models.LoginResponse{AccessToken: "t", User: &models.UserProfile{ID: "u1"}}))

	require.ErrorIs(t, s.UpdateProfile(ctx, nil), ErrNoProfile)
	require.NoError(t, s.UpdateProfile(ctx, &models.UserProfile{ID: "u1", FullName: "New Name"}))

	st := s.State()
	assert.True(t, st.Authenticated)
	assert.Equal(t, "New Name", st.User.FullName)
	raw, _, _ := kv.Get(ctx, KeyUser)
	assert.Contains(t, raw, "New Name")
}

func TestLogoutIsIdempotent(t *testing.T) {
	s, kv, q := newTestStore()
	defer q.Close()
	ctx := context.Background()
	require.NoError(t, s.Login(ctx, &models.LoginResponse{AccessToken: "t", User: &models.UserProfile{ID: "u1"}}))

	require.NoError(t, s.Logout(ctx))
	once := s.State()
	require.NoError(t, s.Logout(ctx))
	twice := s.State()

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second logout changed state (-once +twice):\n%s", diff)
	}
	assert.False(t, twice.Authenticated)
	assert.Nil(t, twice.User)
	_, ok, _ := kv.Get(ctx, KeyToken)
	assert.False(t, ok)
}

func TestStateIsACopy(t *testing.T) {
	s, _, q := newTestStore()
	defer q.Close()
	require.NoError(t, s.Login(context.Background(), &models.LoginResponse{AccessToken: "t", User: &models.UserProfile{ID: "u1", Roles: []string{"Admin"}}}))

	st := s.State()
	st.User.Roles[0] = "Hacker"
	assert.Equal(t, []string{"Admin"}, s.State().User.Roles)
}

func TestExpireFlagsUntilAcknowledged(t *testing.T) {
	s, _, q := newTestStore()
	defer q.Close()
	ctx := context.Background()
	require.NoError(t, s.Login(ctx, &models.LoginResponse{AccessToken: "t", User: &models.UserProfile{ID: "u1"}}))

	require.NoError(t, s.Expire(ctx))
	assert.True(t, s.State().Expired)
	assert.False(t, s.State().Authenticated)

	s.AckExpired()
	assert.False(t, s.State().Expired)

	require.NoError(t, s.Expire(ctx))
	require.NoError(t, s.Login(ctx, &models.LoginResponse{AccessToken: "t2", User: &models.UserProfile{ID: "u1"}}))
	assert.False(t, s.State().Expired)
}
