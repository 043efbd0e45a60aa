package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"member-profile/config"
	"member-profile/models"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFilesystemStore(t *testing.T) sessions.Store {
	t.Helper()
	store, err := NewStore(config.Config{
		SessionType:   config.SessionTypeFilesystem,
		SessionDir:    t.TempDir(),
		SessionSecret: "test-secret",
		SessionMaxAge: time.Hour,
	}, nil)
	require.NoError(t, err)
	return store
}

// roundTrip saves b and loads the session again through the response cookie.
func roundTrip(t *testing.T, store sessions.Store, b *Binding, r *http.Request, mirror bool) *Binding {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, b.Save(r, rec))

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	loaded, err := Load(next, store, mirror)
	require.NoError(t, err)
	return loaded
}

func TestLoad_NewSessionIsAnonymous(t *testing.T) {
	store := newFilesystemStore(t)

	b, err := Load(httptest.NewRequest(http.MethodGet, "/", nil), store, true)

	require.NoError(t, err)
	assert.False(t, b.Authenticated())
	assert.Equal(t, 0, b.Len())
}

func TestLoad_TamperedCookieIsAnonymous(t *testing.T) {
	store := newFilesystemStore(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})

	b, err := Load(r, store, true)

	require.NoError(t, err)
	assert.False(t, b.Authenticated())
}

func TestBinding_SetIdentitySurvivesRoundTrip(t *testing.T) {
	store := newFilesystemStore(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	b, err := Load(r, store, true)
	require.NoError(t, err)

	b.SetIdentity(7, "Bob")
	loaded := roundTrip(t, store, b, r, true)

	name, ok := loaded.Name()
	assert.True(t, ok)
	assert.Equal(t, "Bob", name)
	iid, ok := loaded.IID()
	assert.True(t, ok)
	assert.Equal(t, int64(7), iid)
	_, ok = loaded.Profile()
	assert.False(t, ok)
}

func TestBinding_MirrorProfile(t *testing.T) {
	fields := models.MemberFields{Name: "Alice", Birth: "2000-01-01", Blood: "O", Phone: "0912345678", Email: "a@x.com", IDNo: "U1", Pwd: "p1"}

	t.Run("mirror on copies every field", func(t *testing.T) {
		store := newFilesystemStore(t)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		b, err := Load(r, store, true)
		require.NoError(t, err)
		b.SetIdentity(7, "Bob")

		b.MirrorProfile(fields)
		loaded := roundTrip(t, store, b, r, true)

		profile, ok := loaded.Profile()
		require.True(t, ok)
		assert.Equal(t, fields, profile)
		assert.Equal(t, 8, loaded.Len())
	})

	t.Run("mirror off keeps identity only", func(t *testing.T) {
		store := newFilesystemStore(t)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		b, err := Load(r, store, false)
		require.NoError(t, err)
		b.SetIdentity(7, "Bob")

		b.MirrorProfile(fields)
		loaded := roundTrip(t, store, b, r, false)

		name, _ := loaded.Name()
		assert.Equal(t, "Alice", name)
		_, ok := loaded.Profile()
		assert.False(t, ok)
		assert.Equal(t, 2, loaded.Len())
	})
}

func TestBinding_DemoteKeepsIID(t *testing.T) {
	store := newFilesystemStore(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	b, err := Load(r, store, true)
	require.NoError(t, err)
	b.SetIdentity(7, "Bob")

	b.Demote()
	loaded := roundTrip(t, store, b, r, true)

	assert.False(t, loaded.Authenticated())
	_, ok := loaded.IID()
	assert.True(t, ok)
}

func TestBinding_ClearExpiresCookie(t *testing.T) {
	store := newFilesystemStore(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	b, err := Load(r, store, true)
	require.NoError(t, err)
	b.SetIdentity(7, "Bob")
	rec := httptest.NewRecorder()
	require.NoError(t, b.Save(r, rec))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	// Same browser comes back and logs out.
	again := httptest.NewRequest(http.MethodGet, "/logout", nil)
	again.AddCookie(cookies[0])
	b, err = Load(again, store, true)
	require.NoError(t, err)
	require.True(t, b.Authenticated())

	b.Clear()
	rec = httptest.NewRecorder()
	require.NoError(t, b.Save(again, rec))

	assert.Equal(t, 0, b.Len())
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.True(t, cleared[0].MaxAge < 0)

	// The old token no longer resolves to a bound session.
	stale := httptest.NewRequest(http.MethodGet, "/", nil)
	stale.AddCookie(cookies[0])
	b, err = Load(stale, store, true)
	require.NoError(t, err)
	assert.False(t, b.Authenticated())
}

func TestNewStore_Errors(t *testing.T) {
	_, err := NewStore(config.Config{SessionType: config.SessionTypeCache}, nil)
	assert.Error(t, err)

	_, err = NewStore(config.Config{SessionType: "memcached"}, nil)
	assert.Error(t, err)
}
