package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/crewjam/saml"
	"github.com/crewjam/saml/samlsp"
	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

func (m *memoryKV) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ttls[key] = ttl
	return nil
}

func (m *memoryKV) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	delete(m.ttls, key)
	return nil
}

func requestWithCookies(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestStore_Lifecycle(t *testing.T) {
	kv := newMemoryKV()
	store := NewStore(kv, Options{Prefix: "planner:", CookieName: "sid", MaxAge: time.Hour})
	ctx := context.Background()

	rec := httptest.NewRecorder()
	id, err := store.Create(ctx, rec, &models.User{EPPN: "abc@harvard.edu", Groups: []string{"admin"}})
	require.NoError(t, err)

	assert.Contains(t, kv.data, "planner:sess:"+id)
	assert.Equal(t, time.Hour, kv.ttls["planner:sess:"+id])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	user, err := store.Load(ctx, requestWithCookies(rec))
	require.NoError(t, err)
	assert.Equal(t, "abc@harvard.edu", user.EPPN)
	assert.True(t, user.IsMember("admin"))

	out := httptest.NewRecorder()
	require.NoError(t, store.Destroy(ctx, out, requestWithCookies(rec)))
	assert.Empty(t, kv.data)

	_, err = store.Load(ctx, requestWithCookies(rec))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_RefreshExtendsCookie(t *testing.T) {
	kv := newMemoryKV()
	store := NewStore(kv, Options{CookieName: "sid", MaxAge: time.Hour})
	ctx := context.Background()

	login := httptest.NewRecorder()
	id, err := store.Create(ctx, login, &models.User{EPPN: "abc@harvard.edu"})
	require.NoError(t, err)

	kv.ttls["sess:"+id] = time.Minute
	req := requestWithCookies(login)
	_, err = store.Load(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, kv.ttls["sess:"+id])

	rec := httptest.NewRecorder()
	store.Refresh(rec, req)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, id, cookies[0].Value)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	none := httptest.NewRecorder()
	store.Refresh(none, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, none.Result().Cookies())
}

func TestStore_RejectsBadCookies(t *testing.T) {
	store := NewStore(newMemoryKV(), Options{CookieName: "sid"})
	ctx := context.Background()

	_, err := store.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, ErrNoSession)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "../../etc"})
	_, err = store.Load(ctx, req)
	assert.ErrorIs(t, err, ErrNoSession)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "9b2f3a55-5a3b-4c63-8d43-8f1f7f0f2b11"})
	_, err = store.Load(ctx, req)
	assert.ErrorIs(t, err, ErrNoSession)
}

func assertionWith(attrs ...saml.Attribute) *saml.Assertion {
	return &saml.Assertion{
		AttributeStatements: []saml.AttributeStatement{{Attributes: attrs}},
	}
}

func attr(name, friendly string, values ...string) saml.Attribute {
	a := saml.Attribute{Name: name, FriendlyName: friendly}
	for _, v := range values {
		a.Values = append(a.Values, saml.AttributeValue{Value: v})
	}
	return a
}

func TestUserFromAssertion(t *testing.T) {
	assertion := assertionWith(
		attr("urn:oid:1.3.6.1.4.1.5923.1.1.1.6", "eduPersonPrincipalName", "abc123@harvard.edu"),
		attr("urn:oid:2.5.4.42", "givenName", "Grace"),
		attr("urn:oid:2.5.4.4", "sn", "Hopper"),
		attr("mail", "", "grace@seas.harvard.edu"),
		attr("memberOf", "", "staff", "admin"),
	)

	user, err := UserFromAssertion(assertion, "memberOf")
	require.NoError(t, err)
	assert.Equal(t, "abc123@harvard.edu", user.EPPN)
	assert.Equal(t, "Grace", user.FirstName)
	assert.Equal(t, "Hopper", user.LastName)
	assert.Equal(t, "grace@seas.harvard.edu", user.Email)
	assert.Equal(t, []string{"staff", "admin"}, user.Groups)
}

func TestUserFromAssertion_Unauthorized(t *testing.T) {
	_, err := UserFromAssertion(nil, "memberOf")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = UserFromAssertion(assertionWith(attr("givenName", "", "Grace")), "memberOf")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.EqualError(t, err, "You are not authorized to use this application. Please contact SEAS computing")
}

func TestSAMLProvider(t *testing.T) {
	kv := newMemoryKV()
	provider := NewSAMLProvider(NewStore(kv, Options{CookieName: "sid"}), "memberOf")

	_, err := provider.GetSession(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, samlsp.ErrNoSession)

	rec := httptest.NewRecorder()
	login := httptest.NewRequest(http.MethodPost, "/saml/acs", nil)
	require.NoError(t, provider.CreateSession(rec, login, assertionWith(attr("eppn", "", "x@harvard.edu"))))

	sess, err := provider.GetSession(requestWithCookies(rec))
	require.NoError(t, err)
	user, ok := sess.(*models.User)
	require.True(t, ok)
	assert.Equal(t, "x@harvard.edu", user.EPPN)

	require.NoError(t, provider.DeleteSession(httptest.NewRecorder(), requestWithCookies(rec)))
	_, err = provider.GetSession(requestWithCookies(rec))
	assert.ErrorIs(t, err, samlsp.ErrNoSession)
}
