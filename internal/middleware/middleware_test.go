package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"finitefield.org/studio-web/internal/i18n"
)

func testBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	b, err := i18n.Load(fstest.MapFS{
		"ko.json": {Data: []byte(`{}`)},
		"en.json": {Data: []byte(`{}`)},
	}, "ko", []string{"ko", "en"})
	require.NoError(t, err)
	return b
}

func chain(t *testing.T, h http.Handler) http.Handler {
	t.Helper()
	h = CSRF(false)(h)
	h = Locale(testBundle(t))(h)
	h = HTMX(h)
	return Session(SessionOptions{SigningKey: "test-key"})(h)
}

func cookieNamed(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSessionCSRFRoundTrip(t *testing.T) {
	var seenLang string
	h := chain(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenLang = Lang(r)
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "en", seenLang)
	require.Equal(t, "en", rec.Header().Get("Content-Language"))

	session := cookieNamed(rec.Result().Cookies(), sessionCookieName)
	csrf := cookieNamed(rec.Result().Cookies(), csrfCookieName)
	require.NotNil(t, session)
	require.NotNil(t, csrf)

	post := func(token string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		req.AddCookie(session)
		req.AddCookie(csrf)
		if token != "" {
			req.Header.Set(csrfHeaderName, token)
		}
		h.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusForbidden, post("").Code)
	require.Equal(t, http.StatusForbidden, post("wrong").Code)
	ok := post(csrf.Value)
	require.Equal(t, http.StatusOK, ok.Code)
	require.Equal(t, "en", seenLang, "locale persists in the session")
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	var id string
	h := chain(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = GetSession(r).ID
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "eyJpZCI6ImZvcmdlZCJ9.c2ln"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotEmpty(t, id)
	require.NotEqual(t, "forged", id)
}

func TestLocaleQueryOverride(t *testing.T) {
	var lang string
	h := chain(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang = Lang(r)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?hl=EN", nil))
	require.Equal(t, "en", lang)
	hl := cookieNamed(rec.Result().Cookies(), localeParam)
	require.NotNil(t, hl)
	require.Equal(t, "en", hl.Value)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?hl=xx", nil))
	require.Equal(t, "ko", lang)
}

func TestHTMXFlagAndPushURL(t *testing.T) {
	var is bool
	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is = IsHTMX(r.Context())
		PushURL(w, "/work?sub=web")
	}))
	req := httptest.NewRequest(http.MethodGet, "/work/grid", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.True(t, is)
	require.Equal(t, "/work?sub=web", rec.Header().Get("HX-Push-Url"))
}

func TestAssetsWithCacheETag(t *testing.T) {
	h := AssetsWithCache(fstest.MapFS{"css/site.css": {Data: []byte("body{}")}}, "/static")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	require.Contains(t, rec.Header().Get("Cache-Control"), "max-age")

	req := httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotModified, rec.Code)
}
