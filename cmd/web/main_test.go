package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"finitefield.org/studio-web/internal/cms"
	"finitefield.org/studio-web/internal/config"
	"finitefield.org/studio-web/internal/contact"
	"finitefield.org/studio-web/internal/gallery"
	"finitefield.org/studio-web/internal/testutil"
)

// newTestRouter builds the same handler as main() from an explicit environment.
func newTestRouter(t *testing.T, env map[string]string, opts ...appOption) http.Handler {
	t.Helper()
	cfg, err := config.Load(context.Background(), config.WithoutSystemEnv(), config.WithEnvFile(""), config.WithEnvMap(env))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	a, err := newApp(cfg, nil, opts...)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	return a.routes()
}

// testClient replays cookies between requests like a browser would.
type testClient struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newTestClient(t *testing.T, h http.Handler) *testClient {
	return &testClient{t: t, handler: h, cookies: map[string]*http.Cookie{}}
}

func (c *testClient) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *testClient) get(path string, headers ...string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return c.do(req)
}

func (c *testClient) csrf() string {
	if ck, ok := c.cookies["csrf_token"]; ok {
		return ck.Value
	}
	return ""
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []contact.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg contact.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestHealthzOK(t *testing.T) {
	srv := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "ok" {
		t.Fatalf("expected body 'ok', got %q", got)
	}
}

func TestHomeLocalizedNav_EN(t *testing.T) {
	srv := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, ">Work<") {
		t.Fatalf("expected localized nav label 'Work' in body; body=%s", body)
	}
	if got := rec.Header().Get("Content-Language"); got != "en" {
		t.Fatalf("expected Content-Language en, got %q", got)
	}

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	if n := doc.Find(".featured .card").Length(); n != 3 {
		t.Fatalf("expected 3 featured cards, got %d", n)
	}
	if n := doc.Find(".client-logos li").Length(); n != 3 {
		t.Fatalf("expected 3 client logos, got %d", n)
	}
	if !strings.Contains(doc.Find(`script[type="application/ld+json"]`).Text(), `"@type":"Organization"`) {
		t.Fatalf("expected Organization JSON-LD on home")
	}
}

func TestHomeDefaultsToKorean(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), ">작업<")
	require.Contains(t, rec.Body.String(), `<html lang="ko">`)
}

func TestGalleryPageRendersCardsAndChips(t *testing.T) {
	c := newTestClient(t, newTestRouter(t, nil))
	rec := c.get("/work", "Accept-Language", "en")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, 3, doc.Find("#gallery-grid .card").Length())
	var chips []string
	doc.Find(".filter-chips [data-sub]").Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr("data-sub")
		chips = append(chips, v)
	})
	require.Equal(t, []string{"branded-video", "branding", "package", "product"}, chips)
	require.Equal(t, "Branding", strings.TrimSpace(doc.Find(`[data-sub="branding"]`).Text()))
	require.Zero(t, doc.Find(".overlay").Length())
}

func TestGalleryPageFiltersBySubCategoryAndKeyword(t *testing.T) {
	c := newTestClient(t, newTestRouter(t, nil))

	rec := c.get("/work?sub=product", "Accept-Language", "en")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, 1, doc.Find("#gallery-grid .card").Length())
	require.Equal(t, "work-product-shoot", doc.Find(".card").AttrOr("data-item-id", ""))
	require.Equal(t, "true", doc.Find(`[data-sub="product"]`).AttrOr("aria-pressed", ""))
	require.Contains(t, rec.Body.String(), `name="robots" content="noindex, follow"`)

	rec = c.get("/work?q=CAFE")
	doc = testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, "work-cafe-identity", doc.Find(".card").AttrOr("data-item-id", ""))

	rec = c.get("/work?sub=product&q=cafe")
	doc = testutil.ParseHTML(t, rec.Body.Bytes())
	require.Zero(t, doc.Find(".card").Length())
	require.Equal(t, 1, doc.Find(".no-results").Length())
	require.Contains(t, doc.Find(".no-results").Text(), "No projects match")
}

func TestGalleryGridFragmentPushesQuery(t *testing.T) {
	srv := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/work/grid?sub=branding&q=cafe", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("Accept-Language", "en")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	want := "/work?q=cafe&sub=branding"
	if got := rec.Header().Get("HX-Push-Url"); got != want {
		t.Fatalf("expected HX-Push-Url %q, got %q", want, got)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<html") {
		t.Fatalf("expected a fragment without layout")
	}
	if !strings.Contains(body, `id="gallery-grid"`) || !strings.Contains(body, `data-item-id="work-cafe-identity"`) {
		t.Fatalf("expected grid fragment with cafe card; body=%s", body)
	}
	if !strings.Contains(body, `href="/work?q=cafe"`) {
		t.Fatalf("expected toggling the active chip to keep the keyword; body=%s", body)
	}
}

func TestGalleryOverlayDispatchesTemplate(t *testing.T) {
	srv := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/content/items/content-shorts-series?sub=short-form", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "/content?item=content-shorts-series&sub=short-form", rec.Header().Get("HX-Push-Url"))

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	overlay := doc.Find(".overlay")
	require.Equal(t, "300", overlay.AttrOr("data-reopen-delay-ms", ""))
	require.Equal(t, "/content?sub=short-form", overlay.Find(".overlay-close").AttrOr("href", ""))
	require.Equal(t, 1, doc.Find(`[data-template="tpl_multi_video"]`).Length())
	require.Equal(t, 2, doc.Find(".carousel-slide iframe").Length())
	require.Equal(t, "https://www.youtube.com/embed/tPEE9ZwTmy0", doc.Find(".carousel-slide iframe").First().AttrOr("src", ""))
	require.Equal(t, 1, doc.Find("[data-carousel-next]").Length(), "controls appear with more than one video")
}

func TestGalleryOverlayUnknownItem(t *testing.T) {
	srv := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/content/items/missing", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func relatedDataset() *cms.Dataset {
	ds := cms.DefaultDataset()
	ds.Sections[cms.DocWork] = []gallery.Record{
		{ID: "w1", DocType: cms.DocWork, Title: "First Film", Category: "video", SubCategory: gallery.NewSet("interview"), ContentType: gallery.TypeSingleMedia, VideoURL: "https://youtu.be/aaa111", Slug: "first-film"},
		{ID: "w2", DocType: cms.DocWork, Title: "Second Film", Category: "video", SubCategory: gallery.NewSet("interview", "motion"), ContentType: gallery.TypeSingleMedia, VideoURL: "https://youtu.be/bbb222"},
		{ID: "w3", DocType: cms.DocWork, Title: "Poster", Category: "design", SubCategory: gallery.NewSet("interview"), ContentType: gallery.TypeImageGrid, Images: []string{"/1.jpg", "/2.jpg", "/3.jpg", "/4.jpg", "/5.jpg"}},
	}
	ds.Portfolio = &cms.PortfolioDownload{Title: "Studio Deck", URL: "https://cdn.example.com/deck.pdf"}
	return ds
}

func TestGalleryPageWithSelectedItemShowsRelated(t *testing.T) {
	srv := newTestRouter(t, nil, withCMSOptions(cms.WithFallback(relatedDataset())))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/work?item=w1", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, "w1", doc.Find(".overlay").AttrOr("data-item-id", ""))
	related := doc.Find(".related-list a")
	require.Equal(t, 1, related.Length(), "only same-category items with a shared sub-category")
	require.Equal(t, "/work/items/w2", related.AttrOr("data-related-url", ""))
	require.Equal(t, "/work/w2", related.AttrOr("href", ""))
}

func TestDetailPageRendersStructuredData(t *testing.T) {
	srv := newTestRouter(t, map[string]string{"STUDIO_WEB_SITE_URL": "https://studio.example"}, withCMSOptions(cms.WithFallback(relatedDataset())))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/work/first-film", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, "https://www.youtube.com/embed/aaa111", doc.Find(".embed iframe").AttrOr("src", ""))
	require.Equal(t, "https://studio.example/work/first-film", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))
	ld := doc.Find(`script[type="application/ld+json"]`).Text()
	require.Contains(t, ld, `"@type":"VideoObject"`)
	require.Contains(t, ld, `"@type":"BreadcrumbList"`)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/work/w3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc = testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, 4, doc.Find(`[data-template="tpl_image_grid"] .grid img`).Length())
	require.Contains(t, doc.Find(`script[type="application/ld+json"]`).Text(), `"@type":"CreativeWork"`)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/work/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAboutRendersMarkdown(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/about", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, "video", doc.Find(".about-body strong").First().Text())
	require.Equal(t, 3, doc.Find(".about-stats dt").Length())
}

func TestUnknownRouteRendersNotFound(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blog", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), `content="noindex"`)
}

func TestStaticAssetsServedWithETag(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("ETag"))
}

func TestSessionMiddlewareSetsCookie(t *testing.T) {
	c := newTestClient(t, newTestRouter(t, nil))
	rec := c.get("/contact")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, c.cookies, "STUDIO_WEB_SESSION")
	require.NotEmpty(t, c.csrf())

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, c.csrf(), doc.Find(`meta[name="csrf-token"]`).AttrOr("content", ""))
	require.Equal(t, "/api/contact", doc.Find("#contact-form").AttrOr("action", ""))
}

func validInquiry() map[string]string {
	return map[string]string{
		contact.FieldCompanyOrName: "Acme",
		contact.FieldContact:       "010-0000-0000",
		contact.FieldEmail:         "pm@acme.example",
		contact.FieldProjectType:   "video",
		contact.FieldContent:       "Launch film",
	}
}

func postInquiry(t *testing.T, c *testClient, fields map[string]string, files ...testutil.File) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.MultipartRequest(t, http.MethodPost, "/api/contact", fields, files...)
	req.Header.Set("X-CSRF-Token", c.csrf())
	return c.do(req)
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode json: %v; body=%s", err, rec.Body.String())
	}
	return out
}

func TestContactRequiresCSRF(t *testing.T) {
	c := newTestClient(t, newTestRouter(t, nil))
	c.get("/contact")

	req := testutil.MultipartRequest(t, http.MethodPost, "/api/contact", validInquiry())
	rec := c.do(req)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.NotEmpty(t, decodeJSON(t, rec)["error"])
}

func TestContactSubmitSuccess(t *testing.T) {
	mailer := &recordingMailer{}
	c := newTestClient(t, newTestRouter(t, map[string]string{"STUDIO_WEB_CONTACT_INBOX": "hello@studio.example"}, withMailer(mailer)))
	c.get("/contact", "Accept-Language", "en")

	rec := postInquiry(t, c, validInquiry(), testutil.File{Field: contact.FieldReference, Filename: "brief.txt", Data: []byte("brief")})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeJSON(t, rec)
	require.Equal(t, true, body["success"])
	require.Equal(t, "Your inquiry has been sent. We will get back to you soon.", body["message"])
	require.Len(t, body["messageId"], 26)

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	require.Equal(t, "hello@studio.example", msg.To)
	require.Equal(t, "pm@acme.example", msg.ReplyTo)
	require.Equal(t, body["messageId"], msg.ID)
	require.Len(t, msg.Attachments, 1)
	require.Equal(t, "brief.txt", msg.Attachments[0].Filename)
}

func TestContactSubmitValidation(t *testing.T) {
	mailer := &recordingMailer{}
	c := newTestClient(t, newTestRouter(t, nil, withMailer(mailer)))
	c.get("/contact", "Accept-Language", "en")

	fields := validInquiry()
	fields[contact.FieldProjectType] = " "
	rec := postInquiry(t, c, fields)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Please fill in all required fields.", decodeJSON(t, rec)["error"])

	fields = validInquiry()
	fields[contact.FieldEmail] = "not-an-email"
	rec = postInquiry(t, c, fields)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Please enter a valid email address.", decodeJSON(t, rec)["error"])
	require.Empty(t, mailer.sent)
}

func TestContactSubmitMailerFailure(t *testing.T) {
	c := newTestClient(t, newTestRouter(t, nil, withMailer(&recordingMailer{err: errors.New("smtp down")})))
	c.get("/contact")

	rec := postInquiry(t, c, validInquiry())
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotEmpty(t, decodeJSON(t, rec)["error"])
}

func TestContactSubmitTooLarge(t *testing.T) {
	c := newTestClient(t, newTestRouter(t, map[string]string{"STUDIO_WEB_CONTACT_MAX_UPLOAD": "1024"}, withMailer(&recordingMailer{})))
	c.get("/contact")

	rec := postInquiry(t, c, validInquiry(), testutil.File{Field: contact.FieldReference, Filename: "big.bin", Data: make([]byte, 8192)})
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestPortfolioDownload(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/portfolio-download", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NotEmpty(t, decodeJSON(t, rec)["error"])

	srv = newTestRouter(t, nil, withCMSOptions(cms.WithFallback(relatedDataset())))
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/portfolio-download", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	require.Equal(t, "Studio Deck", body["title"])
	require.Equal(t, "https://cdn.example.com/deck.pdf", body["url"])
}

func TestReadyzReportsComponents(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	require.Equal(t, "operational", body["state"])
	require.Len(t, body["components"], 1)
}
