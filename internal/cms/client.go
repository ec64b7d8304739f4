package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"finitefield.org/studio-web/internal/gallery"
)

// ErrNotFound is returned when a CMS resource cannot be located.
var ErrNotFound = errors.New("cms: not found")

const defaultTimeout = 5 * time.Second

// Client provides read-only access to CMS documents. A nil or unconfigured
// client serves the fallback dataset.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	fallback *Dataset
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithLogger attaches a logger for request failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFallback replaces the built-in placeholder dataset.
func WithFallback(ds *Dataset) Option {
	return func(c *Client) {
		if ds != nil {
			c.fallback = ds
		}
	}
}

// NewClient constructs a Client with the provided base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimSpace(baseURL)
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: defaultTimeout},
		logger:   zap.NewNop(),
		fallback: DefaultDataset(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.logger = c.logger.Named("cms")
	return c
}

// Configured reports whether requests go to a remote CMS.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

// Records returns the raw gallery records of one section. Remote failures and
// empty responses fall back to the local dataset; a 404 is an empty section.
func (c *Client) Records(ctx context.Context, docType, lang string) ([]gallery.Record, error) {
	if !IsGallerySection(docType) {
		return nil, fmt.Errorf("cms: unknown gallery section %q", docType)
	}
	raws, status := c.fetch(ctx, docType, lang)
	if status == fetchNotFound {
		return []gallery.Record{}, nil
	}
	if status == fetchOK {
		records := make([]gallery.Record, 0, len(raws))
		for _, raw := range raws {
			if r, ok := mapGalleryRecord(raw, docType); ok {
				records = append(records, r)
			}
		}
		if len(records) > 0 {
			return records, nil
		}
	}
	return c.dataset().records(docType), nil
}

// Gallery returns the normalized, render-ready items of one section.
func (c *Client) Gallery(ctx context.Context, docType, lang string) ([]gallery.Item, error) {
	records, err := c.Records(ctx, docType, lang)
	if err != nil {
		return nil, err
	}
	return gallery.Build(records), nil
}

// About returns the studio introduction.
func (c *Client) About(ctx context.Context, lang string) (About, error) {
	raws, status := c.fetch(ctx, DocAbout, lang)
	if status == fetchOK && len(raws) > 0 {
		return mapAbout(raws[0]), nil
	}
	if status == fetchNotFound {
		return About{}, ErrNotFound
	}
	return c.dataset().About, nil
}

// Clients returns the client logo wall entries.
func (c *Client) Clients(ctx context.Context, lang string) ([]ClientLogo, error) {
	raws, status := c.fetch(ctx, DocClient, lang)
	switch status {
	case fetchNotFound:
		return []ClientLogo{}, nil
	case fetchOK:
		out := make([]ClientLogo, 0, len(raws))
		for _, raw := range raws {
			if cl, ok := mapClient(raw); ok {
				out = append(out, cl)
			}
		}
		if len(out) > 0 {
			return out, nil
		}
	}
	return append([]ClientLogo(nil), c.dataset().Clients...), nil
}

// SocialLinks returns the footer channel links.
func (c *Client) SocialLinks(ctx context.Context, lang string) ([]SocialLink, error) {
	raws, status := c.fetch(ctx, DocSocialLink, lang)
	switch status {
	case fetchNotFound:
		return []SocialLink{}, nil
	case fetchOK:
		out := make([]SocialLink, 0, len(raws))
		for _, raw := range raws {
			if sl, ok := mapSocialLink(raw); ok {
				out = append(out, sl)
			}
		}
		if len(out) > 0 {
			return out, nil
		}
	}
	return append([]SocialLink(nil), c.dataset().SocialLinks...), nil
}

// PortfolioDownload returns the downloadable portfolio. It never falls back:
// without a remote CMS, or when no file is published, ErrNotFound is returned.
func (c *Client) PortfolioDownload(ctx context.Context) (PortfolioDownload, error) {
	if !c.Configured() {
		if ds := c.dataset(); ds.Portfolio != nil {
			return *ds.Portfolio, nil
		}
		return PortfolioDownload{}, ErrNotFound
	}
	raws, status := c.fetch(ctx, DocPortfolioDownload, "")
	if status == fetchFailed {
		return PortfolioDownload{}, fmt.Errorf("cms: portfolio download unavailable")
	}
	for _, raw := range raws {
		if pd, ok := mapPortfolioDownload(raw); ok {
			return pd, nil
		}
	}
	return PortfolioDownload{}, ErrNotFound
}

type fetchStatus int

const (
	fetchFailed fetchStatus = iota
	fetchOK
	fetchNotFound
)

type pageRecords struct {
	Items []rawRecord `json:"items"`
}

func (c *Client) fetch(ctx context.Context, docType, lang string) ([]rawRecord, fetchStatus) {
	if !c.Configured() {
		return nil, fetchFailed
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: defaultTimeout}
	}
	logger := c.logger.With(zap.String("doc_type", docType))

	endpoint, err := url.JoinPath(c.baseURL, "documents", docType)
	if err != nil {
		logger.Warn("join path", zap.Error(err))
		return nil, fetchFailed
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logger.Warn("build request", zap.Error(err))
		return nil, fetchFailed
	}
	if lang = strings.TrimSpace(lang); lang != "" {
		q := req.URL.Query()
		q.Set("lang", lang)
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("request failed", zap.Error(err))
		return nil, fetchFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fetchNotFound
	}
	if resp.StatusCode >= 400 {
		logger.Warn("unexpected status", zap.Int("status", resp.StatusCode))
		return nil, fetchFailed
	}

	var pg pageRecords
	if err := json.NewDecoder(resp.Body).Decode(&pg); err != nil {
		logger.Warn("decode response", zap.Error(err))
		return nil, fetchFailed
	}
	return pg.Items, fetchOK
}

// Ping checks that the remote CMS answers. Unconfigured clients serve the
// local dataset and always report nil.
func (c *Client) Ping(ctx context.Context) error {
	if !c.Configured() {
		return nil
	}
	endpoint, err := url.JoinPath(c.baseURL, "documents", DocAbout)
	if err != nil {
		return fmt.Errorf("cms: join path: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("cms: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cms: ping: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("cms: ping: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) dataset() *Dataset {
	if c == nil || c.fallback == nil {
		return DefaultDataset()
	}
	return c.fallback
}

// Dataset fetches every document type for lang into one snapshot. Missing
// sections fall back the same way the per-type methods do.
func (c *Client) Dataset(ctx context.Context, lang string) (*Dataset, error) {
	ds := &Dataset{Sections: make(map[string][]gallery.Record, len(GallerySections))}
	for _, section := range GallerySections {
		records, err := c.Records(ctx, section, lang)
		if err != nil {
			return nil, err
		}
		ds.Sections[section] = records
	}
	about, err := c.About(ctx, lang)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	ds.About = about
	if ds.Clients, err = c.Clients(ctx, lang); err != nil {
		return nil, err
	}
	if ds.SocialLinks, err = c.SocialLinks(ctx, lang); err != nil {
		return nil, err
	}
	switch pd, err := c.PortfolioDownload(ctx); {
	case err == nil:
		ds.Portfolio = &pd
	case !errors.Is(err, ErrNotFound):
		c.logger.Warn("portfolio download", zap.Error(err))
	}
	return ds, nil
}
