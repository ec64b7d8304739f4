package main

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/studio-web/internal/cms"
	"finitefield.org/studio-web/internal/config"
	"finitefield.org/studio-web/internal/contact"
	"finitefield.org/studio-web/internal/gallery"
	"finitefield.org/studio-web/internal/httpx"
	"finitefield.org/studio-web/internal/i18n"
	mw "finitefield.org/studio-web/internal/middleware"
	"finitefield.org/studio-web/internal/observability"
	"finitefield.org/studio-web/internal/status"
	"finitefield.org/studio-web/internal/youtube"
	"finitefield.org/studio-web/locales"
	"finitefield.org/studio-web/static"
	"finitefield.org/studio-web/templates"
)

const (
	defaultLang    = "ko"
	requestTimeout = 30 * time.Second
)

// app holds the read-only dependencies shared by all handlers.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	cms      *cms.Client
	bundle   *i18n.Bundle
	contact  *contact.Service
	resolver *youtube.Resolver
	render   *renderer
	status   *status.Checker
}

type appOptions struct {
	templates fs.FS
	mailer    contact.Mailer
	cmsOpts   []cms.Option
}

type appOption func(*appOptions)

// withTemplates parses templates from fsys instead of the embedded copy.
func withTemplates(fsys fs.FS) appOption {
	return func(o *appOptions) { o.templates = fsys }
}

// withMailer replaces the logging mailer.
func withMailer(m contact.Mailer) appOption {
	return func(o *appOptions) { o.mailer = m }
}

// withCMSOptions appends CMS client options.
func withCMSOptions(opts ...cms.Option) appOption {
	return func(o *appOptions) { o.cmsOpts = append(o.cmsOpts, opts...) }
}

func newApp(cfg config.Config, logger *zap.Logger, opts ...appOption) (*app, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := appOptions{templates: templates.FS}
	for _, opt := range opts {
		opt(&o)
	}

	cmsOpts := []cms.Option{cms.WithTimeout(cfg.CMS.Timeout), cms.WithLogger(logger)}
	if cfg.CMS.SeedFile != "" {
		ds, err := cms.LoadSeedFile(cfg.CMS.SeedFile)
		if err != nil {
			return nil, err
		}
		cmsOpts = append(cmsOpts, cms.WithFallback(ds))
	}
	cmsOpts = append(cmsOpts, o.cmsOpts...)

	bundle, err := i18n.Load(locales.FS, defaultLang, []string{"ko", "en"})
	if err != nil {
		return nil, err
	}
	rd, err := newRenderer(o.templates, bundle, cfg.Server.DevMode)
	if err != nil {
		return nil, err
	}
	mailer := o.mailer
	if mailer == nil {
		mailer = contact.NewLogMailer(logger)
	}

	client := cms.NewClient(cfg.CMS.BaseURL, cmsOpts...)
	return &app{
		cfg:      cfg,
		logger:   logger,
		cms:      client,
		bundle:   bundle,
		contact:  contact.NewService(mailer, cfg.Contact.Inbox),
		resolver: youtube.NewResolver(logger),
		render:   rd,
		status:   status.NewChecker([]status.Check{{Name: "cms", Probe: client.Ping}}),
	}, nil
}

func (a *app) dispatcher(lang string) gallery.Dispatcher {
	return gallery.NewDispatcher(a.resolver, gallery.LabelsFor(lang))
}

func (a *app) routes() http.Handler {
	secure := a.cfg.Production()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(chimw.RealIP)
	r.Use(observability.InjectLogger(a.logger))
	r.Use(observability.RequestLogger)
	r.Use(observability.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(mw.HTMX)
	r.Use(mw.Session(mw.SessionOptions{SigningKey: a.cfg.Session.SigningKey, Secure: secure, Logger: a.logger}))
	r.Use(mw.Locale(a.bundle))
	r.Use(mw.CSRF(secure))
	r.Use(mw.VaryLocale)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, a.status.Summary(r.Context()))
	})
	r.Handle("/static/*", mw.AssetsWithCache(static.FS, "/static"))

	r.Get("/", a.home)
	for _, section := range cms.GallerySections {
		r.Route("/"+section, func(r chi.Router) {
			r.Get("/", a.galleryPage(section))
			r.Get("/grid", a.galleryGrid(section))
			r.Get("/items/{id}", a.galleryOverlay(section))
			r.Get("/{slug}", a.galleryDetail(section))
		})
	}
	r.Get("/about", a.about)
	r.Get("/contact", a.contactPage)

	r.Route("/api", func(r chi.Router) {
		r.Post("/contact", a.submitContact)
		r.Get("/portfolio-download", a.portfolioDownload)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		a.renderError(w, r, http.StatusNotFound)
	})
	return r
}
