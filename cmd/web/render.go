package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"finitefield.org/studio-web/internal/i18n"
	"finitefield.org/studio-web/internal/observability"
)

const pagePrefix = "page_"

// templateSet is the parsed template tree: one clone per page with "content"
// bound to that page, plus a clone for fragments.
type templateSet struct {
	pages map[string]*template.Template
	frags *template.Template
}

// renderer parses templates from fsys once, or on every request in dev mode.
type renderer struct {
	fsys  fs.FS
	dev   bool
	funcs template.FuncMap

	mu    sync.Mutex
	cache *templateSet
}

func newRenderer(fsys fs.FS, bundle *i18n.Bundle, dev bool) (*renderer, error) {
	rd := &renderer{fsys: fsys, dev: dev, funcs: templateFuncs(bundle)}
	set, err := rd.parse()
	if err != nil {
		return nil, err
	}
	rd.cache = set
	return rd, nil
}

func templateFuncs(bundle *i18n.Bundle) template.FuncMap {
	return template.FuncMap{
		"t":  bundle.T,
		"tf": bundle.Tf,
		"year": func() int {
			return time.Now().Year()
		},
		// data is produced by seo.JSON from our own view models
		"jsonld": func(s string) template.JS {
			return template.JS(s)
		},
		"csrfHeaders": func(token string) string {
			b, _ := json.Marshal(map[string]string{"X-CSRF-Token": token})
			return string(b)
		},
	}
}

func (rd *renderer) parse() (*templateSet, error) {
	// ParseFS patterns don't support **, so walk the tree
	var files []string
	if err := fs.WalkDir(rd.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found")
	}
	root, err := template.New("_root").Funcs(rd.funcs).ParseFS(rd.fsys, files...)
	if err != nil {
		return nil, err
	}

	set := &templateSet{pages: map[string]*template.Template{}}
	for _, t := range root.Templates() {
		name := t.Name()
		if !strings.HasPrefix(name, pagePrefix) {
			continue
		}
		page, err := root.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := page.New("content").Parse(`{{ template "` + name + `" . }}`); err != nil {
			return nil, err
		}
		set.pages[strings.TrimPrefix(name, pagePrefix)] = page
	}
	if set.frags, err = root.Clone(); err != nil {
		return nil, err
	}
	return set, nil
}

func (rd *renderer) templates() (*templateSet, error) {
	if !rd.dev {
		return rd.cache, nil
	}
	set, err := rd.parse()
	if err != nil {
		return nil, err
	}
	rd.mu.Lock()
	rd.cache = set
	rd.mu.Unlock()
	return set, nil
}

// page executes the base layout around the named page.
func (rd *renderer) page(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	set, err := rd.templates()
	if err != nil {
		rd.fail(w, r, "template parse", err)
		return
	}
	t, ok := set.pages[name]
	if !ok {
		rd.fail(w, r, "template lookup", fmt.Errorf("unknown page %q", name))
		return
	}
	rd.write(w, r, status, t, "base", data)
}

// fragment executes a single named template, for htmx swaps.
func (rd *renderer) fragment(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	set, err := rd.templates()
	if err != nil {
		rd.fail(w, r, "template parse", err)
		return
	}
	rd.write(w, r, status, set.frags, name, data)
}

func (rd *renderer) write(w http.ResponseWriter, r *http.Request, status int, t *template.Template, name string, data any) {
	// render to a buffer so a failing template never produces half a page
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		rd.fail(w, r, "template exec", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (rd *renderer) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	observability.FromContext(r.Context()).Error(msg, zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
