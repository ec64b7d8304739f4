package middleware

import (
	"net/http"
	"strings"

	"finitefield.org/studio-web/internal/httpx"
)

// writeError answers JSON to htmx and API callers, plain text otherwise.
func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if IsHTMX(r.Context()) || strings.HasPrefix(r.URL.Path, "/api/") {
		httpx.WriteError(r.Context(), w, code, msg)
		return
	}
	http.Error(w, msg, code)
}
