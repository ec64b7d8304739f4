// Package templates embeds the html/template sources of the site.
package templates

import "embed"

// FS holds every .tmpl file under layouts/, partials/ and pages/.
//
//go:embed layouts/*.tmpl partials/*.tmpl pages/*.tmpl
var FS embed.FS
