// Package locales embeds the translation bundles, one <lang>.json per locale.
package locales

import "embed"

//go:embed *.json
var FS embed.FS
