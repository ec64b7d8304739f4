package handlers

import "finitefield.org/studio-web/internal/config"

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	GTMContainerID   string // e.g. GTM-XXXXXXX
	Debug            bool
}

// AnalyticsFromConfig builds Analytics from the loaded configuration. Tags are
// only emitted in production so local sessions do not pollute reports.
func AnalyticsFromConfig(cfg config.Config) Analytics {
	a := Analytics{Debug: cfg.Server.DevMode}
	if cfg.Production() {
		a.GA4MeasurementID = cfg.Analytics.GAMeasurementID
		a.GTMContainerID = cfg.Analytics.GTMContainerID
	}
	return a
}

// Enabled reports whether any tag should be rendered.
func (a Analytics) Enabled() bool {
	return a.GA4MeasurementID != "" || a.GTMContainerID != ""
}
