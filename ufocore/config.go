package ufocore

import "github.com/npillmayer/schuko/gconf"

// TraceLevel returns the configured tracer level override for the
// module, read through the shared gconf object (mirrors
// core/locate/resources/caching.go's gconf.GetString("app-key")).
// Empty means "use the tracer's own default".
func TraceLevel() string {
	return gconf.GetString("ufo.trace-level")
}

// AllowUnknownFontInfoKeysQuietly reports whether unknown fontinfo.plist
// keys should be preserved without an Info-level log line. Unknown keys
// are always preserved unconditionally; this flag only controls whether
// that fact is logged.
func AllowUnknownFontInfoKeysQuietly() bool {
	return gconf.GetBool("ufo.allow-unknown-fontinfo-keys")
}
