// Package constant defines immutable application-level identifiers and upstream endpoints.
package constant

const (
	// App is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	App = "vodplay"

	// Version is the current application semantic version string.
	Version = "0.1.0"
)

// Upstream hosts.
const (
	// ManifestHost serves the VPX and HLS manifest layouts.
	ManifestHost = "https://vpx05.myself-bbs.com"

	// LegacyHost serves the flat /m3u8/<content>/<episode> layout and fallback URLs.
	LegacyHost = "https://myself-bbs.jacob.workers.dev"

	// PlayFrom is the player identifier attached to every output record.
	PlayFrom = "myself-bbs"
)
