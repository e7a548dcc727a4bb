// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Playback URL synthesis - these keys drive episode resolution and composition.
const (
	PlaybackQuality              = "playback.quality"
	PlaybackEnableFallback       = "playback.enable_fallback"
	PlaybackLegacyOnUnrecognized = "playback.legacy_on_unrecognized"
	PlaybackBaseURL              = "playback.base_url"
	PlaybackManifestHost         = "playback.manifest_host"
	PlaybackWorkers              = "playback.workers"
	PlaybackPlayFrom             = "playback.play_from"
)

// Format detection.
const (
	DetectCacheSize = "detect.cache_size"
)

// Statistics persisted across runs.
const (
	MetricsPersist = "metrics.persist"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored   = "cli.colored"
	IconsVariant = "icons.variant"
)
