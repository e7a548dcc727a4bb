package playurl

import "strings"

// Wire format separators. Neither is escaped inside labels or URLs.
const (
	LabelSeparator   = "$"
	EpisodeSeparator = "#"
	SourceSeparator  = "$$$"
)

// Entry is one label/URL pair of a playback string.
type Entry struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

func (e Entry) String() string {
	return e.Label + LabelSeparator + e.URL
}

// Join serializes entries as label$url#label$url.
func Join(entries []Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString(EpisodeSeparator)
		}
		b.WriteString(e.String())
	}
	return b.String()
}

// JoinSources concatenates playback strings of several players.
func JoinSources(sources ...string) string {
	return strings.Join(sources, SourceSeparator)
}

// Parse splits a single-source playback string into entries. Each entry is
// cut at its first "$"; an entry without one is all label.
func Parse(playURL string) []Entry {
	if playURL == "" {
		return nil
	}

	parts := strings.Split(playURL, EpisodeSeparator)
	entries := make([]Entry, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		label, url, _ := strings.Cut(part, LabelSeparator)
		entries = append(entries, Entry{Label: label, URL: url})
	}

	return entries
}

// ParseSources splits a multi-source playback string, one slice per player.
func ParseSources(playURL string) [][]Entry {
	if playURL == "" {
		return nil
	}

	sources := strings.Split(playURL, SourceSeparator)
	parsed := make([][]Entry, len(sources))
	for i, source := range sources {
		parsed[i] = Parse(source)
	}
	return parsed
}
