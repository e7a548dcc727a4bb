package derive

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Layout names the physical URL scheme of a manifest.
type Layout string

const (
	LayoutUnknown Layout = "unknown"
	LayoutVPX     Layout = "vpx"
	LayoutHLS     Layout = "hls"
	LayoutLegacy  Layout = "m3u8"
)

var (
	vpxPathRegex    = regexp.MustCompile(`^/vpx/\d+/\d+/(720p|1080p|480p)\.m3u8$`)
	hlsPathRegex    = regexp.MustCompile(`^/hls/[A-Za-z0-9_-]+/[A-Za-z0-9_-]+/[A-Za-z0-9_-]+/[A-Za-z0-9_-]+/index\.m3u8$`)
	legacyPathRegex = regexp.MustCompile(`^/m3u8/[^/]+/[^/]+$`)
)

// URLCheck is the outcome of validating a manifest URL.
type URLCheck struct {
	URL    string   `json:"url"`
	Valid  bool     `json:"is_valid"`
	Layout Layout   `json:"type"`
	Errors []string `json:"errors,omitempty"`
}

// Check validates a manifest URL against the layouts this deriver produces.
func (d Deriver) Check(raw string) (check URLCheck) {
	check = URLCheck{URL: raw, Layout: LayoutUnknown}
	defer func() { check.Valid = len(check.Errors) == 0 }()

	if strings.TrimSpace(raw) == "" {
		check.Errors = append(check.Errors, "url is empty")
		return check
	}

	u, err := url.Parse(raw)
	if err != nil {
		check.Errors = append(check.Errors, fmt.Sprintf("invalid url: %s", err))
		return check
	}

	if u.Scheme != "https" {
		check.Errors = append(check.Errors, "url must use https")
	}

	var expectedHost string
	switch path := u.EscapedPath(); {
	case strings.HasPrefix(path, "/vpx/"):
		check.Layout, expectedHost = LayoutVPX, d.ManifestHost
		if !vpxPathRegex.MatchString(path) {
			check.Errors = append(check.Errors, "vpx path must be /vpx/<digits>/<digits>/<720p|1080p|480p>.m3u8")
		}
	case strings.HasPrefix(path, "/hls/"):
		check.Layout, expectedHost = LayoutHLS, d.ManifestHost
		if !hlsPathRegex.MatchString(path) {
			check.Errors = append(check.Errors, "hls path must be /hls/<s1>/<s2>/<s3>/<id>/index.m3u8")
		}
	case strings.HasPrefix(path, "/m3u8/"):
		check.Layout, expectedHost = LayoutLegacy, d.LegacyHost
		if !legacyPathRegex.MatchString(path) {
			check.Errors = append(check.Errors, "legacy path must be /m3u8/<id>/<episode>")
		}
	default:
		check.Errors = append(check.Errors, "unknown url layout")
		return check
	}

	if host := hostOf(expectedHost); host != "" && u.Host != host {
		check.Errors = append(check.Errors, fmt.Sprintf("unexpected host %q, want %q", u.Host, host))
	}

	return check
}

func hostOf(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return u.Host
}
