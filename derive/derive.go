// Package derive turns validated episode tokens into streaming manifest URLs.
//
// All derivations are pure string transforms and never touch the network.
package derive

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/myselfbbs/vodplay/constant"
	"github.com/myselfbbs/vodplay/detect"
	"github.com/myselfbbs/vodplay/log"
	"github.com/myselfbbs/vodplay/util"
)

const pathReferencePrefix = "play/"

var pathSegmentsRegex = regexp.MustCompile(`^(\d+)/(\d+)$`)

// Deriver holds the hosts URLs are built against.
type Deriver struct {
	// ManifestHost serves the VPX and HLS layouts.
	ManifestHost string
	// LegacyHost serves the flat /m3u8 scheme and fallback URLs.
	LegacyHost string
}

// Default derives against the production hosts.
var Default = Deriver{
	ManifestHost: constant.ManifestHost,
	LegacyHost:   constant.LegacyHost,
}

// New returns a Deriver for the given hosts. Empty hosts keep the defaults.
func New(manifestHost, legacyHost string) Deriver {
	d := Default
	if manifestHost != "" {
		d.ManifestHost = strings.TrimRight(manifestHost, "/")
	}
	if legacyHost != "" {
		d.LegacyHost = strings.TrimRight(legacyHost, "/")
	}
	return d
}

// PathReference maps "play/A/B" to the VPX manifest of the given quality.
// An unsupported quality falls back to 720p.
func (d Deriver) PathReference(token string, quality Quality) (string, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(token), pathReferencePrefix)
	if !ok {
		return "", malformed("%q does not start with %q", token, pathReferencePrefix)
	}

	groups := pathSegmentsRegex.FindStringSubmatch(rest)
	if groups == nil {
		return "", malformed("%q is not two numeric segments", rest)
	}

	if !quality.Valid() {
		log.Warnf("unsupported quality %q, using %s", quality, DefaultQuality)
		quality = DefaultQuality
	}

	return fmt.Sprintf("%s/vpx/%s/%s/%s.m3u8", d.ManifestHost, groups[1], groups[2], quality), nil
}

// OpaqueIdentifier maps an opaque identifier to its HLS manifest. The three
// directory segments are the characters at [4:6), [6:8) and [8:10).
func (d Deriver) OpaqueIdentifier(token string) (string, error) {
	token = strings.TrimSpace(token)

	if !detect.IsOpaqueCharset(token) {
		return "", malformed("%q has characters outside [A-Za-z0-9_-]", token)
	}

	if len(token) < detect.MinOpaqueLength {
		return "", fmt.Errorf("%w: %q has %d characters", ErrSlice, token, len(token))
	}

	s1, s2, s3 := token[4:6], token[6:8], token[8:10]
	return fmt.Sprintf("%s/hls/%s/%s/%s/%s/index.m3u8", d.ManifestHost, s1, s2, s3, token), nil
}

// LegacyPair maps [contentId, episodeId] to the flat /m3u8 scheme.
func (d Deriver) LegacyPair(contentID, episodeID string) (string, error) {
	contentID, episodeID = strings.TrimSpace(contentID), strings.TrimSpace(episodeID)
	if contentID == "" || episodeID == "" {
		return "", malformed("legacy pair [%q, %q] has an empty part", contentID, episodeID)
	}

	return fmt.Sprintf("%s/m3u8/%s/%s", d.LegacyHost, contentID, episodeID), nil
}

// FallbackWidth is the zero-padded width of fallback episode numbers.
const FallbackWidth = 3

// Fallback synthesizes a best-effort URL from the episode label and title id.
// The first digit run of the label is the episode number, "001" when absent.
// It never fails and the URL may not resolve to real content.
func (d Deriver) Fallback(label string, titleID int) string {
	number, ok := util.FirstDigits(label)
	if !ok {
		number = "1"
	}

	return fmt.Sprintf("%s/m3u8/%d/%s", d.LegacyHost, titleID, util.PadLeft(number, FallbackWidth))
}
