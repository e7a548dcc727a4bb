// Package detect classifies episode reference tokens and summarizes how a
// title's episode set is encoded.
package detect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/myselfbbs/vodplay/source"
)

// Shape is the encoding a single episode token was recognized as.
type Shape int

const (
	Unrecognized Shape = iota
	PathReference
	OpaqueIdentifier
	LegacyPair
)

// Shapes lists every shape, Unrecognized last.
func Shapes() []Shape {
	return []Shape{PathReference, OpaqueIdentifier, LegacyPair, Unrecognized}
}

func (s Shape) String() string {
	switch s {
	case PathReference:
		return "play_path"
	case OpaqueIdentifier:
		return "encoded_id"
	case LegacyPair:
		return "legacy_pair"
	default:
		return "unknown"
	}
}

func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Shape) UnmarshalText(text []byte) error {
	for _, shape := range Shapes() {
		if shape.String() == string(text) {
			*s = shape
			return nil
		}
	}
	return fmt.Errorf("unknown shape %q", text)
}

// Bounds of an opaque identifier, in characters.
const (
	MinOpaqueLength = 10
	MaxOpaqueLength = 30
)

var (
	pathReferenceRegex = regexp.MustCompile(`^play/\d+/\d+$`)
	opaqueCharsetRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// IsOpaqueCharset reports whether s is made only of [A-Za-z0-9_-].
func IsOpaqueCharset(s string) bool {
	return opaqueCharsetRegex.MatchString(s)
}

// Classify decides the shape of a string token. It never fails.
// The path-reference rule is tried first.
func Classify(token string) Shape {
	token = strings.TrimSpace(token)
	if token == "" {
		return Unrecognized
	}

	if pathReferenceRegex.MatchString(token) {
		return PathReference
	}

	// the charset is ASCII, so byte length equals character length
	if n := len(token); n >= MinOpaqueLength && n <= MaxOpaqueLength && IsOpaqueCharset(token) {
		return OpaqueIdentifier
	}

	return Unrecognized
}

// ClassifyToken classifies a decoded token. Legacy pairs are tagged as such
// and never go through the string rules.
func ClassifyToken(token source.Token) Shape {
	switch token.Kind {
	case source.KindText:
		return Classify(token.Text)
	case source.KindPair:
		return LegacyPair
	default:
		return Unrecognized
	}
}
