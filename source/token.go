// Package source defines the scraped title records and the per-episode reference tokens they carry.
package source

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// TokenKind tells how an episode reference was encoded upstream.
type TokenKind int

const (
	// KindInvalid is anything that is neither a string nor a two-element array.
	KindInvalid TokenKind = iota
	// KindText is a plain string reference.
	KindText
	// KindPair is the legacy [contentId, episodeId] array.
	KindPair
)

func (k TokenKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindPair:
		return "pair"
	default:
		return "invalid"
	}
}

// Token is the opaque reference attached to one episode label.
type Token struct {
	Kind TokenKind
	Text string
	Pair [2]string

	raw json.RawMessage
}

// Text creates a string token.
func Text(s string) Token {
	return Token{Kind: KindText, Text: s}
}

// Pair creates a legacy [contentId, episodeId] token.
func Pair(contentID, episodeID string) Token {
	return Token{Kind: KindPair, Pair: [2]string{contentID, episodeID}}
}

// String returns the token the way it appeared upstream.
func (t Token) String() string {
	switch t.Kind {
	case KindText:
		return t.Text
	case KindPair:
		return fmt.Sprintf("[%s, %s]", t.Pair[0], t.Pair[1])
	default:
		if len(t.raw) == 0 {
			return "null"
		}
		return string(t.raw)
	}
}

// MarshalJSON writes the token back in its upstream encoding.
func (t Token) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case KindText:
		return json.Marshal(t.Text)
	case KindPair:
		return json.Marshal(t.Pair[:])
	default:
		if len(t.raw) == 0 {
			return []byte("null"), nil
		}
		return t.raw, nil
	}
}

// JSONSchema describes the upstream encodings a token may take.
func (Token) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: "Episode reference: a string token or a legacy [contentId, episodeId] pair",
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
	}
}

// UnmarshalJSON never fails on well-formed JSON: values that are neither
// a string nor an array of at least two scalars become KindInvalid.
func (t *Token) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = Token{raw: append(json.RawMessage(nil), data...)}

	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		t.Kind, t.Text = KindText, s
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		if len(items) < 2 {
			return nil
		}

		a, okA := scalar(items[0])
		b, okB := scalar(items[1])
		if okA && okB {
			t.Kind, t.Pair = KindPair, [2]string{a, b}
		}
	}

	return nil
}

// scalar renders a JSON string or number as text.
func scalar(data json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, true
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		return n.String(), true
	}

	return "", false
}
