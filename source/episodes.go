package source

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Episode is one label -> token entry of a title.
type Episode struct {
	Label string
	Token Token
}

// EpisodeSet maps episode labels to their tokens, remembering the order
// in which labels were first seen.
type EpisodeSet struct {
	m         *orderedmap.OrderedMap[string, Token]
	malformed bool
}

// NewEpisodeSet builds a set from the given episodes. A repeated label keeps
// its first position and takes the last token.
func NewEpisodeSet(episodes ...Episode) *EpisodeSet {
	s := &EpisodeSet{m: orderedmap.New[string, Token]()}
	for _, e := range episodes {
		s.Set(e.Label, e.Token)
	}
	return s
}

// Set adds or replaces the token for a label.
func (s *EpisodeSet) Set(label string, token Token) {
	if s.m == nil {
		s.m = orderedmap.New[string, Token]()
	}
	s.m.Set(label, token)
}

// Get returns the token stored for a label.
func (s *EpisodeSet) Get(label string) (Token, bool) {
	if s == nil || s.m == nil {
		return Token{}, false
	}
	return s.m.Get(label)
}

// Len returns the number of episodes. A nil set is empty.
func (s *EpisodeSet) Len() int {
	if s == nil || s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Episodes returns the entries in insertion order.
func (s *EpisodeSet) Episodes() []Episode {
	if s.Len() == 0 {
		return nil
	}

	episodes := make([]Episode, 0, s.m.Len())
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		episodes = append(episodes, Episode{Label: pair.Key, Token: pair.Value})
	}
	return episodes
}

// Malformed reports whether the decoded episodes value was not a JSON object.
func (s *EpisodeSet) Malformed() bool {
	return s != nil && s.malformed
}

func (s *EpisodeSet) MarshalJSON() ([]byte, error) {
	if s.Len() == 0 {
		return []byte("{}"), nil
	}
	return s.m.MarshalJSON()
}

// UnmarshalJSON accepts an object of label -> token. null yields an empty
// set; any other non-object yields an empty set flagged as malformed.
func (s *EpisodeSet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	s.m = orderedmap.New[string, Token]()
	s.malformed = false

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] != '{' {
		s.malformed = true
		return nil
	}

	return s.m.UnmarshalJSON(data)
}

var (
	_ json.Marshaler   = (*EpisodeSet)(nil)
	_ json.Unmarshaler = (*EpisodeSet)(nil)
)
