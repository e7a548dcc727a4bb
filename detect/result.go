package detect

import (
	"github.com/myselfbbs/vodplay/source"
	"golang.org/x/exp/slices"
)

// Counts tallies tokens per shape.
type Counts struct {
	PathReference    int `json:"play_path"`
	OpaqueIdentifier int `json:"encoded_id"`
	LegacyPair       int `json:"legacy_pair"`
	Unrecognized     int `json:"unknown"`
}

// Of returns the count for one shape.
func (c Counts) Of(shape Shape) int {
	switch shape {
	case PathReference:
		return c.PathReference
	case OpaqueIdentifier:
		return c.OpaqueIdentifier
	case LegacyPair:
		return c.LegacyPair
	default:
		return c.Unrecognized
	}
}

func (c *Counts) add(shape Shape) {
	switch shape {
	case PathReference:
		c.PathReference++
	case OpaqueIdentifier:
		c.OpaqueIdentifier++
	case LegacyPair:
		c.LegacyPair++
	default:
		c.Unrecognized++
	}
}

// Detection is the shape found for one episode.
type Detection struct {
	Label string       `json:"name"`
	Token source.Token `json:"value"`
	Shape Shape        `json:"format"`
}

// Result describes how an episode set is encoded.
type Result struct {
	// Dominant is PathReference or OpaqueIdentifier only when every
	// classified string token has that shape.
	Dominant Shape `json:"format"`
	// Confidence is the fraction of all tokens that have the dominant shape.
	Confidence float64     `json:"confidence"`
	Counts     Counts      `json:"format_counts"`
	Breakdown  []Detection `json:"detection_results"`
	IsMixed    bool        `json:"is_mixed"`
	HasUnknown bool        `json:"has_unknown"`
	Total      int         `json:"total_episodes"`
	Valid      int         `json:"valid_episodes"`
	FromCache  bool        `json:"from_cache"`
}

// Homogeneous reports whether a single known shape covers the set.
func (r Result) Homogeneous() bool {
	return r.Dominant != Unrecognized
}

func (r Result) clone() Result {
	r.Breakdown = slices.Clone(r.Breakdown)
	return r
}

// ClassifySet classifies every token of the set and derives the dominant shape.
func ClassifySet(set *source.EpisodeSet) Result {
	var result Result

	for _, episode := range set.Episodes() {
		shape := ClassifyToken(episode.Token)
		result.Counts.add(shape)
		result.Breakdown = append(result.Breakdown, Detection{
			Label: episode.Label,
			Token: episode.Token,
			Shape: shape,
		})
	}

	counts := result.Counts
	result.Total = len(result.Breakdown)
	result.Valid = result.Total - counts.Unrecognized
	result.IsMixed = counts.PathReference > 0 && counts.OpaqueIdentifier > 0
	result.HasUnknown = counts.Unrecognized > 0

	switch {
	case counts.PathReference > 0 && counts.OpaqueIdentifier == 0:
		result.Dominant = PathReference
	case counts.OpaqueIdentifier > 0 && counts.PathReference == 0:
		result.Dominant = OpaqueIdentifier
	default:
		result.Dominant = Unrecognized
	}

	if result.Dominant != Unrecognized && result.Total > 0 {
		result.Confidence = float64(counts.Of(result.Dominant)) / float64(result.Total)
	}

	return result
}

// ClassifierFunc adapts a plain function to the set classifier interface.
type ClassifierFunc func(*source.EpisodeSet) Result

func (f ClassifierFunc) ClassifySet(set *source.EpisodeSet) Result {
	return f(set)
}
