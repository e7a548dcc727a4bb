// Package playurl composes resolved episodes into the label$url#label$url
// playback string read by video aggregator clients.
package playurl

import (
	"cmp"

	"github.com/myselfbbs/vodplay/derive"
	"github.com/myselfbbs/vodplay/log"
	"github.com/myselfbbs/vodplay/resolve"
	"github.com/myselfbbs/vodplay/util"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Composition is a composed playback string and how it was obtained.
type Composition struct {
	PlayURL string `json:"play_url"`
	// Total is the number of episodes considered.
	Total int `json:"total"`
	// Resolved episodes got a derived URL.
	Resolved int `json:"resolved"`
	// Fallbacks were failed episodes given a synthesized URL.
	Fallbacks int `json:"fallbacks"`
	// Omitted were failed episodes left out of the string.
	Omitted int `json:"omitted"`
}

// SuccessRate is resolved / total, 0 for an empty title.
func (c Composition) SuccessRate() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Resolved) / float64(c.Total)
}

// Observer is notified of every composition.
type Observer interface {
	ObserveComposition(titleID int, outcomes []resolve.Outcome, composition Composition)
}

// Composer orders outcomes by episode number and serializes them.
type Composer struct {
	deriver        derive.Deriver
	enableFallback bool
	observers      []Observer
}

// NewComposer creates a composer for the given options.
func NewComposer(options resolve.Options, observers ...Observer) *Composer {
	return &Composer{
		deriver:        options.Deriver(),
		enableFallback: options.EnableFallback,
		observers:      observers,
	}
}

type numbered struct {
	number  int
	outcome resolve.Outcome
}

// Compose sorts outcomes by the first integer of their labels, keeping input
// order on ties, and joins them. Failed episodes get a fallback URL when
// allowed, otherwise they are omitted.
func (c *Composer) Compose(resolution *resolve.Resolution, titleID int) Composition {
	if resolution == nil || len(resolution.Outcomes) == 0 {
		return Composition{}
	}

	ordered := lo.Map(resolution.Outcomes, func(o resolve.Outcome, _ int) numbered {
		return numbered{number: util.EpisodeNumber(o.Label), outcome: o}
	})
	slices.SortStableFunc(ordered, func(a, b numbered) int {
		return cmp.Compare(a.number, b.number)
	})

	fallback := c.enableFallback && !resolution.FailClosed
	composition := Composition{Total: len(ordered)}
	entries := make([]Entry, 0, len(ordered))
	var reasons []string

	for _, n := range ordered {
		o := n.outcome
		switch {
		case o.OK():
			composition.Resolved++
			entries = append(entries, Entry{Label: o.Label, URL: o.URL()})
		case fallback:
			composition.Fallbacks++
			entries = append(entries, Entry{Label: o.Label, URL: c.deriver.Fallback(o.Label, titleID)})
			reasons = append(reasons, o.Label+": "+o.Err().Error())
		default:
			composition.Omitted++
			reasons = append(reasons, o.Label+": "+o.Err().Error())
		}
	}

	composition.PlayURL = Join(entries)

	log.WithFields(log.Fields{
		"title":        titleID,
		"success_rate": util.Percent(composition.SuccessRate()),
		"fallbacks":    composition.Fallbacks,
		"omitted":      composition.Omitted,
		"failures":     reasons,
	}).Info("playback string composed")

	for _, observer := range c.observers {
		observer.ObserveComposition(titleID, resolution.Outcomes, composition)
	}

	return composition
}
