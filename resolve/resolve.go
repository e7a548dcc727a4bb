// Package resolve dispatches every episode of a title to the deriver that
// matches its token encoding and collects per-episode outcomes.
package resolve

import (
	"errors"
	"fmt"

	"github.com/myselfbbs/vodplay/derive"
	"github.com/myselfbbs/vodplay/detect"
	"github.com/myselfbbs/vodplay/log"
	"github.com/myselfbbs/vodplay/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrEmptyEpisodeSet means the title carries no episodes at all.
	ErrEmptyEpisodeSet = errors.New("empty episode set")
	// ErrAllEpisodesUnresolvable means no episode could be resolved and
	// failed episodes may not be replaced by fallback URLs.
	ErrAllEpisodesUnresolvable = errors.New("all episodes unresolvable")
)

// Path is the dispatch strategy chosen for a title.
type Path int

const (
	PathNone Path = iota
	// PathBatch sends every string token to the deriver of the dominant shape.
	PathBatch
	// PathPerToken classifies and routes each token on its own.
	PathPerToken
	// PathLegacy sends every token to the legacy pair scheme.
	PathLegacy
)

func (p Path) String() string {
	switch p {
	case PathBatch:
		return "batch"
	case PathPerToken:
		return "per_token"
	case PathLegacy:
		return "legacy"
	default:
		return "none"
	}
}

func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(text []byte) error {
	for _, path := range []Path{PathNone, PathBatch, PathPerToken, PathLegacy} {
		if path.String() == string(text) {
			*p = path
			return nil
		}
	}
	return fmt.Errorf("unknown resolution path %q", text)
}

// Outcome is the result of deriving one episode.
type Outcome struct {
	Label string
	Token source.Token
	// Shape is the encoding the episode was dispatched as.
	Shape  detect.Shape
	Result mo.Result[string]
}

// OK reports whether a URL was derived.
func (o Outcome) OK() bool {
	return o.Result.IsOk()
}

// URL returns the derived URL, empty on failure.
func (o Outcome) URL() string {
	return o.Result.OrEmpty()
}

// Err returns the derivation error, nil on success.
func (o Outcome) Err() error {
	return o.Result.Error()
}

// Resolution is everything the engine learned about one title.
type Resolution struct {
	Detection detect.Result
	Path      Path
	Outcomes  []Outcome
	// FailClosed forbids replacing failed episodes with fallback URLs.
	FailClosed bool
}

// Succeeded counts episodes with a derived URL.
func (r *Resolution) Succeeded() int {
	if r == nil {
		return 0
	}
	return lo.CountBy(r.Outcomes, Outcome.OK)
}

// Classifier decides how an episode set is encoded.
type Classifier interface {
	ClassifySet(set *source.EpisodeSet) detect.Result
}

// Engine resolves episode sets. It is safe for concurrent use as long as
// its classifier is.
type Engine struct {
	classifier Classifier
	options    Options
	deriver    derive.Deriver
}

// NewEngine creates an engine. A nil classifier classifies without caching.
func NewEngine(classifier Classifier, options Options) *Engine {
	if classifier == nil {
		classifier = detect.ClassifierFunc(detect.ClassifySet)
	}

	return &Engine{
		classifier: classifier,
		options:    options,
		deriver:    options.Deriver(),
	}
}

// Options returns the options the engine was built with.
func (e *Engine) Options() Options {
	return e.options
}

// Deriver returns the deriver the engine builds URLs with.
func (e *Engine) Deriver() derive.Deriver {
	return e.deriver
}

// Resolve derives a URL for every episode of the set. Per-episode failures
// are carried in the outcomes. An error is returned only when the set is
// empty or nothing usable can come out of it; the resolution is still
// returned for diagnostics.
func (e *Engine) Resolve(set *source.EpisodeSet, titleID int) (*Resolution, error) {
	logger := log.WithFields(log.Fields{"title": titleID})

	if set.Len() == 0 {
		logger.Debug("no episodes")
		return &Resolution{}, ErrEmptyEpisodeSet
	}

	resolution := &Resolution{Detection: e.classifier.ClassifySet(set)}
	route := e.plan(resolution)

	episodes := set.Episodes()
	resolution.Outcomes = make([]Outcome, len(episodes))

	dispatch := func(i int) {
		episode := episodes[i]
		outcome := e.derive(episode, route(episode))
		if !outcome.OK() {
			logger.WithFields(log.Fields{
				"episode": episode.Label,
				"token":   episode.Token.String(),
				"shape":   outcome.Shape.String(),
			}).Debugf("derivation failed: %s", outcome.Err())
		}
		resolution.Outcomes[i] = outcome
	}

	if e.options.Workers > 1 && len(episodes) > 1 {
		var g errgroup.Group
		g.SetLimit(e.options.Workers)
		for i := range episodes {
			i := i
			g.Go(func() error {
				dispatch(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range episodes {
			dispatch(i)
		}
	}

	succeeded := resolution.Succeeded()
	logger.WithFields(log.Fields{
		"path":       resolution.Path.String(),
		"format":     resolution.Detection.Dominant.String(),
		"confidence": resolution.Detection.Confidence,
		"mixed":      resolution.Detection.IsMixed,
		"cached":     resolution.Detection.FromCache,
		"resolved":   fmt.Sprintf("%d/%d", succeeded, len(episodes)),
	}).Info("episodes resolved")

	if succeeded == 0 && (!e.options.EnableFallback || resolution.FailClosed) {
		return resolution, ErrAllEpisodesUnresolvable
	}

	return resolution, nil
}

// plan picks the dispatch path and returns the per-episode routing.
// Legacy pairs always go to the legacy scheme.
func (e *Engine) plan(resolution *Resolution) func(source.Episode) detect.Shape {
	detection := resolution.Detection

	switch {
	case detection.Homogeneous():
		resolution.Path = PathBatch
		return func(episode source.Episode) detect.Shape {
			if episode.Token.Kind == source.KindPair {
				return detect.LegacyPair
			}
			return detection.Dominant
		}
	case detection.IsMixed:
		resolution.Path = PathPerToken
		return func(episode source.Episode) detect.Shape {
			return detect.ClassifyToken(episode.Token)
		}
	case detection.Counts.Unrecognized == 0,
		e.options.EnableFallback && e.options.LegacyOnUnrecognized:
		resolution.Path = PathLegacy
		return func(source.Episode) detect.Shape {
			return detect.LegacyPair
		}
	default:
		resolution.Path = PathPerToken
		resolution.FailClosed = true
		return func(episode source.Episode) detect.Shape {
			return detect.ClassifyToken(episode.Token)
		}
	}
}

func (e *Engine) derive(episode source.Episode, shape detect.Shape) Outcome {
	outcome := Outcome{
		Label: episode.Label,
		Token: episode.Token,
		Shape: shape,
	}

	url, err := e.deriveURL(episode.Token, shape)
	if err != nil {
		outcome.Result = mo.Err[string](err)
	} else {
		outcome.Result = mo.Ok(url)
	}

	return outcome
}

func (e *Engine) deriveURL(token source.Token, shape detect.Shape) (string, error) {
	switch shape {
	case detect.LegacyPair:
		if token.Kind != source.KindPair {
			return "", fmt.Errorf("%w: %s is not a legacy pair", derive.ErrUnrecognizedShape, token)
		}
		return e.deriver.LegacyPair(token.Pair[0], token.Pair[1])
	case detect.PathReference, detect.OpaqueIdentifier:
		if token.Kind != source.KindText {
			return "", fmt.Errorf("%w: %s is not a string", derive.ErrUnrecognizedShape, token)
		}
		if shape == detect.PathReference {
			return e.deriver.PathReference(token.Text, e.options.Quality)
		}
		return e.deriver.OpaqueIdentifier(token.Text)
	default:
		return "", fmt.Errorf("%w: %s", derive.ErrUnrecognizedShape, token)
	}
}
