package playurl

import (
	"errors"

	"github.com/myselfbbs/vodplay/resolve"
	"github.com/myselfbbs/vodplay/source"
)

// Playback is the composed string of one title plus the resolution behind it.
type Playback struct {
	Composition
	Resolution *resolve.Resolution
}

// Builder runs resolution and composition for a title.
type Builder struct {
	engine   *resolve.Engine
	composer *Composer
}

// NewBuilder pairs an engine with a composer.
func NewBuilder(engine *resolve.Engine, composer *Composer) *Builder {
	return &Builder{engine: engine, composer: composer}
}

// NewDefaultBuilder builds with an uncached engine and no observers.
func NewDefaultBuilder(options resolve.Options) *Builder {
	return NewBuilder(resolve.NewEngine(nil, options), NewComposer(options))
}

// Build resolves and composes the set. Title-level errors are returned
// together with the playback, whose string is then empty.
func (b *Builder) Build(set *source.EpisodeSet, titleID int) (*Playback, error) {
	resolution, err := b.engine.Resolve(set, titleID)
	playback := &Playback{Resolution: resolution}

	if errors.Is(err, resolve.ErrEmptyEpisodeSet) {
		return playback, err
	}

	playback.Composition = b.composer.Compose(resolution, titleID)
	if err != nil {
		return playback, err
	}

	return playback, nil
}

// Engine returns the resolution engine.
func (b *Builder) Engine() *resolve.Engine {
	return b.engine
}
