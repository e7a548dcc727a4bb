package metrics

import (
	"sync"
	"time"

	"github.com/myselfbbs/vodplay/playurl"
	"github.com/myselfbbs/vodplay/resolve"
	"github.com/samber/lo"
)

// ShapeTally counts episodes dispatched as one shape.
type ShapeTally struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
}

// Tally is a cumulative account of generated playback URLs.
type Tally struct {
	Titles     int                   `json:"titles"`
	Total      int                   `json:"total"`
	Successful int                   `json:"successful"`
	Failed     int                   `json:"failed"`
	Fallbacks  int                   `json:"fallbacks"`
	Omitted    int                   `json:"omitted"`
	ByShape    map[string]ShapeTally `json:"by_shape"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// SuccessRate is successful / total, 0 before anything was counted.
func (t Tally) SuccessRate() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Successful) / float64(t.Total)
}

// Add folds one composition into the tally.
func (t *Tally) Add(outcomes []resolve.Outcome, c playurl.Composition) {
	if t.ByShape == nil {
		t.ByShape = make(map[string]ShapeTally)
	}

	t.Titles++
	t.Total += c.Total
	t.Successful += c.Resolved
	t.Failed += c.Total - c.Resolved
	t.Fallbacks += c.Fallbacks
	t.Omitted += c.Omitted

	for _, o := range outcomes {
		shape := t.ByShape[o.Shape.String()]
		shape.Total++
		if o.OK() {
			shape.Successful++
		}
		t.ByShape[o.Shape.String()] = shape
	}

	t.UpdatedAt = time.Now()
}

// Merge adds another tally into t.
func (t *Tally) Merge(other Tally) {
	if t.ByShape == nil {
		t.ByShape = make(map[string]ShapeTally)
	}

	t.Titles += other.Titles
	t.Total += other.Total
	t.Successful += other.Successful
	t.Failed += other.Failed
	t.Fallbacks += other.Fallbacks
	t.Omitted += other.Omitted

	for name, s := range other.ByShape {
		shape := t.ByShape[name]
		shape.Total += s.Total
		shape.Successful += s.Successful
		t.ByShape[name] = shape
	}

	if other.UpdatedAt.After(t.UpdatedAt) {
		t.UpdatedAt = other.UpdatedAt
	}
}

// Recorder accumulates a Tally from compositions. Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	tally Tally
}

// ObserveComposition implements playurl.Observer.
func (r *Recorder) ObserveComposition(_ int, outcomes []resolve.Outcome, c playurl.Composition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tally.Add(outcomes, c)
}

// Tally returns a copy of the accumulated tally.
func (r *Recorder) Tally() Tally {
	r.mu.Lock()
	defer r.mu.Unlock()

	tally := r.tally
	tally.ByShape = lo.Assign(r.tally.ByShape)
	return tally
}
