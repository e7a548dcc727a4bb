package inline

import (
	"encoding/json"
	"io"

	"github.com/myselfbbs/vodplay/detect"
	"github.com/myselfbbs/vodplay/playurl"
	"github.com/myselfbbs/vodplay/resolve"
	"github.com/samber/lo"
)

// Failure explains why one episode did not derive.
type Failure struct {
	Label  string `json:"label"`
	Token  string `json:"token"`
	Reason string `json:"reason"`
}

// Diagnostics describes how a record's playback string was produced.
type Diagnostics struct {
	Format      detect.Shape `json:"format"`
	Confidence  float64      `json:"confidence"`
	Mixed       bool         `json:"is_mixed"`
	Path        resolve.Path `json:"path"`
	Total       int          `json:"total"`
	Resolved    int          `json:"resolved"`
	Fallbacks   int          `json:"fallbacks"`
	Omitted     int          `json:"omitted"`
	SuccessRate float64      `json:"success_rate"`
	Failures    []Failure    `json:"failures,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// Record is one title in the CMS10 shape.
type Record struct {
	ID          int          `json:"vod_id"`
	Name        string       `json:"vod_name"`
	PlayFrom    string       `json:"vod_play_from"`
	PlayURL     string       `json:"vod_play_url"`
	Diagnostics *Diagnostics `json:"diagnostics,omitempty"`
}

type Output struct {
	Count  int       `json:"count"`
	Result []*Record `json:"result"`
}

func newDiagnostics(playback *playurl.Playback, err error) *Diagnostics {
	d := &Diagnostics{
		Total:       playback.Total,
		Resolved:    playback.Resolved,
		Fallbacks:   playback.Fallbacks,
		Omitted:     playback.Omitted,
		SuccessRate: playback.SuccessRate(),
	}

	if r := playback.Resolution; r != nil {
		d.Format = r.Detection.Dominant
		d.Confidence = r.Detection.Confidence
		d.Mixed = r.Detection.IsMixed
		d.Path = r.Path
		d.Failures = lo.FilterMap(r.Outcomes, func(o resolve.Outcome, _ int) (Failure, bool) {
			if o.OK() {
				return Failure{}, false
			}
			return Failure{Label: o.Label, Token: o.Token.String(), Reason: o.Err().Error()}, true
		})
	}

	if err != nil {
		d.Error = err.Error()
	}

	return d
}

func writeJson(out io.Writer, records []*Record) error {
	if records == nil {
		records = []*Record{}
	}

	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)
	return encoder.Encode(&Output{
		Count:  len(records),
		Result: records,
	})
}
