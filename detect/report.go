package detect

import (
	"fmt"
	"strings"
	"time"

	"github.com/myselfbbs/vodplay/source"
	"github.com/myselfbbs/vodplay/util"
)

// Validation lists problems found in raw episode data.
type Validation struct {
	Valid    bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validate checks labels and tokens of a set before resolution.
func Validate(set *source.EpisodeSet) Validation {
	var v Validation

	switch {
	case set == nil:
		v.Errors = append(v.Errors, "episodes are missing")
	case set.Malformed():
		v.Errors = append(v.Errors, "episodes must be an object of label to token")
	case set.Len() == 0:
		v.Warnings = append(v.Warnings, "episode set is empty")
	}

	for _, e := range set.Episodes() {
		switch {
		case e.Label == "":
			v.Errors = append(v.Errors, "invalid episode label: empty")
		case strings.TrimSpace(e.Label) == "":
			v.Warnings = append(v.Warnings, fmt.Sprintf("episode label is blank: %q", e.Label))
		}

		switch {
		case e.Token.Kind == source.KindInvalid:
			v.Errors = append(v.Errors, fmt.Sprintf("invalid episode token: %s (label: %s)", e.Token, e.Label))
		case e.Token.Kind == source.KindText && strings.TrimSpace(e.Token.Text) == "":
			v.Warnings = append(v.Warnings, fmt.Sprintf("episode token is blank: %q (label: %s)", e.Token.Text, e.Label))
		}
	}

	v.Valid = len(v.Errors) == 0
	return v
}

// Level grades a recommendation.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Recommendation is an actionable note attached to a report.
type Recommendation struct {
	Level   Level    `json:"type"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// Summary condenses validation and detection.
type Summary struct {
	Valid      bool    `json:"is_valid"`
	Format     Shape   `json:"format"`
	Confidence float64 `json:"confidence"`
	Total      int     `json:"total_episodes"`
	Resolvable int     `json:"valid_episodes"`
	HasIssues  bool    `json:"has_issues"`
	IsMixed    bool    `json:"is_mixed"`
}

// Report is the full diagnosis of one episode set.
type Report struct {
	Timestamp       time.Time        `json:"timestamp"`
	Validation      Validation       `json:"validation"`
	Detection       Result           `json:"detection"`
	Summary         Summary          `json:"summary"`
	Recommendations []Recommendation `json:"recommendations"`
}

// LowConfidence is the confidence under which a report warns.
const LowConfidence = 0.8

// NewReport builds a report from a set and its detection result.
func NewReport(set *source.EpisodeSet, detection Result) Report {
	validation := Validate(set)

	return Report{
		Timestamp:  time.Now(),
		Validation: validation,
		Detection:  detection,
		Summary: Summary{
			Valid:      validation.Valid,
			Format:     detection.Dominant,
			Confidence: detection.Confidence,
			Total:      detection.Total,
			Resolvable: detection.Valid,
			HasIssues:  len(validation.Errors) > 0 || len(validation.Warnings) > 0,
			IsMixed:    detection.IsMixed,
		},
		Recommendations: recommend(validation, detection),
	}
}

func recommend(validation Validation, detection Result) []Recommendation {
	var recommendations []Recommendation

	if !validation.Valid {
		recommendations = append(recommendations, Recommendation{
			Level:   LevelError,
			Message: "fix the malformed episode data",
			Details: validation.Errors,
		})
	}

	if len(validation.Warnings) > 0 {
		recommendations = append(recommendations, Recommendation{
			Level:   LevelWarning,
			Message: "check the quality of the episode data",
			Details: validation.Warnings,
		})
	}

	if detection.Confidence < LowConfidence {
		recommendations = append(recommendations, Recommendation{
			Level:   LevelWarning,
			Message: fmt.Sprintf("low detection confidence (%s), check the data for consistency", util.Percent(detection.Confidence)),
		})
	}

	if detection.IsMixed {
		recommendations = append(recommendations, Recommendation{
			Level:   LevelInfo,
			Message: "mixed encodings detected, every episode is resolved on its own",
			Details: []string{
				fmt.Sprintf("%s: %d", PathReference, detection.Counts.PathReference),
				fmt.Sprintf("%s: %d", OpaqueIdentifier, detection.Counts.OpaqueIdentifier),
			},
		})
	}

	if detection.HasUnknown {
		recommendations = append(recommendations, Recommendation{
			Level:   LevelWarning,
			Message: fmt.Sprintf("found %s with an unrecognized format", util.Quantify(detection.Counts.Unrecognized, "token", "tokens")),
			Details: []string{"these episodes may not resolve correctly"},
		})
	}

	return recommendations
}
