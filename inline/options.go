// Package inline implements the non-interactive pipeline: scraped records in,
// CMS10 playback records out.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/myselfbbs/vodplay/playurl"
	"github.com/myselfbbs/vodplay/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type (
	TitlesPicker   func([]*source.Title) []*source.Title
	EpisodesFilter func([]source.Episode) []source.Episode
)

type Options struct {
	Out     io.Writer
	Titles  []*source.Title
	Builder *playurl.Builder
	// PlayFrom is the player identifier written to every record.
	PlayFrom string
	Json     bool
	// Diagnostics attaches detection and resolution details to JSON records.
	Diagnostics bool
	// OmitEmpty drops titles whose playback string is empty.
	OmitEmpty      bool
	TitlesPicker   mo.Option[TitlesPicker]
	EpisodesFilter mo.Option[EpisodesFilter]
}

// ParseTitlesPicker parses a title selector:
// "all", "first", "last", "id:<id>" or "@substring@".
func ParseTitlesPicker(description string) (TitlesPicker, error) {
	switch {
	case description == "all":
		return func(titles []*source.Title) []*source.Title {
			return titles
		}, nil
	case description == "first":
		return func(titles []*source.Title) []*source.Title {
			return lo.Slice(titles, 0, 1)
		}, nil
	case description == "last":
		return func(titles []*source.Title) []*source.Title {
			if len(titles) == 0 {
				return nil
			}
			return titles[len(titles)-1:]
		}, nil
	case strings.HasPrefix(description, "id:"):
		id, err := strconv.Atoi(strings.TrimPrefix(description, "id:"))
		if err != nil {
			return nil, fmt.Errorf("invalid title id: %s", description)
		}
		return func(titles []*source.Title) []*source.Title {
			return lo.Filter(titles, func(t *source.Title, _ int) bool {
				return int(t.ID) == id
			})
		}, nil
	case len(description) > 1 && strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@"):
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(titles []*source.Title) []*source.Title {
			return lo.Filter(titles, func(t *source.Title, _ int) bool {
				return strings.Contains(strings.ToLower(t.Name), sub)
			})
		}, nil
	default:
		return nil, fmt.Errorf("invalid title selector: %s", description)
	}
}

// ParseEpisodesFilter parses an episode selector:
// "all", "first", "last", "<index>", "<from>-<to>" or "@substring@".
// Indexes are zero-based and refer to upstream order.
func ParseEpisodesFilter(description string) (EpisodesFilter, error) {
	switch description {
	case "all":
		return func(episodes []source.Episode) []source.Episode {
			return episodes
		}, nil
	case "first":
		return func(episodes []source.Episode) []source.Episode {
			return lo.Slice(episodes, 0, 1)
		}, nil
	case "last":
		return func(episodes []source.Episode) []source.Episode {
			if len(episodes) == 0 {
				return nil
			}
			return episodes[len(episodes)-1:]
		}, nil
	}

	if from, to, ok := strings.Cut(description, "-"); ok {
		start, err1 := strconv.Atoi(from)
		end, err2 := strconv.Atoi(to)
		if err1 == nil && err2 == nil && start >= 0 && end >= start {
			return func(episodes []source.Episode) []source.Episode {
				return lo.Slice(episodes, start, end+1)
			}, nil
		}
	}

	if len(description) > 1 && strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(episodes []source.Episode) []source.Episode {
			return lo.Filter(episodes, func(e source.Episode, _ int) bool {
				return strings.Contains(strings.ToLower(e.Label), sub)
			})
		}, nil
	}

	if index, err := strconv.Atoi(description); err == nil && index >= 0 {
		return func(episodes []source.Episode) []source.Episode {
			return lo.Slice(episodes, index, index+1)
		}, nil
	}

	return nil, fmt.Errorf("invalid episode filter: %s", description)
}
