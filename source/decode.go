package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/myselfbbs/vodplay/log"
)

// envelope covers the wrappers upstream dumps put around the record list.
type envelope struct {
	Data json.RawMessage `json:"data"`
	List json.RawMessage `json:"list"`
}

// Decode reads scraped title records. It accepts a bare array or one wrapped
// as {data:[...]}, {data:{data:[...]}} or {list:[...]}. Records that fail to
// decode or carry no id are skipped.
func Decode(r io.Reader) ([]*Title, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	items, err := extract(data)
	if err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	titles := make([]*Title, 0, len(items))
	for i, item := range items {
		var title Title
		if err := json.Unmarshal(item, &title); err != nil {
			log.Warnf("skipping record #%d: %s", i, err)
			continue
		}

		if title.ID == 0 {
			log.Warnf("skipping record #%d: missing id", i)
			continue
		}

		if title.Episodes == nil {
			title.Episodes = NewEpisodeSet()
		}

		titles = append(titles, &title)
	}

	return titles, nil
}

func extract(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case '[':
		var items []json.RawMessage
		err := json.Unmarshal(data, &items)
		return items, err
	case '{':
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, err
		}

		inner := bytes.TrimSpace(env.Data)
		if len(inner) > 0 && inner[0] == '{' {
			var nested envelope
			if err := json.Unmarshal(inner, &nested); err != nil {
				return nil, err
			}
			if isArray(nested.Data) {
				return extract(nested.Data)
			}
		}

		if isArray(inner) {
			return extract(inner)
		}

		if isArray(env.List) {
			return extract(env.List)
		}

		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected top-level value %q", data[0])
	}
}

func isArray(data json.RawMessage) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '['
}

// Merge concatenates title lists, keeping the first record seen for each id.
func Merge(lists ...[]*Title) []*Title {
	var (
		merged []*Title
		seen   = make(map[ID]struct{})
	)

	for _, list := range lists {
		for _, title := range list {
			if title == nil || title.ID == 0 {
				continue
			}
			if _, ok := seen[title.ID]; ok {
				continue
			}
			seen[title.ID] = struct{}{}
			merged = append(merged, title)
		}
	}

	return merged
}
