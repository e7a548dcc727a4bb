package source

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ID is a title identifier. Upstream emits it as a number or a numeric string.
type ID int

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}

	var n json.Number
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n = json.Number(strings.TrimSpace(s))
	} else if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	v, err := strconv.Atoi(n.String())
	if err != nil {
		return err
	}

	*id = ID(v)
	return nil
}

// Title is one scraped listing with its episodes.
type Title struct {
	ID          ID          `json:"id"`
	Name        string      `json:"title"`
	Category    []string    `json:"category,omitempty"`
	Premiere    []int       `json:"premiere,omitempty"`
	Ep          int         `json:"ep,omitempty"`
	Author      string      `json:"author,omitempty"`
	Website     string      `json:"website,omitempty"`
	Description string      `json:"description,omitempty"`
	Image       string      `json:"image,omitempty"`
	Episodes    *EpisodeSet `json:"episodes"`
}

func (t *Title) String() string {
	return t.Name
}
