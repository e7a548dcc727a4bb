package cmd

import (
	"fmt"
	"io"

	"github.com/myselfbbs/vodplay/detect"
	"github.com/myselfbbs/vodplay/filesystem"
	"github.com/myselfbbs/vodplay/key"
	"github.com/myselfbbs/vodplay/source"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// readTitles decodes and merges scraped records from every path, reading
// stdin when no path is given.
func readTitles(paths []string) ([]*source.Title, error) {
	if len(paths) == 0 {
		paths = []string{filesystem.Stdin}
	}

	lists := make([][]*source.Title, 0, len(paths))
	for _, path := range paths {
		titles, err := readInput(path, source.Decode)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		lists = append(lists, titles)
	}

	return source.Merge(lists...), nil
}

func readInput[T any](path string, decode func(io.Reader) (T, error)) (T, error) {
	r, err := filesystem.OpenInput(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer r.Close()

	return decode(r)
}

// newDetectionCache panics on a non-positive configured capacity.
func newDetectionCache() *detect.Cache {
	return lo.Must(detect.NewCache(viper.GetInt(key.DetectCacheSize)))
}
