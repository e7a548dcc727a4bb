package inline

import (
	"errors"
	"fmt"
	"os"

	"github.com/myselfbbs/vodplay/log"
	"github.com/myselfbbs/vodplay/resolve"
	"github.com/myselfbbs/vodplay/source"
)

// Run builds a playback record for every selected title and writes them out.
// Titles that cannot produce playback data keep an empty string unless
// OmitEmpty is set.
func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	if options.Builder == nil {
		return errors.New("no playback builder configured")
	}

	titles := options.Titles
	if options.TitlesPicker.IsPresent() {
		titles = options.TitlesPicker.MustGet()(titles)
	}

	records := make([]*Record, 0, len(titles))
	for _, title := range titles {
		record, err := build(title, options)
		if err != nil {
			return err
		}

		if record == nil {
			continue
		}
		records = append(records, record)
	}

	if options.Json {
		return writeJson(options.Out, records)
	}

	for _, record := range records {
		if _, err := fmt.Fprintf(options.Out, "%d\t%s\t%s\n", record.ID, record.Name, record.PlayURL); err != nil {
			return err
		}
	}

	return nil
}

func build(title *source.Title, options *Options) (*Record, error) {
	set := title.Episodes
	if options.EpisodesFilter.IsPresent() {
		set = source.NewEpisodeSet(options.EpisodesFilter.MustGet()(set.Episodes())...)
	}

	playback, err := options.Builder.Build(set, int(title.ID))
	switch {
	case errors.Is(err, resolve.ErrEmptyEpisodeSet), errors.Is(err, resolve.ErrAllEpisodesUnresolvable):
		log.WithFields(log.Fields{"title": int(title.ID), "name": title.Name}).Warnf("no playback data: %s", err)
	case err != nil:
		return nil, fmt.Errorf("build playback for %d: %w", title.ID, err)
	}

	if options.OmitEmpty && playback.PlayURL == "" {
		return nil, nil
	}

	record := &Record{
		ID:       int(title.ID),
		Name:     title.Name,
		PlayFrom: options.PlayFrom,
		PlayURL:  playback.PlayURL,
	}

	if options.Diagnostics {
		record.Diagnostics = newDiagnostics(playback, err)
	}

	return record, nil
}
