package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/microarchive/internal/collection"
	"github.com/lehigh-university-libraries/microarchive/internal/ead"
	"github.com/lehigh-university-libraries/microarchive/internal/manifest"
)

// Environment variables consulted when the matching flag is not set.
const (
	envIIIFURL = "MICROARCHIVE_IIIF_URL"
	envPrefix  = "MICROARCHIVE_PREFIX"
)

type sourceFlags struct {
	collectionPath string
	manifestPath   string
	prefix         string
	iiifURL        string
	thumbDir       string
	sample         int
	defaults       bool
}

func (s *sourceFlags) options() manifest.Options {
	opts := manifest.Options{
		Prefix:        s.prefix,
		IIIFServerURL: s.iiifURL,
		ThumbDir:      s.thumbDir,
	}
	if opts.Prefix == "" {
		opts.Prefix = os.Getenv(envPrefix)
	}
	if opts.IIIFServerURL == "" {
		opts.IIIFServerURL = os.Getenv(envIIIFURL)
	}
	return opts
}

// loadItems reads the storage listing and converts its keys into items.
func (s *sourceFlags) loadItems() ([]ead.ItemInput, error) {
	objects, err := manifest.NewLoader(s.manifestPath).LoadSample(s.sample)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	items := manifest.Items(objects, s.options())
	slog.Debug("Discovered items", "objects", len(objects), "items", len(items))
	return items, nil
}

// loadCollection reads the collection file. With defaults enabled a missing
// file is treated as empty and empty title or scope get placeholder values.
func (s *sourceFlags) loadCollection() (*collection.File, error) {
	f, err := collection.Load(s.collectionPath)
	if err != nil {
		if !errors.Is(err, collection.ErrNotFound) || !s.defaults {
			return nil, err
		}
		slog.Warn("Collection file not found, using defaults", "path", s.collectionPath)
		f = &collection.File{}
	}
	if s.defaults {
		f.ApplyDefaults()
	}
	return f, nil
}

func (s *sourceFlags) request() (ead.Request, error) {
	items, err := s.loadItems()
	if err != nil {
		return ead.Request{}, err
	}
	f, err := s.loadCollection()
	if err != nil {
		return ead.Request{}, err
	}
	return f.Request(items), nil
}
