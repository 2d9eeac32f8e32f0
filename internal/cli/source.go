package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/plugin/input/file"
	"github.com/jmylchreest/swatch/internal/scheme"
	"github.com/jmylchreest/swatch/internal/store"
)

// loadedPalette is a palette resolved from a file, the store or the curated set.
type loadedPalette struct {
	Palette colour.Palette
	Name    string
	Mode    string
	Scheme  string
	Mood    string
}

// loadPalette resolves ref as, in order: an existing file, a saved palette or
// preset (ID, ID prefix or name), or a curated palette name.
func (a *app) loadPalette(ref string) (loadedPalette, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return loadedPalette{}, fmt.Errorf("palette reference must not be empty")
	}

	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		p, err := file.LoadPalette(ref)
		if err != nil {
			return loadedPalette{}, fmt.Errorf("failed to load %s: %w", ref, err)
		}
		return loadedPalette{
			Palette: p,
			Name:    strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref)),
		}, nil
	}

	st, err := a.openStore()
	if err != nil {
		return loadedPalette{}, err
	}
	rec, err := findRecord(st, ref, store.SavedPalettes, store.AdminPresets)
	if err == nil {
		return loadedPalette{
			Palette: rec.OriginalPalette,
			Name:    rec.Name,
			Mode:    rec.Mode,
			Scheme:  rec.Scheme,
			Mood:    rec.Mood,
		}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return loadedPalette{}, err
	}

	if c, cerr := scheme.LookupCurated(ref); cerr == nil {
		return loadedPalette{Palette: c.Palette, Name: c.Name, Mode: config.ModeName(c.Dark)}, nil
	}
	return loadedPalette{}, fmt.Errorf("no file, saved palette, preset or curated palette named %q", ref)
}

// findRecord looks ref up by ID in each collection, then by name.
func findRecord(st *store.Store, ref string, collections ...store.Collection) (store.Record, error) {
	for _, c := range collections {
		rec, err := st.Get(c, ref)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return store.Record{}, err
		}
	}
	for _, c := range collections {
		rec, err := st.FindByName(c, ref)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return store.Record{}, err
		}
	}
	return store.Record{}, fmt.Errorf("%w: %q", store.ErrNotFound, ref)
}
