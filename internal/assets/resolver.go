// Package assets locates WAD files on disk before they are handed to the engine.
package assets

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/rntlauncher/rnt/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// Resolver searches a list of directories for asset files and caches the
// result per name.
type Resolver struct {
	dirs  []string
	cache *gocache.Cache
	ttl   time.Duration
}

// NewResolver creates a Resolver over dirs, searched in order.
func NewResolver(dirs []string, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = DefaultExpiration
	}
	return &Resolver{
		dirs:  dirs,
		cache: gocache.New(ttl, DefaultCleanupInterval),
		ttl:   ttl,
	}
}

// SearchDirs returns configured followed by $DOOMWADDIR and the entries of
// $DOOMWADPATH, skipping empties and duplicates.
func SearchDirs(configured []string) []string {
	var dirs []string
	seen := make(map[string]bool)
	add := func(d string) {
		if d == "" {
			return
		}
		d = filepath.Clean(d)
		if seen[d] {
			return
		}
		seen[d] = true
		dirs = append(dirs, d)
	}

	for _, d := range configured {
		add(d)
	}
	add(os.Getenv("DOOMWADDIR"))
	for _, d := range filepath.SplitList(os.Getenv("DOOMWADPATH")) {
		add(d)
	}
	return dirs
}

// Dirs returns the search directories in lookup order.
func (r *Resolver) Dirs() []string {
	return append([]string(nil), r.dirs...)
}

// Resolve returns name unchanged when it names an existing file. Otherwise
// it looks for the base name in each search directory, matching case-
// insensitively, and returns the first hit. A name found nowhere is returned
// as given so the engine can apply its own lookup.
func (r *Resolver) Resolve(ctx context.Context, name string) string {
	if name == "" {
		return name
	}
	if v, ok := r.cache.Get(name); ok {
		if path, ok := v.(string); ok {
			log.Debug(log.CatCache, "cache hit", "key", name)
			return path
		}
		log.Error(log.CatCache, "wrong type assertion when getting value", "key", name)
	}

	path := r.lookup(ctx, name)
	r.cache.Set(name, path, r.ttl)
	return path
}

func (r *Resolver) lookup(ctx context.Context, name string) string {
	if isFile(name) {
		return name
	}

	base := filepath.Base(name)
	for _, dir := range r.dirs {
		if ctx.Err() != nil {
			break
		}
		candidate := filepath.Join(dir, base)
		if isFile(candidate) {
			log.Debug(log.CatAssets, "Resolved asset", "name", name, "path", candidate)
			return candidate
		}
		if found := findFold(dir, base); found != "" {
			log.Debug(log.CatAssets, "Resolved asset (case-insensitive)", "name", name, "path", found)
			return found
		}
	}

	log.Warn(log.CatAssets, "Asset not found in search dirs, passing through", "name", name, "dirs", len(r.dirs))
	return name
}

func findFold(dir, base string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(e.Name(), base) {
			return filepath.Join(dir, e.Name())
		}
	}
	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
