package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aymenblj/pixlink/internal/cache"
)

// ErrKeyNotFound is returned by operations that require the key to be
// present in the working set.
var ErrKeyNotFound = errors.New("key not found in working set")

// DefaultExt is appended to save filenames derived from keys that have
// no extension of their own.
const DefaultExt = ".jpg"

// Pipeline mediates loading, processing and saving of keyed items. It
// owns the working set (the items currently checked out for processing)
// and a backing cache; every working-set entry originates from the
// cache, so releasing and reloading a key restores its as-loaded state.
//
// Keys are forward-slash relative paths under the input directory, or
// caller-chosen names for items loaded from memory.
type Pipeline[T any] struct {
	inputDir  string
	outputDir string
	working   map[string]T
	cache     cache.Cache[T]
	loader    Loader[T]
	saver     Saver[T]
}

// New creates a Pipeline reading from inputDir and writing to outputDir.
// The output directory is created eagerly. A nil cache defaults to an
// unbounded one; loader and saver are required.
func New[T any](inputDir, outputDir string, c cache.Cache[T], loader Loader[T], saver Saver[T]) (*Pipeline[T], error) {
	if loader == nil {
		return nil, errors.New("pipeline: loader is required")
	}
	if saver == nil {
		return nil, errors.New("pipeline: saver is required")
	}
	if c == nil {
		c = cache.NewUnbounded[T](nil)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Pipeline[T]{
		inputDir:  inputDir,
		outputDir: outputDir,
		working:   make(map[string]T),
		cache:     c,
		loader:    loader,
		saver:     saver,
	}, nil
}

// Load checks out the item at path (relative to the input directory)
// into the working set, reading it from disk only if it is not already
// cached. Loading a key that is already in the working set is a no-op.
func (p *Pipeline[T]) Load(relPath string) error {
	fullPath := filepath.Join(p.inputDir, filepath.FromSlash(relPath))
	if _, err := os.Stat(fullPath); err != nil {
		return fmt.Errorf("input file %q: %w", fullPath, err)
	}
	key := path.Clean(filepath.ToSlash(relPath))
	if _, ok := p.working[key]; ok {
		return nil
	}
	if !p.cache.Contains(key) {
		if err := p.loader.LoadIntoCache(p.cache, fullPath, key); err != nil {
			return err
		}
	}
	return p.checkout(key)
}

// LoadItem caches an in-memory item under name and checks it out into
// the working set, overwriting any previous item with the same name.
func (p *Pipeline[T]) LoadItem(item T, name string) error {
	p.loader.StoreInCache(p.cache, item, name)
	return p.checkout(name)
}

// LoadDirectory recursively loads every matching file under
// inputDir/dir into the cache and working set. exts is a
// case-insensitive extension allow-list (e.g. ".jpg", ".png"); an empty
// list loads every regular file. A single file that fails to decode is
// skipped, but a failure to scan the directory itself is returned.
func (p *Pipeline[T]) LoadDirectory(dir string, exts []string) error {
	base := filepath.Join(p.inputDir, filepath.FromSlash(dir))
	keys, err := p.loader.LoadDirectory(p.cache, base, p.inputDir, exts)
	if err != nil {
		return fmt.Errorf("failed to scan directory %q: %w", base, err)
	}
	for _, key := range keys {
		if err := p.checkout(key); err != nil {
			return err
		}
	}
	return nil
}

// checkout copies the cached value for key into the working set.
func (p *Pipeline[T]) checkout(key string) error {
	item, err := p.cache.Get(key)
	if err != nil {
		return err
	}
	p.working[key] = item
	return nil
}

// Keys returns the working-set keys. A non-empty prefix restricts the
// result to keys under that directory (the prefix is normalized to end
// with a slash). Order is unspecified.
func (p *Pipeline[T]) Keys(prefix string) []string {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	keys := make([]string, 0, len(p.working))
	for k := range p.working {
		if prefix == "" || strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Working exposes the working set itself, not a copy. It is shared with
// RegionPipeline and mutated by pipeline operations; callers must not
// retain it past the Pipeline's lifetime.
func (p *Pipeline[T]) Working() map[string]T { return p.working }

// WorkingEmpty reports whether any item is currently checked out.
func (p *Pipeline[T]) WorkingEmpty() bool { return len(p.working) == 0 }

// CacheEmpty reports whether the backing cache holds any items.
func (p *Pipeline[T]) CacheEmpty() bool { return len(p.cache.Keys()) == 0 }

// OutputDir returns the directory save operations resolve against.
func (p *Pipeline[T]) OutputDir() string { return p.outputDir }

// Process replaces the working-set value for key with op applied to it.
func (p *Pipeline[T]) Process(key string, op func(T) T) error {
	item, ok := p.working[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	p.working[key] = op(item)
	return nil
}

// Filter removes every working-set entry for which pred returns false.
// The cache is not touched.
func (p *Pipeline[T]) Filter(pred func(key string, item T) bool) {
	for k, v := range p.working {
		if !pred(k, v) {
			delete(p.working, k)
		}
	}
}

// Save writes the item under its key-derived filename in the output
// directory, appending DefaultExt when the key has no extension.
func (p *Pipeline[T]) Save(key string) error {
	item, ok := p.working[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	filename := key
	if path.Ext(key) == "" {
		filename += DefaultExt
	}
	outPath := filepath.Join(p.outputDir, filepath.FromSlash(filename))
	return p.saver.Save(outPath, item)
}

// SaveTo writes the item to outputPath relative to the output directory.
func (p *Pipeline[T]) SaveTo(key, outputPath string) error {
	item, ok := p.working[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	fullPath := filepath.Join(p.outputDir, filepath.FromSlash(outputPath))
	return p.saver.Save(fullPath, item)
}

// SaveAs writes the item into outputDir/subdir, keeping the filename
// portion of the key.
func (p *Pipeline[T]) SaveAs(key, subdir string) error {
	item, ok := p.working[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return p.saver.SaveAs(item, p.outputDir, subdir, key)
}

// SaveSuffixed is SaveAs with suffix inserted into the filename just
// before its extension ("a/b.png" + "_x" saves as "b_x.png").
func (p *Pipeline[T]) SaveSuffixed(key, subdir, suffix string) error {
	item, ok := p.working[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return p.saver.SaveAs(item, p.outputDir, subdir, appendSuffix(key, suffix))
}

// SaveAll writes every working-set item to the output directory under
// its key-derived filename.
func (p *Pipeline[T]) SaveAll() error {
	return p.saver.SaveAll(p.working, p.outputDir)
}

// Unload removes key from both the working set and the cache.
func (p *Pipeline[T]) Unload(key string) error {
	if _, ok := p.working[key]; !ok {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	p.cache.Remove(key)
	delete(p.working, key)
	return nil
}

// UnloadAll clears the working set and the cache unconditionally. The
// working map is emptied in place so RegionPipelines sharing it stay in
// sync.
func (p *Pipeline[T]) UnloadAll() {
	clear(p.working)
	p.cache.Clear()
}

// Release removes key from the working set, leaving the cache intact.
func (p *Pipeline[T]) Release(key string) error {
	if _, ok := p.working[key]; !ok {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	delete(p.working, key)
	return nil
}

// Reset discards the working copy of key and checks it out again from
// the cache, or from disk if the cache evicted it. The key must name a
// file under the input directory.
func (p *Pipeline[T]) Reset(key string) error {
	if err := p.Release(key); err != nil {
		return err
	}
	return p.Load(key)
}

// ClearCache empties the backing cache. Working-set entries are kept
// and may diverge from the cache until their next load.
func (p *Pipeline[T]) ClearCache() {
	p.cache.Clear()
}

// appendSuffix inserts suffix into a slash-separated key just before
// its extension.
func appendSuffix(key, suffix string) string {
	dir, file := path.Split(key)
	ext := path.Ext(file)
	stem := strings.TrimSuffix(file, ext)
	return dir + stem + suffix + ext
}
