package pipeline

import "github.com/aymenblj/pixlink/internal/cache"

// Loader converts external storage into items and places them in a
// cache. Implementations own the payload decode format; the pipeline
// only routes keys and paths.
type Loader[T any] interface {
	// LoadFile decodes the item stored at path.
	LoadFile(path string) (T, error)

	// LoadIntoCache decodes the item at path and caches it under key.
	LoadIntoCache(c cache.Cache[T], path, key string) error

	// StoreInCache caches an in-memory item under key.
	StoreInCache(c cache.Cache[T], item T, key string)

	// LoadDirectory recursively scans dir, caching every regular file
	// whose extension matches exts (case-insensitive; an empty list
	// matches everything) under a forward-slash key relative to root.
	// Files already cached are not re-read. Individual file failures
	// are skipped; the returned keys cover every matched file that is
	// now cached.
	LoadDirectory(c cache.Cache[T], dir, root string, exts []string) ([]string, error)
}

// Saver serializes items to external storage. Implementations must
// create missing destination directories.
type Saver[T any] interface {
	// Save writes item to outputPath.
	Save(outputPath string, item T) error

	// SaveAll writes every item in the map under outDir using the
	// default per-key naming rule (keys without an extension get the
	// default one appended).
	SaveAll(items map[string]T, outDir string) error

	// SaveAs writes item under outDir/subdir using the filename portion
	// of key.
	SaveAs(item T, outDir, subdir, key string) error
}
