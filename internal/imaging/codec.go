package imaging

import (
	"fmt"
	"image"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/aymenblj/pixlink/internal/cache"
	"github.com/aymenblj/pixlink/internal/pipeline"
)

// Clone returns an independent deep copy of img. It satisfies
// cache.CloneFunc for image payloads.
func Clone(img *image.NRGBA) *image.NRGBA {
	return imaging.Clone(img)
}

// Bounds reports the full extent of img. RegionPipeline uses it to
// clamp detected regions.
func Bounds(img *image.NRGBA) image.Rectangle {
	return img.Bounds()
}

// FileLoader decodes images from disk. Supported formats are those of
// the disintegration/imaging library: JPEG, PNG, GIF, TIFF and BMP.
type FileLoader struct{}

var _ pipeline.Loader[*image.NRGBA] = FileLoader{}

// LoadFile decodes the image at path into a fresh NRGBA buffer.
func (FileLoader) LoadFile(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %q: %w", path, err)
	}
	return imaging.Clone(img), nil
}

// LoadIntoCache decodes the image at path and caches it under key.
func (l FileLoader) LoadIntoCache(c cache.Cache[*image.NRGBA], path, key string) error {
	img, err := l.LoadFile(path)
	if err != nil {
		return err
	}
	c.Put(key, img)
	return nil
}

// StoreInCache caches an in-memory image under key.
func (FileLoader) StoreInCache(c cache.Cache[*image.NRGBA], img *image.NRGBA, key string) {
	c.Put(key, img)
}

// LoadDirectory recursively scans dir for image files whose extension
// matches exts (case-insensitive; empty matches everything) and caches
// each under its forward-slash path relative to root. Already-cached
// keys are not re-read, and files that fail to decode are skipped.
func (l FileLoader) LoadDirectory(c cache.Cache[*image.NRGBA], dir, root string, exts []string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !extAllowed(filepath.Ext(p), exts) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if c.Contains(key) {
			keys = append(keys, key)
			return nil
		}
		if err := l.LoadIntoCache(c, p, key); err != nil {
			// Best effort: an unreadable or corrupt file does not
			// abort the batch.
			return nil
		}
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// extAllowed reports whether ext matches the allow-list. An empty list
// allows everything.
func extAllowed(ext string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(ext, a) {
			return true
		}
	}
	return false
}

// FileSaver encodes images to disk, inferring the format from the
// destination extension and creating missing directories.
type FileSaver struct{}

var _ pipeline.Saver[*image.NRGBA] = FileSaver{}

// Save encodes img to outputPath.
func (FileSaver) Save(outputPath string, img *image.NRGBA) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %q: %w", outputPath, err)
	}
	if err := imaging.Save(img, outputPath); err != nil {
		return fmt.Errorf("failed to save image %q: %w", outputPath, err)
	}
	return nil
}

// SaveAll writes every image in the map under outDir, deriving the
// filename from the key and appending the default extension when the
// key has none.
func (s FileSaver) SaveAll(items map[string]*image.NRGBA, outDir string) error {
	for key, img := range items {
		filename := key
		if path.Ext(key) == "" {
			filename += pipeline.DefaultExt
		}
		outPath := filepath.Join(outDir, filepath.FromSlash(filename))
		if err := s.Save(outPath, img); err != nil {
			return err
		}
	}
	return nil
}

// SaveAs writes img under outDir/subdir using the filename portion of
// key, appending the default extension when the key has none.
func (s FileSaver) SaveAs(img *image.NRGBA, outDir, subdir, key string) error {
	filename := path.Base(key)
	if path.Ext(filename) == "" {
		filename += pipeline.DefaultExt
	}
	outPath := filepath.Join(outDir, subdir, filename)
	return s.Save(outPath, img)
}
