package classifier

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// DefaultMaxFiles bounds worst-case scan latency. Policy, not
	// correctness: callers may raise or lower it.
	DefaultMaxFiles = 100

	// defaultMaxFileSize skips generated bundles and data blobs that
	// would drown real signals.
	defaultMaxFileSize = 256 * 1024
)

// Directories that never carry meaningful detection signal.
var skippedDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"vendor":       {},
	"dist":         {},
	"build":        {},
	".venv":        {},
	"__pycache__":  {},
}

// ScanOptions tune a directory scan.
type ScanOptions struct {
	MaxFiles    int
	MaxFileSize int64
}

// ScanDirectory walks root, reads up to MaxFiles candidate files and
// classifies them unfiltered so operators see every nonzero match. The
// context cancels a scan of a slow or enormous tree.
func (c *Classifier) ScanDirectory(ctx context.Context, root string, opts ScanOptions) ([]Recommendation, error) {
	files, err := collectFiles(ctx, root, opts)
	if err != nil {
		return nil, err
	}
	return c.ClassifyAll(files), nil
}

func collectFiles(ctx context.Context, root string, opts ScanOptions) ([]File, error) {
	maxFiles := opts.MaxFiles
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = defaultMaxFileSize
	}

	var files []File

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if entry.IsDir() {
			if _, skip := skippedDirs[entry.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}

		if len(files) >= maxFiles {
			return filepath.SkipAll
		}

		info, err := entry.Info()
		if err != nil || info.Size() > maxSize {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			// Unreadable files are skipped, not fatal.
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		files = append(files, File{Path: filepath.ToSlash(rel), Content: string(data)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
