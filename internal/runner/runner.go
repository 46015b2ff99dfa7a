// Package runner applies a pointwise transform to every PNG file in a
// directory.
//
// Files are processed one at a time in name order. Each file is decoded to
// an 8-bit RGBA buffer, transformed into a new buffer of the same size and
// written back as PNG. Nothing is shared between files.
package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ironsheep/cardprep/internal/imaging"
	"github.com/ironsheep/cardprep/internal/transform"
)

// Extension is the only file extension processed, compared case-insensitively.
const Extension = ".png"

// FailurePolicy decides what happens after a file fails.
type FailurePolicy int

const (
	// ContinueOnError records the failure and moves on to the next file.
	ContinueOnError FailurePolicy = iota
	// StopOnError aborts the run at the first failure.
	StopOnError
)

// Options configures a Runner. The zero value overwrites files in place,
// continues past failures and logs nothing.
type Options struct {
	// OutputDir, when set, receives the transformed files under their
	// original names and the originals are left untouched. Empty means
	// overwrite in place.
	OutputDir string

	// OnError selects the failure policy.
	OnError FailurePolicy

	// DryRun transforms and counts changes without writing anything.
	DryRun bool

	// Observer receives progress events. Nil means NopObserver.
	Observer Observer
}

// FileResult describes the outcome for one file.
type FileResult struct {
	Path          string `json:"path"`
	Output        string `json:"output,omitempty"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	ChangedPixels int    `json:"changed_pixels"`
	Error         string `json:"error,omitempty"`
}

// Report summarises a run.
type Report struct {
	Files     []FileResult `json:"files"`
	Processed int          `json:"processed"`
	Failed    int          `json:"failed"`
	DryRun    bool         `json:"dry_run"`
}

// Runner applies a transform to a directory of images.
type Runner struct {
	opts Options
}

// New creates a Runner with the given options.
func New(opts Options) *Runner {
	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}
	return &Runner{opts: opts}
}

// Run applies fn to every PNG in dir using default options: overwrite in
// place, continue past failures, no logging.
func Run(dir string, fn transform.Func) (*Report, error) {
	return New(Options{}).Run(dir, fn)
}

// ListImages returns the paths of the files in dir whose extension is .png
// in any case, sorted by name. Subdirectories are not descended into.
//
// Symbolic links are followed: a link to a regular file is listed under the
// link's name, a link to a directory is skipped. A dangling link is listed so
// that reading it fails and is reported like any other unreadable file.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if !strings.EqualFold(filepath.Ext(entry.Name()), Extension) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		mode := entry.Type()
		if mode&fs.ModeSymlink != 0 {
			fi, err := os.Stat(path)
			if err != nil {
				paths = append(paths, path)
				continue
			}
			mode = fi.Mode()
		}
		if mode.IsRegular() {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Run applies fn to every PNG in dir.
//
// The returned report always lists every file attempted. The error is nil
// only if every file succeeded; otherwise it joins the per-file errors, each
// of which unwraps to *imaging.DecodeError or *imaging.IOError. An
// unreadable directory fails before any file is touched.
func (r *Runner) Run(dir string, fn transform.Func) (*Report, error) {
	paths, err := ListImages(dir)
	if err != nil {
		return nil, err
	}

	if r.opts.OutputDir != "" && !r.opts.DryRun {
		if err := os.MkdirAll(r.opts.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	report := &Report{DryRun: r.opts.DryRun}
	var errs []error

	for _, path := range paths {
		res, err := r.processFile(path, fn)
		if err != nil {
			res.Error = err.Error()
			report.Failed++
			r.opts.Observer.Failed(path, err)
			errs = append(errs, err)
			report.Files = append(report.Files, res)
			if r.opts.OnError == StopOnError {
				break
			}
			continue
		}
		report.Processed++
		report.Files = append(report.Files, res)
	}

	return report, errors.Join(errs...)
}

// processFile transforms a single image.
func (r *Runner) processFile(path string, fn transform.Func) (FileResult, error) {
	res := FileResult{Path: path}
	obs := r.opts.Observer

	obs.Opening(path)
	src, err := imaging.Open(path)
	if err != nil {
		return res, err
	}

	bounds := src.Bounds()
	res.Width, res.Height = bounds.Dx(), bounds.Dy()

	out, changed := transform.Apply(src, fn, func(x, y int, before, after transform.Pixel) {
		obs.PixelChanged(path, x, y, before, after)
	})
	res.ChangedPixels = changed

	if r.opts.DryRun {
		return res, nil
	}

	dest := r.outputPath(path)
	obs.Saving(dest)
	if err := imaging.Save(dest, out); err != nil {
		return res, err
	}
	res.Output = dest
	return res, nil
}

// outputPath returns where the result for path is written.
func (r *Runner) outputPath(path string) string {
	if r.opts.OutputDir == "" {
		return path
	}
	return filepath.Join(r.opts.OutputDir, filepath.Base(path))
}
