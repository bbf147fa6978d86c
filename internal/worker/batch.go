package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/copycop/internal/model"
)

// ErrNotLinted marks a file whose job never started because the batch
// was cancelled
var ErrNotLinted = errors.New("not linted")

// Linter lints one document file
type Linter interface {
	LintFile(ctx context.Context, path string) (*model.Report, error)
}

// LintJob lints one file
type LintJob struct {
	Path   string
	Linter Linter
}

// Execute runs the lint; an unreadable or unparseable file fails only
// this job
func (j *LintJob) Execute(ctx context.Context) Result {
	report, err := j.Linter.LintFile(ctx, j.Path)
	return &LintResult{
		Path:   j.Path,
		Report: report,
		Error:  err,
	}
}

// LintResult is the outcome of one LintJob
type LintResult struct {
	Path   string
	Report *model.Report
	Error  error
}

func (r *LintResult) GetError() error {
	return r.Error
}

// BatchProcessor lints many files concurrently
type BatchProcessor struct {
	linter      Linter
	concurrency int
}

// NewBatchProcessor creates a batch processor running concurrency workers
func NewBatchProcessor(linter Linter, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		linter:      linter,
		concurrency: concurrency,
	}
}

// ProcessPaths expands directories to their document files, lints every
// file and returns the results sorted by path
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) ([]*LintResult, error) {
	files, err := ExpandPaths(paths)
	if err != nil {
		return nil, err
	}
	return b.ProcessFiles(ctx, files), nil
}

// ProcessFiles lints the given files as-is. Every file gets a result:
// files left unstarted by a cancelled ctx fail with ErrNotLinted.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, files []string) []*LintResult {
	if len(files) == 0 {
		return []*LintResult{}
	}

	jobs := make([]Job, len(files))
	for i, path := range files {
		jobs[i] = &LintJob{Path: path, Linter: b.linter}
	}

	results := NewPool(ctx, b.concurrency).Run(jobs)

	lintResults := make([]*LintResult, len(files))
	for i, result := range results {
		if result == nil {
			lintResults[i] = &LintResult{Path: files[i], Error: notLinted(ctx)}
			continue
		}
		lintResults[i] = result.(*LintResult)
	}

	sort.SliceStable(lintResults, func(i, j int) bool {
		return lintResults[i].Path < lintResults[j].Path
	})
	return lintResults
}

func notLinted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrNotLinted, err)
	}
	return ErrNotLinted
}

// documentExts are the extensions picked up when walking a directory
var documentExts = map[string]bool{
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
}

// IsDocument reports whether a path has a lintable extension
func IsDocument(path string) bool {
	return documentExts[strings.ToLower(filepath.Ext(path))]
}

// ExpandPaths replaces each directory with the document files beneath it,
// skipping hidden directories. Plain files are kept whatever their
// extension. Duplicates are dropped.
func ExpandPaths(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if IsDocument(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return files, nil
}

// ReadPathsFromFile reads document paths from a list file, one per line.
// Blank lines and # comments are skipped, duplicates dropped.
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
