package ingest

import (
	"context"

	"github.com/SavaKodi/DatexReleaseNotes/internal/releasenotes"
	"golang.org/x/sync/errgroup"
)

// FileResult is the parse outcome of one input file.
type FileResult struct {
	Path     string
	Encoding Encoding
	Report   *releasenotes.Report
}

// ParseFile reads, decodes and parses one file.
func ParseFile(path string) (*FileResult, error) {
	text, enc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &FileResult{
		Path:     path,
		Encoding: enc,
		Report:   releasenotes.ParseMultipleWithDiagnostics(text),
	}, nil
}

// ParseFiles parses files with at most workers in flight. Results keep the
// order of paths. The first read error cancels the remaining work.
func ParseFiles(ctx context.Context, paths []string, workers int) ([]*FileResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]*FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := ParseFile(path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Releases flattens the releases of all results in order.
func Releases(results []*FileResult) []releasenotes.ParsedRelease {
	var all []releasenotes.ParsedRelease
	for _, r := range results {
		all = append(all, r.Report.Releases...)
	}
	if all == nil {
		all = []releasenotes.ParsedRelease{}
	}
	return all
}
