// Package importer scans filesystem paths into document rows and runs
// them through the processing pipeline with bounded parallelism.
package importer

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/panjf2000/ants/v2"

	"github.com/docuchat/ragengine/document"
	"github.com/docuchat/ragengine/ingest"
	"github.com/docuchat/ragengine/log"
	"github.com/docuchat/ragengine/store"
)

// DefaultParallelism is the worker pool size when no option overrides it.
const DefaultParallelism = 4

// Result reports the outcome of importing one file. Err is nil when the
// document was registered and processed successfully.
type Result struct {
	// Path is the matched file path.
	Path string

	// Document is the registered document row, nil when registration
	// itself failed.
	Document *document.Document

	// Err is the registration or processing error, if any.
	Err error
}

// Importer registers matching files as documents and processes them.
// Unlike the pipeline's ordered fail-fast batch processing, imports are
// best-effort: one file's failure does not stop the rest.
type Importer struct {
	store       store.Store
	pipeline    *ingest.Pipeline
	parallelism int
	skipUnknown bool
}

// Option configures an Importer.
type Option func(*Importer)

// WithStore sets the entity store documents are registered in.
func WithStore(s store.Store) Option {
	return func(imp *Importer) {
		imp.store = s
	}
}

// WithPipeline sets the processing pipeline.
func WithPipeline(p *ingest.Pipeline) Option {
	return func(imp *Importer) {
		imp.pipeline = p
	}
}

// WithParallelism sets the worker pool size. Values below one are
// ignored.
func WithParallelism(n int) Option {
	return func(imp *Importer) {
		if n > 0 {
			imp.parallelism = n
		}
	}
}

// WithSkipUnknownKinds drops matched files whose extension maps to no
// supported document kind instead of reporting them as failures.
func WithSkipUnknownKinds(skip bool) Option {
	return func(imp *Importer) {
		imp.skipUnknown = skip
	}
}

// New creates an importer from the given options.
func New(opts ...Option) *Importer {
	imp := &Importer{parallelism: DefaultParallelism}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// Import expands the glob patterns (doublestar syntax, `**` supported),
// registers each matched file as a document and processes it. Results
// are returned per file in match order. The returned error covers setup
// failures only; per-file failures are carried in the results.
func (imp *Importer) Import(ctx context.Context, patterns ...string) ([]*Result, error) {
	paths, err := expand(patterns)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	results := make([]*Result, 0, len(paths))
	for _, path := range paths {
		results = append(results, imp.register(ctx, path))
	}

	pool, err := ants.NewPool(imp.parallelism)
	if err != nil {
		return nil, fmt.Errorf("create import worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, res := range results {
		if res.Err != nil || res.Document == nil {
			continue
		}
		wg.Add(1)
		result := res
		if err := pool.Submit(func() {
			defer wg.Done()
			if procErr := imp.pipeline.ProcessDocument(ctx, result.Document); procErr != nil {
				log.Errorf("import: processing %s failed: %v", result.Path, procErr)
				result.Err = procErr
			}
		}); err != nil {
			wg.Done()
			result.Err = err
		}
	}
	wg.Wait()

	return results, nil
}

// register stats the file and inserts its document row.
func (imp *Importer) register(ctx context.Context, path string) *Result {
	res := &Result{Path: path}

	kind := document.KindFromPath(path)
	if kind == document.KindUnknown {
		if imp.skipUnknown {
			log.Debugf("import: skipping %s, unsupported extension", path)
			return res
		}
		res.Err = fmt.Errorf("unsupported file extension: %s", path)
		return res
	}

	info, err := os.Stat(path)
	if err != nil {
		res.Err = err
		return res
	}

	doc := document.New(info.Name(), path, kind, info.Size())
	if err := imp.store.InsertDocument(ctx, doc); err != nil {
		res.Err = err
		return res
	}
	res.Document = doc
	return res
}

// expand resolves the glob patterns to a deduplicated path list in
// match order.
func expand(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			paths = append(paths, match)
		}
	}
	return paths, nil
}
