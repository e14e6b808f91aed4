package scan

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/npillmayer/fontconf/core"
	"github.com/npillmayer/fontconf/core/font"
	"github.com/npillmayer/fontconf/core/font/fontindex"
	"github.com/npillmayer/fontconf/core/font/otparse"
)

// DefaultFileTimeout is the soft cap for parsing a single font file.
// Offenders are skipped with a warning.
const DefaultFileTimeout = 5 * time.Second

// Options configure a build.
type Options struct {
	Parser      font.Parser   // defaults to otparse.New()
	Enumerator  Enumerator    // defaults to SystemEnumerator(nil)
	Workers     int           // defaults to runtime.NumCPU(); 1 forces the serial path
	FileTimeout time.Duration // defaults to DefaultFileTimeout
	SeedGoFonts bool          // register the embedded Go fonts after the scan
}

func (opts Options) withDefaults() Options {
	if opts.Parser == nil {
		opts.Parser = otparse.New()
	}
	if opts.Enumerator == nil {
		opts.Enumerator = SystemEnumerator(nil)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if runtime.GOOS == "js" {
		opts.Workers = 1
	}
	if opts.FileTimeout <= 0 {
		opts.FileTimeout = DefaultFileTimeout
	}
	return opts
}

// Build scans the system for fonts and returns a populated index.
//
// Candidate files are parsed concurrently by a bounded worker pool;
// parse and I/O failures are absorbed as warnings on the index's
// diagnostic log. ctx may carry a deadline: on expiry, Build returns
// with whatever has been inserted so far and one warning per unfinished
// file. Entries are sorted by (family, subfamily, path, sub-font index)
// before IDs are assigned, so allocation order is deterministic
// regardless of worker interleaving.
func Build(ctx context.Context, opts Options) *fontindex.Index {
	return build(ctx, opts, nil)
}

// BuildWithFamilies is the fast path for clients that know what they
// want: fonts whose family is not in the filter are rejected after the
// name table is read, before coverage is decoded.
func BuildWithFamilies(ctx context.Context, opts Options, families []string) *fontindex.Index {
	filter := make(map[string]bool, len(families))
	for _, fam := range families {
		filter[font.Normalize(fam)] = true
	}
	return build(ctx, opts, filter)
}

func build(ctx context.Context, opts Options, familyFilter map[string]bool) *fontindex.Index {
	opts = opts.withDefaults()
	ix := fontindex.New()
	sink := ix.DiagnosticSink()
	sources := opts.Enumerator.Enumerate(sink)
	start := time.Now()
	entries := collectEntries(ctx, opts, sources, familyFilter, sink)
	// deterministic id allocation order, independent of worker timing
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Names.Family != b.Names.Family {
			return a.Names.Family < b.Names.Family
		}
		if a.Names.Subfamily != b.Names.Subfamily {
			return a.Names.Subfamily < b.Names.Subfamily
		}
		if a.Source.Path != b.Source.Path {
			return a.Source.Path < b.Source.Path
		}
		return a.Source.FontIndex < b.Source.FontIndex
	})
	for _, entry := range entries {
		ix.Insert(entry)
	}
	if opts.SeedGoFonts {
		RegisterMemoryFonts(ix, opts.Parser, GoFonts())
	}
	tracer().Infof("built index with %d fonts from %d files in %v",
		ix.Len(), len(sources), time.Since(start))
	return ix
}

// collectEntries fans the sources out to a bounded worker pool. With a
// single worker the pool degenerates to a serial loop, the fallback for
// constrained environments.
func collectEntries(ctx context.Context, opts Options, sources []ByteSource,
	familyFilter map[string]bool, sink font.TraceSink) []*font.Entry {
	//
	jobs := make(chan ByteSource)
	var mu sync.Mutex
	var entries []*font.Entry
	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				parsed := parseSource(ctx, opts, src, familyFilter, sink)
				if len(parsed) > 0 {
					mu.Lock()
					entries = append(entries, parsed...)
					mu.Unlock()
				}
			}
		}()
	}
	unfinished := 0
dispatch:
	for _, src := range sources {
		select {
		case jobs <- src:
		case <-ctx.Done():
			unfinished++
			sink.Append(font.TraceRecord{
				Level:  font.Warning,
				Path:   src.DisplayPath(),
				Reason: font.Timeout,
			})
			continue dispatch
		}
	}
	close(jobs)
	wg.Wait()
	if unfinished > 0 {
		tracer().Infof("build deadline expired, %d files unscanned", unfinished)
	}
	return entries
}

// parseSource reads and parses one candidate resource in a
// failure-isolated frame: it produces entries, or at most one warning.
func parseSource(ctx context.Context, opts Options, src ByteSource,
	familyFilter map[string]bool, sink font.TraceSink) []*font.Entry {
	//
	warn := func(reason font.ReasonCode) {
		sink.Append(font.TraceRecord{
			Level:  font.Warning,
			Path:   src.DisplayPath(),
			Reason: reason,
		})
	}
	type outcome struct {
		entries []*font.Entry
		reason  font.ReasonCode
		failed  bool
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				tracer().Errorf("panic while parsing %s: %v", src.DisplayPath(), r)
				done <- outcome{reason: font.ParseFailure, failed: true}
			}
		}()
		data, err := src.ReadAll()
		if err != nil {
			done <- outcome{reason: warnReason(err), failed: true}
			return
		}
		entries, err := parseAll(opts.Parser, data, src.DisplayPath(), familyFilter)
		if err != nil {
			done <- outcome{reason: warnReason(err), failed: true}
			return
		}
		done <- outcome{entries: entries}
	}()
	select {
	case oc := <-done:
		if oc.failed {
			warn(oc.reason)
			return nil
		}
		return oc.entries
	case <-time.After(opts.FileTimeout):
		warn(font.Timeout)
		return nil
	case <-ctx.Done():
		warn(font.Timeout)
		return nil
	}
}

// warnReason maps a failure to its trace reason code.
func warnReason(err error) font.ReasonCode {
	if core.KindOf(err) == core.KindIO {
		return font.IoFailure
	}
	return font.ParseFailure
}

// parseAll extracts every sub-font of a resource.
func parseAll(parser font.Parser, data []byte, path string,
	familyFilter map[string]bool) ([]*font.Entry, error) {
	//
	n, err := parser.NumFonts(data)
	if err != nil {
		return nil, err
	}
	nameParser, hasFastPath := parser.(font.NameParser)
	var entries []*font.Entry
	for i := 0; i < n; i++ {
		if familyFilter != nil && hasFastPath {
			names, err := nameParser.ParseNames(data, i)
			if err != nil {
				return nil, err
			}
			if !familyFilter[font.Normalize(names.BestFamily())] {
				continue
			}
		}
		parsed, err := parser.Parse(data, i)
		if err != nil {
			return nil, err
		}
		if familyFilter != nil && !familyFilter[font.Normalize(parsed.Names.BestFamily())] {
			continue
		}
		entries = append(entries, parsed.Entry(font.DiskSource(path, i)))
	}
	return entries, nil
}

// MemoryFont is a caller-owned font resource for in-memory
// registration. Data is shared by reference, never copied. A non-empty
// Family overrides the family found in the font's name table.
type MemoryFont struct {
	Data       []byte
	ExternalID string
	Family     string
}

// RegisterMemoryFonts inserts in-memory fonts into an existing index,
// bypassing enumeration but using the same parsing contract. It returns
// the IDs of the inserted entries. Failures are absorbed as warnings on
// the index's diagnostic log, one per resource.
func RegisterMemoryFonts(ix *fontindex.Index, parser font.Parser, fonts []MemoryFont) []font.ID {
	if parser == nil {
		parser = otparse.New()
	}
	sink := ix.DiagnosticSink()
	var ids []font.ID
	for _, mf := range fonts {
		n, err := parser.NumFonts(mf.Data)
		if err != nil {
			sink.Append(font.TraceRecord{
				Level:  font.Warning,
				Path:   "mem:" + mf.ExternalID,
				Reason: font.ParseFailure,
			})
			continue
		}
		for i := 0; i < n; i++ {
			parsed, err := parser.Parse(mf.Data, i)
			if err != nil {
				sink.Append(font.TraceRecord{
					Level:  font.Warning,
					Path:   "mem:" + mf.ExternalID,
					Reason: font.ParseFailure,
				})
				break
			}
			if mf.Family != "" {
				parsed.Names.Family = mf.Family
			}
			entry := parsed.Entry(font.MemorySource(mf.Data, i, mf.ExternalID))
			ids = append(ids, ix.Insert(entry))
		}
	}
	return ids
}

// IndexPromise runs an index build asynchronously in the background.
// A call to Index blocks until the build has completed.
type IndexPromise interface {
	Index() (*fontindex.Index, error)
}

type indexLoader struct {
	await func(ctx context.Context) (*fontindex.Index, error)
}

func (loader indexLoader) Index() (*fontindex.Index, error) {
	return loader.await(context.Background())
}

// ResolveIndex builds a font index in the background and returns a
// promise for it (async/await pattern).
func ResolveIndex(ctx context.Context, opts Options) IndexPromise {
	ch := make(chan *fontindex.Index, 1)
	go func(ch chan<- *fontindex.Index) {
		ch <- Build(ctx, opts)
		close(ch)
	}(ch)
	return indexLoader{
		await: func(await context.Context) (*fontindex.Index, error) {
			select {
			case <-await.Done():
				return nil, await.Err()
			case ix := <-ch:
				return ix, nil
			}
		},
	}
}
