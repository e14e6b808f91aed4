package fontindex

import (
	"sync"

	"github.com/derekparker/trie"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/fontconf/core"
	"github.com/npillmayer/fontconf/core/font"
)

// Index is the authoritative store of font entries. It maps opaque font
// IDs to entries and maintains auxiliary lookup maps for names and
// families. Entries are immutable once inserted; the index never mutates
// a source.
//
// An Index is safe for concurrent use. Queries observe a consistent
// snapshot; a query racing with an insertion may see the state before or
// after the insertion, but never a torn state.
type Index struct {
	mu       sync.RWMutex
	entries  *treemap.Map             // font.ID → *font.Entry, ordered by mint time
	byFile   map[string]font.ID       // dedup map for disk sources
	byName   map[string][]font.ID     // normalized full/PostScript names
	byFamily map[string][]font.ID     // normalized family names
	families *trie.Trie               // normalized family names, for prefix search
	gen      uint64                   // bumped on every insertion
	diag     *font.Recorder           // builder diagnostics (parse/io warnings)
}

func idComparator(a, b interface{}) int {
	return a.(font.ID).Compare(b.(font.ID))
}

// New creates an empty index.
func New() *Index {
	return &Index{
		entries:  treemap.NewWith(idComparator),
		byFile:   make(map[string]font.ID),
		byName:   make(map[string][]font.ID),
		byFamily: make(map[string][]font.ID),
		families: trie.New(),
		diag:     &font.Recorder{},
	}
}

// Insert adds an entry to the index and returns its ID, minting one if
// the entry carries none. The entry's coverage is normalized on the way
// in. Inserting a disk source whose canonical path and sub-font index are
// already present returns the existing ID and leaves the index unchanged.
//
// Inserting an entry whose (non-zero) ID is already present is an
// invariant violation and panics.
func (ix *Index) Insert(entry *font.Entry) font.ID {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if key := entry.Source.CacheKey(); key != "" {
		if id, ok := ix.byFile[key]; ok {
			tracer().Debugf("index already holds %s", key)
			return id
		}
	}
	if entry.ID.IsZero() {
		entry.ID = font.MintID()
	} else if _, present := ix.entries.Get(entry.ID); present {
		panic(core.Violation("duplicate font id %v on insert", entry.ID))
	}
	entry.Coverage = entry.Coverage.Normalize()
	entry.Origin = entry.Source.Origin()
	ix.entries.Put(entry.ID, entry)
	if key := entry.Source.CacheKey(); key != "" {
		ix.byFile[key] = entry.ID
	}
	ix.registerNames(entry)
	ix.gen++
	tracer().Debugf("index stores font %s as %v", entry.Names.Full, entry.ID)
	return entry.ID
}

func (ix *Index) registerNames(entry *font.Entry) {
	for _, name := range []string{entry.Names.Full, entry.Names.PostScript, entry.Names.UniqueID} {
		if name == "" {
			continue
		}
		n := font.Normalize(name)
		ix.byName[n] = append(ix.byName[n], entry.ID)
	}
	for _, fam := range []string{entry.Names.Family, entry.Names.PreferredFamily} {
		if fam == "" {
			continue
		}
		n := font.Normalize(fam)
		if ids := ix.byFamily[n]; len(ids) == 0 || ids[len(ids)-1] != entry.ID {
			ix.byFamily[n] = append(ids, entry.ID)
		}
		ix.families.Add(n, nil)
	}
}

// Get returns the entry for id, if present.
func (ix *Index) Get(id font.ID) (*font.Entry, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if e, ok := ix.entries.Get(id); ok {
		return e.(*font.Entry), true
	}
	return nil, false
}

// Source returns the source descriptor for id, if present.
func (ix *Index) Source(id font.ID) (font.Source, bool) {
	if e, ok := ix.Get(id); ok {
		return e.Source, true
	}
	return font.Source{}, false
}

// Metadata returns the descriptive metadata for id, if present.
func (ix *Index) Metadata(id font.ID) (*font.Metadata, bool) {
	if e, ok := ix.Get(id); ok {
		return &e.Metadata, true
	}
	return nil, false
}

// Info is a light pattern-view of an entry, for client-side filtering.
type Info struct {
	ID     font.ID
	Family string
	Full   string
	Style  font.Axes
	Origin font.Origin
}

// List returns a light view of all entries, ordered by mint time.
func (ix *Index) List() []Info {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]Info, 0, ix.entries.Size())
	ix.entries.Each(func(key, value interface{}) {
		e := value.(*font.Entry)
		out = append(out, Info{
			ID:     e.ID,
			Family: e.Names.BestFamily(),
			Full:   e.Names.Full,
			Style:  e.Style,
			Origin: e.Origin,
		})
	})
	return out
}

// AllMatching returns all entries satisfying pred, ordered by mint time.
func (ix *Index) AllMatching(pred func(*font.Entry) bool) []*font.Entry {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	var out []*font.Entry
	ix.entries.Each(func(key, value interface{}) {
		e := value.(*font.Entry)
		if pred == nil || pred(e) {
			out = append(out, e)
		}
	})
	return out
}

// FamiliesWithPrefix returns the normalized family names starting with
// prefix (itself normalized first).
func (ix *Index) FamiliesWithPrefix(prefix string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	n := font.Normalize(prefix)
	if !ix.families.HasKeysWithPrefix(n) {
		return nil
	}
	return ix.families.PrefixSearch(n)
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.entries.Size()
}

// Generation returns a counter which increases with every insertion.
// Chain caches compare generations to decide on wholesale invalidation.
func (ix *Index) Generation() uint64 {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.gen
}

// Diagnostics returns the warnings collected while the index was built:
// unreadable files, unparsable fonts, skipped directories.
func (ix *Index) Diagnostics() []font.TraceRecord {
	return ix.diag.Records()
}

// DiagnosticSink returns the sink builder pipelines attach their
// warnings to.
func (ix *Index) DiagnosticSink() font.TraceSink {
	return ix.diag
}

// candidateIDs returns the IDs to consider for a pattern, under the read
// lock held by the caller.
func (ix *Index) candidateIDs(pat font.Pattern) []font.ID {
	if pat.Family != "" {
		return ix.byFamily[font.Normalize(pat.Family)]
	}
	if pat.Name != "" {
		n := font.Normalize(pat.Name)
		ids := append([]font.ID{}, ix.byName[n]...)
		ids = append(ids, ix.byFamily[n]...)
		return dedupIDs(ids)
	}
	all := make([]font.ID, 0, ix.entries.Size())
	ix.entries.Each(func(key, value interface{}) {
		all = append(all, key.(font.ID))
	})
	return all
}

func dedupIDs(ids []font.ID) []font.ID {
	seen := make(map[font.ID]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
