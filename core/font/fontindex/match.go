package fontindex

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/npillmayer/fontconf/core/font"
	"github.com/npillmayer/fontconf/core/option"
)

// MaxFallbacks caps the fallback list of a match result.
const MaxFallbacks = 32

// MatchResult is the outcome of a successful query: the best-scoring
// entry, its coverage, and up to MaxFallbacks further candidates which
// extend the head's coverage.
type MatchResult struct {
	ID        font.ID
	Coverage  font.Coverage
	Fallbacks []font.ID
}

// score is the quality of a match; smaller is better. Components compose
// lexicographically, the font ID last as a stable arbitrary tie-breaker.
type score struct {
	weightDist  int
	stretchDist int
	stylePen    int
	namePen     int
	originPen   int
	id          font.ID
}

func (sc score) less(other score) bool {
	if sc.weightDist != other.weightDist {
		return sc.weightDist < other.weightDist
	}
	if sc.stretchDist != other.stretchDist {
		return sc.stretchDist < other.stretchDist
	}
	if sc.stylePen != other.stylePen {
		return sc.stylePen < other.stylePen
	}
	if sc.namePen != other.namePen {
		return sc.namePen < other.namePen
	}
	if sc.originPen != other.originPen {
		return sc.originPen < other.originPen
	}
	return sc.id.Less(other.id)
}

type scored struct {
	entry *font.Entry
	sc    score
}

// Query finds the best match for a pattern. It returns false if no entry
// passes the hard filters; the sink then holds one rejection record per
// candidate considered. On success the sink additionally receives a
// single Success record for the selected entry.
func (ix *Index) Query(pat font.Pattern, sink font.TraceSink) (MatchResult, bool) {
	ranked := ix.rank(pat, sink)
	if len(ranked) == 0 {
		return MatchResult{}, false
	}
	head := ranked[0].entry
	sink.Append(font.TraceRecord{Level: font.Info, Path: head.Source.Label(), Reason: font.Success})
	result := MatchResult{ID: head.ID, Coverage: head.Coverage}
	union := head.Coverage
	for _, cand := range ranked[1:] {
		if len(result.Fallbacks) >= MaxFallbacks {
			break
		}
		if !cand.entry.Coverage.AddsTo(union) {
			continue
		}
		result.Fallbacks = append(result.Fallbacks, cand.entry.ID)
		union = union.Union(cand.entry.Coverage)
	}
	return result, true
}

// QueryAll returns all entries passing the hard filters, ordered by
// ascending score.
func (ix *Index) QueryAll(pat font.Pattern, sink font.TraceSink) []font.ID {
	ranked := ix.rank(pat, sink)
	ids := make([]font.ID, len(ranked))
	for i, cand := range ranked {
		ids[i] = cand.entry.ID
	}
	return ids
}

func (ix *Index) rank(pat font.Pattern, sink font.TraceSink) []scored {
	ix.mu.RLock()
	candidates := ix.candidateIDs(pat)
	ranked := make([]scored, 0, len(candidates))
	for _, id := range candidates {
		value, ok := ix.entries.Get(id)
		if !ok {
			continue
		}
		e := value.(*font.Entry)
		if sc, ok := scoreEntry(pat, e, sink); ok {
			ranked = append(ranked, scored{entry: e, sc: sc})
		}
	}
	ix.mu.RUnlock()
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].sc.less(ranked[j].sc)
	})
	return ranked
}

// scoreEntry applies the hard filters and computes the soft score. A
// failing hard filter appends one rejection record and returns ok=false.
func scoreEntry(pat font.Pattern, e *font.Entry, sink font.TraceSink) (score, bool) {
	reject := func(reason font.ReasonCode) (score, bool) {
		sink.Append(font.TraceRecord{Level: font.Debug, Path: e.Source.Label(), Reason: reason})
		return score{}, false
	}
	sc := score{id: e.ID}
	if pat.Name != "" {
		pen, ok := matchName(pat.Name, e.Names)
		if !ok {
			return reject(font.NameMismatch)
		}
		sc.namePen += pen
	}
	if pat.Family != "" {
		pen, ok := matchFamily(pat.Family, e.Names)
		if !ok {
			return reject(font.FamilyMismatch)
		}
		sc.namePen += pen
	}
	if !pat.Italic.Matches(e.Style.Italic) ||
		!pat.Oblique.Matches(e.Style.Oblique) ||
		!pat.Bold.Matches(e.Style.Weight.IsBold()) ||
		!pat.Monospace.Matches(e.Style.Monospace) ||
		!pat.Condensed.Matches(e.Style.Condensed) {
		return reject(font.StyleMismatch)
	}
	for _, cr := range pat.Ranges {
		if !e.Coverage.CoversRange(cr) {
			return reject(font.UnicodeRangeMismatch)
		}
	}
	if !matchMetadata(pat.Metadata, e.Metadata) {
		return reject(font.NameMismatch)
	}
	sc.weightDist = e.Style.Weight.Dist(pat.WantWeight())
	sc.stretchDist = e.Style.Stretch.Dist(pat.WantStretch())
	if pat.Italic == option.DontCare && e.Style.Italic {
		sc.stylePen++
	}
	if pat.Oblique == option.DontCare && e.Style.Oblique {
		sc.stylePen++
	}
	if e.Origin == font.OnDisk {
		sc.originPen = 1
	}
	return sc, true
}

// matchName checks a requested name against the entry's primary naming
// records, falling back to the preferred family with a penalty.
func matchName(want string, names font.Names) (penalty int, ok bool) {
	n := font.Normalize(want)
	for _, cand := range []string{names.Full, names.PostScript, names.Family} {
		if cand != "" && font.Normalize(cand) == n {
			return 0, true
		}
	}
	if names.PreferredFamily != "" && font.Normalize(names.PreferredFamily) == n {
		return 1, true
	}
	return 0, false
}

// matchFamily prefers the primary family record and falls back to the
// preferred (typographic) family with a penalty.
func matchFamily(want string, names font.Names) (penalty int, ok bool) {
	n := font.Normalize(want)
	if names.Family != "" && font.Normalize(names.Family) == n {
		return 0, true
	}
	if names.PreferredFamily != "" && font.Normalize(names.PreferredFamily) == n {
		return 1, true
	}
	return 0, false
}

// matchMetadata checks the pattern's fuzzy constraints against the
// entry's descriptive records. Every constraint must match at least one
// field.
func matchMetadata(constraints []string, md font.Metadata) bool {
	if len(constraints) == 0 {
		return true
	}
	fields := md.Fields()
	for _, want := range constraints {
		found := false
		for _, field := range fields {
			if fuzzy.MatchNormalizedFold(want, field) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
