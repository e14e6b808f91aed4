package fallback

import (
	"strings"
	"sync"

	"github.com/npillmayer/fontconf/core/font"
	"github.com/npillmayer/fontconf/core/font/fontindex"
	"github.com/npillmayer/fontconf/core/option"
)

// GroupFont is one font of a CSS group, together with its coverage
// summary, so that per-text resolution needs no index access.
type GroupFont struct {
	ID       font.ID
	Coverage font.Coverage
}

// CssGroup holds the matches for one family of the (expanded) stack,
// labeled with the source family string from the CSS declaration, so a
// client can report which declaration matched. Groups with no matches
// are kept, with an empty font list, for diagnostics.
type CssGroup struct {
	CssName string
	Fonts   []GroupFont
}

// ResolvedChain is the cached outcome of resolving a family stack with
// style axes: an ordered sequence of CSS groups to be walked per code
// point. Chains are immutable.
type ResolvedChain struct {
	Stack   []string // the requested families, as given
	Weight  font.Weight
	Italic  option.Flag
	Oblique option.Flag
	Groups  []CssGroup
}

type chainKey struct {
	stack   string
	weight  font.Weight
	italic  option.Flag
	oblique option.Flag
}

// Resolver memoizes resolved chains over a font index. The cache follows
// a single-writer, multi-reader discipline and is invalidated wholesale
// whenever the index gains entries.
type Resolver struct {
	ix     *fontindex.Index
	mu     sync.RWMutex
	gen    uint64
	chains map[chainKey]*ResolvedChain
}

// NewResolver creates a resolver over ix.
func NewResolver(ix *fontindex.Index) *Resolver {
	return &Resolver{
		ix:     ix,
		chains: make(map[chainKey]*ResolvedChain),
	}
}

// ResolveChain resolves an ordered CSS family stack plus style axes into
// a chain of font groups. CSS generic families (serif, sans-serif,
// monospace, cursive, fantasy, system-ui) expand in place through the
// built-in alias table. Results are memoized under the normalized stack
// and the style tuple; repeated calls return the identical chain until
// fonts are registered.
func (rv *Resolver) ResolveChain(families []string, weight font.Weight,
	italic, oblique option.Flag, sink font.TraceSink) *ResolvedChain {
	//
	key := chainKey{
		stack:   strings.Join(normalizeStack(families), "\x1f"),
		weight:  weight,
		italic:  italic,
		oblique: oblique,
	}
	gen := rv.ix.Generation()
	rv.mu.RLock()
	if rv.gen == gen {
		if chain, ok := rv.chains[key]; ok {
			rv.mu.RUnlock()
			tracer().Debugf("chain cache hit for %v", families)
			return chain
		}
	}
	rv.mu.RUnlock()
	chain := rv.computeChain(families, weight, italic, oblique, sink)
	if rv.ix.Generation() != gen {
		// the index moved under us; hand out the chain uncached
		return chain
	}
	rv.mu.Lock()
	if rv.gen != gen {
		rv.chains = make(map[chainKey]*ResolvedChain)
		rv.gen = gen
	}
	if cached, ok := rv.chains[key]; ok {
		chain = cached
	} else {
		rv.chains[key] = chain
	}
	rv.mu.Unlock()
	return chain
}

func (rv *Resolver) computeChain(families []string, weight font.Weight,
	italic, oblique option.Flag, sink font.TraceSink) *ResolvedChain {
	//
	chain := &ResolvedChain{
		Stack:   append([]string{}, families...),
		Weight:  weight,
		Italic:  italic,
		Oblique: oblique,
	}
	seen := make(map[string]bool)
	for _, css := range families {
		normalized := font.Normalize(css)
		for _, concrete := range fontindex.ExpandGeneric(normalized) {
			cfam := font.Normalize(concrete)
			if seen[cfam] {
				continue
			}
			seen[cfam] = true
			group := CssGroup{CssName: css}
			pat := font.Pattern{
				Family:  cfam,
				Weight:  weight,
				Italic:  italic,
				Oblique: oblique,
			}
			if result, ok := rv.ix.Query(pat, sink); ok {
				group.Fonts = append(group.Fonts, GroupFont{ID: result.ID, Coverage: result.Coverage})
				for _, id := range result.Fallbacks {
					if e, ok := rv.ix.Get(id); ok {
						group.Fonts = append(group.Fonts, GroupFont{ID: id, Coverage: e.Coverage})
					}
				}
			} else {
				tracer().Debugf("no font for family '%s' in stack %v", concrete, families)
			}
			chain.Groups = append(chain.Groups, group)
		}
	}
	return chain
}

func normalizeStack(families []string) []string {
	out := make([]string, len(families))
	for i, fam := range families {
		out[i] = font.Normalize(fam)
	}
	return out
}

// ResolveChar finds the first font of the chain covering the code point.
// It returns the font's ID and the CSS source name of its group, or
// ok=false if no font in any group covers r.
func (chain *ResolvedChain) ResolveChar(r rune) (font.ID, string, bool) {
	for _, group := range chain.Groups {
		for _, gf := range group.Fonts {
			if gf.Coverage.Contains(r) {
				return gf.ID, group.CssName, true
			}
		}
	}
	return font.ID{}, "", false
}

// firstAvailable returns the head font of the first non-empty group.
func (chain *ResolvedChain) firstAvailable() (font.ID, string, bool) {
	for _, group := range chain.Groups {
		if len(group.Fonts) > 0 {
			return group.Fonts[0].ID, group.CssName, true
		}
	}
	return font.ID{}, "", false
}
