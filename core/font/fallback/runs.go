package fallback

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/fontconf/core/font"
)

// CharFont is the per-code-point resolution result.
type CharFont struct {
	Char     rune
	FontID   font.ID
	Css      string
	HasFont  bool
}

// ResolvedRun is a maximal contiguous substring rendered by a single
// font under a single CSS group. Text is copied out of the input; Start
// and End are byte indices into the original UTF-8 encoding of the
// input, with End exclusive. HasFont is false for stretches no font of
// the chain covers.
type ResolvedRun struct {
	Text      string
	Start     int
	End       int
	FontID    font.ID
	HasFont   bool
	CssSource string
}

// ResolveText resolves text code point by code point. Text is iterated
// as Unicode scalar values; invalid UTF-8 bytes resolve as U+FFFD.
// Control and format characters take the font of the preceding code
// point, or the chain's first available font at the start of the text.
func (chain *ResolvedChain) ResolveText(text string) []CharFont {
	var out []CharFont
	prev := CharFont{}
	havePrev := false
	for _, r := range replacement(text) {
		cf := chain.resolveOne(r, prev, havePrev)
		out = append(out, cf)
		prev, havePrev = cf, true
	}
	return out
}

func (chain *ResolvedChain) resolveOne(r rune, prev CharFont, havePrev bool) CharFont {
	cf := CharFont{Char: r}
	if isAttached(r) {
		if havePrev {
			cf.FontID, cf.Css, cf.HasFont = prev.FontID, prev.Css, prev.HasFont
		} else {
			cf.FontID, cf.Css, cf.HasFont = chain.firstAvailable()
		}
		return cf
	}
	cf.FontID, cf.Css, cf.HasFont = chain.ResolveChar(r)
	return cf
}

// QueryForText splits text into minimal runs: consecutive code points
// sharing the same font and CSS source coalesce into one run. An empty
// text yields no runs. Concatenating the run texts reproduces the input,
// modulo U+FFFD replacement of invalid bytes.
func (chain *ResolvedChain) QueryForText(text string) []ResolvedRun {
	var runs []ResolvedRun
	var current *ResolvedRun
	var buf strings.Builder
	prev := CharFont{}
	havePrev := false
	flush := func(end int) {
		if current != nil {
			current.End = end
			current.Text = buf.String()
			runs = append(runs, *current)
			current = nil
			buf.Reset()
		}
	}
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			r = unicode.ReplacementChar
		}
		cf := chain.resolveOne(r, prev, havePrev)
		prev, havePrev = cf, true
		if current == nil || current.HasFont != cf.HasFont ||
			current.FontID != cf.FontID || current.CssSource != cf.Css {
			flush(i)
			current = &ResolvedRun{
				Start:     i,
				FontID:    cf.FontID,
				HasFont:   cf.HasFont,
				CssSource: cf.Css,
			}
		}
		buf.WriteRune(r)
		i += size
	}
	flush(len(text))
	return runs
}

// isAttached tells whether a code point inherits the font of its
// predecessor: ASCII control characters and Unicode format characters
// carry no glyph of their own.
func isAttached(r rune) bool {
	if r < 0x20 || r == 0x7f {
		return true
	}
	return unicode.Is(unicode.Cf, r)
}

// replacement substitutes U+FFFD for invalid UTF-8 bytes.
func replacement(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	var b strings.Builder
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			r = unicode.ReplacementChar
		}
		b.WriteRune(r)
		i += size
	}
	return b.String()
}
