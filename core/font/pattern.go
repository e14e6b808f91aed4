package font

import (
	"strings"

	"github.com/npillmayer/fontconf/core/option"
	"golang.org/x/text/cases"
)

// Names collects the naming records of a font, as read from its name
// table. Every field is optional; absent records are empty strings.
type Names struct {
	Full               string
	PostScript         string
	Family             string
	Subfamily          string
	PreferredFamily    string
	PreferredSubfamily string
	UniqueID           string
}

// BestFamily returns the primary family name, falling back to the
// preferred (typographic) family when the primary record is absent.
func (n Names) BestFamily() string {
	if n.Family != "" {
		return n.Family
	}
	return n.PreferredFamily
}

// Metadata collects the descriptive name-table records of a font. All
// fields are optional.
type Metadata struct {
	Designer     string
	Manufacturer string
	Description  string
	License      string
	Trademark    string
	VendorURL    string
	DesignerURL  string
}

// Fields returns the metadata strings which are set, for fuzzy matching.
func (md Metadata) Fields() []string {
	var fields []string
	for _, s := range []string{
		md.Designer, md.Manufacturer, md.Description,
		md.License, md.Trademark, md.VendorURL, md.DesignerURL,
	} {
		if s != "" {
			fields = append(fields, s)
		}
	}
	return fields
}

// Pattern is a bundle of typographic constraints describing a desired
// font. The zero Pattern matches every font.
//
// Name and Family are matched case-insensitively; empty strings leave the
// constraint open. Style axes are tri-state flags. Weight and Stretch of
// zero default to normal. Ranges, if non-empty, requires every range to be
// entirely covered. Metadata holds fuzzy substrings matched against the
// descriptive name-table records.
type Pattern struct {
	Name      string
	Family    string
	Italic    option.Flag
	Oblique   option.Flag
	Bold      option.Flag
	Monospace option.Flag
	Condensed option.Flag
	Weight    Weight
	Stretch   Stretch
	Ranges    Coverage
	Metadata  []string
}

// WantWeight returns the requested weight, defaulting to normal (400).
func (pat Pattern) WantWeight() Weight {
	if pat.Weight == 0 {
		return WeightNormal
	}
	return pat.Weight
}

// WantStretch returns the requested stretch, defaulting to normal (5).
func (pat Pattern) WantStretch() Stretch {
	if pat.Stretch == 0 {
		return StretchNormal
	}
	return pat.Stretch
}

// Normalize maps a font or family name to its canonical lookup form:
// Unicode case-folded, trimmed, with internal whitespace collapsed to
// single blanks.
func Normalize(name string) string {
	name = cases.Fold().String(name)
	return strings.Join(strings.Fields(name), " ")
}
