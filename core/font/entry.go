package font

// Entry is the index's record for a single font. Entries are created by
// the cache builder or by memory-font registration, and are immutable
// after insertion.
type Entry struct {
	ID       ID
	Source   Source
	Names    Names
	Style    Axes
	Coverage Coverage
	Metadata Metadata
	Origin   Origin
}

// ParsedFont is the record produced by a Parser for one sub-font of a
// font resource: the name-table records, the descriptive metadata, the
// derived style axes, and the Unicode coverage from the cmap table.
type ParsedFont struct {
	Names    Names
	Metadata Metadata
	Style    Axes
	Coverage Coverage
}

// Entry wraps the parse result into an index entry for the given source.
// The ID is left zero; the index mints one on insertion.
func (pf *ParsedFont) Entry(src Source) *Entry {
	return &Entry{
		Source:   src,
		Names:    pf.Names,
		Style:    pf.Style,
		Coverage: pf.Coverage.Normalize(),
		Metadata: pf.Metadata,
		Origin:   src.Origin(),
	}
}

// Parser is the capability which turns font bytes into ParsedFont
// records. Implementations must be safe for concurrent use on immutable
// input. The library ships a default implementation in package otparse;
// consumers may plug their own.
type Parser interface {
	// NumFonts returns the number of sub-fonts in the resource; 1 for
	// plain font files, the collection size for TTC/OTC containers.
	NumFonts(data []byte) (int, error)

	// Parse extracts the sub-font at fontIndex.
	Parse(data []byte, fontIndex int) (*ParsedFont, error)
}

// NameParser is an optional fast-path capability: it reads only the name
// table of a sub-font, so that family-filtered scans can reject a font
// before its cmap is decoded.
type NameParser interface {
	ParseNames(data []byte, fontIndex int) (Names, error)
}
