package otparse

import (
	"github.com/npillmayer/fontconf/core"
	"github.com/npillmayer/fontconf/core/font"
	"golang.org/x/image/font/sfnt"
)

// Parser is the default font.Parser. It is stateless and safe for
// concurrent use on immutable input.
type Parser struct{}

var _ font.Parser = Parser{}
var _ font.NameParser = Parser{}

// New returns the default parser.
func New() Parser {
	return Parser{}
}

// NumFonts returns the number of sub-fonts in the resource.
func (Parser) NumFonts(data []byte) (int, error) {
	return numFonts(data)
}

// Parse extracts names, metadata, style axes and Unicode coverage for
// the sub-font at fontIndex.
func (p Parser) Parse(data []byte, fontIndex int) (*font.ParsedFont, error) {
	names, metadata, err := parseNameTable(data, fontIndex)
	if err != nil {
		return nil, err
	}
	tables, err := tableDirectory(data, fontIndex)
	if err != nil {
		return nil, err
	}
	cmap, ok := tables["cmap"]
	if !ok {
		return nil, errFontFormat("font has no cmap table")
	}
	coverage, err := coverageFromCmap(cmap)
	if err != nil {
		return nil, err
	}
	pf := &font.ParsedFont{
		Names:    names,
		Metadata: metadata,
		Style:    axesFromTables(tables, names),
		Coverage: coverage,
	}
	tracer().Debugf("parsed font %s, %d code points covered",
		pf.Names.Full, pf.Coverage.Count())
	return pf, nil
}

// ParseNames reads only the name table, the fast path for
// family-filtered scans.
func (Parser) ParseNames(data []byte, fontIndex int) (font.Names, error) {
	names, _, err := parseNameTable(data, fontIndex)
	return names, err
}

func parseNameTable(data []byte, fontIndex int) (font.Names, font.Metadata, error) {
	coll, err := sfnt.ParseCollection(data)
	if err != nil {
		return font.Names{}, font.Metadata{}, core.ParseError(err,
			"font data not parsable")
	}
	if fontIndex < 0 || fontIndex >= coll.NumFonts() {
		return font.Names{}, font.Metadata{}, core.ParseError(nil,
			"sub-font index out of collection bounds")
	}
	f, err := coll.Font(fontIndex)
	if err != nil {
		return font.Names{}, font.Metadata{}, core.ParseError(err,
			"sub-font %d not parsable", fontIndex)
	}
	var buf sfnt.Buffer
	name := func(id sfnt.NameID) string {
		s, _ := f.Name(&buf, id)
		return s
	}
	names := font.Names{
		Full:               name(sfnt.NameIDFull),
		PostScript:         name(sfnt.NameIDPostScript),
		Family:             name(sfnt.NameIDFamily),
		Subfamily:          name(sfnt.NameIDSubfamily),
		PreferredFamily:    name(sfnt.NameIDTypographicFamily),
		PreferredSubfamily: name(sfnt.NameIDTypographicSubfamily),
		UniqueID:           name(sfnt.NameIDUniqueIdentifier),
	}
	metadata := font.Metadata{
		Designer:     name(sfnt.NameIDDesigner),
		Manufacturer: name(sfnt.NameIDManufacturer),
		Description:  name(sfnt.NameIDDescription),
		License:      name(sfnt.NameIDLicense),
		Trademark:    name(sfnt.NameIDTrademark),
		VendorURL:    name(sfnt.NameIDVendorURL),
		DesignerURL:  name(sfnt.NameIDDesignerURL),
	}
	return names, metadata, nil
}
