package otparse

import (
	"github.com/npillmayer/fontconf/core"
	"github.com/npillmayer/fontconf/core/font"
)

// This value is arbitrary, but defends against parsing malicious font
// files causing excessive memory allocations. For reference, Adobe's
// SourceHanSansSC-Regular.otf has a format-12 cmap with 16498 segments.
const maxCMapSegments = 20000

func errFontFormat(msg string) error {
	return core.ParseError(nil, "font format: %s", msg)
}

// binSegm is a segment of font binary data.
type binSegm []byte

func (b binSegm) view(offset, size int) (binSegm, error) {
	if offset < 0 || size < 0 || offset+size > len(b) {
		return nil, errFontFormat("internal structure exceeds font bounds")
	}
	return b[offset : offset+size], nil
}

func (b binSegm) u16(offset int) (uint16, error) {
	if offset < 0 || offset+2 > len(b) {
		return 0, errFontFormat("internal structure exceeds font bounds")
	}
	return uint16(b[offset])<<8 | uint16(b[offset+1]), nil
}

func (b binSegm) u32(offset int) (uint32, error) {
	if offset < 0 || offset+4 > len(b) {
		return 0, errFontFormat("internal structure exceeds font bounds")
	}
	return uint32(b[offset])<<24 | uint32(b[offset+1])<<16 |
		uint32(b[offset+2])<<8 | uint32(b[offset+3]), nil
}

const (
	sfntVersionTrueType = 0x00010000
	sfntVersionOTTO     = 0x4f54544f // 'OTTO'
	sfntVersionAppleTT  = 0x74727565 // 'true'
	ttcTag              = 0x74746366 // 'ttcf'
)

// numFonts returns the number of sub-fonts: the collection size for
// 'ttcf' containers, 1 for plain font files.
func numFonts(data binSegm) (int, error) {
	version, err := data.u32(0)
	if err != nil {
		return 0, err
	}
	if version == ttcTag {
		n, err := data.u32(8)
		if err != nil {
			return 0, err
		}
		return int(n), nil
	}
	if version != sfntVersionTrueType && version != sfntVersionOTTO &&
		version != sfntVersionAppleTT {
		return 0, errFontFormat("font type not supported")
	}
	return 1, nil
}

// tableDirectory maps table tags to their raw segments for the sub-font
// at fontIndex.
func tableDirectory(data binSegm, fontIndex int) (map[string]binSegm, error) {
	version, err := data.u32(0)
	if err != nil {
		return nil, err
	}
	headerAt := 0
	if version == ttcTag {
		n, _ := data.u32(8)
		if fontIndex < 0 || fontIndex >= int(n) {
			return nil, errFontFormat("sub-font index out of collection bounds")
		}
		off, err := data.u32(12 + 4*fontIndex)
		if err != nil {
			return nil, err
		}
		headerAt = int(off)
		if version, err = data.u32(headerAt); err != nil {
			return nil, err
		}
	} else if fontIndex != 0 {
		return nil, errFontFormat("sub-font index into a non-collection font")
	}
	if version != sfntVersionTrueType && version != sfntVersionOTTO &&
		version != sfntVersionAppleTT {
		return nil, errFontFormat("font type not supported")
	}
	tableCount, err := data.u16(headerAt + 4)
	if err != nil {
		return nil, err
	}
	// the offset table is followed by 16-byte table records
	records, err := data.view(headerAt+12, 16*int(tableCount))
	if err != nil {
		return nil, errFontFormat("table record entries")
	}
	tables := make(map[string]binSegm, tableCount)
	for b := records; len(b) >= 16; b = b[16:] {
		tag := string(b[:4])
		off, _ := binSegm(b).u32(8)
		size, _ := binSegm(b).u32(12)
		segm, err := data.view(int(off), int(size))
		if err != nil {
			return nil, errFontFormat("table " + tag + " exceeds font bounds")
		}
		tables[tag] = segm
	}
	return tables, nil
}

// axesFromTables derives the style axes from the OS/2 and post tables,
// guessing from naming where tables are absent (bare TrueType).
func axesFromTables(tables map[string]binSegm, names font.Names) font.Axes {
	axes := font.GuessAxes(names.Full + " " + names.Subfamily)
	if post, ok := tables["post"]; ok {
		if angle, err := post.u32(4); err == nil && angle != 0 {
			axes.Italic = true
		}
		if fixed, err := post.u32(12); err == nil && fixed != 0 {
			axes.Monospace = true
		}
	}
	os2, ok := tables["OS/2"]
	if !ok {
		return axes
	}
	if weightClass, err := os2.u16(4); err == nil && weightClass != 0 {
		axes.Weight = font.WeightFromClass(weightClass)
	}
	if widthClass, err := os2.u16(6); err == nil && widthClass != 0 {
		axes.Stretch = font.StretchFromClass(widthClass)
		axes.Condensed = axes.Stretch.IsCondensed()
	}
	// panose byte 3 is bProportion; 9 denotes monospaced
	if panose, err := os2.view(32, 10); err == nil && panose[3] == 9 {
		axes.Monospace = true
	}
	if fsSelection, err := os2.u16(62); err == nil {
		const selItalic, selBold, selOblique = 0x0001, 0x0020, 0x0200
		axes.Italic = fsSelection&selItalic != 0
		axes.Oblique = fsSelection&selOblique != 0
		if fsSelection&selBold != 0 && axes.Weight < font.WeightBold {
			axes.Weight = font.WeightBold
		}
	}
	return axes
}

// coverageFromCmap builds the Unicode coverage from the cmap table.
// Supported are the usual platform/encoding/format combinations:
//
//	0 (Unicode)  3    4   Unicode BMP
//	0 (Unicode)  4    12  Unicode full
//	3 (Windows)  1    4   Unicode BMP
//	3 (Windows)  10   12  Unicode full
//
// A format-12 subtable wins over a format-4 one.
func coverageFromCmap(cmap binSegm) (font.Coverage, error) {
	subtableCount, err := cmap.u16(2)
	if err != nil {
		return nil, err
	}
	var best binSegm
	var bestFormat uint16
	for i := 0; i < int(subtableCount); i++ {
		pid, err := cmap.u16(4 + 8*i)
		if err != nil {
			return nil, err
		}
		psid, _ := cmap.u16(4 + 8*i + 2)
		offset, _ := cmap.u32(4 + 8*i + 4)
		if int(offset)+2 > len(cmap) {
			continue
		}
		format, _ := cmap.u16(int(offset))
		supported := (pid == 0 && psid == 3 && format == 4) ||
			(pid == 0 && psid == 4 && format == 12) ||
			(pid == 3 && psid == 1 && format == 4) ||
			(pid == 3 && psid == 10 && format == 12)
		if !supported {
			continue
		}
		if best == nil || format > bestFormat {
			best = cmap[offset:]
			bestFormat = format
		}
	}
	if best == nil {
		return nil, errFontFormat("no supported cmap subtable")
	}
	if bestFormat == 12 {
		return coverageFromFormat12(best)
	}
	return coverageFromFormat4(best)
}

// Format 4: segment mapping to delta values, BMP only.
func coverageFromFormat4(b binSegm) (font.Coverage, error) {
	segCountX2, err := b.u16(6)
	if err != nil {
		return nil, err
	}
	if segCountX2&1 != 0 {
		return nil, errFontFormat("cmap format 4, illegal segment count")
	}
	segCount := int(segCountX2 / 2)
	if segCount > maxCMapSegments {
		return nil, errFontFormat("too many cmap segments")
	}
	const headerSize = 14
	endCodes := headerSize
	startCodes := endCodes + 2*segCount + 2 // reservedPad in between
	idRangeOffsets := startCodes + 4*segCount
	var ranges []font.CodeRange
	for i := 0; i < segCount; i++ {
		start, err1 := b.u16(startCodes + 2*i)
		end, err2 := b.u16(endCodes + 2*i)
		if err1 != nil || err2 != nil {
			return nil, errFontFormat("cmap internal structure")
		}
		if start == 0xffff && end == 0xffff { // final sentinel segment
			continue
		}
		if start > end {
			return nil, errFontFormat("cmap segment bounds")
		}
		rangeOffset, err := b.u16(idRangeOffsets + 2*i)
		if err != nil {
			return nil, errFontFormat("cmap internal structure")
		}
		if rangeOffset == 0 {
			// glyph = code + delta; the segment maps straight through
			ranges = append(ranges, font.CodeRange{Low: rune(start), High: rune(end)})
			continue
		}
		// indirection through the glyph id array: codes mapping to
		// glyph 0 are holes and excluded from the coverage
		for c := int(start); c <= int(end); c++ {
			at := idRangeOffsets + 2*i + int(rangeOffset) + 2*(c-int(start))
			gid, err := b.u16(at)
			if err != nil {
				return nil, errFontFormat("cmap bounds overflow")
			}
			if gid != 0 {
				ranges = append(ranges, font.CodeRange{Low: rune(c), High: rune(c)})
			}
		}
	}
	return font.NewCoverage(ranges...), nil
}

// Format 12: segmented coverage over the full Unicode repertoire.
func coverageFromFormat12(b binSegm) (font.Coverage, error) {
	numGroups, err := b.u32(12)
	if err != nil {
		return nil, err
	}
	if numGroups > maxCMapSegments {
		return nil, errFontFormat("too many cmap segments")
	}
	const headerSize = 16
	groups, err := b.view(headerSize, 12*int(numGroups))
	if err != nil {
		return nil, errFontFormat("cmap internal structure")
	}
	var ranges []font.CodeRange
	for i := 0; i < int(numGroups); i++ {
		start, _ := groups.u32(12 * i)
		end, _ := groups.u32(12*i + 4)
		if start > end || end > 0x10ffff {
			return nil, errFontFormat("cmap group bounds")
		}
		ranges = append(ranges, font.CodeRange{Low: rune(start), High: rune(end)})
	}
	return font.NewCoverage(ranges...), nil
}
