package font

import (
	"path"
	"strings"

	xfont "golang.org/x/image/font"
)

// Weight is a font weight on the CSS numeric scale.
type Weight int

// Weights as per CSS, aligned with the OS/2 usWeightClass values.
const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightNormal     Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

// Dist returns the absolute numeric distance between two weights.
func (w Weight) Dist(other Weight) int {
	d := int(w) - int(other)
	if d < 0 {
		return -d
	}
	return d
}

// IsBold reports a weight of 700 or above.
func (w Weight) IsBold() bool {
	return w >= WeightBold
}

// WeightFromClass converts an OS/2 usWeightClass value, clamping to the
// CSS scale.
func WeightFromClass(class uint16) Weight {
	if class < 100 {
		return WeightThin
	}
	if class > 900 {
		return WeightBlack
	}
	return Weight(class)
}

// WeightFromGo converts a golang.org/x/image/font weight, which counts in
// steps of one from -3 (thin) to +5 (black), to the CSS numeric scale.
func WeightFromGo(w xfont.Weight) Weight {
	return Weight((int(w) + 4) * 100)
}

// WeightToGo is the inverse of WeightFromGo, rounding to the nearest step.
func WeightToGo(w Weight) xfont.Weight {
	return xfont.Weight((int(w)+50)/100 - 4)
}

// Stretch is a font width on the CSS 9-step scale, from ultra-condensed (1)
// to ultra-expanded (9). It is aligned with the OS/2 usWidthClass values.
type Stretch int

const (
	StretchUltraCondensed Stretch = 1 + iota
	StretchExtraCondensed
	StretchCondensed
	StretchSemiCondensed
	StretchNormal
	StretchSemiExpanded
	StretchExpanded
	StretchExtraExpanded
	StretchUltraExpanded
)

// Dist returns the absolute distance between two stretch values.
func (s Stretch) Dist(other Stretch) int {
	d := int(s) - int(other)
	if d < 0 {
		return -d
	}
	return d
}

// IsCondensed reports a stretch narrower than normal.
func (s Stretch) IsCondensed() bool {
	return s != 0 && s < StretchNormal
}

// StretchFromClass converts an OS/2 usWidthClass value, clamping to the
// valid 1…9 scale.
func StretchFromClass(class uint16) Stretch {
	if class < 1 {
		return StretchNormal
	}
	if class > 9 {
		return StretchUltraExpanded
	}
	return Stretch(class)
}

// Axes are the style axes of a concrete font, as derived from its OS/2 and
// post tables, or guessed from its variant naming.
type Axes struct {
	Italic    bool
	Oblique   bool
	Weight    Weight
	Stretch   Stretch
	Monospace bool
	Condensed bool
}

// StyleFlags converts a golang.org/x/image/font style to the italic and
// oblique axis pair.
func StyleFlags(style xfont.Style) (italic bool, oblique bool) {
	switch style {
	case xfont.StyleItalic:
		return true, false
	case xfont.StyleOblique:
		return false, true
	}
	return false, false
}

// GuessAxes tries to guess a font's style axes from its file or variant
// name. It is a fallback for bare TrueType files without an OS/2 table.
func GuessAxes(fontfilename string) Axes {
	basename := path.Base(fontfilename)
	ext := path.Ext(basename)
	basename = strings.ToLower(basename[:len(basename)-len(ext)])
	tracer().Debugf("guessing axes from '%s'", basename)
	axes := Axes{Weight: WeightNormal, Stretch: StretchNormal}
	if strings.Contains(basename, "italic") {
		axes.Italic = true
	} else if strings.Contains(basename, "obliq") {
		axes.Oblique = true
	}
	switch {
	case strings.Contains(basename, "thin"):
		axes.Weight = WeightThin
	case strings.Contains(basename, "extralight"), strings.Contains(basename, "xlight"):
		axes.Weight = WeightExtraLight
	case strings.Contains(basename, "light"):
		axes.Weight = WeightLight
	case strings.Contains(basename, "medium"):
		axes.Weight = WeightMedium
	case strings.Contains(basename, "semibold"), strings.Contains(basename, "demibold"):
		axes.Weight = WeightSemiBold
	case strings.Contains(basename, "extrabold"), strings.Contains(basename, "xbold"):
		axes.Weight = WeightExtraBold
	case strings.Contains(basename, "black"), strings.Contains(basename, "heavy"):
		axes.Weight = WeightBlack
	case strings.Contains(basename, "bold"):
		axes.Weight = WeightBold
	}
	if strings.Contains(basename, "condensed") || strings.Contains(basename, "narrow") {
		axes.Stretch = StretchCondensed
		axes.Condensed = true
	}
	if strings.Contains(basename, "mono") {
		axes.Monospace = true
	}
	return axes
}
