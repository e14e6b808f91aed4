/*
Package otparse is the default parser capability for the font index.

It extracts exactly the subset of OpenType data the index needs: the
name-table records (through golang.org/x/image/font/sfnt), the style
axes from the OS/2 and post tables, and the Unicode coverage from the
cmap table (formats 4 and 12, format 12 winning where both are present).
TrueType/OpenType collections (*.ttc, *.otc) are addressed by sub-font
index.

Code comments occasionally cite the OpenType specification version
1.8.4; see https://docs.microsoft.com/en-us/typography/opentype/spec/.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package otparse

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'fontconf.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("fontconf.fonts")
}
