/*
Package font holds the shared data model for font discovery and selection.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Helvetica".

* A "font" is a variant of a typeface with a certain weight, slant, etc.
An example is "Helvetica regular". This package identifies fonts by opaque
128-bit IDs, minted process-locally.

* A "pattern" is a bundle of typographic constraints describing a desired
font: names, style axes, Unicode coverage.

Types in this package are shared plumbing: identifiers, coverage ranges,
style axes, sources, parsed-font records and trace records. The stores and
algorithms operating on them live in sub-packages fontindex and fallback.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'fontconf.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("fontconf.fonts")
}
