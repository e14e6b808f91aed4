/*
Package fontindex holds the authoritative font store and the matcher.

The index owns the FontId-to-entry mapping plus lookup maps for fast
name and family access. Writes are serialized behind a single writer
lock; reads share a read lock, as queries dominate after the build.
Matching is a pure function over the index state: a pattern is checked
against hard filters first (name, family, style axes, Unicode coverage),
then surviving candidates are ranked by a lexicographic score.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontindex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'fontconf.index'.
func tracer() tracing.Trace {
	return tracing.Select("fontconf.index")
}
