/*
Package scan builds a font index from the fonts installed on a system.

The build pipeline enumerates candidate font files per platform
convention, parses them in parallel with a bounded worker pool, and
feeds the results into a font index under its deduplication discipline.
A malformed or unreadable font never aborts a scan; it is skipped with a
warning on the index's diagnostic log. In-memory fonts may be registered
at any point before or after a scan.

As scanning may be a time-consuming task, ResolveIndex works in an
async/await fashion by returning a promise. The call to the promise
function will then block until the build has completed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scan

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'fontconf.scan'.
func tracer() tracing.Trace {
	return tracing.Select("fontconf.scan")
}
