/*
Package fallback resolves CSS-style family stacks into font chains.

Resolution is two-phase. Phase one translates an ordered family list plus
style axes into a ResolvedChain: per CSS entry, an ordered group of
matching fonts with their coverage. Chains are pure functions of their
arguments plus the index state and are memoized; registering new fonts
invalidates the chain cache wholesale. Phase two walks a resolved chain
per code point, producing minimal font runs over Unicode text.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fallback

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'fontconf.fallback'.
func tracer() tracing.Trace {
	return tracing.Select("fontconf.fallback")
}
