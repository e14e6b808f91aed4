/*
Package option provides option types for typographic queries.

The central type is Flag, a tri-state value used for style axes in font
patterns: an axis may be required to be set, required to be unset, or left
open. Flags are deliberately not booleans and not nullable booleans; the
third state is an explicit value.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package option
